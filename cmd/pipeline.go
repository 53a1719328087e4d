package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/brief/config"
	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/dsl"
	"github.com/ByLCY/brief/glyph"
	"github.com/ByLCY/brief/layout"
	canvasrenderer "github.com/ByLCY/brief/renderer/canvas"
	htmlrenderer "github.com/ByLCY/brief/renderer/html"
	markdownrenderer "github.com/ByLCY/brief/renderer/markdown"
	"github.com/ByLCY/brief/view"
)

const builtinName = "phase1"

// loadDocument 读取 .brief 文件；path 为空时使用内置简报。
func loadDocument(path string) (*document.Document, string, error) {
	if path == "" {
		return document.StrategyBrief, builtinName, nil
	}
	doc, err := dsl.LoadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("读取简报 %s 失败: %w", path, err)
	}
	return doc, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), nil
}

func renderTree(doc *document.Document) *view.Node {
	return view.New(view.WithGlyphs(glyph.Builtin()), view.WithLogger(logger)).Render(doc)
}

// pipeline 串联布局与各输出格式。
type pipeline struct {
	cfg     *config.Config
	baseDir string
	logger  *zap.Logger
}

// fontResources 把 theme.font_files 注入渲染器，供 built-in:<name> 引用。
func (p *pipeline) fontResources() map[string]canvasrenderer.Resource {
	files := p.cfg.Theme.FontFiles
	if len(files) == 0 {
		return nil
	}
	out := make(map[string]canvasrenderer.Resource, len(files))
	for name, path := range files {
		out[name] = canvasrenderer.Resource{Path: path}
	}
	return out
}

// layoutPDF 计算分页结果，返回结果与用于绘制的渲染器。
func (p *pipeline) layoutPDF(root *view.Node, meta document.Meta) (*layout.Result, *canvasrenderer.Renderer, error) {
	theme, err := p.cfg.BuildTheme()
	if err != nil {
		return nil, nil, err
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: p.baseDir,
		Fonts:   p.fontResources(),
		Logger:  p.logger,
	})
	result, err := layout.Build(root, layout.BuildOptions{
		Typesetter: r,
		Theme:      theme,
		Meta: layout.DocumentMeta{
			Title:    meta.Title,
			Author:   meta.Author,
			Subject:  meta.Subject,
			Creator:  "brief",
			Keywords: meta.Keywords,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return result, r, nil
}

// render 生成 format 对应的字节。debug 非 nil 时额外写出布局 JSON（仅 pdf）。
func (p *pipeline) render(format string, root *view.Node, meta document.Meta, debug *bytes.Buffer) ([]byte, error) {
	switch format {
	case config.FormatPDF:
		result, r, err := p.layoutPDF(root, meta)
		if err != nil {
			return nil, err
		}
		if debug != nil {
			if err := layout.WriteDebugJSON(debug, result); err != nil {
				return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
			}
		}
		out, err := r.Render(result)
		if err != nil {
			return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
		}
		return out, nil
	case config.FormatHTML:
		theme, err := p.cfg.BuildTheme()
		if err != nil {
			return nil, err
		}
		return htmlrenderer.New(htmlrenderer.WithTheme(theme), htmlrenderer.WithLogger(p.logger)).RenderTree(root)
	case config.FormatMarkdown:
		return markdownrenderer.New(p.logger).RenderTree(root)
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
