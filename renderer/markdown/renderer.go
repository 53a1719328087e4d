// Package markdownrenderer writes a display tree as Markdown, and as styled
// terminal output on top of that Markdown.
package markdownrenderer

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/ByLCY/brief/renderer"
	htmlrenderer "github.com/ByLCY/brief/renderer/html"
	"github.com/ByLCY/brief/view"
)

// Renderer converts the HTML surface's <main> fragment to Markdown. Icons are
// written as their text symbols.
type Renderer struct {
	html   *htmlrenderer.Renderer
	conv   *converter.Converter
	logger *zap.Logger
}

var (
	_ renderer.TreeRenderer = (*Renderer)(nil)
	_ renderer.TreeRenderer = (*Terminal)(nil)
)

// New returns a Markdown renderer. A nil logger disables logging.
func New(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		html: htmlrenderer.New(htmlrenderer.WithGlyphMode(htmlrenderer.GlyphSymbol), htmlrenderer.WithLogger(logger)),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				literalText{},
			),
		),
		logger: logger,
	}
}

// RenderTree implements renderer.TreeRenderer.
func (r *Renderer) RenderTree(root *view.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("display tree is nil")
	}
	md, err := r.conv.ConvertNode(r.html.Fragment(root))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	r.logger.Debug("markdown rendered", zap.Int("bytes", len(md)))
	return md, nil
}

// Terminal renders the Markdown form through glamour for display in a shell.
type Terminal struct {
	md    *Renderer
	width int
	style string
}

// NewTerminal returns a terminal renderer wrapping at width columns. style is
// a glamour standard style ("dark", "light", "notty", ...); "" or "auto"
// detects it from the terminal.
func NewTerminal(md *Renderer, width int, style string) *Terminal {
	if md == nil {
		md = New(nil)
	}
	if width <= 0 {
		width = 100
	}
	return &Terminal{md: md, width: width, style: style}
}

// RenderTree implements renderer.TreeRenderer.
func (t *Terminal) RenderTree(root *view.Node) ([]byte, error) {
	md, err := t.md.RenderTree(root)
	if err != nil {
		return nil, err
	}
	styleOpt := glamour.WithAutoStyle()
	if t.style != "" && t.style != "auto" {
		styleOpt = glamour.WithStandardStyle(t.style)
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(t.width))
	if err != nil {
		return nil, fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := tr.Render(string(md))
	if err != nil {
		return nil, fmt.Errorf("render terminal output: %w", err)
	}
	return []byte(out), nil
}
