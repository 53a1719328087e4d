package canvasrenderer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/brief/fonts"
	"github.com/ByLCY/brief/layout"
	"github.com/ByLCY/brief/view"
)

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer(".")
	font := layout.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}

	// 这里的宽度/字号/行高均为 mm
	fontSizeMM := 12 * layout.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	lines, err := r.LayoutLines("hello world again", 10, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	r := NewRenderer(".")
	font := layout.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}

	fontSizeMM := 12 * layout.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	lines, err := r.LayoutLines("foo\n\nbar", 100, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// TestLineHeightsInvariant 验证：
// 1) 首行 GapBefore == 0；
// 2) 其余行 GapBefore ≈ max(lineHeight - textHeight, 0)；
// 3) 各行的 Height 与 textHeight 一致（渲染器会用字体度量回填）。
func TestLineHeightsInvariant(t *testing.T) {
	r := NewRenderer(".")
	font := layout.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}
	fontSizeMM := 12 * layout.PtToMm
	lineHeightMM := fontSizeMM * 1.3

	content := "longlonglong longlonglong longlonglong longlonglong longlonglong"
	lines, err := r.LayoutLines(content, 40, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines for invariant test, got %d", len(lines))
	}

	// textHeight 以第一行 Height 为准
	textHeight := lines[0].Height
	if textHeight <= 0 {
		t.Fatalf("invalid text height: %g", textHeight)
	}
	wantLeading := math.Max(lineHeightMM-textHeight, 0)

	if lines[0].GapBefore != 0 {
		t.Fatalf("first line GapBefore must be 0, got %g", lines[0].GapBefore)
	}
	const eps = 1e-6
	for i := 1; i < len(lines); i++ {
		if diff := math.Abs(lines[i].GapBefore - wantLeading); diff > eps {
			t.Fatalf("line %d GapBefore mismatch: got=%g want=%g diff=%g", i, lines[i].GapBefore, wantLeading, diff)
		}
		if diff := math.Abs(lines[i].Height - textHeight); diff > eps {
			t.Fatalf("line %d Height mismatch: got=%g want=%g diff=%g", i, lines[i].Height, textHeight, diff)
		}
	}
}

// TestGreedyWrapWidthLimit 验证每行宽度不超过限制（mm）。
func TestGreedyWrapWidthLimit(t *testing.T) {
	r := NewRenderer(".")
	font := layout.FontResource{Src: "embed:go-regular"}
	fontSizeMM := 12 * layout.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	limit := 30.0 // mm
	content := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	lines, err := r.LayoutLines(content, limit, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected at least one line")
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-6 { // 允许极小的数值误差
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
	}
}

func TestWrapKeepsCodeIndentation(t *testing.T) {
	r := NewRenderer("")
	font := layout.FontResource{Name: "Mono", Src: "embed:go-mono"}
	fontSizeMM := 7.5 * layout.PtToMm

	code := "SELECT a,\n       b\nFROM t"
	lines, err := r.LayoutLines(code, 150, font, fontSizeMM, fontSizeMM*1.35, "anywhere")
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1].Content != "       b" {
		t.Fatalf("indentation lost: %q", lines[1].Content)
	}
}

func TestUnknownFontFallsBackToDefault(t *testing.T) {
	r := NewRenderer("")
	font := layout.FontResource{Name: "Missing", Src: "embed:Inter-Regular"}
	lines, err := r.LayoutLines("fallback", 100, font, 4, 5, "")
	if err != nil {
		t.Fatalf("fallback should hide the load error: %v", err)
	}
	if len(lines) != 1 || lines[0].Width <= 0 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestRenderStrategyBriefPDF(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRendererWithOptions(Options{Logger: zap.New(core)})

	root := view.RenderBrief()
	res, err := layout.Build(root, layout.BuildOptions{
		Typesetter: r,
		Meta:       layout.DocumentMeta{Title: "Phase 1", Creator: "brief"},
	})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	// 非法图标路径只会被跳过
	res.Pages[0].Glyphs = append(res.Pages[0].Glyphs, layout.GlyphBox{Name: "broken", Path: "M 1 Z Q", Size: 5})

	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 8)])
	}
	if logs.FilterMessage("glyph path rejected").Len() != 1 {
		t.Fatalf("expected one rejected glyph, got logs %v", logs.All())
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil result should fail")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("result without pages should fail")
	}
}

func TestInjectedFontsResolveBuiltinSrc(t *testing.T) {
	mono, err := fonts.Load("embed:go-mono")
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, mono, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRendererWithOptions(Options{
		Fonts: map[string]Resource{
			"from-bytes": {Bytes: mono},
			"from-path":  {Path: path},
			"missing":    {Path: filepath.Join(t.TempDir(), "nope.ttf")},
		},
		Logger: zap.New(core),
	})
	if logs.FilterMessage("读取注入字体失败").Len() != 1 {
		t.Fatalf("expected one unreadable font warning, got %v", logs.All())
	}

	for _, name := range []string{"from-bytes", "from-path"} {
		data, err := r.loadFontBytes(layout.FontResource{Name: "Code", Src: "built-in:" + name})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(data, mono) {
			t.Fatalf("%s: injected bytes not returned", name)
		}
	}
	if _, err := r.loadFontBytes(layout.FontResource{Name: "Code", Src: "built-in:missing"}); err == nil {
		t.Fatalf("unreadable font should not be registered")
	}

	// 等宽字体下两段相同长度的文本宽度一致
	font := layout.FontResource{Name: "Code", Src: "built-in:from-bytes"}
	a, err := r.LayoutLines("iiii", 0, font, 4, 5, "nowrap")
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	b, err := r.LayoutLines("MMMM", 0, font, 4, 5, "nowrap")
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if math.Abs(a[0].Width-b[0].Width) > 1e-9 {
		t.Fatalf("expected monospace widths, got %f and %f", a[0].Width, b[0].Width)
	}
	if logs.FilterMessage("字体加载失败，使用默认字体").Len() != 0 {
		t.Fatalf("injected font should not fall back")
	}
}
