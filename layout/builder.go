package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/brief/view"
)

// 布局引擎：把 view.Node 展示树排成分页的绝对坐标元素（单位：mm）。
// 带底色或边框的节点是不可拆分的块；未装饰的容器按子节点流式排布，
// 网格按行流式排布，二者都可以跨页。

const (
	boxPadding   = 4.0 // 装饰块内边距
	accentBar    = 1.2 // 左侧强调条宽度
	stepIndent   = 5.0 // 只有左边框、没有底色时的内容缩进
	ruleWidth    = 24.0
	ruleHeight   = 1.2
	cornerRadius = 2.0
	outlineWidth = 0.3
	glyphGap     = 1.5
	centerGlyph  = 6.0 // 居中图标边长
	glyphStroke  = 2.0 // 视图框单位
	minCellWidth = 30.0
)

var spacing = map[string]float64{
	view.SpacingSmall:  1.5,
	view.SpacingMedium: 3,
	view.SpacingLarge:  6,
}

func gapOf(s view.Style) float64 {
	if v, ok := spacing[s.Spacing]; ok {
		return v
	}
	return spacing[view.SpacingMedium]
}

// Build 将展示树布局为页面集合。
func Build(root *view.Node, opts BuildOptions) (*Result, error) {
	if root == nil {
		return nil, fmt.Errorf("展示树为空")
	}
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	ct, err := theme.compile()
	if err != nil {
		return nil, fmt.Errorf("主题无效: %w", err)
	}
	res := collectResources(theme)

	b := &builder{theme: ct, res: res, ts: opts.Typesetter}
	pc := newPageCollector(ct.width, ct.height, ct.margin)
	ctx := &flowContext{
		x:         ct.margin.Left,
		width:     ct.width - ct.margin.Left - ct.margin.Right,
		cursorY:   pc.contentTop(),
		atTop:     true,
		collector: pc,
	}
	if err := b.flow(root, ctx, root.Style.Accent); err != nil {
		return nil, err
	}
	return &Result{Pages: pc.pages(), Resources: res, Meta: opts.Meta}, nil
}

type builder struct {
	theme *compiledTheme
	res   ResourceSet
	ts    Typesetter
}

// flow 把节点排入当前页，必要时换页。
func (b *builder) flow(n *view.Node, ctx *flowContext, accent string) error {
	if n.Style.Accent != "" {
		accent = n.Style.Accent
	}
	switch {
	case n.Kind == view.KindGrid && !n.Decorated():
		rows, err := b.gridRows(n, ctx.width, accent)
		if err != nil {
			return err
		}
		for i, row := range rows {
			if i > 0 {
				ctx.gap(gapOf(n.Style))
			}
			ctx.place(row)
		}
		return nil
	case flows(n):
		gap := gapOf(n.Style)
		children := visible(n.Children)
		for i, c := range children {
			if i > 0 {
				ctx.gap(gap)
			}
			// 标题与其后内容的第一块保持在同一页
			if c.Role == view.RoleHeading && i+1 < len(children) {
				head, err := b.block(c, ctx.width, 0, accent)
				if err != nil {
					return err
				}
				lead, err := b.lead(children[i+1], ctx.width, accent)
				if err != nil {
					return err
				}
				ctx.ensureSpace(head.height + gap + lead)
			}
			if err := b.flow(c, ctx, accent); err != nil {
				return err
			}
		}
		return nil
	default:
		f, err := b.block(n, ctx.width, 0, accent)
		if err != nil {
			return err
		}
		if f.height > 0 {
			ctx.place(f)
		}
		return nil
	}
}

// lead 返回节点流式排布时第一块不可拆分内容的高度。
func (b *builder) lead(n *view.Node, width float64, accent string) (float64, error) {
	if n.Style.Accent != "" {
		accent = n.Style.Accent
	}
	switch {
	case n.Kind == view.KindGrid && !n.Decorated():
		rows, err := b.gridRows(n, width, accent)
		if err != nil || len(rows) == 0 {
			return 0, err
		}
		return rows[0].height, nil
	case flows(n):
		children := visible(n.Children)
		if len(children) == 0 {
			return 0, nil
		}
		return b.lead(children[0], width, accent)
	default:
		f, err := b.block(n, width, 0, accent)
		if err != nil {
			return 0, err
		}
		return f.height, nil
	}
}

// flows 判断节点是否按子节点流式排布（未装饰且有子节点的容器）。
func flows(n *view.Node) bool {
	return len(n.Children) > 0 && !n.Decorated() && n.Kind != view.KindCode && n.Kind != view.KindText
}

func blank(n *view.Node) bool {
	return n.Text == "" && n.Label == "" && n.Glyph == nil && len(n.Children) == 0 &&
		n.Role != view.RoleRule && !n.Decorated()
}

func visible(nodes []*view.Node) []*view.Node {
	out := make([]*view.Node, 0, len(nodes))
	for _, n := range nodes {
		if !blank(n) {
			out = append(out, n)
		}
	}
	return out
}

// block 以 (0,0) 为原点把节点排成一个不可拆分的片段。
// minHeight 用于网格行内的等高单元格。
func (b *builder) block(n *view.Node, width, minHeight float64, accent string) (*fragment, error) {
	if n.Style.Accent != "" {
		accent = n.Style.Accent
	}
	if n.Role == view.RoleRule {
		return b.rule(n, width, accent), nil
	}
	return b.decorate(n, width, minHeight, accent, func(inner float64) (*fragment, error) {
		switch {
		case n.Kind == view.KindGrid:
			rows, err := b.gridRows(n, inner, accent)
			if err != nil {
				return nil, err
			}
			return stackFragments(rows, gapOf(n.Style)), nil
		case len(n.Children) == 0:
			return b.text(n, inner, accent)
		default:
			parts := make([]*fragment, 0, len(n.Children))
			for _, c := range visible(n.Children) {
				f, err := b.block(c, inner, 0, accent)
				if err != nil {
					return nil, err
				}
				parts = append(parts, f)
			}
			return stackFragments(parts, gapOf(n.Style)), nil
		}
	})
}

// decorate 绘制底色、边框与强调条，并把内容放在内边距之内。
func (b *builder) decorate(n *view.Node, width, minHeight float64, accent string, content func(float64) (*fragment, error)) (*fragment, error) {
	var left, right, top, bottom float64
	s := n.Style
	if s.Surface != view.SurfaceNone || s.Border == view.BorderBox {
		left, right, top, bottom = boxPadding, boxPadding, boxPadding, boxPadding
	}
	if s.Border == view.BorderLeft {
		if s.Surface != view.SurfaceNone {
			left = accentBar + boxPadding
		} else {
			left = stepIndent
		}
	}
	inner, err := content(math.Max(width-left-right, 1))
	if err != nil {
		return nil, err
	}
	height := math.Max(inner.height+top+bottom, minHeight)

	f := &fragment{height: height}
	sw := b.theme.Swatch(accent)
	radius := cornerRadius
	if s.Border == view.BorderLeft {
		radius = 0
	}
	if fill, ok := b.surfaceColor(n, sw); ok {
		f.rects = append(f.rects, Rect{Width: width, Height: height, Radius: radius, FillColor: &fill})
	}
	if s.Border == view.BorderBox {
		stroke := sw.Border
		f.rects = append(f.rects, Rect{Width: width, Height: height, Radius: radius, StrokeColor: &stroke, StrokeWidth: outlineWidth})
	}
	if s.Border == view.BorderLeft {
		bar := sw.Accent
		f.rects = append(f.rects, Rect{Width: accentBar, Height: height, FillColor: &bar})
	}
	f.add(inner, left, top)
	return f, nil
}

func (b *builder) surfaceColor(n *view.Node, sw Swatch) (Color, bool) {
	switch n.Style.Surface {
	case view.SurfaceMuted:
		if n.Kind == view.KindCode {
			return b.theme.Colors[ColorCode], true
		}
		return b.theme.Colors[ColorSurface], true
	case view.SurfaceTint:
		return sw.Tint, true
	case view.SurfaceBanner:
		return sw.Accent, true
	}
	return Color{}, false
}

func (b *builder) rule(n *view.Node, width float64, accent string) *fragment {
	fill := b.theme.Swatch(accent).Accent
	x := alignOffset(width, ruleWidth, n.Style.Align)
	return &fragment{
		height: ruleHeight,
		rects:  []Rect{{X: x, Width: math.Min(ruleWidth, width), Height: ruleHeight, FillColor: &fill}},
	}
}

// gridRows 先测量每行最高的单元格，再以该高度重排，使同一行的单元格等高。
func (b *builder) gridRows(n *view.Node, width float64, accent string) ([]*fragment, error) {
	children := visible(n.Children)
	gap := gapOf(n.Style)
	cols := n.Style.Columns
	if cols < 1 {
		cols = 1
	}
	if fit := int((width + gap) / (minCellWidth + gap)); fit < cols {
		cols = max(fit, 1)
	}
	cellW := (width - gap*float64(cols-1)) / float64(cols)

	var rows []*fragment
	for start := 0; start < len(children); start += cols {
		row := children[start:min(start+cols, len(children))]
		h := 0.0
		for _, c := range row {
			f, err := b.block(c, cellW, 0, accent)
			if err != nil {
				return nil, err
			}
			h = math.Max(h, f.height)
		}
		rf := &fragment{height: h}
		for j, c := range row {
			f, err := b.block(c, cellW, h, accent)
			if err != nil {
				return nil, err
			}
			rf.add(f, float64(j)*(cellW+gap), 0)
		}
		rows = append(rows, rf)
	}
	return rows, nil
}

// text 排版一个文本节点；带图标时图标居中置于文字上方或行首。
func (b *builder) text(n *view.Node, width float64, accent string) (*fragment, error) {
	content := n.Text
	if n.Label != "" {
		content = n.Label + ": " + content
	}
	if n.Role == view.RoleBullet {
		content = "• " + content
	}
	f := &fragment{}
	if content == "" && n.Glyph == nil {
		return f, nil
	}
	spec := b.theme.style(n.Role)
	color := b.theme.color(spec.color, accent)
	align := normalizeAlign(n.Style.Align)
	wrap := spec.wrap

	x, y, tw := 0.0, 0.0, width
	var inline *GlyphBox
	if g := n.Glyph; g != nil {
		box := GlyphBox{Name: g.Name, Path: g.Path, StrokeWidth: glyphStroke, Color: b.theme.Swatch(accent).Accent}
		if align == "center" {
			box.Size = centerGlyph
			box.X = (width - centerGlyph) / 2
			f.glyphs = append(f.glyphs, box)
			y = centerGlyph + glyphGap
		} else {
			box.Size = spec.size
			x = spec.size + glyphGap
			tw = math.Max(width-x, 1)
			inline = &box
		}
	}

	tb, h, err := b.composeTextBox(spec, content, x, y, tw, color, align, wrap)
	if err != nil {
		return nil, fmt.Errorf("排版 %s 文本失败: %w", n.Role, err)
	}
	if inline != nil && len(tb.Lines) > 0 {
		inline.Y = y + math.Max(tb.Lines[0].Height-inline.Size, 0)/2
		f.glyphs = append(f.glyphs, *inline)
	}
	f.texts = append(f.texts, tb)
	f.height = y + h
	return f, nil
}

func (b *builder) composeTextBox(spec textSpec, content string, x, y, width float64, color Color, align, wrap string) (TextBox, float64, error) {
	font, err := resolveFontResource(spec.font, b.res)
	if err != nil {
		return TextBox{}, 0, err
	}
	lines, err := layoutLines(content, width, font, spec.size, spec.lineHeight, b.ts, wrap)
	if err != nil {
		return TextBox{}, 0, err
	}

	totalHeight := 0.0
	defaultLeading := math.Max(spec.lineHeight-spec.size, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = spec.size
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = defaultLeading
		}
		totalHeight += lines[i].GapBefore + lines[i].Height
	}

	tb := TextBox{
		Content:    content,
		X:          x,
		Y:          y,
		Width:      width,
		LineHeight: spec.lineHeight,
		Font:       spec.font,
		FontSize:   spec.size,
		Color:      color,
		Lines:      lines,
		Height:     totalHeight,
		Wrap:       wrap,
	}
	if align != "left" {
		tb.Align = align
	}
	return tb, totalHeight, nil
}

func resolveFontResource(name string, res ResourceSet) (FontResource, error) {
	if font, ok := res.Fonts[name]; ok {
		return font, nil
	}
	if font, ok := res.Fonts["Body"]; ok {
		return font, nil
	}
	return FontResource{}, fmt.Errorf("字体 %s 未定义，且没有可用的默认字体", name)
}

func layoutLines(content string, width float64, font FontResource, fontSize, lineHeight float64, ts Typesetter, wrap string) ([]TextLine, error) {
	if ts == nil {
		lines := strings.Split(content, "\n")
		out := make([]TextLine, 0, len(lines))
		leading := math.Max(lineHeight-fontSize, 0)
		for _, l := range lines {
			out = append(out, TextLine{
				Content:   l,
				Width:     width,
				Height:    fontSize,
				GapBefore: leading,
			})
		}
		out[0].GapBefore = 0
		return out, nil
	}
	lines, err := ts.LayoutLines(content, width, font, fontSize, lineHeight, wrap)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: width, Height: fontSize}}
	}
	lines[0].GapBefore = 0
	return lines, nil
}

func normalizeAlign(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center", "middle":
		return "center"
	case "right", "end":
		return "right"
	default:
		return "left"
	}
}

func alignOffset(container, width float64, align string) float64 {
	if container <= width {
		return 0
	}
	switch normalizeAlign(align) {
	case "center":
		return (container - width) / 2
	case "right":
		return container - width
	default:
		return 0
	}
}

func collectResources(theme *Theme) ResourceSet {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
	}
	for name, src := range theme.Fonts {
		res.Fonts[name] = FontResource{Name: name, Src: src, Family: name}
	}
	for name, c := range theme.Colors {
		res.Colors[name] = c
	}
	return res
}

// fragment 是以自身左上角为原点的一组元素。
type fragment struct {
	height float64
	texts  []TextBox
	rects  []Rect
	glyphs []GlyphBox
}

// add 把 o 平移 (dx, dy) 后并入 f。
func (f *fragment) add(o *fragment, dx, dy float64) {
	for _, t := range o.texts {
		t.X += dx
		t.Y += dy
		f.texts = append(f.texts, t)
	}
	for _, r := range o.rects {
		r.X += dx
		r.Y += dy
		f.rects = append(f.rects, r)
	}
	for _, g := range o.glyphs {
		g.X += dx
		g.Y += dy
		f.glyphs = append(f.glyphs, g)
	}
}

func stackFragments(parts []*fragment, gap float64) *fragment {
	f := &fragment{}
	y := 0.0
	placed := false
	for _, p := range parts {
		if p.height <= 0 {
			continue
		}
		if placed {
			y += gap
		}
		f.add(p, 0, y)
		y += p.height
		placed = true
	}
	f.height = y
	return f
}

type pageCollector struct {
	width  float64
	height float64
	margin Margin
	accs   []*fragment
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{width: width, height: height, margin: margin}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *fragment {
	acc := &fragment{}
	pc.accs = append(pc.accs, acc)
	return acc
}

func (pc *pageCollector) curr() *fragment {
	return pc.accs[len(pc.accs)-1]
}

func (pc *pageCollector) contentTop() float64 { return pc.margin.Top }

func (pc *pageCollector) contentBottom() float64 { return pc.height - pc.margin.Bottom }

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.width,
			Height: pc.height,
			Margin: pc.margin,
			Texts:  acc.texts,
			Rects:  acc.rects,
			Glyphs: acc.glyphs,
		}
	}
	return out
}

type flowContext struct {
	x         float64
	width     float64
	cursorY   float64
	atTop     bool // 当前页尚未放置任何内容
	collector *pageCollector
}

func (ctx *flowContext) gap(g float64) {
	if !ctx.atTop {
		ctx.cursorY += g
	}
}

// ensureSpace 在剩余空间不足时换页；页顶仍放不下的块直接放置。
func (ctx *flowContext) ensureSpace(height float64) {
	if ctx.atTop {
		return
	}
	if ctx.cursorY+height <= ctx.collector.contentBottom() {
		return
	}
	ctx.pageBreak()
}

func (ctx *flowContext) pageBreak() {
	ctx.collector.newPage()
	ctx.cursorY = ctx.collector.contentTop()
	ctx.atTop = true
}

func (ctx *flowContext) place(f *fragment) {
	ctx.ensureSpace(f.height)
	ctx.collector.curr().add(f, ctx.x, ctx.cursorY)
	ctx.cursorY += f.height
	ctx.atTop = false
}
