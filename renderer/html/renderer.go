// Package htmlrenderer writes a display tree as a standalone HTML page. Styles
// are generated from the same layout.Theme the PDF surface uses.
package htmlrenderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/brief/layout"
	"github.com/ByLCY/brief/renderer"
	"github.com/ByLCY/brief/view"
)

// GlyphMode selects how icons are written.
type GlyphMode int

const (
	// GlyphSVG inlines each icon as an SVG element.
	GlyphSVG GlyphMode = iota
	// GlyphSymbol writes the icon's text symbol, for text-only consumers.
	GlyphSymbol
)

// Renderer renders display trees to HTML.
type Renderer struct {
	theme  *layout.Theme
	glyphs GlyphMode
	logger *zap.Logger
}

var _ renderer.TreeRenderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme used for the embedded stylesheet.
func WithTheme(t *layout.Theme) Option {
	return func(r *Renderer) {
		if t != nil {
			r.theme = t
		}
	}
}

// WithGlyphMode selects SVG or text-symbol icons.
func WithGlyphMode(m GlyphMode) Option {
	return func(r *Renderer) { r.glyphs = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Renderer with the default theme and inline SVG icons.
func New(opts ...Option) *Renderer {
	r := &Renderer{theme: layout.DefaultTheme(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderTree writes root as a complete HTML document.
func (r *Renderer) RenderTree(root *view.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("display tree is nil")
	}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html, attr("lang", "en"))
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	title := element(atom.Title)
	title.AppendChild(textNode(documentTitle(root)))
	head.AppendChild(title)
	style := element(atom.Style)
	style.AppendChild(textNode(r.stylesheet()))
	head.AppendChild(style)

	body := element(atom.Body)
	body.AppendChild(r.Fragment(root))
	page.AppendChild(head)
	page.AppendChild(body)
	doc.AppendChild(page)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}
	buf.WriteByte('\n')
	r.logger.Debug("html rendered", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Fragment converts root into a detached <main> element.
func (r *Renderer) Fragment(root *view.Node) *html.Node {
	wrapper := element(atom.Main, attr("class", "brief"))
	r.appendChildren(wrapper, root.Children)
	return wrapper
}

func documentTitle(root *view.Node) string {
	if titles := view.FindAll(root, view.RoleTitle); len(titles) > 0 {
		return titles[0].Text
	}
	return "Brief"
}

// appendChildren converts nodes in order, grouping runs of bullets into one list.
func (r *Renderer) appendChildren(parent *html.Node, nodes []*view.Node) {
	var list *html.Node
	for _, n := range nodes {
		if n.Role == view.RoleBullet {
			if list == nil {
				list = element(atom.Ul, attr("class", "bullets"))
				parent.AppendChild(list)
			}
			li := element(atom.Li)
			li.AppendChild(textNode(n.Text))
			list.AppendChild(li)
			continue
		}
		list = nil
		if el := r.convert(n); el != nil {
			parent.AppendChild(el)
		}
	}
}

func (r *Renderer) convert(n *view.Node) *html.Node {
	if n.Kind == view.KindText && n.Text == "" && n.Label == "" && n.Glyph == nil {
		return nil
	}
	var el *html.Node
	switch n.Role {
	case view.RoleHeader:
		el = element(atom.Header)
	case view.RoleTitle:
		el = element(atom.H1)
	case view.RoleRule:
		return element(atom.Hr, classes(n, "rule"))
	case view.RoleSection:
		el = element(atom.Section)
	case view.RoleHeading:
		el = element(atom.H2)
	case view.RoleCardTitle, view.RoleStepTitle, view.RoleMetricLabel:
		el = element(atom.H3)
	case view.RoleCard, view.RoleMetric, view.RoleDeliverable:
		el = element(atom.Article)
	case view.RoleSteps:
		el = element(atom.Ol)
	case view.RoleStep:
		el = element(atom.Li)
	case view.RoleBanner:
		el = element(atom.Footer)
	default:
		switch n.Kind {
		case view.KindText:
			el = element(atom.P)
		case view.KindCode:
			return r.code(n)
		default:
			el = element(atom.Div)
		}
	}
	el.Attr = append(el.Attr, classes(n, string(n.Role)))

	if n.Glyph != nil {
		el.AppendChild(r.icon(n))
	}
	if n.Label != "" {
		strong := element(atom.Strong)
		strong.AppendChild(textNode(n.Label + ":"))
		el.AppendChild(strong)
		el.AppendChild(textNode(" "))
	}
	if n.Text != "" {
		el.AppendChild(textNode(n.Text))
	}
	r.appendChildren(el, n.Children)
	return el
}

func (r *Renderer) code(n *view.Node) *html.Node {
	pre := element(atom.Pre, classes(n, "code"))
	code := element(atom.Code)
	code.AppendChild(textNode(n.Text))
	pre.AppendChild(code)
	return pre
}

func (r *Renderer) icon(n *view.Node) *html.Node {
	g := n.Glyph
	if r.glyphs == GlyphSymbol {
		span := element(atom.Span, attr("class", "icon"))
		span.AppendChild(textNode(g.Symbol + " "))
		return span
	}
	svg := element(atom.Svg,
		attr("class", "icon"),
		attr("viewBox", "0 0 24 24"),
		attr("fill", "none"),
		attr("stroke", "currentColor"),
		attr("stroke-width", "2"),
		attr("stroke-linecap", "round"),
		attr("stroke-linejoin", "round"),
		attr("aria-label", g.Name),
	)
	// x/net/html/atom has no entry for path.
	svg.AppendChild(&html.Node{Type: html.ElementNode, Data: "path", Attr: []html.Attribute{attr("d", g.Path)}})
	return svg
}

// classes builds the class attribute from the node's role and style tokens.
func classes(n *view.Node, base string) html.Attribute {
	var parts []string
	if base != "" {
		parts = append(parts, base)
	}
	s := n.Style
	if s.Accent != "" {
		parts = append(parts, "accent-"+s.Accent)
	}
	if s.Surface != view.SurfaceNone {
		parts = append(parts, "surface-"+s.Surface)
	}
	if s.Border != view.BorderNone {
		parts = append(parts, "border-"+s.Border)
	}
	if s.Spacing != "" {
		parts = append(parts, "gap-"+s.Spacing)
	}
	if s.Align != "" {
		parts = append(parts, "align-"+s.Align)
	}
	if n.Kind == view.KindGrid {
		parts = append(parts, "grid", fmt.Sprintf("cols-%d", max(s.Columns, 1)))
	}
	return attr("class", strings.Join(parts, " "))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func hexColor(c layout.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// stylesheet derives the page CSS from the theme palette and colors.
func (r *Renderer) stylesheet() string {
	t := r.theme
	var b strings.Builder
	fmt.Fprintf(&b, ":root{--ink:%s;--body:%s;--muted:%s;--surface:%s;--code:%s;--outline:%s}\n",
		hexColor(t.Colors[layout.ColorInk]), hexColor(t.Colors[layout.ColorBody]), hexColor(t.Colors[layout.ColorMuted]),
		hexColor(t.Colors[layout.ColorSurface]), hexColor(t.Colors[layout.ColorCode]), hexColor(t.Colors[layout.ColorOutline]))

	accents := make([]string, 0, len(t.Palette))
	for name := range t.Palette {
		accents = append(accents, name)
	}
	sort.Strings(accents)
	for _, name := range accents {
		s := t.Palette[name]
		fmt.Fprintf(&b, ".accent-%s{--accent:%s;--tint:%s;--border:%s}\n",
			name, hexColor(s.Accent), hexColor(s.Tint), hexColor(s.Border))
	}
	b.WriteString(baseCSS)
	return b.String()
}

const baseCSS = `body{margin:0;background:#fff;color:var(--body);font:15px/1.5 system-ui,sans-serif}
.brief{max-width:1080px;margin:0 auto;padding:32px 24px;display:flex;flex-direction:column;gap:32px}
header{text-align:center}
h1{color:var(--ink);font-size:28px;margin:0 0 8px}
h2{color:var(--ink);font-size:20px;margin:0 0 16px;display:flex;align-items:center;gap:8px}
h3{color:var(--ink);font-size:15px;margin:0 0 6px;display:flex;align-items:center;gap:6px}
h2 .icon,h3 .icon{width:22px;height:22px;color:var(--accent)}
.rule{width:96px;height:4px;border:0;background:var(--accent);margin:8px auto}
.grid{display:grid;gap:16px}
.cols-2{grid-template-columns:repeat(2,1fr)}
.cols-3{grid-template-columns:repeat(3,1fr)}
@media (max-width:720px){.grid{grid-template-columns:1fr}}
.surface-tint{background:var(--tint)}
.surface-muted{background:var(--surface)}
.surface-banner{background:var(--accent);color:#fff}
.border-box{border:1px solid var(--border);border-radius:8px}
.border-left{border-left:4px solid var(--accent)}
.surface-tint,.surface-muted,.border-box,.surface-banner{padding:16px;border-radius:8px}
.border-left.surface-tint{border-radius:0 8px 8px 0}
.step{list-style:none;padding-left:16px;margin-bottom:16px}
.steps{padding:0;margin:0}
.field,.body,.caption{color:var(--muted);font-size:13px;margin:2px 0}
.bullets{margin:0;padding-left:18px;font-size:13px}
.metric{text-align:center}
.metric h3{flex-direction:column}
.metric-value{color:var(--accent);font-size:28px;font-weight:700;margin:4px 0}
.code{background:var(--code);border-radius:6px;padding:12px;font:12px/1.4 ui-monospace,monospace;overflow-x:auto;white-space:pre}
.banner{text-align:center;font-weight:700}
.banner p{margin:0}
`
