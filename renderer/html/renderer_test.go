package htmlrenderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/glyph"
	"github.com/ByLCY/brief/view"
)

func parse(t *testing.T, out []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRenderBriefDocument(t *testing.T) {
	out, err := New().RenderTree(view.RenderBrief())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("<!DOCTYPE html>")))

	doc := parse(t, out)
	titles := findAll(doc, atom.Title)
	require.Len(t, titles, 1)
	require.Equal(t, document.StrategyBrief.Meta().Title, textOf(titles[0]))

	// footer is a banner, every other section is a <section>
	sections := findAll(doc, atom.Section)
	require.Len(t, sections, document.StrategyBrief.Len()-1)
	footers := findAll(doc, atom.Footer)
	require.Len(t, footers, 1)
	require.Contains(t, textOf(footers[0]), "Ready for Phase 2")

	headings := findAll(doc, atom.H2)
	for i, s := range document.StrategyBrief.Sections()[:len(sections)] {
		require.Equal(t, s.Title, textOf(headings[i]))
	}
}

func TestCodeBlocksRoundTripVerbatim(t *testing.T) {
	out, err := New().RenderTree(view.RenderBrief())
	require.NoError(t, err)

	codes := findAll(parse(t, out), atom.Code)
	steps := document.StrategyBrief.Sections()[3].Steps
	require.Len(t, codes, len(steps))
	for i, st := range steps {
		require.Equal(t, st.Code, textOf(codes[i]))
	}
}

func TestBulletsGroupedIntoLists(t *testing.T) {
	out, err := New().RenderTree(view.RenderBrief())
	require.NoError(t, err)

	lists := findAll(parse(t, out), atom.Ul)
	challenges := document.StrategyBrief.Sections()[2].Challenges
	require.Len(t, lists, len(challenges))
	for i, ch := range challenges {
		require.Len(t, findAll(lists[i], atom.Li), len(ch.Bullets))
	}
}

func TestGlyphModes(t *testing.T) {
	root := view.RenderBrief()
	resolved := 0
	view.Walk(root, func(n *view.Node) bool {
		if n.Glyph != nil {
			resolved++
		}
		return true
	})

	svgOut, err := New().RenderTree(root)
	require.NoError(t, err)
	require.Len(t, findAll(parse(t, svgOut), atom.Svg), resolved)

	symOut, err := New(WithGlyphMode(GlyphSymbol)).RenderTree(root)
	require.NoError(t, err)
	require.Empty(t, findAll(parse(t, symOut), atom.Svg))
	require.Contains(t, string(symOut), "⛁")
}

func TestMissingGlyphOmitsIconOnly(t *testing.T) {
	root := view.New(view.WithGlyphs(glyph.Builtin().Without("target"))).Render(document.StrategyBrief)
	out, err := New().RenderTree(root)
	require.NoError(t, err)

	doc := parse(t, out)
	first := findAll(doc, atom.H2)[0]
	require.Equal(t, "Objective", textOf(first))
	require.Empty(t, findAll(first, atom.Svg))
}

func TestStylesheetFollowsTheme(t *testing.T) {
	out, err := New().RenderTree(view.RenderBrief())
	require.NoError(t, err)
	for _, accent := range []string{".accent-blue{", ".accent-teal{", ".accent-gray{"} {
		require.Contains(t, string(out), accent)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New()
	a, err := r.RenderTree(view.RenderBrief())
	require.NoError(t, err)
	b, err := r.RenderTree(view.RenderBrief())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSVGIconsCarryPathData(t *testing.T) {
	target, err := glyph.Builtin().Resolve("target")
	require.NoError(t, err)

	out, err := New().RenderTree(view.RenderBrief())
	require.NoError(t, err)
	require.Contains(t, string(out), `<path d="`)
	require.Contains(t, string(out), `<path d="`+target.Path+`"`)

	for _, svg := range findAll(parse(t, out), atom.Svg) {
		path := svg.FirstChild
		require.NotNil(t, path)
		require.Equal(t, "path", path.Data)
		require.Equal(t, "d", path.Attr[0].Key)
		require.NotEmpty(t, path.Attr[0].Val)
	}
}
