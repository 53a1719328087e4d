package markdownrenderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/view"
)

func TestMarkdownCarriesEverySection(t *testing.T) {
	out, err := New(nil).RenderTree(view.RenderBrief())
	require.NoError(t, err)
	md := string(out)

	require.Contains(t, md, "# Phase 1: Data Aggregation & Cleaning Strategy")
	for _, s := range document.StrategyBrief.Sections() {
		if s.Kind == document.KindFooter {
			require.Contains(t, md, "Ready for Phase 2")
			continue
		}
		require.Contains(t, md, "## ", "section %q", s.Title)
		require.Contains(t, md, s.Title)
	}
	require.Contains(t, md, "**Format:**")
	require.NotContains(t, md, "<svg")
}

func TestMarkdownFencesCode(t *testing.T) {
	out, err := New(nil).RenderTree(view.RenderBrief())
	require.NoError(t, err)
	md := string(out)

	require.GreaterOrEqual(t, strings.Count(md, "```"), 6)
	require.Contains(t, md, "FROM customers WHERE Status = 'Active';")
	require.Contains(t, md, "                 .merge(support_data, on=\"Customer_ID\", how=\"left\")")
}

func TestTerminalRendersPlainStyle(t *testing.T) {
	out, err := NewTerminal(nil, 80, "notty").RenderTree(view.RenderBrief())
	require.NoError(t, err)
	require.Contains(t, string(out), "Data Sources Overview")
}

func TestNilTree(t *testing.T) {
	_, err := New(nil).RenderTree(nil)
	require.Error(t, err)
}

func TestMarkdownKeepsLiteralsAsWritten(t *testing.T) {
	out, err := New(nil).RenderTree(view.RenderBrief())
	require.NoError(t, err)
	md := string(out)

	for _, lit := range []string{">95%", "<30 min", "<8GB", "Extract & Load"} {
		require.Contains(t, md, lit)
	}
	require.NotContains(t, md, "&amp;")
	require.NotContains(t, md, "&gt;")
	require.NotContains(t, md, "&lt;")
}

func TestDecodeEntitiesGuardsMarkup(t *testing.T) {
	cases := map[string]string{
		"&lt;30 min":       "<30 min",
		"a &amp; b":        "a & b",
		"&lt;b&gt;":        "&lt;b\a>",
		"&amp;copy; x":     "&amp;copy; x",
		"&amp;#169;":       "&amp;#169;",
		"&lt;/p":           "&lt;/p",
		"plain":            "plain",
		"&amp;&amp;":       "&&",
		"x &gt; y":         "x \a> y",
		"trailing &amp;":   "trailing &",
		"&amp;nosemicolon": "&nosemicolon",
	}
	for in, want := range cases {
		require.Equal(t, want, decodeEntities(nil, in), in)
	}
}
