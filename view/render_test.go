package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/glyph"
)

func TestRenderIsDeterministic(t *testing.T) {
	first := RenderBrief()
	second := RenderBrief()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-render changed the tree (-first +second):\n%s", diff)
	}
}

func TestRenderKeepsSectionOrder(t *testing.T) {
	root := RenderBrief()
	sections := document.StrategyBrief.Sections()

	require.Equal(t, RoleDocument, root.Role)
	require.Len(t, root.Children, len(sections)+1)
	require.Equal(t, RoleHeader, root.Children[0].Role)
	require.Equal(t, "Phase 1: Data Aggregation & Cleaning Strategy", root.Children[0].Children[0].Text)

	rendered := root.Sections()
	require.Len(t, rendered, len(sections))
	for i, s := range sections {
		if s.Kind == document.KindFooter {
			require.Equal(t, RoleBanner, rendered[i].Role)
			require.Equal(t, s.Text, rendered[i].Children[0].Text)
			continue
		}
		require.Equal(t, s.Title, rendered[i].Children[0].Text, "section %d", i)
	}
}

func TestSourceCardsShowLiteralFields(t *testing.T) {
	root := RenderBrief()
	cards := FindAll(root.Sections()[1], RoleCard)
	sources := document.StrategyBrief.Sections()[1].Sources
	require.Len(t, cards, len(sources))

	for i, src := range sources {
		c := cards[i].Children
		require.Len(t, c, 4)
		require.Equal(t, src.Name, c[0].Text)
		require.Equal(t, "Format", c[1].Label)
		require.Equal(t, src.Format, c[1].Text)
		require.Equal(t, "Volume", c[2].Label)
		require.Equal(t, src.Volume, c[2].Text)
		require.Equal(t, src.Description, c[3].Text)
	}
}

func TestWorkflowCodeIsVerbatim(t *testing.T) {
	root := RenderBrief()
	steps := document.StrategyBrief.Sections()[3].Steps
	codes := FindAll(root, RoleCode)
	require.Len(t, codes, len(steps))
	for i, st := range steps {
		require.Equal(t, KindCode, codes[i].Kind)
		require.Equal(t, []byte(st.Code), []byte(codes[i].Text))
	}
}

func TestMissingGlyphOnlyDropsIcon(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := New(
		WithGlyphs(glyph.Builtin().Without("database")),
		WithLogger(zap.New(core)),
	)
	full := New().Render(document.StrategyBrief)
	partial := r.Render(document.StrategyBrief)

	sources := partial.Sections()[1]
	require.Nil(t, sources.Children[0].Glyph)
	require.Equal(t, "Data Sources Overview", sources.Children[0].Text)

	// 除缺失的图标外，其余内容必须完全一致
	full.Sections()[1].Children[0].Glyph = nil
	if diff := cmp.Diff(full, partial); diff != "" {
		t.Fatalf("unexpected difference beyond the missing glyph:\n%s", diff)
	}

	entries := logs.FilterMessage("glyph resolution miss").All()
	require.Len(t, entries, 1)
	require.Equal(t, "database", entries[0].ContextMap()["glyph"])
}

func TestFailingResolverNeverAbortsRender(t *testing.T) {
	broken := glyph.Func(func(string) (glyph.Glyph, error) { return glyph.Glyph{}, errors.New("icon service down") })
	root := New(WithGlyphs(broken)).Render(document.StrategyBrief)

	Walk(root, func(n *Node) bool {
		require.Nil(t, n.Glyph)
		return true
	})
	require.Len(t, root.Sections(), document.StrategyBrief.Len())
	require.Len(t, FindAll(root, RoleMetricValue), 3)
}

func TestObjectiveAndMetricScenario(t *testing.T) {
	doc := document.NewBuilder(document.Meta{Title: "Churn"}).
		Objective("Objective", "target", "blue", "Integrate churn data").
		Metrics("Success Metrics", "bar-chart-3", "indigo",
			document.Metric{Label: "Data Completeness", Value: ">95%"},
			document.Metric{Label: "Processing Time", Value: "<30 min"},
		).
		MustBuild()

	sections := New().Render(doc).Sections()
	require.Len(t, sections, 2)

	objective := sections[0]
	require.Equal(t, RoleSection, objective.Role)
	require.Equal(t, "Integrate churn data", objective.Children[1].Text)

	grid := sections[1].Children[1]
	require.Equal(t, KindGrid, grid.Kind)
	require.Len(t, grid.Children, 2)
	require.Equal(t, ">95%", grid.Children[0].Children[1].Text)
	require.Equal(t, "<30 min", grid.Children[1].Children[1].Text)
}

func TestDeliverableCompletionGlyph(t *testing.T) {
	doc := document.NewBuilder(document.Meta{Title: "t"}).
		Deliverables("Deliverables", "package", "teal",
			document.Deliverable{Title: "Dataset", Done: true},
			document.Deliverable{Title: "Report"},
		).
		MustBuild()
	items := FindAll(New().Render(doc), RoleDeliverable)
	require.Len(t, items, 2)
	require.Equal(t, "check-circle", items[0].Children[0].Glyph.Name)
	require.Equal(t, "circle", items[1].Children[0].Glyph.Name)
	require.Equal(t, "gray", items[1].Style.Accent)
}

func TestConcurrentRendersAgree(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := New()
	want := r.Render(document.StrategyBrief)
	results := make([]*Node, 16)

	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			results[i] = r.Render(document.StrategyBrief)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("render %d differs:\n%s", i, diff)
		}
	}
}
