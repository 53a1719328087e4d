package view

import (
	"go.uber.org/zap"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/glyph"
)

// Renderer is the layout function from a document model to a display tree.
// It holds no mutable state, so one Renderer may serve concurrent calls.
type Renderer struct {
	glyphs glyph.Resolver
	logger *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGlyphs injects the icon lookup service.
func WithGlyphs(r glyph.Resolver) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.glyphs = r
		}
	}
}

// WithLogger sets the logger used for glyph resolution misses.
func WithLogger(l *zap.Logger) Option {
	return func(rd *Renderer) {
		if l != nil {
			rd.logger = l
		}
	}
}

// New returns a Renderer using the builtin glyph set unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		glyphs: glyph.Builtin(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBrief renders the compiled-in strategy brief with default settings.
func RenderBrief() *Node {
	return New().Render(document.StrategyBrief)
}

// Render produces the display tree: a header block followed by one node per
// section, in model order. The result shares nothing with doc.
func (r *Renderer) Render(doc *document.Document) *Node {
	meta := doc.Meta()
	root := &Node{
		Kind:  KindContainer,
		Role:  RoleDocument,
		Style: Style{Spacing: SpacingLarge},
	}
	root.Children = append(root.Children, r.header(meta))
	for _, s := range doc.Sections() {
		root.Children = append(root.Children, r.section(s))
	}
	return root
}

func (r *Renderer) header(meta document.Meta) *Node {
	h := &Node{
		Kind:  KindContainer,
		Role:  RoleHeader,
		Style: Style{Align: "center", Spacing: SpacingSmall},
		Children: []*Node{
			{Kind: KindText, Role: RoleTitle, Text: meta.Title, Style: Style{Align: "center"}},
		},
	}
	if meta.Subtitle != "" {
		h.Children = append(h.Children, &Node{Kind: KindText, Role: RoleCaption, Text: meta.Subtitle, Style: Style{Align: "center"}})
	}
	h.Children = append(h.Children, &Node{Kind: KindContainer, Role: RoleRule, Style: Style{Accent: "blue", Align: "center"}})
	return h
}

func (r *Renderer) section(s document.Section) *Node {
	if s.Kind == document.KindFooter {
		return &Node{
			Kind:  KindContainer,
			Role:  RoleBanner,
			Style: Style{Accent: s.Accent, Surface: SurfaceBanner, Align: "center"},
			Children: []*Node{
				{Kind: KindText, Role: RoleBannerText, Text: s.Text, Glyph: r.glyph(s.Icon, s.Title), Style: Style{Align: "center"}},
			},
		}
	}

	n := &Node{
		Kind:  KindContainer,
		Role:  RoleSection,
		Style: Style{Accent: s.Accent, Spacing: SpacingMedium},
		Children: []*Node{
			{Kind: KindText, Role: RoleHeading, Text: s.Title, Glyph: r.glyph(s.Icon, s.Title), Style: Style{Accent: s.Accent}},
		},
	}

	switch s.Kind {
	case document.KindObjective:
		n.Style.Surface = SurfaceTint
		n.Style.Border = BorderLeft
		n.Children = append(n.Children, &Node{Kind: KindText, Role: RoleParagraph, Text: s.Text})
	case document.KindSourceList:
		n.Children = append(n.Children, r.sources(s))
	case document.KindChallengeList:
		n.Children = append(n.Children, r.challenges(s))
	case document.KindWorkflowSteps:
		n.Children = append(n.Children, r.workflow(s))
	case document.KindMetricGrid:
		n.Children = append(n.Children, r.metrics(s))
	case document.KindDeliverableList:
		n.Children = append(n.Children, r.deliverables(s))
	}
	return n
}

func (r *Renderer) sources(s document.Section) *Node {
	grid := &Node{Kind: KindGrid, Style: Style{Columns: 3, Spacing: SpacingMedium}}
	for _, src := range s.Sources {
		card := &Node{
			Kind:  KindListItem,
			Role:  RoleCard,
			Style: Style{Accent: "gray", Surface: SurfaceMuted, Border: BorderBox, Spacing: SpacingSmall},
			Children: []*Node{
				{Kind: KindText, Role: RoleCardTitle, Text: src.Name},
				{Kind: KindText, Role: RoleField, Label: "Format", Text: src.Format},
				{Kind: KindText, Role: RoleField, Label: "Volume", Text: src.Volume},
				{Kind: KindText, Role: RoleBody, Text: src.Description},
			},
		}
		grid.Children = append(grid.Children, card)
	}
	return grid
}

func (r *Renderer) challenges(s document.Section) *Node {
	grid := &Node{Kind: KindGrid, Style: Style{Columns: 2, Spacing: SpacingLarge}}
	for _, ch := range s.Challenges {
		accent := ch.Accent
		if accent == "" {
			accent = s.Accent
		}
		card := &Node{
			Kind:  KindListItem,
			Role:  RoleCard,
			Style: Style{Accent: accent, Surface: SurfaceTint, Border: BorderLeft, Spacing: SpacingSmall},
			Children: []*Node{
				{Kind: KindText, Role: RoleCardTitle, Text: ch.Title},
			},
		}
		for _, b := range ch.Bullets {
			card.Children = append(card.Children, &Node{Kind: KindListItem, Role: RoleBullet, Text: b})
		}
		grid.Children = append(grid.Children, card)
	}
	return grid
}

func (r *Renderer) workflow(s document.Section) *Node {
	steps := &Node{Kind: KindContainer, Role: RoleSteps, Style: Style{Spacing: SpacingLarge}}
	for _, st := range s.Steps {
		accent := st.Accent
		if accent == "" {
			accent = s.Accent
		}
		steps.Children = append(steps.Children, &Node{
			Kind:  KindContainer,
			Role:  RoleStep,
			Style: Style{Accent: accent, Border: BorderLeft, Spacing: SpacingSmall},
			Children: []*Node{
				{Kind: KindText, Role: RoleStepTitle, Text: st.Title, Glyph: r.glyph(st.Icon, s.Title+" / "+st.Title), Style: Style{Accent: accent}},
				{Kind: KindCode, Role: RoleCode, Text: st.Code, Style: Style{Surface: SurfaceMuted}},
			},
		})
	}
	return steps
}

func (r *Renderer) metrics(s document.Section) *Node {
	grid := &Node{Kind: KindGrid, Style: Style{Columns: 3, Spacing: SpacingMedium}}
	for _, m := range s.Metrics {
		accent := m.Accent
		if accent == "" {
			accent = s.Accent
		}
		center := Style{Accent: accent, Align: "center"}
		grid.Children = append(grid.Children, &Node{
			Kind:  KindListItem,
			Role:  RoleMetric,
			Style: Style{Accent: accent, Surface: SurfaceTint, Border: BorderBox, Align: "center", Spacing: SpacingSmall},
			Children: []*Node{
				{Kind: KindText, Role: RoleMetricLabel, Text: m.Label, Glyph: r.glyph(m.Icon, s.Title+" / "+m.Label), Style: center},
				{Kind: KindText, Role: RoleMetricValue, Text: m.Value, Style: center},
				{Kind: KindText, Role: RoleCaption, Text: m.Caption, Style: center},
			},
		})
	}
	return grid
}

func (r *Renderer) deliverables(s document.Section) *Node {
	grid := &Node{Kind: KindGrid, Style: Style{Columns: 2, Spacing: SpacingMedium}}
	for _, d := range s.Deliverables {
		icon, accent := "circle", "gray"
		if d.Done {
			icon, accent = "check-circle", "green"
		}
		grid.Children = append(grid.Children, &Node{
			Kind:  KindListItem,
			Role:  RoleDeliverable,
			Style: Style{Accent: accent, Surface: SurfaceTint, Border: BorderLeft, Spacing: SpacingSmall},
			Children: []*Node{
				{Kind: KindText, Role: RoleCardTitle, Text: d.Title, Glyph: r.glyph(icon, s.Title+" / "+d.Title), Style: Style{Accent: accent}},
				{Kind: KindText, Role: RoleCaption, Text: d.Description},
			},
		})
	}
	return grid
}

// glyph resolves name for the element described by where. A miss is logged
// and yields nil; the caller renders the element without an icon.
func (r *Renderer) glyph(name, where string) *glyph.Glyph {
	if name == "" {
		return nil
	}
	g, err := r.glyphs.Resolve(name)
	if err != nil {
		r.logger.Warn("glyph resolution miss",
			zap.String("glyph", name),
			zap.String("element", where),
			zap.Error(err))
		return nil
	}
	return &g
}
