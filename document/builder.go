package document

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ConfigurationError reports an internally inconsistent model. It is a
// construction-time defect: a document that fails validation is never handed
// to a renderer.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "invalid document model: " + strings.Join(e.Problems(), "; ")
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Problems lists every individual validation failure in model order.
func (e *ConfigurationError) Problems() []string {
	errs := multierr.Errors(e.Err)
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// Builder assembles a Document section by section. Sections keep the order in
// which they were added.
type Builder struct {
	meta     Meta
	sections []Section
}

// NewBuilder starts a document with the given metadata.
func NewBuilder(meta Meta) *Builder {
	return &Builder{meta: meta}
}

// Add appends a fully specified section.
func (b *Builder) Add(s Section) *Builder {
	b.sections = append(b.sections, s.clone())
	return b
}

// Objective appends a paragraph section.
func (b *Builder) Objective(title, icon, accent, text string) *Builder {
	return b.Add(Section{Kind: KindObjective, Title: title, Icon: icon, Accent: accent, Text: text})
}

// Sources appends a data source grid.
func (b *Builder) Sources(title, icon, accent string, entries ...SourceEntry) *Builder {
	return b.Add(Section{Kind: KindSourceList, Title: title, Icon: icon, Accent: accent, Sources: entries})
}

// Challenges appends a challenge grid.
func (b *Builder) Challenges(title, icon, accent string, challenges ...Challenge) *Builder {
	return b.Add(Section{Kind: KindChallengeList, Title: title, Icon: icon, Accent: accent, Challenges: challenges})
}

// Workflow appends an ordered list of implementation steps.
func (b *Builder) Workflow(title, icon, accent string, steps ...WorkflowStep) *Builder {
	return b.Add(Section{Kind: KindWorkflowSteps, Title: title, Icon: icon, Accent: accent, Steps: steps})
}

// Metrics appends a metric card grid.
func (b *Builder) Metrics(title, icon, accent string, metrics ...Metric) *Builder {
	return b.Add(Section{Kind: KindMetricGrid, Title: title, Icon: icon, Accent: accent, Metrics: metrics})
}

// Deliverables appends a deliverable checklist.
func (b *Builder) Deliverables(title, icon, accent string, items ...Deliverable) *Builder {
	return b.Add(Section{Kind: KindDeliverableList, Title: title, Icon: icon, Accent: accent, Deliverables: items})
}

// Footer appends the closing banner. It must be the last section.
func (b *Builder) Footer(accent, text string) *Builder {
	return b.Add(Section{Kind: KindFooter, Title: "Footer", Accent: accent, Text: text})
}

// Build validates the collected sections and freezes them into a Document.
func (b *Builder) Build() (*Document, error) {
	if err := validate(b.meta, b.sections); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	doc := &Document{meta: b.meta, sections: make([]Section, len(b.sections))}
	doc.meta.Keywords = append([]string(nil), b.meta.Keywords...)
	for i, s := range b.sections {
		doc.sections[i] = s.clone()
	}
	return doc, nil
}

// MustBuild is Build for package-level documents; it panics on an invalid model.
func (b *Builder) MustBuild() *Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}

func validate(meta Meta, sections []Section) error {
	var errs error
	if strings.TrimSpace(meta.Title) == "" {
		errs = multierr.Append(errs, errors.New("document title is empty"))
	}
	if len(sections) == 0 {
		errs = multierr.Append(errs, errors.New("document has no sections"))
	}
	for i, s := range sections {
		where := fmt.Sprintf("section %d (%s)", i+1, s.Kind)
		errs = multierr.Append(errs, validateSection(where, s))
		if s.Kind == KindFooter && i != len(sections)-1 {
			errs = multierr.Append(errs, fmt.Errorf("%s: footer must be the last section", where))
		}
	}
	return errs
}

func validateSection(where string, s Section) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%s: unrecognized kind tag", where)
	}
	var errs error
	fail := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%s: %s", where, fmt.Sprintf(format, args...)))
	}
	if blank(s.Title) {
		fail("title is empty")
	}

	// only the payload of s.Kind may be set
	payloads := map[Kind]bool{
		KindSourceList:      len(s.Sources) > 0,
		KindChallengeList:   len(s.Challenges) > 0,
		KindWorkflowSteps:   len(s.Steps) > 0,
		KindMetricGrid:      len(s.Metrics) > 0,
		KindDeliverableList: len(s.Deliverables) > 0,
	}
	for _, k := range []Kind{KindSourceList, KindChallengeList, KindWorkflowSteps, KindMetricGrid, KindDeliverableList} {
		if k != s.Kind && payloads[k] {
			fail("carries %s content", k)
		}
	}
	if s.Kind != KindObjective && s.Kind != KindFooter && s.Text != "" {
		fail("carries paragraph text")
	}

	switch s.Kind {
	case KindObjective, KindFooter:
		if blank(s.Text) {
			fail("text is empty")
		}
	case KindSourceList:
		if len(s.Sources) == 0 {
			fail("source list is empty")
		}
		for i, src := range s.Sources {
			if blank(src.Name) {
				fail("source %d has no name", i+1)
			}
		}
	case KindChallengeList:
		if len(s.Challenges) == 0 {
			fail("challenge list is empty")
		}
		for i, ch := range s.Challenges {
			if blank(ch.Title) {
				fail("challenge %d has no title", i+1)
			}
			if len(ch.Bullets) == 0 {
				fail("challenge %d has no bullets", i+1)
			}
			for j, bullet := range ch.Bullets {
				if blank(bullet) {
					fail("challenge %d bullet %d is empty", i+1, j+1)
				}
			}
		}
	case KindWorkflowSteps:
		if len(s.Steps) == 0 {
			fail("workflow has no steps")
		}
		for i, st := range s.Steps {
			if blank(st.Title) {
				fail("step %d has no title", i+1)
			}
		}
	case KindMetricGrid:
		if len(s.Metrics) == 0 {
			fail("metric grid is empty")
		}
		for i, m := range s.Metrics {
			if blank(m.Label) {
				fail("metric %d has no label", i+1)
			}
			if blank(m.Value) {
				fail("metric %d has no target value", i+1)
			}
		}
	case KindDeliverableList:
		if len(s.Deliverables) == 0 {
			fail("deliverable list is empty")
		}
		for i, d := range s.Deliverables {
			if blank(d.Title) {
				fail("deliverable %d has no title", i+1)
			}
		}
	}
	return errs
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
