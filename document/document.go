// Package document defines the immutable model of a strategy brief: an ordered
// list of typed sections with literal content and presentation hints.
package document

import (
	"fmt"
	"strings"
)

// Kind tags the content type of a Section.
type Kind int

const (
	KindUnknown Kind = iota
	KindObjective
	KindSourceList
	KindChallengeList
	KindWorkflowSteps
	KindMetricGrid
	KindDeliverableList
	KindFooter
)

var kindNames = map[Kind]string{
	KindObjective:       "objective",
	KindSourceList:      "sources",
	KindChallengeList:   "challenges",
	KindWorkflowSteps:   "workflow",
	KindMetricGrid:      "metrics",
	KindDeliverableList: "deliverables",
	KindFooter:          "footer",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the known section kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a tag such as "metrics" back to its Kind.
func ParseKind(tag string) (Kind, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for k, name := range kindNames {
		if name == tag {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown section kind %q", tag)
}

// Meta describes the document as a whole. Title is shown in the header block.
type Meta struct {
	Title    string
	Subtitle string
	Author   string
	Subject  string
	Keywords []string
}

// Section is one titled block of the brief. Only the payload that belongs to
// Kind is populated: Text for objective and footer sections, the matching
// slice for every list kind.
type Section struct {
	Kind   Kind
	Title  string
	Icon   string
	Accent string

	Text         string
	Sources      []SourceEntry
	Challenges   []Challenge
	Steps        []WorkflowStep
	Metrics      []Metric
	Deliverables []Deliverable
}

// SourceEntry describes one input data source.
type SourceEntry struct {
	Name        string
	Format      string
	Volume      string
	Description string
}

// Challenge groups short bullets under a category. Accent separates severity
// classes, e.g. red for quality issues and orange for technical constraints.
type Challenge struct {
	Title   string
	Bullets []string
	Accent  string
}

// WorkflowStep is an ordered implementation step. Code is opaque text shown
// monospaced exactly as stored.
type WorkflowStep struct {
	Title  string
	Icon   string
	Accent string
	Code   string
}

// Metric is a success criterion. Value is a pre-formatted literal like ">95%".
type Metric struct {
	Label   string
	Value   string
	Caption string
	Icon    string
	Accent  string
}

// Deliverable is one output of the plan.
type Deliverable struct {
	Title       string
	Description string
	Done        bool
}

// Document is the validated, read-only brief. Construct it with a Builder.
type Document struct {
	meta     Meta
	sections []Section
}

// Meta returns a copy of the document metadata.
func (d *Document) Meta() Meta {
	m := d.meta
	m.Keywords = append([]string(nil), d.meta.Keywords...)
	return m
}

// Sections returns a deep copy of the sections in display order.
func (d *Document) Sections() []Section {
	out := make([]Section, len(d.sections))
	for i, s := range d.sections {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.sections) }

func (s Section) clone() Section {
	c := s
	c.Sources = append([]SourceEntry(nil), s.Sources...)
	c.Steps = append([]WorkflowStep(nil), s.Steps...)
	c.Metrics = append([]Metric(nil), s.Metrics...)
	c.Deliverables = append([]Deliverable(nil), s.Deliverables...)
	if s.Challenges != nil {
		c.Challenges = make([]Challenge, len(s.Challenges))
		for i, ch := range s.Challenges {
			ch.Bullets = append([]string(nil), ch.Bullets...)
			c.Challenges[i] = ch
		}
	}
	return c
}
