package dsl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/multierr"

	"github.com/ByLCY/brief/document"
)

// SupportedVersions is the constraint a file's version header must satisfy.
const SupportedVersions = "^1"

// Load parses and decodes a .brief file from r.
func Load(filename string, r io.Reader) (*document.Document, error) {
	f, err := Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return Decode(f)
}

// LoadFile reads path and decodes it.
func LoadFile(path string) (*document.Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(path, fh)
}

// Decode turns a parsed file into a validated document model. Structural
// problems (unknown commands or keys, misplaced content) and model
// validation failures are both reported as *document.ConfigurationError.
func Decode(f *File) (*document.Document, error) {
	if err := checkVersion(f); err != nil {
		return nil, err
	}
	d := &decoder{}
	meta := document.Meta{}
	var metaPos *lexer.Position
	var sections []document.Section
	for _, st := range f.Body.Statements {
		cmd := st.Command
		if cmd == nil {
			d.fail(statementPos(st), "only commands are allowed at the top level")
			continue
		}
		if cmd.Name == "meta" {
			if metaPos != nil {
				d.fail(cmd.Pos, "duplicate meta block (first at %s)", metaPos)
				continue
			}
			metaPos = &cmd.Pos
			meta = d.meta(cmd)
			continue
		}
		if s, ok := d.section(cmd); ok {
			sections = append(sections, s)
		}
	}
	if d.errs != nil {
		return nil, &document.ConfigurationError{Err: d.errs}
	}

	b := document.NewBuilder(meta)
	for _, s := range sections {
		b.Add(s)
	}
	return b.Build()
}

func checkVersion(f *File) error {
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return fmt.Errorf("%s: invalid version %q: %w", f.Pos, f.Version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%s: brief version %s does not satisfy %s", f.Pos, v, SupportedVersions)
	}
	return nil
}

type decoder struct {
	errs error
}

func (d *decoder) fail(pos lexer.Position, format string, args ...any) {
	d.errs = multierr.Append(d.errs, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

func statementPos(st *Statement) lexer.Position {
	switch {
	case st.Assignment != nil:
		return st.Assignment.Pos
	case st.Command != nil:
		return st.Command.Pos
	case st.Text != nil:
		return st.Text.Pos
	}
	return lexer.Position{}
}

// args holds a command's inline arguments: an optional quoted title,
// `key value` pairs and bare flags.
type args struct {
	title  string
	values map[string]string
	flags  map[string]bool
}

// parseArgs accepts the keys in valueKeys (followed by a value) and flagKeys.
func (d *decoder) parseArgs(cmd *Command, valueKeys, flagKeys []string) args {
	a := args{values: map[string]string{}, flags: map[string]bool{}}
	for i := 0; i < len(cmd.Args); i++ {
		lx := cmd.Args[i]
		switch {
		case lx.Type == "String" && i == 0:
			a.title = lx.Value
		case lx.Type == "Ident" && contains(valueKeys, lx.Value):
			if i+1 >= len(cmd.Args) {
				d.fail(lx.Pos, "%s: %q needs a value", cmd.Name, lx.Value)
				continue
			}
			i++
			a.values[lx.Value] = cmd.Args[i].Value
		case lx.Type == "Ident" && contains(flagKeys, lx.Value):
			a.flags[lx.Value] = true
		default:
			d.fail(lx.Pos, "%s: unexpected argument %s", cmd.Name, lx.Raw)
		}
	}
	return a
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var styleKeys = []string{"icon", "accent"}

func (d *decoder) meta(cmd *Command) document.Meta {
	var m document.Meta
	d.parseArgs(cmd, nil, nil)
	d.assignments(cmd, map[string]func(*Assignment){
		"title":    d.str(&m.Title),
		"subtitle": d.str(&m.Subtitle),
		"author":   d.str(&m.Author),
		"subject":  d.str(&m.Subject),
		"keywords": d.list(&m.Keywords),
	})
	return m
}

// assignments dispatches each `key: value` in the command body to its handler.
// Commands and text literals are rejected.
func (d *decoder) assignments(cmd *Command, handlers map[string]func(*Assignment)) {
	for _, st := range body(cmd) {
		a := st.Assignment
		if a == nil {
			d.fail(statementPos(st), "%s: expected key: value", cmd.Name)
			continue
		}
		h, ok := handlers[a.Key]
		if !ok {
			d.fail(a.Pos, "%s: unknown key %q", cmd.Name, a.Key)
			continue
		}
		h(a)
	}
}

func body(cmd *Command) []*Statement {
	if cmd.Block == nil {
		return nil
	}
	return cmd.Block.Statements
}

func (d *decoder) str(dst *string) func(*Assignment) {
	return func(a *Assignment) {
		s, ok := scalar(a.Value)
		if !ok {
			d.fail(a.Pos, "%s must be a single value", a.Key)
			return
		}
		*dst = s
	}
}

func (d *decoder) list(dst *[]string) func(*Assignment) {
	return func(a *Assignment) {
		if s, ok := scalar(a.Value); ok {
			*dst = append(*dst, s)
			return
		}
		for _, v := range a.Value.Array.Values {
			s, ok := scalar(v)
			if !ok {
				d.fail(a.Pos, "%s: nested lists are not allowed", a.Key)
				continue
			}
			*dst = append(*dst, s)
		}
	}
}

func scalar(v *Value) (string, bool) {
	switch {
	case v.String != nil:
		return string(*v.String), true
	case v.Number != nil:
		return *v.Number, true
	case v.Ident != nil:
		return *v.Ident, true
	}
	return "", false
}

// texts collects the text literals of a body; joiner concatenates them.
func (d *decoder) texts(cmd *Command, joiner string) string {
	var parts []string
	for _, st := range body(cmd) {
		if st.Text == nil {
			d.fail(statementPos(st), "%s: expected a string literal", cmd.Name)
			continue
		}
		parts = append(parts, string(st.Text.Value))
	}
	return strings.Join(parts, joiner)
}

// children decodes each nested command named want; anything else is an error.
func (d *decoder) children(cmd *Command, want string, fn func(*Command)) {
	for _, st := range body(cmd) {
		if st.Command == nil || st.Command.Name != want {
			d.fail(statementPos(st), "%s: expected %s entries", cmd.Name, want)
			continue
		}
		fn(st.Command)
	}
}

var sectionKinds = map[string]document.Kind{
	"objective":    document.KindObjective,
	"sources":      document.KindSourceList,
	"challenges":   document.KindChallengeList,
	"workflow":     document.KindWorkflowSteps,
	"metrics":      document.KindMetricGrid,
	"deliverables": document.KindDeliverableList,
	"footer":       document.KindFooter,
}

func (d *decoder) section(cmd *Command) (document.Section, bool) {
	kind, ok := sectionKinds[cmd.Name]
	if !ok {
		d.fail(cmd.Pos, "unknown section %q", cmd.Name)
		return document.Section{}, false
	}
	a := d.parseArgs(cmd, styleKeys, nil)
	s := document.Section{
		Kind:   kind,
		Title:  a.title,
		Icon:   a.values["icon"],
		Accent: a.values["accent"],
	}

	switch kind {
	case document.KindObjective:
		s.Text = d.texts(cmd, " ")
	case document.KindFooter:
		if s.Title == "" {
			s.Title = "Footer"
		}
		s.Text = d.texts(cmd, " ")
	case document.KindSourceList:
		d.children(cmd, "source", func(c *Command) {
			e := document.SourceEntry{Name: d.parseArgs(c, nil, nil).title}
			d.assignments(c, map[string]func(*Assignment){
				"format":      d.str(&e.Format),
				"volume":      d.str(&e.Volume),
				"description": d.str(&e.Description),
			})
			s.Sources = append(s.Sources, e)
		})
	case document.KindChallengeList:
		d.children(cmd, "challenge", func(c *Command) {
			ca := d.parseArgs(c, []string{"accent"}, nil)
			s.Challenges = append(s.Challenges, document.Challenge{
				Title:   ca.title,
				Accent:  ca.values["accent"],
				Bullets: d.bullets(c),
			})
		})
	case document.KindWorkflowSteps:
		d.children(cmd, "step", func(c *Command) {
			sa := d.parseArgs(c, styleKeys, nil)
			s.Steps = append(s.Steps, document.WorkflowStep{
				Title:  sa.title,
				Icon:   sa.values["icon"],
				Accent: sa.values["accent"],
				Code:   d.texts(c, "\n"),
			})
		})
	case document.KindMetricGrid:
		d.children(cmd, "metric", func(c *Command) {
			ma := d.parseArgs(c, styleKeys, nil)
			m := document.Metric{Label: ma.title, Icon: ma.values["icon"], Accent: ma.values["accent"]}
			d.assignments(c, map[string]func(*Assignment){
				"value":   d.str(&m.Value),
				"caption": d.str(&m.Caption),
			})
			s.Metrics = append(s.Metrics, m)
		})
	case document.KindDeliverableList:
		d.children(cmd, "deliverable", func(c *Command) {
			da := d.parseArgs(c, nil, []string{"done"})
			s.Deliverables = append(s.Deliverables, document.Deliverable{
				Title:       da.title,
				Description: d.texts(c, " "),
				Done:        da.flags["done"],
			})
		})
	}
	return s, true
}

// bullets reads one string literal per bullet.
func (d *decoder) bullets(cmd *Command) []string {
	var out []string
	for _, st := range body(cmd) {
		if st.Text == nil {
			d.fail(statementPos(st), "%s: expected a string literal", cmd.Name)
			continue
		}
		out = append(out, string(st.Text.Value))
	}
	return out
}
