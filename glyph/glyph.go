// Package glyph is the icon lookup service. Icons are addressed by name and
// resolved through an injected Resolver, never through global state.
package glyph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned (wrapped) when a name has no glyph.
var ErrNotFound = errors.New("glyph not found")

// ViewBox is the side length of the square grid Path coordinates live on.
const ViewBox = 24.0

// Glyph is a drawable symbol. Path is SVG path data meant to be stroked on a
// ViewBox×ViewBox grid; Symbol is a single-character stand-in for text output.
type Glyph struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Resolver maps an icon name to a Glyph.
type Resolver interface {
	Resolve(name string) (Glyph, error)
}

// Func adapts a plain function to Resolver.
type Func func(name string) (Glyph, error)

func (f Func) Resolve(name string) (Glyph, error) { return f(name) }

// Set is a fixed, read-only collection of glyphs. It is safe for concurrent use.
type Set struct {
	glyphs map[string]Glyph
}

// NewSet indexes glyphs by name; a later glyph with the same name wins.
func NewSet(glyphs ...Glyph) *Set {
	s := &Set{glyphs: make(map[string]Glyph, len(glyphs))}
	for _, g := range glyphs {
		if g.Name == "" {
			continue
		}
		s.glyphs[g.Name] = g
	}
	return s
}

// Resolve implements Resolver.
func (s *Set) Resolve(name string) (Glyph, error) {
	if s != nil {
		if g, ok := s.glyphs[name]; ok {
			return g, nil
		}
	}
	return Glyph{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names returns the sorted glyph names.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.glyphs))
	for name := range s.glyphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Without returns a copy of s lacking the named glyphs.
func (s *Set) Without(names ...string) *Set {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Set{glyphs: make(map[string]Glyph, len(s.glyphs))}
	for name, g := range s.glyphs {
		if !drop[name] {
			out.glyphs[name] = g
		}
	}
	return out
}
