package glyph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinResolvesBriefIcons(t *testing.T) {
	set := Builtin()
	for _, name := range []string{
		"target", "database", "alert-triangle", "settings", "download", "refresh-cw",
		"shield", "bar-chart-3", "check-circle", "clock", "hard-drive", "package", "circle",
	} {
		g, err := set.Resolve(name)
		require.NoError(t, err, name)
		require.Equal(t, name, g.Name)
		require.NotEmpty(t, g.Path)
		require.NotEmpty(t, g.Symbol)
	}
}

func TestResolveMissWrapsErrNotFound(t *testing.T) {
	_, err := Builtin().Resolve("sparkles")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), `"sparkles"`)

	var nilSet *Set
	_, err = nilSet.Resolve("target")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWithoutLeavesOriginalIntact(t *testing.T) {
	set := Builtin()
	reduced := set.Without("target")

	_, err := reduced.Resolve("target")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = set.Resolve("target")
	require.NoError(t, err)
	require.Len(t, reduced.Names(), len(set.Names())-1)
}

func TestFuncAdapter(t *testing.T) {
	var r Resolver = Func(func(name string) (Glyph, error) {
		return Glyph{Name: name, Symbol: "*"}, nil
	})
	g, err := r.Resolve("anything")
	require.NoError(t, err)
	require.Equal(t, "anything", g.Name)
}
