package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/brief/config"
	"github.com/ByLCY/brief/fonts"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func sampleBrief(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs("../dsl/testdata/phase1.brief")
	require.NoError(t, err)
	return path
}

func TestRenderWritesEachFormat(t *testing.T) {
	src := sampleBrief(t)
	dir := t.TempDir()
	t.Chdir(dir)

	for _, format := range []string{"html", "md", "pdf"} {
		out := filepath.Join(dir, "brief."+format)
		stdout, err := execute(t, "render", src, "--format", format, "--out", out)
		require.NoError(t, err, format)
		require.Contains(t, stdout, out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		require.NotEmpty(t, data)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "brief.pdf"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	md, err := os.ReadFile(filepath.Join(dir, "brief.md"))
	require.NoError(t, err)
	require.Contains(t, string(md), "Implementation Workflow")
}

func TestRenderBuiltinUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".brief.yml", []byte("output:\n  format: html\n  dir: site\n"), 0o644))

	_, err := execute(t, "render", "--format", "", "--out", "")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "site", "phase1.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Phase 1: Data Aggregation &amp; Cleaning Strategy")
}

func TestCheckListsProblems(t *testing.T) {
	src := sampleBrief(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.brief")
	require.NoError(t, os.WriteFile(bad, []byte(`brief Bad v1 {
  meta { title: "" }
  gallery "x" { "y" }
}`), 0o644))
	t.Chdir(dir)

	out, err := execute(t, "check", src, bad)
	require.Error(t, err)
	require.Contains(t, out, "phase1.brief")
	require.Contains(t, out, `unknown section "gallery"`)
}

func TestTreeOutline(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "tree")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.True(t, strings.HasPrefix(lines[0], "container"), lines[0])
	require.Contains(t, out, "Success Metrics")
}

func TestTreeLayoutJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "tree", "--layout")
	require.NoError(t, err)
	require.Contains(t, out, `"pages"`)
}

func TestRenderDebugOnlyForPDF(t *testing.T) {
	src := sampleBrief(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { renderDebug = "" })

	debug := filepath.Join(dir, "layout.json")
	_, err := execute(t, "render", src, "--format", "html", "--out", filepath.Join(dir, "brief.html"), "--debug", debug)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--debug")
	require.NoFileExists(t, debug)
	require.NoFileExists(t, filepath.Join(dir, "brief.html"))

	_, err = execute(t, "render", src, "--format", "pdf", "--out", filepath.Join(dir, "brief.pdf"), "--debug", debug)
	require.NoError(t, err)
	data, err := os.ReadFile(debug)
	require.NoError(t, err)
	require.Contains(t, string(data), `"pages"`)
}

func TestRenderLoadsConfiguredFontFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { renderDebug = "" })

	mono, err := fonts.Load("embed:go-mono")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("mono.ttf", mono, 0o644))
	require.NoError(t, os.WriteFile(".brief.yml", []byte(`
theme:
  font_files:
    mono: mono.ttf
  fonts:
    Mono: built-in:mono
`), 0o644))

	_, err = execute(t, "render", "--format", "pdf", "--out", "brief.pdf", "--debug", "layout.json")
	require.NoError(t, err)
	data, err := os.ReadFile("layout.json")
	require.NoError(t, err)
	require.Contains(t, string(data), `"src": "built-in:mono"`)

	p := &pipeline{cfg: &config.Config{Theme: config.ThemeConfig{FontFiles: map[string]string{"mono": "mono.ttf"}}}}
	res := p.fontResources()
	require.Len(t, res, 1)
	require.Equal(t, "mono.ttf", res["mono"].Path)
}
