// Package config loads CLI defaults and theme overrides from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/brief/layout"
)

const defaultConfigFile = ".brief.yml"

// Output formats understood by the render command.
const (
	FormatPDF      = "pdf"
	FormatHTML     = "html"
	FormatMarkdown = "md"
)

// Config is the top-level configuration.
type Config struct {
	Output OutputConfig `yaml:"output" toml:"output"`
	Theme  ThemeConfig  `yaml:"theme" toml:"theme"`
}

// OutputConfig holds render and show defaults.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
	Dir    string `yaml:"dir" toml:"dir"`
	// Width wraps terminal output; 0 leaves glamour's default.
	Width int `yaml:"width" toml:"width"`
	// Style is a glamour standard style name; empty detects from the terminal.
	Style string `yaml:"style" toml:"style"`
}

// ThemeConfig overrides parts of layout.DefaultTheme. Colors are #hex strings.
type ThemeConfig struct {
	PageSize string            `yaml:"page_size" toml:"page_size"`
	Margin   string            `yaml:"margin" toml:"margin"`
	Fonts    map[string]string `yaml:"fonts" toml:"fonts"`
	// FontFiles registers font files under a name that Fonts can
	// reference as built-in:<name>.
	FontFiles map[string]string       `yaml:"font_files" toml:"font_files"`
	Colors    map[string]string       `yaml:"colors" toml:"colors"`
	Palette   map[string]SwatchConfig `yaml:"palette" toml:"palette"`
}

// SwatchConfig overrides one accent; empty fields keep the current value.
type SwatchConfig struct {
	Accent string `yaml:"accent" toml:"accent"`
	Tint   string `yaml:"tint" toml:"tint"`
	Border string `yaml:"border" toml:"border"`
}

// Load reads configuration from path. The format follows the extension:
// .toml is TOML, anything else YAML. If path is empty the default file is
// tried, and its absence yields defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data of the given extension on top of the defaults.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Defaults()
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatPDF, Dir: "."},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs error
	switch c.Output.Format {
	case FormatPDF, FormatHTML, FormatMarkdown:
	default:
		errs = multierr.Append(errs, fmt.Errorf("output.format: unsupported %q (want pdf, html or md)", c.Output.Format))
	}
	if c.Output.Width < 0 {
		errs = multierr.Append(errs, fmt.Errorf("output.width: must not be negative"))
	}
	for _, name := range sortedKeys(c.Theme.FontFiles) {
		if strings.TrimSpace(c.Theme.FontFiles[name]) == "" {
			errs = multierr.Append(errs, fmt.Errorf("theme.font_files.%s: empty path", name))
		}
	}
	for _, name := range sortedKeys(c.Theme.Fonts) {
		ref, ok := strings.CutPrefix(c.Theme.Fonts[name], "built-in:")
		if !ok {
			continue
		}
		if _, ok := c.Theme.FontFiles[ref]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("theme.fonts.%s: built-in:%s is not declared in theme.font_files", name, ref))
		}
	}
	if _, err := c.BuildTheme(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// BuildTheme applies the overrides to a fresh default theme and validates it.
func (c *Config) BuildTheme() (*layout.Theme, error) {
	t := layout.DefaultTheme()
	tc := c.Theme
	var errs error

	if tc.PageSize != "" {
		t.PageSize = tc.PageSize
	}
	if tc.Margin != "" {
		t.Margin = tc.Margin
	}
	for name, src := range tc.Fonts {
		t.Fonts[name] = src
	}
	for _, name := range sortedKeys(tc.Colors) {
		col, err := layout.ParseColor(tc.Colors[name])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("theme.colors.%s: %w", name, err))
			continue
		}
		t.Colors[name] = col
	}
	for _, name := range sortedKeys(tc.Palette) {
		sc := tc.Palette[name]
		sw := t.Palette[name]
		for _, f := range []struct {
			field string
			value string
			dst   *layout.Color
		}{
			{"accent", sc.Accent, &sw.Accent},
			{"tint", sc.Tint, &sw.Tint},
			{"border", sc.Border, &sw.Border},
		} {
			if f.value == "" {
				continue
			}
			col, err := layout.ParseColor(f.value)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("theme.palette.%s.%s: %w", name, f.field, err))
				continue
			}
			*f.dst = col
		}
		t.Palette[name] = sw
	}
	if errs != nil {
		return nil, errs
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return t, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
