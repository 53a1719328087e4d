package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/ByLCY/brief/view"
)

// Swatch 是一个强调色的三种取值：前景、浅底色与描边色。
type Swatch struct {
	Accent Color `json:"accent"`
	Tint   Color `json:"tint"`
	Border Color `json:"border"`
}

// TextStyle 描述某个角色的文字样式，字段均为书写形式（如 "10.5pt"、"1.5x"）。
// Color 可以是 "accent"（取节点强调色）、Colors 中的名称或 #hex。
type TextStyle struct {
	Font       string `json:"font"`
	Size       string `json:"size"`
	LineHeight string `json:"lineHeight,omitempty"`
	Color      string `json:"color,omitempty"`
	Wrap       string `json:"wrap,omitempty"`
}

// Theme 决定页面几何、字体、配色与各角色的文字样式。
type Theme struct {
	PageSize string                  `json:"pageSize"`
	Margin   string                  `json:"margin"`
	Fonts    map[string]string       `json:"fonts"` // 逻辑字体名 -> src
	Colors   map[string]Color        `json:"colors"`
	Palette  map[string]Swatch       `json:"palette"`
	Text     map[view.Role]TextStyle `json:"text"`
}

// 主题中固定使用的颜色名。
const (
	ColorInk     = "ink"
	ColorBody    = "body"
	ColorMuted   = "muted"
	ColorWhite   = "white"
	ColorSurface = "surface"
	ColorCode    = "code"
	ColorOutline = "outline"
)

const fallbackAccent = "gray"

func hex(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func swatch(accent, tint, border string) Swatch {
	return Swatch{Accent: hex(accent), Tint: hex(tint), Border: hex(border)}
}

// DefaultTheme 返回一份新的默认主题，调用方可以自由修改。
func DefaultTheme() *Theme {
	return &Theme{
		PageSize: "A4",
		Margin:   "16mm 18mm",
		Fonts: map[string]string{
			"Body":   "embed:go-regular",
			"Medium": "embed:go-medium",
			"Bold":   "embed:go-bold",
			"Mono":   "embed:go-mono",
		},
		Colors: map[string]Color{
			ColorInk:     hex("#1f2937"),
			ColorBody:    hex("#374151"),
			ColorMuted:   hex("#4b5563"),
			ColorWhite:   hex("#ffffff"),
			ColorSurface: hex("#f9fafb"),
			ColorCode:    hex("#f3f4f6"),
			ColorOutline: hex("#e5e7eb"),
		},
		Palette: map[string]Swatch{
			"blue":   swatch("#2563eb", "#eff6ff", "#bfdbfe"),
			"green":  swatch("#16a34a", "#f0fdf4", "#bbf7d0"),
			"red":    swatch("#dc2626", "#fef2f2", "#fecaca"),
			"orange": swatch("#ea580c", "#fff7ed", "#fed7aa"),
			"purple": swatch("#9333ea", "#faf5ff", "#e9d5ff"),
			"indigo": swatch("#4f46e5", "#eef2ff", "#c7d2fe"),
			"teal":   swatch("#0d9488", "#f0fdfa", "#99f6e4"),
			"gray":   swatch("#4b5563", "#f9fafb", "#e5e7eb"),
		},
		Text: map[view.Role]TextStyle{
			view.RoleTitle:       {Font: "Bold", Size: "20pt", LineHeight: "1.25x", Color: ColorInk},
			view.RoleHeading:     {Font: "Bold", Size: "14pt", LineHeight: "1.3x", Color: ColorInk},
			view.RoleParagraph:   {Font: "Body", Size: "10.5pt", LineHeight: "1.5x", Color: ColorBody},
			view.RoleCardTitle:   {Font: "Bold", Size: "10.5pt", LineHeight: "1.3x", Color: ColorInk},
			view.RoleField:       {Font: "Body", Size: "9pt", LineHeight: "1.4x", Color: ColorMuted},
			view.RoleBody:        {Font: "Body", Size: "9pt", LineHeight: "1.4x", Color: ColorMuted},
			view.RoleBullet:      {Font: "Body", Size: "9pt", LineHeight: "1.4x", Color: ColorBody},
			view.RoleStepTitle:   {Font: "Bold", Size: "11pt", LineHeight: "1.3x", Color: ColorInk},
			view.RoleCode:        {Font: "Mono", Size: "7.5pt", LineHeight: "1.35x", Color: ColorInk, Wrap: "anywhere"},
			view.RoleMetricLabel: {Font: "Bold", Size: "10.5pt", LineHeight: "1.3x", Color: ColorInk},
			view.RoleMetricValue: {Font: "Bold", Size: "18pt", LineHeight: "1.2x", Color: "accent"},
			view.RoleCaption:     {Font: "Body", Size: "8.5pt", LineHeight: "1.4x", Color: ColorMuted},
			view.RoleBannerText:  {Font: "Bold", Size: "11pt", LineHeight: "1.4x", Color: ColorWhite},
		},
	}
}

// Swatch 返回强调色对应的色板，未知名称回落到灰色。
func (t *Theme) Swatch(accent string) Swatch {
	if s, ok := t.Palette[accent]; ok {
		return s
	}
	return t.Palette[fallbackAccent]
}

// Validate 检查主题能否用于排版，返回的错误包含全部问题。
func (t *Theme) Validate() error {
	_, err := t.compile()
	return err
}

// textSpec 为解析后的文字样式（单位 mm）。
type textSpec struct {
	font       string
	size       float64
	lineHeight float64
	color      string
	wrap       string
}

// compiledTheme 是校验通过、单位已换算的主题。
type compiledTheme struct {
	*Theme
	width, height float64
	margin        Margin
	text          map[view.Role]textSpec
}

// compile 校验主题并一次性收集全部问题。
func (t *Theme) compile() (*compiledTheme, error) {
	ct := &compiledTheme{Theme: t, text: map[view.Role]textSpec{}}
	var errs error

	w, h, err := ParsePageSize(t.PageSize)
	errs = multierr.Append(errs, err)
	ct.width, ct.height = w, h

	m, err := ParseMargin(t.Margin)
	errs = multierr.Append(errs, err)
	ct.margin = m
	if err == nil && w > 0 && (m.Left+m.Right >= w || m.Top+m.Bottom >= h) {
		errs = multierr.Append(errs, fmt.Errorf("页边距 %q 超出纸张尺寸", t.Margin))
	}

	if _, ok := t.Palette[fallbackAccent]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("色板缺少回退色 %q", fallbackAccent))
	}
	for _, name := range []string{ColorInk, ColorWhite, ColorSurface, ColorCode, ColorOutline} {
		if _, ok := t.Colors[name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("主题缺少颜色 %q", name))
		}
	}

	roles := make([]string, 0, len(t.Text))
	for role := range t.Text {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)
	for _, r := range roles {
		role := view.Role(r)
		spec, err := t.compileText(role, t.Text[role])
		errs = multierr.Append(errs, err)
		ct.text[role] = spec
	}
	if _, ok := t.Text[view.RoleParagraph]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("主题缺少 %s 文字样式", view.RoleParagraph))
	}
	if errs != nil {
		return nil, errs
	}
	return ct, nil
}

func (t *Theme) compileText(role view.Role, ts TextStyle) (textSpec, error) {
	if _, ok := t.Fonts[ts.Font]; !ok {
		return textSpec{}, fmt.Errorf("%s: 字体 %q 未定义", role, ts.Font)
	}
	size, err := ParseLength(ts.Size)
	if err != nil {
		return textSpec{}, fmt.Errorf("%s: %w", role, err)
	}
	if size.Unit == UnitNone {
		size.Unit = UnitPT
	}
	if size.Value <= 0 {
		return textSpec{}, fmt.Errorf("%s: 字号必须大于 0", role)
	}
	lh, err := ParseLineHeight(ts.LineHeight)
	if err != nil {
		return textSpec{}, fmt.Errorf("%s: %w", role, err)
	}
	if c := ts.Color; strings.HasPrefix(c, "#") {
		if _, err := ParseColor(c); err != nil {
			return textSpec{}, fmt.Errorf("%s: %w", role, err)
		}
	} else if c != "" && c != "accent" {
		if _, ok := t.Colors[c]; !ok {
			return textSpec{}, fmt.Errorf("%s: 颜色 %q 未定义", role, c)
		}
	}
	wrap := normalizeWrap(ts.Wrap)
	sizeMM := size.ToMM()
	return textSpec{
		font:       ts.Font,
		size:       sizeMM,
		lineHeight: lh.ResolveMM(sizeMM),
		color:      ts.Color,
		wrap:       wrap,
	}, nil
}

// style 返回角色的文字样式，未定义的角色使用正文样式。
func (ct *compiledTheme) style(role view.Role) textSpec {
	if s, ok := ct.text[role]; ok {
		return s
	}
	return ct.text[view.RoleParagraph]
}

// color 解析文字颜色：accent、命名颜色或 #hex。
func (ct *compiledTheme) color(value, accent string) Color {
	switch {
	case value == "accent":
		return ct.Swatch(accent).Accent
	case strings.HasPrefix(value, "#"):
		if c, err := ParseColor(value); err == nil {
			return c
		}
	}
	if c, ok := ct.Colors[value]; ok {
		return c
	}
	return ct.Colors[ColorInk]
}

func normalizeWrap(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "nowrap", "no-wrap", "none":
		return "nowrap"
	case "break-word", "break", "word":
		return "break-word"
	default:
		return "anywhere"
	}
}

// ParseColor 解析 #rgb 或 #rrggbb。
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("无法解析颜色 %q", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无法解析颜色 %q: %w", value, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
