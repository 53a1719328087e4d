package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths, line heights and
// page geometry. All layout output is in millimetres.

// Unit represents the original unit of a length value as written in a theme.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimetres. Unit-less values are taken as mm.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPT converts the length to points.
func (l Length) ToPT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.ToMM() * MmToPt
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength parses strings such as "12pt", "1.5cm" or "18" (mm).
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负数: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeightKind distinguishes factor-based vs absolute line-height specification.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec is either a factor of the font size (1.4x) or an absolute length (18pt).
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// ParseLineHeight accepts "1.4x" factors and absolute lengths. Empty means 1.4x.
func ParseLineHeight(value string) (LineHeightSpec, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return LineHeightSpec{Kind: LineHeightFactor, Factor: 1.4}, nil
	}
	if strings.HasSuffix(v, "x") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64)
		if err != nil || f <= 0 {
			return LineHeightSpec{}, fmt.Errorf("无法解析行高倍数 %q", value)
		}
		return LineHeightSpec{Kind: LineHeightFactor, Factor: f}, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return LineHeightSpec{}, err
	}
	return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, nil
}

// ResolveMM computes the absolute line height in mm for a font size in mm.
func (s LineHeightSpec) ResolveMM(fontSizeMM float64) float64 {
	switch s.Kind {
	case LineHeightFactor:
		return fontSizeMM * s.Factor
	case LineHeightAbsolute:
		return s.Len.ToMM()
	default:
		return fontSizeMM * 1.4
	}
}

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// ParsePageSize resolves "A4", "A4 landscape" or "Letter" to width/height in mm.
func ParsePageSize(spec string) (float64, float64, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("纸张尺寸为空")
	}
	base, ok := pagePresets[strings.ToUpper(fields[0])]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", fields[0])
	}
	width, height := base[0], base[1]
	for _, f := range fields[1:] {
		if strings.EqualFold(f, "landscape") {
			width, height = height, width
		}
	}
	return width, height, nil
}

// ParseMargin applies CSS-like shorthand semantics:
// 1 value: all sides; 2 values: vertical/horizontal; 3 values: top/horizontal/bottom;
// 4 values: top/right/bottom/left.
func ParseMargin(spec string) (Margin, error) {
	fields := strings.Fields(spec)
	vals := make([]float64, 0, 4)
	for _, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return Margin{}, err
		}
		vals = append(vals, l.ToMM())
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return Margin{}, fmt.Errorf("页边距需要 1 到 4 个值，实际 %d 个：%q", len(vals), spec)
	}
}
