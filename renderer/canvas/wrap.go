package canvasrenderer

import (
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/brief/layout"
)

// 贪心换行。所有宽度均为 mm，与 face.TextWidth 的返回值直接比较。

// lineAccumulator 累积当前行并在需要时产出 TextLine。
type lineAccumulator struct {
	face  *canvas.FontFace
	lines []layout.TextLine
	buf   strings.Builder
	width float64
}

func (a *lineAccumulator) write(s string) {
	a.buf.WriteString(s)
	a.width += a.face.TextWidth(s)
}

// emit 结束当前行；force 为 true 时即使为空也产出一行（显式换行）。
func (a *lineAccumulator) emit(force bool) {
	if a.buf.Len() == 0 {
		if force {
			a.lines = append(a.lines, layout.TextLine{})
		}
		return
	}
	a.lines = append(a.lines, layout.TextLine{Content: a.buf.String(), Width: a.width})
	a.buf.Reset()
	a.width = 0
}

func effectiveLimit(width float64) float64 {
	if width <= 0 {
		return math.MaxFloat64
	}
	return width
}

// wrapExplicit 仅按显式换行划分，不基于宽度折行（nowrap）。
func wrapExplicit(content string, face *canvas.FontFace) []layout.TextLine {
	parts := strings.Split(strings.ReplaceAll(content, "\r", ""), "\n")
	lines := make([]layout.TextLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, layout.TextLine{Content: p, Width: face.TextWidth(p)})
	}
	return lines
}

// wrapRunes 忽略空白机会，纯按宽度切分，但仍然尊重显式换行（break-word）。
func wrapRunes(content string, width float64, face *canvas.FontFace) []layout.TextLine {
	limit := effectiveLimit(width)
	acc := &lineAccumulator{face: face}
	for _, r := range content {
		switch r {
		case '\r':
			continue
		case '\n':
			acc.emit(true)
			continue
		}
		s := string(r)
		if acc.width > 0 && acc.width+face.TextWidth(s) > limit {
			acc.emit(false)
		}
		acc.write(s)
		if acc.width > limit {
			acc.emit(false)
		}
	}
	acc.emit(true)
	return acc.lines
}

// wrapTokens 优先在空白处分割，单个词超过限制时在词内拆分（anywhere，默认）。
// 空白段作为独立 token 保留，因此代码缩进不会丢失。
func wrapTokens(content string, width float64, face *canvas.FontFace) []layout.TextLine {
	limit := effectiveLimit(width)
	acc := &lineAccumulator{face: face}
	place := func(token string) {
		if acc.width > 0 && acc.width+face.TextWidth(token) > limit {
			acc.emit(false)
		}
		acc.write(token)
		if acc.width > limit {
			acc.emit(false)
		}
	}
	for _, token := range tokenize(content) {
		if token == "\n" {
			acc.emit(true)
			continue
		}
		if face.TextWidth(token) <= limit {
			place(token)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, face) {
			place(chunk)
		}
	}
	acc.emit(true)
	return acc.lines
}

// tokenize 把文本切成交替的空白段与非空白段，换行单独成 token。
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	lastWasSpace := false
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			continue
		}
		isSpace := unicode.IsSpace(r)
		if b.Len() > 0 && lastWasSpace != isSpace {
			flush()
		}
		lastWasSpace = isSpace
		b.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var cur []rune
	for _, r := range token {
		cur = append(cur, r)
		if len(cur) > 1 && face.TextWidth(string(cur)) > limit {
			parts = append(parts, string(cur[:len(cur)-1]))
			cur = []rune{r}
		}
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}
