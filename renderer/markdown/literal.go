package markdownrenderer

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/marker"
)

// literalText undoes the base plugin's character entities so literals such as
// ">95%" or "Extract & Load" come out as written. A ">" is handed back to the
// converter's escaping, which keeps "\>" only where it would open a blockquote.
// "<" and "&" stay encoded where Markdown would read them as a tag or an entity.
type literalText struct{}

func (literalText) Name() string { return "literal-text" }

func (literalText) Init(conv *converter.Converter) error {
	conv.Register.TextTransformer(decodeEntities, converter.PriorityLate)
	return nil
}

var escapedGT = string(marker.BytesMarkerEscaping) + ">"

func decodeEntities(_ converter.Context, content string) string {
	if !strings.Contains(content, "&") {
		return content
	}
	var b strings.Builder
	for i := 0; i < len(content); {
		rest := content[i:]
		switch {
		case strings.HasPrefix(rest, "&gt;"):
			b.WriteString(escapedGT)
			i += len("&gt;")
		case strings.HasPrefix(rest, "&lt;") && !opensTag(rest[len("&lt;"):]):
			b.WriteByte('<')
			i += len("&lt;")
		case strings.HasPrefix(rest, "&amp;") && !looksLikeEntity(rest[len("&amp;"):]):
			b.WriteByte('&')
			i += len("&amp;")
		default:
			b.WriteByte(content[i])
			i++
		}
	}
	return b.String()
}

// opensTag reports whether s, following a "<", would start raw HTML.
func opensTag(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '/' || c == '!' || c == '?' || isAlpha(c)
}

// looksLikeEntity reports whether s, following a "&", reads as "name;" or "#123;".
func looksLikeEntity(s string) bool {
	n := 0
	for n < len(s) && (isAlpha(s[n]) || (s[n] >= '0' && s[n] <= '9') || (n == 0 && s[n] == '#')) {
		n++
	}
	return n > 0 && n < len(s) && s[n] == ';'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
