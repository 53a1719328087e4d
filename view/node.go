// Package view maps a document model to a tree of styled display nodes. The
// tree is the contract with every output surface (PDF layout, HTML, Markdown).
package view

import "github.com/ByLCY/brief/glyph"

// Kind is the structural type of a display node.
type Kind string

const (
	KindContainer Kind = "container"
	KindText      Kind = "text"
	KindCode      Kind = "code-block"
	KindGrid      Kind = "grid"
	KindListItem  Kind = "list-item"
)

// Role names what a node means in the document, so a surface can pick a
// font size or an HTML element without re-deriving it from the model.
type Role string

const (
	RoleDocument    Role = "document"
	RoleHeader      Role = "header"
	RoleTitle       Role = "title"
	RoleRule        Role = "rule"
	RoleSection     Role = "section"
	RoleHeading     Role = "heading"
	RoleParagraph   Role = "paragraph"
	RoleCard        Role = "card"
	RoleCardTitle   Role = "card-title"
	RoleField       Role = "field"
	RoleBody        Role = "body"
	RoleBullet      Role = "bullet"
	RoleSteps       Role = "steps"
	RoleStep        Role = "step"
	RoleStepTitle   Role = "step-title"
	RoleCode        Role = "code"
	RoleMetric      Role = "metric"
	RoleMetricLabel Role = "metric-label"
	RoleMetricValue Role = "metric-value"
	RoleCaption     Role = "caption"
	RoleDeliverable Role = "deliverable"
	RoleBanner      Role = "banner"
	RoleBannerText  Role = "banner-text"
)

// Surface tokens.
const (
	SurfaceNone   = ""
	SurfaceMuted  = "muted"
	SurfaceTint   = "tint"
	SurfaceBanner = "banner"
)

// Border tokens.
const (
	BorderNone = ""
	BorderBox  = "box"
	BorderLeft = "left"
)

// Spacing tokens.
const (
	SpacingSmall  = "sm"
	SpacingMedium = "md"
	SpacingLarge  = "lg"
)

// Style carries presentation hints only. Columns on a grid is a preference,
// surfaces may collapse it on narrow output.
type Style struct {
	Accent  string `json:"accent,omitempty"`
	Surface string `json:"surface,omitempty"`
	Border  string `json:"border,omitempty"`
	Spacing string `json:"spacing,omitempty"`
	Align   string `json:"align,omitempty"`
	Columns int    `json:"columns,omitempty"`
}

// Node is one element of the display tree. Text holds literal content; Label,
// when set, names the field Text belongs to (rendered as "Label: Text").
type Node struct {
	Kind     Kind         `json:"kind"`
	Role     Role         `json:"role,omitempty"`
	Label    string       `json:"label,omitempty"`
	Text     string       `json:"text,omitempty"`
	Glyph    *glyph.Glyph `json:"glyph,omitempty"`
	Style    Style        `json:"style"`
	Children []*Node      `json:"children,omitempty"`
}

// Decorated reports whether the node paints a background or border, which
// makes it an unbreakable block for paged surfaces.
func (n *Node) Decorated() bool {
	return n.Style.Surface != SurfaceNone || n.Style.Border != BorderNone
}

// Walk visits n and its descendants depth-first in display order. Returning
// false from fn skips the children of that node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindAll returns every node with the given role in display order.
func FindAll(root *Node, role Role) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Role == role {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Sections returns the top-level section nodes of a rendered document.
func (n *Node) Sections() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Role == RoleSection || c.Role == RoleBanner {
			out = append(out, c)
		}
	}
	return out
}
