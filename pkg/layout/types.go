package layout

import (
	"fmt"

	"ukechug/pkg/css"
)

// BoxType distinguishes element boxes from the anonymous wrappers that hold
// runs of inline boxes inside a block.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	}
	return fmt.Sprintf("BoxType(%d)", int(t))
}

type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy grows r outward by e on every side.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

type Edges struct {
	Top, Right, Bottom, Left float64
}

// Dimensions is the CSS box model of one box. Content is in absolute
// coordinates; the edges are thicknesses around it.
type Dimensions struct {
	Content Rect
	Padding Edges
	Border  Edges
	Margin  Edges
}

func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Viewport returns the containing block of a root box: a content rect at the
// origin with the given size.
func Viewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}

// Box is a node of the layout tree. Style is nil for anonymous blocks.
type Box struct {
	Type  BoxType
	Style *css.StyledNode
	Dimensions
	Children []*Box
}

// TagName returns the element name of the originating node, or "" for an
// anonymous block.
func (b *Box) TagName() string {
	if b.Style == nil || b.Style.Node == nil {
		return ""
	}
	return b.Style.Node.TagName
}
