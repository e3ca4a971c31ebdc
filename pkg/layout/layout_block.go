package layout

import (
	"ukechug/pkg/css"
	"ukechug/pkg/html"
)

// BuildLayoutTree builds the box tree for a styled subtree. It returns nil
// when the root has display: none or is not an element. Runs of inline
// children inside a block are grouped under one anonymous block, so a block
// box's children are either all blocks or wrappers of inlines.
func BuildLayoutTree(node *css.StyledNode) *Box {
	if node == nil || node.Node == nil || node.Node.Type != html.ElementNode {
		return nil
	}

	var box *Box
	switch node.Display() {
	case css.DisplayNone:
		return nil
	case css.DisplayBlock:
		box = &Box{Type: BlockNode, Style: node}
	default:
		box = &Box{Type: InlineNode, Style: node}
	}

	var anonymous *Box
	flush := func() {
		if anonymous != nil && len(anonymous.Children) > 0 {
			box.Children = append(box.Children, anonymous)
		}
		anonymous = nil
	}

	for _, child := range node.Children {
		childBox := BuildLayoutTree(child)
		if childBox == nil {
			continue
		}

		if box.Type != BlockNode {
			// Inline boxes hold their children directly.
			box.Children = append(box.Children, childBox)
			continue
		}

		if childBox.Type == BlockNode {
			flush()
			box.Children = append(box.Children, childBox)
			continue
		}
		if anonymous == nil {
			anonymous = &Box{Type: AnonymousBlock}
		}
		anonymous.Children = append(anonymous.Children, childBox)
	}
	flush()

	return box
}

// layoutBox lays out b inside the containing block cb with its top margin
// edge at cursorY. The width pass runs first since child widths depend on
// it; the height pass runs last since it depends on the children.
func (le *LayoutEngine) layoutBox(b *Box, cb Dimensions, cursorY float64) {
	le.calculateWidth(b, cb)
	le.calculatePosition(b, cb, cursorY)
	childrenHeight := le.layoutChildren(b)
	le.calculateHeight(b, cb, childrenHeight)
}

// calculateWidth resolves width and the horizontal margins, borders and
// padding so that their sum equals the containing block's content width.
func (le *LayoutEngine) calculateWidth(b *Box, cb Dimensions) {
	s := le.styleOf(b)
	em := le.fontSize(b)
	base := cb.Content.Width
	zero := css.Value(css.Pixels(0))

	width := s.lookup("width", "", css.Auto)
	marginLeft := s.lookup("margin-left", "margin", zero)
	marginRight := s.lookup("margin-right", "margin", zero)
	borderLeft := le.px(s.lookup("border-left-width", "border-width", zero), base, em)
	borderRight := le.px(s.lookup("border-right-width", "border-width", zero), base, em)
	paddingLeft := le.px(s.lookup("padding-left", "padding", zero), base, em)
	paddingRight := le.px(s.lookup("padding-right", "padding", zero), base, em)

	total := borderLeft + borderRight + paddingLeft + paddingRight
	for _, v := range []css.Value{marginLeft, marginRight, width} {
		total += le.px(v, base, em)
	}

	// Over-constrained: auto margins collapse to zero.
	if !isAuto(width) && total > base {
		if isAuto(marginLeft) {
			marginLeft = zero
		}
		if isAuto(marginRight) {
			marginRight = zero
		}
	}

	underflow := base - total
	w := le.px(width, base, em)
	ml := le.px(marginLeft, base, em)
	mr := le.px(marginRight, base, em)

	switch {
	case !isAuto(width) && !isAuto(marginLeft) && !isAuto(marginRight):
		mr += underflow
	case !isAuto(width) && !isAuto(marginLeft) && isAuto(marginRight):
		mr = underflow
	case !isAuto(width) && isAuto(marginLeft) && !isAuto(marginRight):
		ml = underflow
	case !isAuto(width):
		ml = underflow / 2
		mr = underflow / 2
	default:
		// Auto width takes the remaining space, even when that is negative;
		// auto margins become zero.
		if isAuto(marginLeft) {
			ml = 0
		}
		if isAuto(marginRight) {
			mr = 0
		}
		w = underflow
	}

	b.Content.Width = w
	b.Padding.Left, b.Padding.Right = paddingLeft, paddingRight
	b.Border.Left, b.Border.Right = borderLeft, borderRight
	b.Margin.Left, b.Margin.Right = ml, mr
}

// calculatePosition resolves the vertical edges and places the content box
// below cursorY, indented from the containing block's content edge.
func (le *LayoutEngine) calculatePosition(b *Box, cb Dimensions, cursorY float64) {
	s := le.styleOf(b)
	em := le.fontSize(b)
	base := cb.Content.Width
	zero := css.Value(css.Pixels(0))

	// Auto vertical margins are zero.
	b.Margin.Top = le.px(s.lookup("margin-top", "margin", zero), base, em)
	b.Margin.Bottom = le.px(s.lookup("margin-bottom", "margin", zero), base, em)
	b.Border.Top = le.px(s.lookup("border-top-width", "border-width", zero), base, em)
	b.Border.Bottom = le.px(s.lookup("border-bottom-width", "border-width", zero), base, em)
	b.Padding.Top = le.px(s.lookup("padding-top", "padding", zero), base, em)
	b.Padding.Bottom = le.px(s.lookup("padding-bottom", "padding", zero), base, em)

	b.Content.X = cb.Content.X + b.Margin.Left + b.Border.Left + b.Padding.Left
	b.Content.Y = cursorY + b.Margin.Top + b.Border.Top + b.Padding.Top
}

// layoutChildren stacks the children vertically and returns the height they
// occupy, including any text measured above them.
func (le *LayoutEngine) layoutChildren(b *Box) float64 {
	cursor := b.Content.Y + le.textHeight(b)
	for _, child := range b.Children {
		le.layoutBox(child, b.Dimensions, cursor)
		cursor += child.MarginBox().Height
	}
	return cursor - b.Content.Y
}

// calculateHeight uses an explicit height when there is one, otherwise the
// height of the laid-out content.
func (le *LayoutEngine) calculateHeight(b *Box, cb Dimensions, contentHeight float64) {
	s := le.styleOf(b)
	if h, ok := s.lookup("height", "", css.Auto).(css.Length); ok {
		b.Content.Height = h.Px(cb.Content.Width, le.fontSize(b), le.rootFontSize)
		return
	}
	b.Content.Height = contentHeight
}

func isAuto(v css.Value) bool {
	return v == css.Auto
}
