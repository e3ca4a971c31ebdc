package layout

import (
	"ukechug/pkg/css"
)

// boxStyle reads specified values from a box's styled node. Anonymous boxes
// have no style, so every lookup yields its default.
type boxStyle struct {
	node *css.StyledNode
}

func (le *LayoutEngine) styleOf(b *Box) boxStyle {
	return boxStyle{node: b.Style}
}

func (s boxStyle) lookup(name, fallback string, def css.Value) css.Value {
	if s.node == nil {
		return def
	}
	return s.node.Lookup(name, fallback, def)
}

// px converts a value to pixels. Percentages resolve against percentBase,
// em against the box's font size. Keywords other than lengths are zero.
func (le *LayoutEngine) px(v css.Value, percentBase, em float64) float64 {
	l, ok := v.(css.Length)
	if !ok {
		return 0
	}
	return l.Px(percentBase, em, le.rootFontSize)
}

// fontSize is the box's own font-size in pixels. Relative font sizes
// resolve against the default size since nothing is inherited.
func (le *LayoutEngine) fontSize(b *Box) float64 {
	if b.Style == nil {
		return le.defaultFontSize
	}
	l, ok := b.Style.SpecifiedValues["font-size"].(css.Length)
	if !ok {
		return le.defaultFontSize
	}
	return l.Px(le.defaultFontSize, le.defaultFontSize, le.rootFontSize)
}
