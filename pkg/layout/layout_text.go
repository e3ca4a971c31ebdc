package layout

import (
	"strings"

	"ukechug/pkg/text"
)

// textHeight is the height of the box's direct text children when wrapped
// the way the painter draws them. It is zero without a measurer and for
// boxes with no content width, whose text is not drawn.
func (le *LayoutEngine) textHeight(b *Box) float64 {
	if le.measurer == nil || b.Style == nil || b.Content.Width <= 0 {
		return 0
	}

	size := le.fontSize(b)
	maxWidth := b.Content.Width - 2*le.textInset
	var height float64
	for _, node := range b.Style.TextChildren() {
		t := strings.TrimSpace(node.Text)
		if t == "" {
			continue
		}
		height += text.TextHeight(le.measurer, t, size, maxWidth, le.lineHeight)
	}
	return height
}
