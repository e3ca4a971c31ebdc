package layout

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes one line per box: its type, tag, content rect and margin box.
func (b *Box) Dump(w io.Writer) {
	b.dump(w, 0)
}

func (b *Box) dump(w io.Writer, depth int) {
	label := b.Type.String()
	if tag := b.TagName(); tag != "" {
		label += " <" + tag + ">"
	}
	m := b.MarginBox()
	fmt.Fprintf(w, "%s%s content=%s margin-box=%s\n",
		strings.Repeat("  ", depth), label, formatRect(b.Content), formatRect(m))
	for _, c := range b.Children {
		c.dump(w, depth+1)
	}
}

func formatRect(r Rect) string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
