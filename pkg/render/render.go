package render

import (
	"errors"
	"math"
	"strings"

	"ukechug/pkg/css"
	"ukechug/pkg/layout"
	"ukechug/pkg/text"
)

// ErrNilFont is returned when a Painter is built without a font.
var ErrNilFont = errors.New("painter requires a font")

// Theme holds the fallbacks used when a box does not specify a property.
type Theme struct {
	Background  css.Color // box fill; a zero alpha draws nothing
	TextColor   css.Color
	BorderColor css.Color
	FontSize    float64
	BorderWidth int
	TextInset   float64 // horizontal inset text is wrapped within
	LineHeight  float64 // line advance as a multiple of the font size
}

func DefaultTheme() Theme {
	return Theme{
		Background:  css.Transparent,
		TextColor:   css.Black,
		BorderColor: css.Black,
		FontSize:    layout.DefaultFontSize,
		BorderWidth: 0,
		TextInset:   layout.DefaultTextInset,
		LineHeight:  layout.DefaultLineHeight,
	}
}

// Painter turns a solved box tree into a DisplayList.
type Painter struct {
	measurer text.Measurer
	theme    Theme
}

// NewPainter builds a painter that wraps text with the metrics of m.
func NewPainter(m text.Measurer, theme Theme) (*Painter, error) {
	if m == nil {
		return nil, ErrNilFont
	}
	if f, ok := m.(*text.Font); ok && f == nil {
		return nil, ErrNilFont
	}
	return &Painter{measurer: m, theme: theme}, nil
}

func (p *Painter) Theme() Theme {
	return p.theme
}

// Paint walks the tree in pre-order so children draw over their parent.
func (p *Painter) Paint(root *layout.Box) DisplayList {
	var list DisplayList
	if root != nil {
		p.paintBox(&list, root)
	}
	return list
}

func (p *Painter) paintBox(list *DisplayList, box *layout.Box) {
	p.paintBackground(list, box)
	p.paintBorders(list, box)
	p.paintText(list, box)

	for _, child := range box.Children {
		p.paintBox(list, child)
	}
}

func (p *Painter) paintBackground(list *DisplayList, box *layout.Box) {
	color := p.color(box, p.theme.Background, "background-color", "background")
	if color.A == 0 {
		return
	}

	rect := box.BorderBox()
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	*list = append(*list, FillRect{Rect: rect, Color: color})
}

// paintBorders draws the border as nested 1px outlines, each inset by one
// pixel from the last. Inner outlines never shrink below 1px.
func (p *Painter) paintBorders(list *DisplayList, box *layout.Box) {
	width := p.borderWidth(box)
	if width == 0 {
		return
	}

	rect := box.BorderBox()
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}

	color := p.color(box, p.theme.BorderColor, "border-color", "")
	for i := 0; i < width; i++ {
		offset := float64(i)
		*list = append(*list, StrokeRect{
			Rect: layout.Rect{
				X:      rect.X + offset,
				Y:      rect.Y + offset,
				Width:  math.Max(rect.Width-2*offset, 1),
				Height: math.Max(rect.Height-2*offset, 1),
			},
			Color: color,
		})
	}
}

// paintText wraps each direct text child of the box's element inside the
// content box. Lines start at the content top and step by
// fontSize*LineHeight. A box with no content width draws no text.
func (p *Painter) paintText(list *DisplayList, box *layout.Box) {
	if box.Style == nil || box.Content.Width <= 0 {
		return
	}

	size := p.fontSize(box)
	color := p.color(box, p.theme.TextColor, "color", "")
	x := box.Content.X + p.theme.TextInset
	y := box.Content.Y
	maxWidth := box.Content.Width - 2*p.theme.TextInset

	for _, node := range box.Style.TextChildren() {
		t := strings.TrimSpace(node.Text)
		if t == "" {
			continue
		}
		for _, line := range text.BreakTextIntoLines(p.measurer, t, size, maxWidth) {
			*list = append(*list, DrawText{Text: line, X: x, Y: y, Size: size, Color: color})
			y += size * p.theme.LineHeight
		}
	}
}

// color resolves a color property, falling back to def when the box has no
// such property or names an unknown color.
func (p *Painter) color(box *layout.Box, def css.Color, name, fallback string) css.Color {
	if box.Style == nil {
		return def
	}
	v := box.Style.Lookup(name, fallback, nil)
	if v == nil {
		return def
	}
	if c, ok := css.ColorOf(v); ok {
		return c
	}
	return def
}

func (p *Painter) fontSize(box *layout.Box) float64 {
	if l, ok := box.Style.SpecifiedValues["font-size"].(css.Length); ok {
		return l.Px(p.theme.FontSize, p.theme.FontSize, p.theme.FontSize)
	}
	return p.theme.FontSize
}

// borderWidth is the border-width property truncated to whole pixels. When
// only per-side widths are set, the widest side is used. Negative widths
// draw nothing.
func (p *Painter) borderWidth(box *layout.Box) int {
	if box.Style == nil {
		return p.theme.BorderWidth
	}
	em := p.fontSize(box)
	if l, ok := box.Style.SpecifiedValues["border-width"].(css.Length); ok {
		return wholePixels(l.Px(0, em, p.theme.FontSize))
	}

	found := false
	widest := math.Inf(-1)
	for _, side := range []string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"} {
		if l, ok := box.Style.SpecifiedValues[side].(css.Length); ok {
			found = true
			widest = math.Max(widest, l.Px(0, em, p.theme.FontSize))
		}
	}
	if !found {
		return p.theme.BorderWidth
	}
	return wholePixels(widest)
}

func wholePixels(px float64) int {
	if px < 0 {
		return 0
	}
	return int(px)
}
