package render

import (
	"fmt"

	"ukechug/pkg/css"
	"ukechug/pkg/layout"
)

// Command is one drawing operation of a DisplayList.
type Command interface {
	fmt.Stringer
	isCommand()
}

// FillRect paints a solid rectangle.
type FillRect struct {
	Rect  layout.Rect
	Color css.Color
}

// StrokeRect paints a 1px hollow rectangle along the inside of Rect.
type StrokeRect struct {
	Rect  layout.Rect
	Color css.Color
}

// DrawText paints one line of text with its top-left corner at X, Y.
type DrawText struct {
	Text  string
	X, Y  float64
	Size  float64
	Color css.Color
}

func (FillRect) isCommand()   {}
func (StrokeRect) isCommand() {}
func (DrawText) isCommand()   {}

func (c FillRect) String() string {
	return fmt.Sprintf("fill %s %s", rectString(c.Rect), c.Color)
}

func (c StrokeRect) String() string {
	return fmt.Sprintf("stroke %s %s", rectString(c.Rect), c.Color)
}

func (c DrawText) String() string {
	return fmt.Sprintf("text (%g,%g) %gpx %s %q", c.X, c.Y, c.Size, c.Color, c.Text)
}

func rectString(r layout.Rect) string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Surface is anything a DisplayList can be drawn onto.
type Surface interface {
	FillRect(r layout.Rect, c css.Color)
	StrokeRect(r layout.Rect, c css.Color)
	DrawText(s string, x, y, size float64, c css.Color)
}

// DisplayList is the ordered output of the painter. Later commands draw on
// top of earlier ones.
type DisplayList []Command

// Execute replays the list onto s in order.
func (dl DisplayList) Execute(s Surface) {
	for _, cmd := range dl {
		switch c := cmd.(type) {
		case FillRect:
			s.FillRect(c.Rect, c.Color)
		case StrokeRect:
			s.StrokeRect(c.Rect, c.Color)
		case DrawText:
			s.DrawText(c.Text, c.X, c.Y, c.Size, c.Color)
		}
	}
}
