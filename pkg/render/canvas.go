package render

import (
	"math"
	"strings"

	"ukechug/pkg/css"
	"ukechug/pkg/layout"
)

// Canvas is a character-cell Surface. Each cell stands for a
// cellWidth x cellHeight block of pixels. Colors are ignored except that
// fully transparent fills draw nothing.
type Canvas struct {
	cols, rows            int
	cellWidth, cellHeight float64
	cells                 [][]rune
}

func NewCanvas(cols, rows int, cellWidth, cellHeight float64) *Canvas {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &Canvas{cols: cols, rows: rows, cellWidth: cellWidth, cellHeight: cellHeight, cells: cells}
}

// span returns the cell range [c0, c1] x [r0, r1] a pixel rect touches.
func (c *Canvas) span(r layout.Rect) (c0, r0, c1, r1 int) {
	c0 = int(math.Floor(r.X / c.cellWidth))
	r0 = int(math.Floor(r.Y / c.cellHeight))
	c1 = int(math.Ceil((r.X+r.Width)/c.cellWidth)) - 1
	r1 = int(math.Ceil((r.Y+r.Height)/c.cellHeight)) - 1
	return c0, r0, c1, r1
}

func (c *Canvas) set(col, row int, ch rune) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = ch
}

func (c *Canvas) FillRect(r layout.Rect, color css.Color) {
	if color.A == 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	c0, r0, c1, r1 := c.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, '░')
		}
	}
}

func (c *Canvas) StrokeRect(r layout.Rect, _ css.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	c0, r0, c1, r1 := c.span(r)
	for col := c0; col <= c1; col++ {
		c.set(col, r0, '─')
		c.set(col, r1, '─')
	}
	for row := r0; row <= r1; row++ {
		c.set(c0, row, '│')
		c.set(c1, row, '│')
	}
	c.set(c0, r0, '┌')
	c.set(c1, r0, '┐')
	c.set(c0, r1, '└')
	c.set(c1, r1, '┘')
}

// DrawText writes s starting at the cell containing (x, y), clipped to the
// canvas.
func (c *Canvas) DrawText(s string, x, y, _ float64, _ css.Color) {
	col := int(math.Floor(x / c.cellWidth))
	row := int(math.Floor(y / c.cellHeight))
	for i, ch := range []rune(s) {
		c.set(col+i, row, ch)
	}
}

// String renders the grid with trailing spaces and trailing blank rows
// removed.
func (c *Canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
