package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"ukechug/pkg/css"
	"ukechug/pkg/layout"
	"ukechug/pkg/text"
)

// Raster is a pixel Surface backed by a gg context.
type Raster struct {
	context *gg.Context
	font    *text.Font
}

// NewRaster creates a width x height image cleared to background.
func NewRaster(width, height int, background css.Color, font *text.Font) (*Raster, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	r := &Raster{context: gg.NewContext(width, height), font: font}
	r.context.SetRGBA(background.RGBA())
	r.context.Clear()
	return r, nil
}

func (r *Raster) FillRect(rect layout.Rect, c css.Color) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	r.context.SetRGBA(c.RGBA())
	r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.context.Fill()
}

// StrokeRect fills the four 1px edges so outlines land on whole pixels
// without antialiasing.
func (r *Raster) StrokeRect(rect layout.Rect, c css.Color) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	r.context.SetRGBA(c.RGBA())
	x, y, w, h := rect.X, rect.Y, rect.Width, rect.Height
	r.context.DrawRectangle(x, y, w, 1)
	r.context.DrawRectangle(x, y+h-1, w, 1)
	r.context.DrawRectangle(x, y, 1, h)
	r.context.DrawRectangle(x+w-1, y, 1, h)
	r.context.Fill()
}

// DrawText draws s with the top of its line box at y.
func (r *Raster) DrawText(s string, x, y, size float64, c css.Color) {
	r.context.SetFontFace(r.font.Face(size))
	r.context.SetRGBA(c.RGBA())
	r.context.DrawStringAnchored(s, x, y, 0, 1)
}

func (r *Raster) Image() image.Image {
	return r.context.Image()
}

func (r *Raster) SavePNG(filename string) error {
	if err := r.context.SavePNG(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.context.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
