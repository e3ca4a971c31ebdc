package visualtest

import (
	"image"
	"image/color"
	"image/draw"
)

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	PaintRect(img, img.Bounds(), c)
	return img
}

// PaintRect fills r with c, for building expected images by hand.
func PaintRect(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
