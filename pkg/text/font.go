package text

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNoFont is returned when font data is missing or cannot be parsed.
// Nothing that draws or measures text can be built without a font.
var ErrNoFont = errors.New("no usable font")

// Measurer reports the advance width of a string at a pixel size.
type Measurer interface {
	Measure(s string, size float64) float64
}

// Font is a parsed TrueType font shared read-only by layout and painting.
// Faces are created lazily per pixel size.
type Font struct {
	ttf *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// DefaultFont returns the embedded Go Regular font.
func DefaultFont() (*Font, error) {
	return ParseFont(goregular.TTF)
}

// LoadFont reads and parses a TrueType font file.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFont, err)
	}
	return ParseFont(data)
}

func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrNoFont
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFont, err)
	}
	return &Font{ttf: ttf, faces: make(map[float64]font.Face)}, nil
}

// Face returns the face for a pixel size (72 DPI, so points equal pixels).
func (f *Font) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{Size: size})
	f.faces[size] = face
	return face
}

// Measure sums the per-glyph advances of s. No kerning is applied.
func (f *Font) Measure(s string, size float64) float64 {
	face := f.Face(size)
	var width float64
	for _, r := range s {
		adv, _ := face.GlyphAdvance(r)
		width += float64(adv) / 64
	}
	return width
}
