package layout

import (
	"ukechug/pkg/text"
)

const (
	DefaultFontSize   = 16.0
	DefaultTextInset  = 10.0
	DefaultLineHeight = 1.5
)

// LayoutEngine computes box dimensions. Without a text measurer, text takes
// no vertical space and auto heights come from child boxes alone.
type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}

	measurer        text.Measurer
	textInset       float64
	lineHeight      float64
	defaultFontSize float64
	rootFontSize    float64
}

type Option func(*LayoutEngine)

// WithTextMeasurer makes auto heights include the wrapped height of each
// box's direct text children.
func WithTextMeasurer(m text.Measurer) Option {
	return func(le *LayoutEngine) { le.measurer = m }
}

// WithTextInset sets the horizontal inset text is wrapped within.
func WithTextInset(px float64) Option {
	return func(le *LayoutEngine) { le.textInset = px }
}

func WithLineHeight(factor float64) Option {
	return func(le *LayoutEngine) { le.lineHeight = factor }
}

// WithFontSize sets the size em and rem resolve against.
func WithFontSize(px float64) Option {
	return func(le *LayoutEngine) {
		le.defaultFontSize = px
		le.rootFontSize = px
	}
}

func NewLayoutEngine(viewportWidth, viewportHeight float64, opts ...Option) *LayoutEngine {
	le := &LayoutEngine{
		textInset:       DefaultTextInset,
		lineHeight:      DefaultLineHeight,
		defaultFontSize: DefaultFontSize,
		rootFontSize:    DefaultFontSize,
	}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	for _, opt := range opts {
		opt(le)
	}
	return le
}

// Viewport returns the containing block Layout uses for the root box.
func (le *LayoutEngine) Viewport() Dimensions {
	return Viewport(le.viewport.width, le.viewport.height)
}

// Layout lays out the tree rooted at root against the viewport.
func (le *LayoutEngine) Layout(root *Box) {
	le.LayoutBox(root, le.Viewport())
}

// LayoutBox lays out the tree rooted at root inside containing. The root's
// top margin edge sits at the top of the containing content box; only the
// containing block's content width and position are read.
func (le *LayoutEngine) LayoutBox(root *Box, containing Dimensions) {
	if root == nil {
		return
	}
	le.layoutBox(root, containing, containing.Content.Y)
}
