// Package pipeline runs a document through every stage: parse, script,
// cascade, box tree, layout and paint.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"ukechug/pkg/css"
	"ukechug/pkg/html"
	"ukechug/pkg/js"
	"ukechug/pkg/layout"
	"ukechug/pkg/render"
	"ukechug/pkg/resource"
	"ukechug/pkg/text"
)

// Options controls one Renderer.
type Options struct {
	Width, Height float64
	Background    css.Color // raster clear color
	Theme         render.Theme

	UserAgent   bool // prepend the built-in stylesheet
	Scripts     bool // run document scripts before the cascade
	MeasureText bool // let wrapped text contribute to auto heights
	Links       bool // load <link rel="stylesheet"> through the fetcher

	// ExtraCSS holds sheet sources appended after the document's own.
	ExtraCSS []string
}

// DefaultOptions renders onto an 800x600 white page with every stage on.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Background:  css.White,
		Theme:       render.DefaultTheme(),
		UserAgent:   true,
		Scripts:     true,
		MeasureText: true,
		Links:       true,
	}
}

// Result holds what every stage produced.
type Result struct {
	Document *html.Document
	Styled   *css.StyledNode
	Root     *layout.Box // nil when the root element is not displayed
	Display  render.DisplayList
}

// Renderer renders markup with a fixed font and set of options. A Renderer
// is not safe for concurrent use.
type Renderer struct {
	font    *text.Font
	opts    Options
	fetcher resource.Fetcher
	logger  *log.Logger
	painter *render.Painter
}

type Option func(*Renderer)

func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithFetcher sets where linked stylesheets are loaded from. Without one,
// links are ignored.
func WithFetcher(f resource.Fetcher) Option {
	return func(r *Renderer) { r.fetcher = f }
}

func NewRenderer(font *text.Font, opts Options, ropts ...Option) (*Renderer, error) {
	painter, err := render.NewPainter(font, opts.Theme)
	if err != nil {
		return nil, err
	}
	r := &Renderer{font: font, opts: opts, painter: painter, logger: log.Default()}
	for _, opt := range ropts {
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Run takes markup through the whole pipeline. Only a markup error fails
// the run; script failures, skipped rules and missing links are logged.
func (r *Renderer) Run(ctx context.Context, markup string) (*Result, error) {
	start := time.Now()
	doc, err := html.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	r.logger.Debug("parsed document", "styles", len(doc.Stylesheets), "scripts", len(doc.Scripts),
		"links", len(doc.StyleLinks), "elapsed", time.Since(start))

	if r.opts.Scripts && len(doc.Scripts) > 0 {
		start = time.Now()
		engine := js.New(js.WithLogger(r.logger))
		if err := engine.ExecuteContext(ctx, doc); err != nil {
			r.logger.Warn("script failed", "err", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("ran scripts", "count", len(doc.Scripts), "elapsed", time.Since(start))
	}

	return r.solve(doc), nil
}

// solve runs the cascade, box-tree, layout and paint stages over doc.
func (r *Renderer) solve(doc *html.Document) *Result {
	start := time.Now()
	sheet := r.stylesheet(doc)
	styled := css.StyleTree(doc.Root, sheet)
	r.logger.Debug("resolved styles", "rules", len(sheet.Rules), "elapsed", time.Since(start))

	start = time.Now()
	root := layout.BuildLayoutTree(styled)
	r.engine().Layout(root)
	r.logger.Debug("laid out boxes", "boxes", countBoxes(root), "elapsed", time.Since(start))

	start = time.Now()
	display := r.painter.Paint(root)
	r.logger.Debug("painted", "commands", len(display), "elapsed", time.Since(start))

	return &Result{Document: doc, Styled: styled, Root: root, Display: display}
}

func (r *Renderer) engine() *layout.LayoutEngine {
	theme := r.opts.Theme
	opts := []layout.Option{
		layout.WithFontSize(theme.FontSize),
		layout.WithTextInset(theme.TextInset),
		layout.WithLineHeight(theme.LineHeight),
	}
	if r.opts.MeasureText {
		opts = append(opts, layout.WithTextMeasurer(r.font))
	}
	return layout.NewLayoutEngine(r.opts.Width, r.opts.Height, opts...)
}

// stylesheet concatenates the user-agent sheet, linked sheets, <style>
// blocks and extra sheets in that order.
func (r *Renderer) stylesheet(doc *html.Document) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	if r.opts.UserAgent {
		sheet.Append(css.UserAgentStylesheet())
	}
	if r.opts.Links && r.fetcher != nil {
		for _, href := range doc.StyleLinks {
			src, err := resource.FetchCSS(r.fetcher, href)
			if err != nil {
				r.logger.Warn("skipping stylesheet link", "href", href, "err", err)
				continue
			}
			r.appendSheet(sheet, "link "+href, src)
		}
	}
	for i, src := range doc.Stylesheets {
		r.appendSheet(sheet, fmt.Sprintf("style %d", i), src)
	}
	for i, src := range r.opts.ExtraCSS {
		r.appendSheet(sheet, fmt.Sprintf("extra %d", i), src)
	}
	return sheet
}

func (r *Renderer) appendSheet(sheet *css.Stylesheet, source, src string) {
	parsed, err := css.ParseStylesheet(src)
	if err != nil {
		r.logger.Debug("skipped rules", "source", source, "err", err)
	}
	sheet.Append(parsed)
}

// RenderRaster runs the pipeline and executes the display list on a raster
// the size of the viewport.
func (r *Renderer) RenderRaster(ctx context.Context, markup string) (*render.Raster, *Result, error) {
	res, err := r.Run(ctx, markup)
	if err != nil {
		return nil, nil, err
	}
	w := int(math.Ceil(r.opts.Width))
	h := int(math.Ceil(r.opts.Height))
	raster, err := render.NewRaster(w, h, r.opts.Background, r.font)
	if err != nil {
		return nil, nil, err
	}
	res.Display.Execute(raster)
	return raster, res, nil
}

// RenderCanvas runs the pipeline and executes the display list on a
// character canvas covering the viewport.
func (r *Renderer) RenderCanvas(ctx context.Context, markup string, cellWidth, cellHeight float64) (*render.Canvas, *Result, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, nil, fmt.Errorf("canvas cell size %gx%g must be positive", cellWidth, cellHeight)
	}
	res, err := r.Run(ctx, markup)
	if err != nil {
		return nil, nil, err
	}
	cols := int(math.Ceil(r.opts.Width / cellWidth))
	rows := int(math.Ceil(r.opts.Height / cellHeight))
	canvas := render.NewCanvas(cols, rows, cellWidth, cellHeight)
	res.Display.Execute(canvas)
	return canvas, res, nil
}

func countBoxes(b *layout.Box) int {
	if b == nil {
		return 0
	}
	n := 1
	for _, c := range b.Children {
		n += countBoxes(c)
	}
	return n
}
