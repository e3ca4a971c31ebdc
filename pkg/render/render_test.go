package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ukechug/pkg/css"
	"ukechug/pkg/html"
	"ukechug/pkg/layout"
	"ukechug/pkg/text"
)

// monoMeasurer gives every rune an advance equal to the font size.
type monoMeasurer struct{}

func (monoMeasurer) Measure(s string, size float64) float64 {
	return float64(len([]rune(s))) * size
}

func solve(t *testing.T, markup, sheet string) *layout.Box {
	t.Helper()
	doc, err := html.Parse(markup)
	require.NoError(t, err)
	ss, err := css.ParseStylesheet(sheet)
	require.NoError(t, err)
	root := layout.BuildLayoutTree(css.StyleTree(doc.Root, ss))
	require.NotNil(t, root)
	layout.NewLayoutEngine(800, 600).Layout(root)
	return root
}

func paint(t *testing.T, theme Theme, markup, sheet string) DisplayList {
	t.Helper()
	p, err := NewPainter(monoMeasurer{}, theme)
	require.NoError(t, err)
	return p.Paint(solve(t, markup, sheet))
}

var (
	red  = css.Color{R: 255, A: 255}
	blue = css.Color{B: 255, A: 255}
)

func TestPaint_BackgroundBorderText(t *testing.T) {
	got := paint(t, DefaultTheme(), `<div>hello world</div>`, `
		div {
			display: block; width: 100px; height: 50px; padding: 5px;
			background-color: red; border-width: 2px; border-color: blue;
			font-size: 10px;
		}`)

	want := DisplayList{
		FillRect{Rect: layout.Rect{X: 0, Y: 0, Width: 114, Height: 64}, Color: red},
		StrokeRect{Rect: layout.Rect{X: 0, Y: 0, Width: 114, Height: 64}, Color: blue},
		StrokeRect{Rect: layout.Rect{X: 1, Y: 1, Width: 112, Height: 62}, Color: blue},
		DrawText{Text: "hello", X: 17, Y: 7, Size: 10, Color: css.Black},
		DrawText{Text: "world", X: 17, Y: 22, Size: 10, Color: css.Black},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_PreOrder(t *testing.T) {
	got := paint(t, DefaultTheme(), `<div><p></p></div>`, `
		div, p { display: block; height: 10px; }
		div { background: #0000ff; }
		p { background-color: red; }`)

	require.Len(t, got, 2)
	assert.Equal(t, blue, got[0].(FillRect).Color)
	assert.Equal(t, red, got[1].(FillRect).Color)
}

func TestPaint_SkipsEmptyGeometry(t *testing.T) {
	got := paint(t, DefaultTheme(), `<div></div>`,
		`div { display: block; height: 0; background-color: red; }`)
	assert.Empty(t, got)

	got = paint(t, DefaultTheme(), `<div></div>`,
		`div { display: block; height: -10px; background-color: red; }`)
	assert.Empty(t, got)

	got = paint(t, DefaultTheme(), `<div>hello wide world</div>`,
		`div { display: block; width: -50px; height: 0; background-color: red; }`)
	assert.Empty(t, got)
}

func TestPaint_UnknownColorsFallBack(t *testing.T) {
	theme := DefaultTheme()
	theme.Background = css.White
	got := paint(t, theme, `<div>x</div>`,
		`div { display: block; height: 10px; background-color: sparkly; color: sparkly; }`)

	require.Len(t, got, 2)
	assert.Equal(t, css.White, got[0].(FillRect).Color)
	assert.Equal(t, css.Black, got[1].(DrawText).Color)
}

func TestPaint_ThemeBorderWidth(t *testing.T) {
	theme := DefaultTheme()
	theme.BorderWidth = 1
	theme.BorderColor = red
	got := paint(t, theme, `<div></div>`, `div { display: block; width: 4px; height: 2px; }`)
	want := DisplayList{StrokeRect{Rect: layout.Rect{Width: 4, Height: 2}, Color: red}}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestPaint_BorderWidthFromWidestSide(t *testing.T) {
	got := paint(t, DefaultTheme(), `<div></div>`,
		`div { display: block; width: 10px; height: 10px; border-left-width: 2px; border-top-width: 1px; }`)
	want := DisplayList{
		StrokeRect{Rect: layout.Rect{X: 0, Y: 0, Width: 12, Height: 11}, Color: css.Black},
		StrokeRect{Rect: layout.Rect{X: 1, Y: 1, Width: 10, Height: 9}, Color: css.Black},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_InnerBorderClampsToOnePixel(t *testing.T) {
	// A negative width leaves a 2px wide border box for a 3px border.
	got := paint(t, DefaultTheme(), `<div></div>`,
		`div { display: block; width: -4px; height: 10px; border-width: 3px; }`)
	want := DisplayList{
		StrokeRect{Rect: layout.Rect{X: 0, Y: 0, Width: 2, Height: 16}, Color: css.Black},
		StrokeRect{Rect: layout.Rect{X: 1, Y: 1, Width: 1, Height: 14}, Color: css.Black},
		StrokeRect{Rect: layout.Rect{X: 2, Y: 2, Width: 1, Height: 12}, Color: css.Black},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_TextContinuesAcrossTextChildren(t *testing.T) {
	got := paint(t, DefaultTheme(), `<div>one<span></span>two</div>`, `div { display: block; }`)
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].(DrawText).Y)
	assert.Equal(t, 24.0, got[1].(DrawText).Y)
	assert.Equal(t, 10.0, got[1].(DrawText).X)
}

func TestNewPainter_RequiresFont(t *testing.T) {
	_, err := NewPainter(nil, DefaultTheme())
	assert.ErrorIs(t, err, ErrNilFont)

	var f *text.Font
	_, err = NewPainter(f, DefaultTheme())
	assert.ErrorIs(t, err, ErrNilFont)
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(10, 4, 8, 16)
	DisplayList{
		FillRect{Rect: layout.Rect{Width: 40, Height: 32}, Color: red},
		FillRect{Rect: layout.Rect{X: 40, Width: 40, Height: 64}, Color: css.Transparent},
		StrokeRect{Rect: layout.Rect{Width: 80, Height: 64}, Color: blue},
		DrawText{Text: "hi", X: 16, Y: 16, Size: 16, Color: css.Black},
	}.Execute(c)

	want := "┌────────┐\n" +
		"│░hi░    │\n" +
		"│        │\n" +
		"└────────┘\n"
	assert.Equal(t, want, c.String())
}

func TestCanvas_ClipsAndTrims(t *testing.T) {
	c := NewCanvas(4, 3, 8, 16)
	c.DrawText("overflowing", 16, 0, 16, css.Black)
	c.FillRect(layout.Rect{X: -100, Y: -100, Width: 50, Height: 50}, red)
	assert.Equal(t, "  ov\n", c.String())
	assert.Equal(t, "", NewCanvas(3, 3, 8, 16).String())
}
