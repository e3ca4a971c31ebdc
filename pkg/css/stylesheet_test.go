package css

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStylesheet_SingleRule(t *testing.T) {
	sheet, err := ParseStylesheet(`div { color: red; width: 100px }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	want := Rule{
		Selectors: []Selector{{TagName: "div"}},
		Declarations: []Declaration{
			{Name: "color", Value: Keyword("red")},
			{Name: "width", Value: Length{100, Px}},
		},
	}
	if diff := cmp.Diff(want, sheet.Rules[0]); diff != "" {
		t.Errorf("rule mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStylesheet_SelectorList(t *testing.T) {
	sheet, err := ParseStylesheet(`h1, .note, div#main.a.b, * { display: block; }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	want := []Selector{
		{TagName: "h1"},
		{Classes: []string{"note"}},
		{TagName: "div", ID: "main", Classes: []string{"a", "b"}},
		{},
	}
	if diff := cmp.Diff(want, sheet.Rules[0].Selectors); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStylesheet_TypedValues(t *testing.T) {
	sheet, err := ParseStylesheet(`p {
		color: #ff0000;
		background-color: rgba(0, 0, 255, 0.5);
		font-size: 1.5em;
		width: 50%;
		margin-left: 2rem;
		height: 30;
		display: BLOCK;
		border-color: white !important;
	}`)
	require.NoError(t, err)

	got := map[string]Value{}
	for _, d := range sheet.Rules[0].Declarations {
		got[d.Name] = d.Value
	}
	want := map[string]Value{
		"color":            Color{255, 0, 0, 255},
		"background-color": Color{0, 0, 255, 128},
		"font-size":        Length{1.5, Em},
		"width":            Length{50, Percent},
		"margin-left":      Length{2, Rem},
		"height":           Length{30, Px},
		"display":          Keyword("block"),
		"border-color":     Keyword("white"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStylesheet_ShorthandExpansion(t *testing.T) {
	sheet, err := ParseStylesheet(`div { margin: 10px 20px; padding: 5px; border: 2px solid #00ff00; background: url(x.png) blue; }`)
	require.NoError(t, err)

	got := map[string]Value{}
	for _, d := range sheet.Rules[0].Declarations {
		got[d.Name] = d.Value
	}

	assert.Equal(t, Length{10, Px}, got["margin-top"])
	assert.Equal(t, Length{20, Px}, got["margin-right"])
	assert.Equal(t, Length{10, Px}, got["margin-bottom"])
	assert.Equal(t, Length{20, Px}, got["margin-left"])
	assert.NotContains(t, got, "margin", "multi-value shorthand is only kept as longhands")

	assert.Equal(t, Length{5, Px}, got["padding"])
	assert.Equal(t, Length{5, Px}, got["padding-left"])

	assert.Equal(t, Length{2, Px}, got["border-width"])
	assert.Equal(t, Length{2, Px}, got["border-left-width"])
	assert.Equal(t, Keyword("solid"), got["border-style"])
	assert.Equal(t, Color{0, 255, 0, 255}, got["border-color"])

	assert.Equal(t, Keyword("blue"), got["background"])
}

func TestParseStylesheet_Comments(t *testing.T) {
	sheet, err := ParseStylesheet(`/* lead */ p { /* inner */ color: red; } /* unterminated`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	assert.Len(t, sheet.Rules[0].Declarations, 1)
}

func TestParseStylesheet_ErrorRecovery(t *testing.T) {
	tests := []struct {
		name          string
		css           string
		expectedRules int
	}{
		{"selector starting with closing brace", `} { color: red; } p { color: blue; }`, 1},
		{"selector starting with semicolon", `{; color: red; } p { color: blue; }`, 1},
		{"unbalanced bracket in selector", `[} { color: red; } p { color: green; }`, 1},
		{"empty selector", ` { color: red; } p { color: blue; }`, 1},
		{"combinator dropped", `div p { color: red; } p { color: blue; }`, 1},
		{"pseudo class dropped", `a:hover { color: red; } a { color: blue; }`, 1},
		{"at-rule skipped", `@media print { p { color: red; } } p { color: blue; }`, 1},
		{"partially valid list kept", `div > p, .x { color: red; }`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, _ := ParseStylesheet(tt.css)
			assert.Len(t, sheet.Rules, tt.expectedRules)
		})
	}
}

func TestParseStylesheet_ReportsUnsupportedSelector(t *testing.T) {
	sheet, err := ParseStylesheet(`ul li { color: red; }`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSelector))
	assert.Empty(t, sheet.Rules)
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		sel  Selector
		want Specificity
	}{
		{Selector{TagName: "div"}, Specificity{0, 0, 1}},
		{Selector{Classes: []string{"a", "b"}}, Specificity{0, 2, 0}},
		{Selector{TagName: "p", ID: "x", Classes: []string{"y"}}, Specificity{1, 1, 1}},
		{Selector{}, Specificity{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sel.Specificity(), tt.sel.String())
	}

	assert.True(t, Specificity{0, 2, 0}.Less(Specificity{1, 0, 0}))
	assert.True(t, Specificity{0, 0, 9}.Less(Specificity{0, 1, 0}))
	assert.False(t, Specificity{0, 1, 0}.Less(Specificity{0, 1, 0}))
}

func TestMerge(t *testing.T) {
	a, _ := ParseStylesheet(`p { color: red; }`)
	b, _ := ParseStylesheet(`div { color: blue; } span { color: green; }`)
	merged := Merge(a, nil, b)
	require.Len(t, merged.Rules, 3)
	assert.Equal(t, "p", merged.Rules[0].Selectors[0].TagName)
	assert.Equal(t, "span", merged.Rules[2].Selectors[0].TagName)
	assert.Len(t, a.Rules, 1, "inputs are not modified")
}

func TestStylesheetAppend(t *testing.T) {
	a := mustParse(t, `p { color: red; }`)
	a.Append(mustParse(t, `div { color: blue; }`))
	a.Append(nil)
	require.Len(t, a.Rules, 2)
	assert.Equal(t, "div", a.Rules[1].Selectors[0].TagName)
}

func TestParseSelectorGroup(t *testing.T) {
	sels, err := ParseSelectorGroup("p.note, #main")
	require.NoError(t, err)
	want := []Selector{{TagName: "p", Classes: []string{"note"}}, {ID: "main"}}
	if diff := cmp.Diff(want, sels); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseSelectorGroup("div p")
	assert.ErrorIs(t, err, ErrUnsupportedSelector)
}
