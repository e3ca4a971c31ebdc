package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a typed declaration value: Keyword, Length or Color.
type Value interface {
	String() string
	isValue()
}

// Keyword is an identifier value such as "auto", "block" or "red".
type Keyword string

func (Keyword) isValue()         {}
func (k Keyword) String() string { return string(k) }

// Auto is the keyword used for auto widths, heights and margins.
const Auto = Keyword("auto")

type Unit int

const (
	Px Unit = iota
	Em
	Rem
	Percent
)

func (u Unit) String() string {
	switch u {
	case Px:
		return "px"
	case Em:
		return "em"
	case Rem:
		return "rem"
	case Percent:
		return "%"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Length is a number with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

func (Length) isValue() {}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// Px resolves the length to pixels. percentBase is the length a percentage
// is taken of, em and rem are the pixel sizes of one em and one rem.
func (l Length) Px(percentBase, em, rem float64) float64 {
	switch l.Unit {
	case Percent:
		return l.Value / 100 * percentBase
	case Em:
		return l.Value * em
	case Rem:
		return l.Value * rem
	}
	return l.Value
}

// Pixels returns a Length in px.
func Pixels(v float64) Length { return Length{Value: v, Unit: Px} }

type Color struct {
	R, G, B, A uint8
}

func (Color) isValue() {}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// RGBA returns the channels scaled to [0,1].
func (c Color) RGBA() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// namedColors is the fixed keyword table. Anything not listed here is not a
// color.
var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"lightgray":   {211, 211, 211, 255},
	"darkgray":    {169, 169, 169, 255},
	"silver":      {192, 192, 192, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"maroon":      {128, 0, 0, 255},
	"olive":       {128, 128, 0, 255},
	"transparent": Transparent,
}

// ParseColor parses a named color, a #rgb/#rrggbb/#rrggbbaa literal, or an
// rgb()/rgba() function.
func ParseColor(colorStr string) (Color, bool) {
	s := strings.ToLower(strings.TrimSpace(colorStr))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		// #rgb -> #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(hex) == 6 {
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

func parseRGBFunc(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	args := strings.Split(s[open+1:len(s)-1], ",")
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
		if err != nil {
			return Color{}, false
		}
		ch[i] = clampByte(f)
	}
	a := uint8(255)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil {
			return Color{}, false
		}
		a = clampByte(f * 255)
	}
	return Color{ch[0], ch[1], ch[2], a}, true
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// ColorOf resolves a value to a color. Keywords go through the named color
// table; lengths and unknown keywords report false.
func ColorOf(v Value) (Color, bool) {
	switch v := v.(type) {
	case Color:
		return v, true
	case Keyword:
		c, ok := namedColors[string(v)]
		return c, ok
	}
	return Color{}, false
}

// ParseLength parses a length value (e.g., "100px", "1.5em", "50%" or "100").
// A bare number is taken as px.
func ParseLength(val string) (Length, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	unit := Px
	switch {
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
	case strings.HasSuffix(val, "rem"):
		val, unit = strings.TrimSuffix(val, "rem"), Rem
	case strings.HasSuffix(val, "em"):
		val, unit = strings.TrimSuffix(val, "em"), Em
	case strings.HasSuffix(val, "%"):
		val, unit = strings.TrimSuffix(val, "%"), Percent
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return Length{}, false
	}
	return Length{Value: num, Unit: unit}, true
}

// ParseValue converts one declaration value to its typed form.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if c, ok := ParseColor(raw); ok && !isNamedColor(raw) {
		return c
	}
	if l, ok := ParseLength(raw); ok {
		return l
	}
	return Keyword(strings.ToLower(raw))
}

func isNamedColor(s string) bool {
	_, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
