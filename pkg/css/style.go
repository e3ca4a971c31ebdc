package css

import "strings"

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "solid": true, "dotted": true, "dashed": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// expandShorthand turns one declaration into its typed declarations,
// expanding the box shorthands into longhands.
func expandShorthand(property, value string) []Declaration {
	switch property {
	case "margin", "padding":
		return expandBoxProperty(property, "", value)
	case "border-width":
		return expandBoxProperty("border", "-width", value)
	case "border":
		return expandBorderProperty(value)
	case "background":
		return []Declaration{{Name: property, Value: backgroundValue(value)}}
	}
	return []Declaration{{Name: property, Value: ParseValue(value)}}
}

// expandBoxProperty expands margin/padding/border-width shorthand.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l).
// A single value is also kept under the shorthand name itself.
func expandBoxProperty(prefix, suffix, value string) []Declaration {
	parts := strings.Fields(value)
	var top, right, bottom, left string

	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, bottom = parts[0], parts[0]
		right, left = parts[1], parts[1]
	case 3:
		top, bottom = parts[0], parts[2]
		right, left = parts[1], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return []Declaration{{Name: prefix + suffix, Value: ParseValue(value)}}
	}

	var decls []Declaration
	if len(parts) == 1 {
		decls = append(decls, Declaration{Name: prefix + suffix, Value: ParseValue(parts[0])})
	}
	return append(decls,
		Declaration{Name: prefix + "-top" + suffix, Value: ParseValue(top)},
		Declaration{Name: prefix + "-right" + suffix, Value: ParseValue(right)},
		Declaration{Name: prefix + "-bottom" + suffix, Value: ParseValue(bottom)},
		Declaration{Name: prefix + "-left" + suffix, Value: ParseValue(left)},
	)
}

// expandBorderProperty expands border shorthand.
// Format: "1px solid black" or "2px dotted #FF0000", in any order.
func expandBorderProperty(value string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Fields(value) {
		lower := strings.ToLower(part)
		switch {
		case borderStyles[lower]:
			decls = append(decls, Declaration{Name: "border-style", Value: Keyword(lower)})
		case isLength(part):
			decls = append(decls, expandBoxProperty("border", "-width", part)...)
		default:
			decls = append(decls, Declaration{Name: "border-color", Value: ParseValue(part)})
		}
	}
	return decls
}

// backgroundValue picks the color out of a background shorthand.
func backgroundValue(value string) Value {
	for _, part := range strings.Fields(value) {
		if _, ok := ParseColor(part); ok {
			return ParseValue(part)
		}
	}
	return ParseValue(value)
}

func isLength(s string) bool {
	_, ok := ParseLength(s)
	return ok
}
