package css

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedSelector marks selectors the parser drops: combinators,
// attribute selectors and pseudo-classes or pseudo-elements.
var ErrUnsupportedSelector = errors.New("unsupported selector")

// Selector is a simple selector. Empty fields are unconstrained.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity ranks selector matches: id count, then class count, then tag count.
type Specificity struct {
	IDs, Classes, Tags int
}

// Less reports whether s ranks strictly below o.
func (s Specificity) Less(o Specificity) bool {
	if s.IDs != o.IDs {
		return s.IDs < o.IDs
	}
	if s.Classes != o.Classes {
		return s.Classes < o.Classes
	}
	return s.Tags < o.Tags
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.IDs, s.Classes, s.Tags)
}

func (sel Selector) Specificity() Specificity {
	spec := Specificity{Classes: len(sel.Classes)}
	if sel.ID != "" {
		spec.IDs = 1
	}
	if sel.TagName != "" {
		spec.Tags = 1
	}
	return spec
}

func (sel Selector) String() string {
	var sb strings.Builder
	sb.WriteString(sel.TagName)
	if sel.ID != "" {
		sb.WriteString("#" + sel.ID)
	}
	for _, c := range sel.Classes {
		sb.WriteString("." + c)
	}
	if sb.Len() == 0 {
		return "*"
	}
	return sb.String()
}

type Declaration struct {
	Name  string
	Value Value
}

// Rule matches when any of its selectors matches.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

type Stylesheet struct {
	Rules []Rule
}

// Merge concatenates the rules of several sheets, keeping source order.
// Nil sheets are skipped.
func Merge(sheets ...*Stylesheet) *Stylesheet {
	merged := &Stylesheet{}
	for _, s := range sheets {
		if s != nil {
			merged.Rules = append(merged.Rules, s.Rules...)
		}
	}
	return merged
}

// Append adds the rules of other after the rules of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other != nil {
		s.Rules = append(s.Rules, other.Rules...)
	}
}

// ParseSelectorGroup parses a comma-separated list of simple selectors.
func ParseSelectorGroup(group string) ([]Selector, error) {
	var selectors []Selector
	for _, part := range strings.Split(group, ",") {
		sel, err := parseSelector(part)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	return selectors, nil
}

// ParseStylesheet parses rule-sheet text. Malformed rules are skipped; the
// returned error joins the reasons for every skipped rule and is non-nil
// only when something was dropped. The stylesheet is always usable.
func ParseStylesheet(src string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}
	src = stripComments(src)

	var errs []error
	pos := 0
	for pos < len(src) {
		open := strings.IndexByte(src[pos:], '{')
		if open < 0 {
			break
		}
		open += pos
		end := matchingBrace(src, open)
		prelude := src[pos:open]
		body := ""
		if end > open+1 {
			body = src[open+1 : end]
		}
		pos = end + 1

		// Stray closing braces before the selector belong to nothing.
		if i := strings.LastIndexByte(prelude, '}'); i >= 0 {
			prelude = prelude[i+1:]
		}
		prelude = strings.TrimSpace(prelude)

		if strings.HasPrefix(prelude, "@") {
			// At-rules (@media, @font-face, ...) are not supported.
			continue
		}

		rule, err := parseRule(prelude, body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stylesheet.Rules = append(stylesheet.Rules, rule)
	}

	return stylesheet, errors.Join(errs...)
}

func parseRule(prelude, body string) (Rule, error) {
	if prelude == "" {
		return Rule{}, errors.New("empty selector")
	}
	if strings.ContainsRune(body, '{') {
		return Rule{}, fmt.Errorf("%q: nested block", prelude)
	}

	var selectors []Selector
	var errs []error
	for _, part := range strings.Split(prelude, ",") {
		sel, err := parseSelector(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	if len(selectors) == 0 {
		return Rule{}, fmt.Errorf("%q: %w", prelude, errors.Join(errs...))
	}

	return Rule{
		Selectors:    selectors,
		Declarations: parseDeclarations(body),
	}, nil
}

// parseSelector parses a simple selector: optional tag or *, then any mix
// of #id and .class parts.
func parseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, errors.New("empty selector")
	}
	if strings.ContainsAny(s, " \t\n>+~[:") {
		return Selector{}, fmt.Errorf("%q: %w", s, ErrUnsupportedSelector)
	}

	var sel Selector
	i := 0
	if s[0] == '*' {
		i = 1
	} else {
		n := identLen(s)
		sel.TagName = strings.ToLower(s[:n])
		i = n
	}
	for i < len(s) {
		kind := s[i]
		n := identLen(s[i+1:])
		if n == 0 || (kind != '#' && kind != '.') {
			return Selector{}, fmt.Errorf("%q: unexpected %q", s, s[i])
		}
		name := s[i+1 : i+1+n]
		if kind == '#' {
			sel.ID = name
		} else {
			sel.Classes = append(sel.Classes, name)
		}
		i += 1 + n
	}
	return sel, nil
}

func identLen(s string) int {
	for i, ch := range s {
		if ch == '-' || ch == '_' || ch >= 0x80 ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			continue
		}
		return i
	}
	return len(s)
}

// parseDeclarations parses "name: value; ..." pairs, expanding shorthands.
func parseDeclarations(declStr string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(declStr, ";") {
		part = strings.TrimSpace(part)
		colonPos := strings.IndexByte(part, ':')
		if colonPos == -1 {
			continue
		}

		property := strings.ToLower(strings.TrimSpace(part[:colonPos]))
		value := strings.TrimSpace(part[colonPos+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))

		if property != "" && value != "" {
			decls = append(decls, expandShorthand(property, value)...)
		}
	}
	return decls
}

// matchingBrace returns the index of the '}' closing the block opened at
// open, or len(src) for an unterminated block.
func matchingBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(src)
}

// stripComments removes /* ... */ comments. An unterminated comment runs to
// the end of input.
func stripComments(src string) string {
	var sb strings.Builder
	for {
		start := strings.Index(src, "/*")
		if start < 0 {
			sb.WriteString(src)
			return sb.String()
		}
		sb.WriteString(src[:start])
		end := strings.Index(src[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		src = src[start+2+end+2:]
	}
}
