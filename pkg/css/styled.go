package css

import "ukechug/pkg/html"

// StyledNode is a document node with its cascade already applied. It
// references the document node and never changes after StyleTree returns.
type StyledNode struct {
	Node            *html.Node
	SpecifiedValues PropertyMap
	Children        []*StyledNode
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayInline DisplayType = "inline"
	DisplayBlock  DisplayType = "block"
	DisplayNone   DisplayType = "none"
)

func (s *StyledNode) Value(name string) (Value, bool) {
	v, ok := s.SpecifiedValues[name]
	return v, ok
}

// Display returns the display value (default: inline). Only the keywords
// "block" and "none" are recognized.
func (s *StyledNode) Display() DisplayType {
	if kw, ok := s.SpecifiedValues["display"].(Keyword); ok {
		switch kw {
		case "block":
			return DisplayBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayInline
}

// Lookup returns the value of name, else of fallback, else def.
func (s *StyledNode) Lookup(name, fallback string, def Value) Value {
	if v, ok := s.Value(name); ok {
		return v
	}
	if v, ok := s.Value(fallback); ok {
		return v
	}
	return def
}

// TextChildren returns the direct text children of the node.
func (s *StyledNode) TextChildren() []*html.Node {
	var texts []*html.Node
	for _, c := range s.Node.Children {
		if c.Type == html.TextNode {
			texts = append(texts, c)
		}
	}
	return texts
}
