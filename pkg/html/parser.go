package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Parser builds a Document from markup. Tokenization is delegated to
// golang.org/x/net/html; tree construction is a simple open-element stack
// without the HTML5 insertion-mode machinery.
type Parser struct {
	tokenizer *xhtml.Tokenizer
	doc       *Document
	top       *Node   // holder for top-level nodes
	stack     []*Node // open elements, top is the current parent
	rawTag    string  // "style" or "script" while collecting raw text
	rawText   strings.Builder
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		tokenizer: xhtml.NewTokenizer(r),
		doc:       &Document{},
		top:       &Node{Type: ElementNode, TagName: "#top"},
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.top}

	for {
		tt := p.tokenizer.Next()
		if tt == xhtml.ErrorToken {
			if err := p.tokenizer.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizer error: %w", err)
			}
			break
		}

		switch tt {
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			tok := p.tokenizer.Token()
			if tok.Data == "style" || tok.Data == "script" {
				if tt == xhtml.StartTagToken {
					p.rawTag = tok.Data
					p.rawText.Reset()
				}
				continue
			}

			// Auto-close <p> when a block-level element is encountered inside it
			if isBlockElement(tok.Data) {
				p.autoCloseP()
			}

			node := NewElement(tok.Data, attributes(tok))
			if href, ok := stylesheetLink(node); ok {
				p.doc.StyleLinks = append(p.doc.StyleLinks, href)
			}
			p.currentParent().AddChild(node)
			if tt == xhtml.StartTagToken && !isVoidElement(node.TagName) {
				p.stack = append(p.stack, node)
			}

		case xhtml.EndTagToken:
			tok := p.tokenizer.Token()
			if p.rawTag != "" && tok.Data == p.rawTag {
				p.flushRaw()
				continue
			}
			p.closeTag(tok.Data)

		case xhtml.TextToken:
			text := string(p.tokenizer.Text())
			if p.rawTag != "" {
				p.rawText.WriteString(text)
				continue
			}
			p.currentParent().AppendText(text)

		case xhtml.CommentToken:
			p.currentParent().AddChild(NewComment(string(p.tokenizer.Text())))
		}
	}

	// An unterminated <style> or <script> still contributes its text.
	if p.rawTag != "" {
		p.flushRaw()
	}

	p.doc.Root = p.selectRoot()
	return p.doc, nil
}

func (p *Parser) flushRaw() {
	switch p.rawTag {
	case "style":
		p.doc.Stylesheets = append(p.doc.Stylesheets, p.rawText.String())
	case "script":
		p.doc.Scripts = append(p.doc.Scripts, p.rawText.String())
	}
	p.rawTag = ""
	p.rawText.Reset()
}

// selectRoot returns the single top-level element, or wraps every top-level
// node in a synthetic <html> element when there is not exactly one.
func (p *Parser) selectRoot() *Node {
	var elements []*Node
	for _, c := range p.top.Children {
		if c.Type == ElementNode {
			elements = append(elements, c)
			continue
		}
		if c.Type == TextNode && strings.TrimSpace(c.Text) != "" {
			elements = append(elements, nil) // forces wrapping
		}
	}
	if len(elements) == 1 && elements[0] != nil {
		root := elements[0]
		root.Parent = nil
		return root
	}

	children := append([]*Node(nil), p.top.Children...)
	return NewElement("html", nil, children...)
}

func (p *Parser) currentParent() *Node {
	return p.stack[len(p.stack)-1]
}

// closeTag pops the stack until the matching tag is found and closed.
// End tags with no open element of that name are ignored.
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> element if one is on the stack
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		// Don't close past block-level containers
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

func attributes(tok xhtml.Token) map[string]string {
	if len(tok.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		attrs[strings.ToLower(a.Key)] = a.Val
	}
	return attrs
}

// stylesheetLink reports the href of a <link rel="stylesheet">.
func stylesheetLink(n *Node) (string, bool) {
	if n.TagName != "link" {
		return "", false
	}
	rel, _ := n.GetAttribute("rel")
	href, ok := n.GetAttribute("href")
	if !ok || href == "" {
		return "", false
	}
	for _, r := range strings.Fields(strings.ToLower(rel)) {
		if r == "stylesheet" {
			return href, true
		}
	}
	return "", false
}

// isBlockElement returns true for elements that auto-close <p>
func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

// Parse parses markup from a string.
func Parse(src string) (*Document, error) {
	return NewParser(strings.NewReader(src)).Parse()
}
