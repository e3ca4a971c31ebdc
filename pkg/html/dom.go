package html

import (
	"fmt"
	"io"
	"strings"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string // text or comment data
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// Document is the output of the markup loader. Style and script blocks are
// lifted out of the tree in source order. StyleLinks holds the href of every
// <link rel="stylesheet">, also in source order.
type Document struct {
	Root        *Node
	Stylesheets []string
	Scripts     []string
	StyleLinks  []string
}

// NewElement creates an element node. attrs may be nil.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: attrs,
		Children:   make([]*Node, 0, len(children)),
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Text: data}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

func (n *Node) RemoveAttribute(name string) {
	delete(n.Attributes, name)
}

// ID returns the id attribute, if present.
func (n *Node) ID() (string, bool) {
	return n.GetAttribute("id")
}

// Classes returns the whitespace-separated entries of the class attribute.
func (n *Node) Classes() []string {
	cls, ok := n.GetAttribute("class")
	if !ok {
		return nil
	}
	return strings.Fields(cls)
}

func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddChild adds a child node and sets up the parent relationship.
// A child that already has a parent is detached from it first.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// InsertBefore inserts child before ref. A nil ref, or a ref that is not a
// child of n, appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	idx := -1
	if ref != nil && ref.Parent == n {
		idx = ref.IndexInParent()
	}
	child.Parent = n
	if idx < 0 {
		n.Children = append(n.Children, child)
		return
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[idx+1:], n.Children[idx:])
	n.Children[idx] = child
}

// IndexInParent returns the position of n among its parent's children, or
// -1 for a detached node.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// AppendText creates a text node and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Type != CommentNode {
			sb.WriteString(c.TextContent())
		}
	}
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.Type == TextNode {
		n.Text = text
		return
	}
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = n.Children[:0]
	n.AppendText(text)
}

// Dump writes an indented outline of the subtree. Whitespace-only text is
// omitted.
func (n *Node) Dump(w io.Writer) {
	n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case ElementNode:
		fmt.Fprintf(w, "%s<%s>\n", indent, n.TagName)
		for _, c := range n.Children {
			c.dump(w, depth+1)
		}
		fmt.Fprintf(w, "%s</%s>\n", indent, n.TagName)
	case TextNode:
		if t := strings.TrimSpace(n.Text); t != "" {
			fmt.Fprintf(w, "%s%q\n", indent, t)
		}
	case CommentNode:
		fmt.Fprintf(w, "%s<!-- %s -->\n", indent, n.Text)
	}
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
