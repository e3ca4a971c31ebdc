package css

import (
	"sort"

	"ukechug/pkg/html"
)

// PropertyMap holds an element's specified values by property name.
type PropertyMap map[string]Value

// ComputeStyle resolves the specified values of one node. Matching rules are
// applied lowest specificity first; rules of equal specificity are applied in
// stylesheet order, so the later one overwrites.
func ComputeStyle(node *html.Node, stylesheet *Stylesheet) PropertyMap {
	values := make(PropertyMap)
	if node.Type != html.ElementNode {
		return values
	}

	rules := FindMatchingRules(node, stylesheet)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Specificity != rules[j].Specificity {
			return rules[i].Specificity.Less(rules[j].Specificity)
		}
		return rules[i].Order < rules[j].Order
	})

	for _, m := range rules {
		for _, decl := range m.Rule.Declarations {
			values[decl.Name] = decl.Value
		}
	}
	return values
}

// StyleTree styles every node under root. Nothing is inherited: each node's
// map holds only what matched that node.
func StyleTree(root *html.Node, stylesheet *Stylesheet) *StyledNode {
	styled := &StyledNode{
		Node:            root,
		SpecifiedValues: ComputeStyle(root, stylesheet),
		Children:        make([]*StyledNode, 0, len(root.Children)),
	}
	for _, child := range root.Children {
		styled.Children = append(styled.Children, StyleTree(child, stylesheet))
	}
	return styled
}
