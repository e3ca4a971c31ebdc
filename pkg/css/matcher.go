package css

import "ukechug/pkg/html"

// MatchesSelector reports whether an element satisfies every constraint the
// selector carries. Non-element nodes never match.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode {
		return false
	}

	if selector.TagName != "" && node.TagName != selector.TagName {
		return false
	}

	if selector.ID != "" {
		if id, ok := node.ID(); !ok || id != selector.ID {
			return false
		}
	}

	if len(selector.Classes) > 0 {
		nodeClasses := node.Classes()
		for _, required := range selector.Classes {
			found := false
			for _, c := range nodeClasses {
				if c == required {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	return true
}

// MatchedRule pairs a matching rule with the specificity it matched at and
// its position in the stylesheet.
type MatchedRule struct {
	Specificity Specificity
	Rule        *Rule
	Order       int
}

// matchRule returns the highest specificity among the rule's selectors that
// match the node.
func matchRule(node *html.Node, rule *Rule) (Specificity, bool) {
	var best Specificity
	matched := false
	for _, sel := range rule.Selectors {
		if !MatchesSelector(node, sel) {
			continue
		}
		if spec := sel.Specificity(); !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

// FindMatchingRules returns all rules that match the given node, in
// stylesheet order.
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []MatchedRule {
	if stylesheet == nil {
		return nil
	}
	var matches []MatchedRule
	for i := range stylesheet.Rules {
		rule := &stylesheet.Rules[i]
		if spec, ok := matchRule(node, rule); ok {
			matches = append(matches, MatchedRule{Specificity: spec, Rule: rule, Order: i})
		}
	}
	return matches
}
