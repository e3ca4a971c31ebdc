package js

import (
	"github.com/dop251/goja"

	"ukechug/pkg/css"
	"ukechug/pkg/html"
)

// registerQuerySelectors adds querySelector/querySelectorAll to a document object.
func registerQuerySelectors(ctx *domContext, obj *goja.Object, root *html.Node) {
	obj.Set("querySelector", querySelectorFn(ctx, root))
	obj.Set("querySelectorAll", querySelectorAllFn(ctx, root))
}

// selectorArg parses the selector argument with the same simple-selector
// grammar the stylesheet parser accepts. Anything else is a SyntaxError.
func selectorArg(ctx *domContext, call goja.FunctionCall, method string) []css.Selector {
	if len(call.Arguments) == 0 {
		panic(ctx.vm.NewTypeError("Failed to execute '%s': 1 argument required", method))
	}
	selectors, err := css.ParseSelectorGroup(call.Arguments[0].String())
	if err != nil {
		panic(ctx.vm.NewGoError(err))
	}
	return selectors
}

func matchesAny(n *html.Node, selectors []css.Selector) bool {
	for _, sel := range selectors {
		if css.MatchesSelector(n, sel) {
			return true
		}
	}
	return false
}

// querySelectorFn returns a JS function implementing querySelector. The
// search covers descendants of root, not root itself.
func querySelectorFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		selectors := selectorArg(ctx, call, "querySelector")

		var result *html.Node
		walkTree(root, func(n *html.Node) bool {
			if n != root && matchesAny(n, selectors) {
				result = n
				return true
			}
			return false
		})

		if result == nil {
			return goja.Null()
		}
		return ctx.elementProxy(result)
	}
}

// querySelectorAllFn returns a JS function implementing querySelectorAll.
func querySelectorAllFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		selectors := selectorArg(ctx, call, "querySelectorAll")

		var results []*html.Node
		walkTree(root, func(n *html.Node) bool {
			if n != root && matchesAny(n, selectors) {
				results = append(results, n)
			}
			return false
		})
		return ctx.elementArray(results)
	}
}

// matchesFn returns a JS function implementing element.matches(selector).
func matchesFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		selectors := selectorArg(ctx, call, "matches")
		return ctx.vm.ToValue(node.Type == html.ElementNode && matchesAny(node, selectors))
	}
}

// closestFn returns a JS function implementing element.closest(selector).
func closestFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		selectors := selectorArg(ctx, call, "closest")
		for current := node; current != nil; current = current.Parent {
			if current.Type == html.ElementNode && matchesAny(current, selectors) {
				return ctx.elementProxy(current)
			}
		}
		return goja.Null()
	}
}
