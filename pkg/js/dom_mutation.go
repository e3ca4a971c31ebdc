package js

import (
	"github.com/dop251/goja"

	"ukechug/pkg/html"
)

// appendChildFn returns a JS function that implements node.appendChild(child).
func (e *elementAccessor) appendChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		child := e.nodeArg(call, 0, "appendChild")
		if child.Contains(e.node) {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': The new child contains the parent"))
		}
		e.node.AddChild(child)
		return e.ctx.elementProxy(child)
	}
}

// removeChildFn returns a JS function that implements node.removeChild(child).
func (e *elementAccessor) removeChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		child := e.nodeArg(call, 0, "removeChild")
		removed := e.node.RemoveChild(child)
		if removed == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': The node to be removed is not a child of this node"))
		}
		return e.ctx.elementProxy(removed)
	}
}

// insertBeforeFn returns a JS function that implements node.insertBefore(newNode, refNode).
func (e *elementAccessor) insertBeforeFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		newChild := e.nodeArg(call, 0, "insertBefore")
		if newChild.Contains(e.node) {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'insertBefore': The new child contains the parent"))
		}
		var refChild *html.Node
		if len(call.Arguments) > 1 {
			refChild = e.ctx.unwrapNode(call.Arguments[1])
		}
		e.node.InsertBefore(newChild, refChild)
		return e.ctx.elementProxy(newChild)
	}
}

// appendFn returns a JS function for element.append(...nodes).
// Accepts nodes and strings (strings become text nodes).
func (e *elementAccessor) appendFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		for _, n := range e.nodesOrText(call.Arguments) {
			e.node.AddChild(n)
		}
		return goja.Undefined()
	}
}

// prependFn returns a JS function for element.prepend(...nodes).
func (e *elementAccessor) prependFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		nodes := e.nodesOrText(call.Arguments)
		var first *html.Node
		if len(e.node.Children) > 0 {
			first = e.node.Children[0]
		}
		for _, n := range nodes {
			if n == first {
				continue
			}
			e.node.InsertBefore(n, first)
		}
		return goja.Undefined()
	}
}

// nodeArg unwraps argument i, throwing a TypeError when it is not a node.
func (e *elementAccessor) nodeArg(call goja.FunctionCall, i int, method string) *html.Node {
	if len(call.Arguments) <= i {
		panic(e.ctx.vm.NewTypeError("Failed to execute '%s': %d argument(s) required", method, i+1))
	}
	n := e.ctx.unwrapNode(call.Arguments[i])
	if n == nil {
		panic(e.ctx.vm.NewTypeError("Failed to execute '%s': parameter %d is not a Node", method, i+1))
	}
	return n
}

// nodesOrText converts append/prepend arguments: proxies unwrap to their
// nodes, anything else becomes a text node.
func (e *elementAccessor) nodesOrText(args []goja.Value) []*html.Node {
	nodes := make([]*html.Node, 0, len(args))
	for _, arg := range args {
		if n := e.ctx.unwrapNode(arg); n != nil {
			nodes = append(nodes, n)
			continue
		}
		nodes = append(nodes, html.NewText(arg.String()))
	}
	return nodes
}
