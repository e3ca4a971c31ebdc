package js

import (
	"strings"

	"github.com/dop251/goja"

	"ukechug/pkg/html"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *html.Node (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *html.Document
	cache map[*html.Node]goja.Value
}

func newDOMContext(vm *goja.Runtime, doc *html.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, doc *html.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || doc.Root == nil {
			return goja.Null()
		}
		node := getElementById(doc.Root, call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || doc.Root == nil {
			return ctx.elementArray(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.elementArray(getElementsByTagName(doc.Root, tag))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || doc.Root == nil {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(getElementsByClassName(doc.Root, call.Arguments[0].String()))
	})

	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(html.NewElement(call.Arguments[0].String(), nil))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(html.NewText(text))
	})

	if doc.Root != nil {
		registerQuerySelectors(ctx, docObj, doc.Root)
	}

	docObj.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if doc.Root == nil {
			return goja.Null()
		}
		return ctx.elementProxy(doc.Root)
	}), nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if doc.Root == nil {
			return goja.Null()
		}
		if body := getElementsByTagName(doc.Root, "body"); len(body) > 0 {
			return ctx.elementProxy(body[0])
		}
		return goja.Null()
	}), nil, goja.FLAG_TRUE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

// getElementById walks the tree and returns the first node with matching id.
func getElementById(node *html.Node, id string) *html.Node {
	var found *html.Node
	walkTree(node, func(n *html.Node) bool {
		if v, ok := n.ID(); ok && v == id {
			found = n
			return true
		}
		return false
	})
	return found
}

// getElementsByTagName collects all element nodes with the given tag name.
func getElementsByTagName(node *html.Node, tag string) []*html.Node {
	var result []*html.Node
	walkTree(node, func(n *html.Node) bool {
		if tag == "*" || n.TagName == tag {
			result = append(result, n)
		}
		return false
	})
	return result
}

// getElementsByClassName collects all element nodes that have the given class.
func getElementsByClassName(node *html.Node, cls string) []*html.Node {
	var result []*html.Node
	walkTree(node, func(n *html.Node) bool {
		if n.HasClass(cls) {
			result = append(result, n)
		}
		return false
	})
	return result
}

// walkTree performs a DFS walk over the elements of a tree. The callback
// returns true to stop.
func walkTree(node *html.Node, fn func(*html.Node) bool) bool {
	if node.Type == html.ElementNode {
		if fn(node) {
			return true
		}
	}
	for _, child := range node.Children {
		if walkTree(child, fn) {
			return true
		}
	}
	return false
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	values := make([]interface{}, len(nodes))
	for i, n := range nodes {
		values[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(values...)
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an html.Node.
func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *html.Node behind a proxy created by elementProxy.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

var elementKeys = []string{
	"nodeType", "nodeName", "nodeValue", "tagName", "id", "className",
	"textContent", "getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "childNodes", "childElementCount", "parentElement", "parentNode",
	"appendChild", "removeChild", "insertBefore", "append", "prepend", "remove",
	"querySelector", "querySelectorAll", "matches", "closest",
	"classList", "contains", "hasChildNodes",
	"getElementsByTagName", "getElementsByClassName",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	node := e.node

	switch key {
	case "nodeType":
		if node.Type == html.TextNode {
			return vm.ToValue(3) // Node.TEXT_NODE
		}
		return vm.ToValue(1) // Node.ELEMENT_NODE
	case "nodeName":
		if node.Type == html.TextNode {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(node.TagName))
	case "nodeValue":
		if node.Type == html.TextNode {
			return vm.ToValue(node.Text)
		}
		return goja.Null()
	case "tagName":
		if node.Type != html.ElementNode {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(node.TagName))
	case "id":
		id, _ := node.ID()
		return vm.ToValue(id)
	case "className":
		cls, _ := node.GetAttribute("class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(node.TextContent())

	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := node.GetAttribute(strings.ToLower(call.Arguments[0].String()))
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(vm.NewTypeError("Failed to execute 'setAttribute': 2 arguments required"))
			}
			node.SetAttribute(strings.ToLower(call.Arguments[0].String()), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := node.GetAttribute(strings.ToLower(call.Arguments[0].String()))
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				node.RemoveAttribute(strings.ToLower(call.Arguments[0].String()))
			}
			return goja.Undefined()
		})

	case "children":
		return e.ctx.elementArray(elementChildren(node))
	case "childNodes":
		return e.ctx.elementArray(node.Children)
	case "childElementCount":
		return vm.ToValue(len(elementChildren(node)))
	case "parentElement", "parentNode":
		if node.Parent != nil && node.Parent.Type == html.ElementNode {
			return e.ctx.elementProxy(node.Parent)
		}
		return goja.Null()

	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "insertBefore":
		return vm.ToValue(e.insertBeforeFn())
	case "append":
		return vm.ToValue(e.appendFn())
	case "prepend":
		return vm.ToValue(e.prependFn())
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if node.Parent != nil {
				node.Parent.RemoveChild(node)
			}
			return goja.Undefined()
		})

	case "querySelector":
		return vm.ToValue(querySelectorFn(e.ctx, node))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(e.ctx, node))
	case "matches":
		return vm.ToValue(matchesFn(e.ctx, node))
	case "closest":
		return vm.ToValue(closestFn(e.ctx, node))

	case "classList":
		return newClassListProxy(e.ctx, node)

	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := e.ctx.unwrapNode(call.Arguments[0])
			return vm.ToValue(other != nil && node.Contains(other))
		})
	case "hasChildNodes":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(len(node.Children) > 0)
		})

	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			tag := strings.ToLower(call.Arguments[0].String())
			var result []*html.Node
			for _, child := range node.Children {
				result = append(result, getElementsByTagName(child, tag)...)
			}
			return e.ctx.elementArray(result)
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			cls := call.Arguments[0].String()
			var result []*html.Node
			for _, child := range node.Children {
				result = append(result, getElementsByClassName(child, cls)...)
			}
			return e.ctx.elementArray(result)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.node.SetTextContent(val.String())
		return true
	case "className":
		e.node.SetAttribute("class", val.String())
		return true
	case "id":
		e.node.SetAttribute("id", val.String())
		return true
	case "nodeValue":
		if e.node.Type == html.TextNode {
			e.node.Text = val.String()
		}
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

func elementChildren(node *html.Node) []*html.Node {
	var children []*html.Node
	for _, child := range node.Children {
		if child.Type == html.ElementNode {
			children = append(children, child)
		}
	}
	return children
}
