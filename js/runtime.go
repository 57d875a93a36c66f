// Package js exposes a document to scripts through a goja runtime. The
// bindings cover the operations the tree engine supports: lookups, selector
// queries, structural mutation, attributes, and computed-style reads.
package js

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dop251/goja"

	"github.com/styledom/styledom/css"
	"github.com/styledom/styledom/dom"
)

// nativeKey is the hidden property linking a script object back to its node.
const nativeKey = "__native"

// Runtime owns one goja VM bound to one document.
type Runtime struct {
	vm       *goja.Runtime
	doc      *dom.Document
	wrappers map[*dom.Node]*goja.Object
}

// NewRuntime creates a VM with document, getComputedStyle, and console bound
// as globals.
func NewRuntime(doc *dom.Document) *Runtime {
	r := &Runtime{
		vm:       goja.New(),
		doc:      doc,
		wrappers: make(map[*dom.Node]*goja.Object),
	}
	r.vm.Set("document", r.documentObject())
	r.vm.Set("getComputedStyle", r.getComputedStyle)
	r.vm.Set("console", r.consoleObject())
	return r
}

// Run executes a script against the bound document.
func (r *Runtime) Run(src string) (goja.Value, error) {
	return r.vm.RunString(src)
}

func (r *Runtime) documentObject() *goja.Object {
	obj := r.vm.NewObject()
	obj.Set("getElementById", func(id string) goja.Value {
		return r.wrapElement(r.doc.GetElementById(id))
	})
	obj.Set("getElementsByClassName", func(class string) goja.Value {
		return r.wrapElementSet(r.doc.GetElementsByClassname(class))
	})
	obj.Set("getElementsByTagName", func(tag string) goja.Value {
		return r.wrapElementSet(r.doc.GetElementsByType(strings.ToLower(tag)))
	})
	obj.Set("getElementsByName", func(name string) goja.Value {
		return r.wrapElementSet(r.doc.GetElementsByName(name))
	})
	obj.Set("querySelector", func(selector string) goja.Value {
		el, err := css.QuerySelector(r.doc, selector)
		if err != nil {
			panic(r.vm.NewTypeError("invalid selector: %s", selector))
		}
		return r.wrapElement(el)
	})
	obj.Set("querySelectorAll", func(selector string) goja.Value {
		els, err := css.Find(r.doc, selector)
		if err != nil {
			panic(r.vm.NewTypeError("invalid selector: %s", selector))
		}
		out := make([]goja.Value, len(els))
		for i, el := range els {
			out[i] = r.wrapNode(el.AsNode())
		}
		return r.vm.ToValue(out)
	})
	obj.Set("createElement", func(tag string) goja.Value {
		return r.wrapNode(dom.NewElement(tag).AsNode())
	})
	obj.Set("createTextNode", func(data string) goja.Value {
		return r.wrapNode(dom.NewText(data))
	})
	obj.Set("createComment", func(data string) goja.Value {
		return r.wrapNode(dom.NewComment(data))
	})
	obj.DefineAccessorProperty("documentElement",
		r.vm.ToValue(func() goja.Value { return r.wrapElement(r.doc.DocumentElement()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("body",
		r.vm.ToValue(func() goja.Value { return r.wrapFirst(r.doc.GetElementsByType("body")) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.Set(nativeKey, r.doc.AsNode())
	return obj
}

func (r *Runtime) consoleObject() *goja.Object {
	obj := r.vm.NewObject()
	obj.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Println(strings.Join(parts, " "))
		return goja.Undefined()
	})
	return obj
}

// getComputedStyle backs the global of the same name. The returned object
// reads through to the live computed style.
func (r *Runtime) getComputedStyle(v goja.Value) goja.Value {
	el := r.elementArg(v)
	if el == nil {
		panic(r.vm.NewTypeError("getComputedStyle expects an element"))
	}
	obj := r.vm.NewObject()
	obj.Set("getPropertyValue", func(property string) string {
		cs, _ := el.GetComputedStyle().(*css.ComputedStyle)
		if cs == nil {
			return ""
		}
		return cs.GetPropertyValue(property)
	})
	return obj
}

// wrapNode returns the script object for a node, creating and caching it on
// first use so identity comparisons in scripts hold.
func (r *Runtime) wrapNode(n *dom.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	if obj, ok := r.wrappers[n]; ok {
		return obj
	}
	obj := r.vm.NewObject()
	r.wrappers[n] = obj
	obj.Set(nativeKey, n)

	obj.Set("appendChild", func(child goja.Value) goja.Value {
		c := r.nodeArg(child)
		if _, err := n.AppendChildWithError(c); err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.wrapNode(c)
	})
	obj.Set("insertBefore", func(child, ref goja.Value) goja.Value {
		c := r.nodeArg(child)
		if _, err := n.InsertBeforeWithError(c, r.nodeArg(ref)); err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.wrapNode(c)
	})
	obj.Set("removeChild", func(child goja.Value) goja.Value {
		c := r.nodeArg(child)
		if _, err := n.RemoveChildWithError(c); err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.wrapNode(c)
	})
	obj.Set("replaceChild", func(newChild, oldChild goja.Value) goja.Value {
		old := r.nodeArg(oldChild)
		if _, err := n.ReplaceChildWithError(r.nodeArg(newChild), old); err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.wrapNode(old)
	})
	obj.Set("contains", func(other goja.Value) bool {
		return n.Contains(r.nodeArg(other))
	})
	obj.Set("compareDocumentPosition", func(other goja.Value) int {
		return int(n.CompareDocumentPosition(r.nodeArg(other)))
	})
	obj.DefineAccessorProperty("nodeType",
		r.vm.ToValue(func() int { return int(n.NodeType()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("nodeName",
		r.vm.ToValue(func() string { return strings.ToUpper(n.NodeName()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("parentNode",
		r.vm.ToValue(func() goja.Value { return r.wrapNode(n.ParentNode()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("firstChild",
		r.vm.ToValue(func() goja.Value { return r.wrapNode(n.FirstChild()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("nextSibling",
		r.vm.ToValue(func() goja.Value { return r.wrapNode(n.NextSibling()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("childNodes",
		r.vm.ToValue(func() goja.Value {
			kids := n.ChildNodes()
			out := make([]goja.Value, len(kids))
			for i, c := range kids {
				out[i] = r.wrapNode(c)
			}
			return r.vm.ToValue(out)
		}),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("textContent",
		r.vm.ToValue(func() string { return n.TextContent() }),
		r.vm.ToValue(func(s string) {
			n.Clear()
			if s != "" {
				n.AppendChild(dom.NewText(s))
			}
		}),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("outerHTML",
		r.vm.ToValue(func() string { return n.OuterHTML() }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	if n.NodeType() == dom.ElementNode {
		r.bindElement(obj, (*dom.Element)(n))
	}
	return obj
}

// bindElement adds the element-only surface to a node wrapper.
func (r *Runtime) bindElement(obj *goja.Object, el *dom.Element) {
	obj.Set("getAttribute", func(name string) goja.Value {
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return r.vm.ToValue(el.GetAttribute(name))
	})
	obj.Set("setAttribute", func(name, value string) { el.SetAttribute(name, value) })
	obj.Set("removeAttribute", func(name string) { el.RemoveAttribute(name) })
	obj.Set("hasAttribute", func(name string) bool { return el.HasAttribute(name) })
	obj.Set("matches", func(selector string) bool { return css.MatchesSelector(el, selector) })
	obj.DefineAccessorProperty("tagName",
		r.vm.ToValue(func() string { return strings.ToUpper(el.TagName()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("id",
		r.vm.ToValue(func() string { return el.Id() }),
		r.vm.ToValue(func(id string) { el.SetId(id) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("className",
		r.vm.ToValue(func() string { return el.ClassName() }),
		r.vm.ToValue(func(c string) { el.SetClassName(c) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("innerHTML",
		r.vm.ToValue(func() string { return el.InnerHTML() }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("parentElement",
		r.vm.ToValue(func() goja.Value {
			if p := el.AsNode().ParentElement(); p != nil {
				return r.wrapNode(p.AsNode())
			}
			return goja.Null()
		}),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// wrapElement is wrapNode for element results that may be nil.
func (r *Runtime) wrapElement(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return r.wrapNode(el.AsNode())
}

// wrapElementSet flattens a lookup set into a document-ordered array.
func (r *Runtime) wrapElementSet(set dom.ElementSet) goja.Value {
	els := make([]*dom.Element, 0, set.Len())
	for el := range set {
		els = append(els, el)
	}
	sortElements(els)
	out := make([]goja.Value, len(els))
	for i, el := range els {
		out[i] = r.wrapNode(el.AsNode())
	}
	return r.vm.ToValue(out)
}

func (r *Runtime) wrapFirst(set dom.ElementSet) goja.Value {
	for el := range set {
		return r.wrapNode(el.AsNode())
	}
	return goja.Null()
}

// nodeArg recovers the native node behind a script value. null and undefined
// map to nil.
func (r *Runtime) nodeArg(v goja.Value) *dom.Node {
	if v == nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		panic(r.vm.NewTypeError("expected a node"))
	}
	native := obj.Get(nativeKey)
	if native == nil {
		panic(r.vm.NewTypeError("expected a node"))
	}
	n, ok := native.Export().(*dom.Node)
	if !ok {
		panic(r.vm.NewTypeError("expected a node"))
	}
	return n
}

func (r *Runtime) elementArg(v goja.Value) *dom.Element {
	n := r.nodeArg(v)
	if n == nil || n.NodeType() != dom.ElementNode {
		return nil
	}
	return (*dom.Element)(n)
}

func sortElements(els []*dom.Element) {
	sort.Slice(els, func(i, j int) bool {
		return els[i].AsNode().ComparePosition(els[j].AsNode()) == dom.PositionBefore
	})
}
