package dom

import "strings"

// Element represents an element in the tree: a container node carrying an
// attribute map, the cached split of its class attribute, and a cached
// resolved style.
type Element Node

// NewElement creates a detached element with the given tag name. Tag names
// are stored lower-case.
func NewElement(tagName string) *Element {
	tagName = strings.ToLower(tagName)
	n := newNode(ElementNode, tagName)
	n.elementData = &elementData{tagName: tagName}
	return (*Element)(n)
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the element's tag name in lower case.
func (e *Element) TagName() string {
	return e.AsNode().elementData.tagName
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the raw class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// Classes returns the cached whitespace-split class names. Callers must not
// modify the returned slice.
func (e *Element) Classes() []string {
	return e.AsNode().elementData.classes
}

// HasClass returns true if the element carries the given class name.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	return e.AsNode().elementData.attrs[name]
}

// HasAttribute returns true if the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.AsNode().elementData.attrs[name]
	return ok
}

// AttributeNames returns the attribute names in the order they were first
// set. Callers must not modify the returned slice.
func (e *Element) AttributeNames() []string {
	return e.AsNode().elementData.attrOrder
}

// SetAttribute sets an attribute value and keeps the lookup tables and the
// style cache consistent with the change. Setting an attribute to its
// current value is a no-op.
func (e *Element) SetAttribute(name, value string) {
	ed := e.AsNode().elementData
	old, existed := ed.attrs[name]
	if existed && old == value {
		return
	}
	if ed.attrs == nil {
		ed.attrs = make(map[string]string)
	}
	if !existed {
		ed.attrOrder = append(ed.attrOrder, name)
	}
	ed.attrs[name] = value
	e.attributeChanged(name, old, value)
}

// RemoveAttribute deletes an attribute. Removing an absent attribute is a
// no-op.
func (e *Element) RemoveAttribute(name string) {
	ed := e.AsNode().elementData
	old, existed := ed.attrs[name]
	if !existed {
		return
	}
	delete(ed.attrs, name)
	for i, an := range ed.attrOrder {
		if an == name {
			ed.attrOrder = append(ed.attrOrder[:i], ed.attrOrder[i+1:]...)
			break
		}
	}
	e.attributeChanged(name, old, "")
}

// attributeChanged routes every attribute mutation through the re-indexing
// and style-invalidation rules. Lookup-relevant attributes are always
// re-indexed; style is invalidated only when the attached resolver reports
// that some loaded rule actually depends on the change.
func (e *Element) attributeChanged(name, old, value string) {
	lk := e.lookupTables()
	switch name {
	case "class":
		e.classChanged(value)
		return
	case "id":
		if lk != nil {
			lk.updateID(e, old, value)
		}
	case "name":
		if lk != nil {
			lk.updateName(e, old, value)
		}
	case "type":
		if lk != nil {
			lk.updateType(e, old, value)
		}
	case "style":
		// Inline style feeds directly into resolution.
		e.InvalidateComputedStyle()
		return
	}
	if r := e.styleResolver(); r != nil && r.UsesAttribute(name) {
		e.InvalidateComputedStyle()
	}
}

// classChanged applies a class attribute change as the symmetric difference
// between the old and new class-name sets. Only the changed names touch the
// lookup tables, and style is invalidated at most once, and only when a
// changed name is referenced by some loaded rule.
func (e *Element) classChanged(newRaw string) {
	ed := e.AsNode().elementData
	oldClasses := ed.classes
	newClasses := strings.Fields(newRaw)
	ed.classes = newClasses

	lk := e.lookupTables()
	r := e.styleResolver()
	invalidate := false

	for _, c := range oldClasses {
		if !containsString(newClasses, c) {
			if lk != nil {
				lk.removeClass(e, c)
			}
			if r != nil && r.UsesClass(c) {
				invalidate = true
			}
		}
	}
	for _, c := range newClasses {
		if !containsString(oldClasses, c) {
			if lk != nil {
				lk.addClass(e, c)
			}
			if r != nil && r.UsesClass(c) {
				invalidate = true
			}
		}
	}
	if invalidate {
		e.InvalidateComputedStyle()
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FirstElementChild returns the first child that is an element, or nil.
func (e *Element) FirstElementChild() *Element {
	return firstElementChild(e.AsNode())
}

// LastElementChild returns the last child that is an element, or nil.
func (e *Element) LastElementChild() *Element {
	return lastElementChild(e.AsNode())
}

// NextElementSibling returns the closest following sibling element, or nil.
func (e *Element) NextElementSibling() *Element {
	for s := e.AsNode().NextSibling(); s != nil; s = s.NextSibling() {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// PreviousElementSibling returns the closest preceding sibling element, or
// nil.
func (e *Element) PreviousElementSibling() *Element {
	for s := e.AsNode().PreviousSibling(); s != nil; s = s.PreviousSibling() {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// ChildElements returns a snapshot of the direct element children.
func (e *Element) ChildElements() []*Element {
	return childElements(e.AsNode())
}

// lookupTables returns the lookup tables of the root this element is
// attached under, or nil while detached.
func (e *Element) lookupTables() *ElementLookup {
	if root := e.AsNode().root; root != nil {
		return root.documentData.lookup
	}
	return nil
}

// styleResolver returns the resolver of the root this element is attached
// under, or nil.
func (e *Element) styleResolver() StyleResolver {
	if root := e.AsNode().root; root != nil {
		return root.documentData.resolver
	}
	return nil
}

func firstElementChild(n *Node) *Element {
	var found *Element
	n.EachChild(func(c *Node) bool {
		if c.nodeType == ElementNode {
			found = (*Element)(c)
			return false
		}
		return true
	})
	return found
}

func lastElementChild(n *Node) *Element {
	var found *Element
	n.EachChild(func(c *Node) bool {
		if c.nodeType == ElementNode {
			found = (*Element)(c)
		}
		return true
	})
	return found
}

func childElements(n *Node) []*Element {
	out := make([]*Element, 0, n.childElements)
	n.EachChild(func(c *Node) bool {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
		return true
	})
	return out
}
