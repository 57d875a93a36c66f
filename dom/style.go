package dom

// ResolvedStyle is the opaque result of the external style resolution
// function. The tree caches it per element and decides when resolution runs;
// it never inspects the value.
type ResolvedStyle interface{}

// StyleResolver is the narrow contract the tree consumes from the style
// system. ComputeStyle must be pure with respect to the tree: the tree
// supplies the element and its parent's already-resolved style and caches
// the output. The two dependency queries let attribute and class mutations
// skip invalidation when no loaded rule cares about the change.
type StyleResolver interface {
	ComputeStyle(el *Element, parent ResolvedStyle) ResolvedStyle
	UsesClass(name string) bool
	UsesAttribute(name string) bool
}

// CachedStyle returns the element's cached resolved style without triggering
// resolution. nil means stale.
func (e *Element) CachedStyle() ResolvedStyle {
	return e.AsNode().elementData.computed
}

// InvalidateComputedStyle drops the element's cached style and, when the
// element is attached to a style-bearing root, marks it pending on that
// root's dirty queue.
func (e *Element) InvalidateComputedStyle() {
	n := e.AsNode()
	n.elementData.computed = nil
	if root := n.root; root != nil && root.documentData.resolver != nil {
		root.documentData.dirty.add(e)
	}
}

// InvalidateSubtreeStyles invalidates the cached style of this element and
// every descendant element.
func (e *Element) InvalidateSubtreeStyles() {
	stack := []*Node{e.AsNode()}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.nodeType == ElementNode {
			(*Element)(nd).InvalidateComputedStyle()
		}
		nd.EachChild(func(c *Node) bool {
			stack = append(stack, c)
			return true
		})
	}
}

// GetComputedStyle returns the element's resolved style, computing it on
// demand. A stale element first resolves its parent chain up to the nearest
// ancestor with a valid cache, so no element is ever resolved against a
// stale parent style. Returns nil when the element is not attached under a
// root with a resolver.
func (e *Element) GetComputedStyle() ResolvedStyle {
	n := e.AsNode()
	if n.elementData.computed != nil {
		return n.elementData.computed
	}
	root := n.root
	if root == nil || root.documentData.resolver == nil {
		return nil
	}
	var parentStyle ResolvedStyle
	if p := n.ParentElement(); p != nil {
		parentStyle = p.GetComputedStyle()
	}
	style := root.documentData.resolver.ComputeStyle(e, parentStyle)
	n.elementData.computed = style
	root.documentData.dirty.remove(e)
	return style
}
