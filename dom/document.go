package dom

// Document is the root container of a styled tree. It owns the element
// lookup tables and the style dirty queue for everything attached beneath
// it.
type Document Node

// DocumentFragment is a lightweight root container. Like a Document it owns
// lookup tables for its subtree, but no style resolver attaches to it.
type DocumentFragment Node

func newDocumentData() *documentData {
	return &documentData{
		lookup: NewElementLookup(),
		dirty:  newStyleDirtySet(),
	}
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	n := newNode(DocumentNode, "#document")
	n.documentData = newDocumentData()
	n.root = n
	return (*Document)(n)
}

// NewDocumentFragment creates an empty fragment.
func NewDocumentFragment() *DocumentFragment {
	n := newNode(DocumentFragmentNode, "#document-fragment")
	n.documentData = newDocumentData()
	n.root = n
	return (*DocumentFragment)(n)
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	n := newNode(TextNode, "#text")
	n.textData = &data
	return n
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	n := newNode(CommentNode, "#comment")
	n.commentData = &data
	return n
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// AsNode returns the underlying Node.
func (f *DocumentFragment) AsNode() *Node {
	return (*Node)(f)
}

// CreateElement creates a detached element. Provided for symmetry with the
// usual document API; the element belongs to no tree until attached.
func (d *Document) CreateElement(tagName string) *Element {
	return NewElement(tagName)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Node {
	return NewText(data)
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) *Node {
	return NewComment(data)
}

// DocumentElement returns the document's element child, or nil.
func (d *Document) DocumentElement() *Element {
	return firstElementChild(d.AsNode())
}

// Lookup returns the document's element lookup tables.
func (d *Document) Lookup() *ElementLookup {
	return d.AsNode().documentData.lookup
}

// Lookup returns the fragment's element lookup tables.
func (f *DocumentFragment) Lookup() *ElementLookup {
	return f.AsNode().documentData.lookup
}

// GetElementById returns the attached element with the given id, or nil.
// When several elements share the id, the one earliest in document order
// wins.
func (d *Document) GetElementById(id string) *Element {
	return firstInDocumentOrder(d.Lookup().GetElementsById(id))
}

// GetElementsById returns all attached elements with the given id.
func (d *Document) GetElementsById(id string) ElementSet {
	return d.Lookup().GetElementsById(id)
}

// GetElementsByClassname returns the attached elements carrying the class.
func (d *Document) GetElementsByClassname(class string) ElementSet {
	return d.Lookup().GetElementsByClassname(class)
}

// GetElementsByType returns the attached elements with the given tag name.
func (d *Document) GetElementsByType(tag string) ElementSet {
	return d.Lookup().GetElementsByType(tag)
}

// GetElementsByName returns the attached elements with the given name
// attribute.
func (d *Document) GetElementsByName(name string) ElementSet {
	return d.Lookup().GetElementsByName(name)
}

// GetElementsByTypeAttribute returns the attached elements with the given
// type attribute.
func (d *Document) GetElementsByTypeAttribute(typ string) ElementSet {
	return d.Lookup().GetElementsByTypeAttribute(typ)
}

// firstInDocumentOrder picks the set member earliest in document order, so
// id lookups stay deterministic even with duplicate ids.
func firstInDocumentOrder(set ElementSet) *Element {
	var best *Element
	for el := range set {
		if best == nil || el.AsNode().ComparePosition(best.AsNode()) == PositionBefore {
			best = el
		}
	}
	return best
}

// SetStyleResolver attaches the style system to this document. Every element
// currently in the tree loses any cached style and is queued for lazy
// resolution. Passing nil detaches the style system and empties the queue.
func (d *Document) SetStyleResolver(r StyleResolver) {
	dd := d.AsNode().documentData
	dd.resolver = r
	dd.dirty = newStyleDirtySet()
	if r == nil {
		return
	}
	stack := []*Node{d.AsNode()}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.nodeType == ElementNode {
			nd.elementData.computed = nil
			dd.dirty.add((*Element)(nd))
		}
		nd.EachChild(func(c *Node) bool {
			stack = append(stack, c)
			return true
		})
	}
}

// StyleResolver returns the attached style system, or nil.
func (d *Document) StyleResolver() StyleResolver {
	return d.AsNode().documentData.resolver
}

// ProcessStyleQueue eagerly resolves every pending element. Call sites that
// want all style changes flushed now use this instead of waiting for
// individual reads.
func (d *Document) ProcessStyleQueue() {
	dd := d.AsNode().documentData
	for dd.dirty.len() > 0 {
		for _, el := range dd.dirty.snapshot() {
			el.GetComputedStyle()
		}
	}
}

// PendingStyleCount returns the number of elements waiting for style
// resolution.
func (d *Document) PendingStyleCount() int {
	return d.AsNode().documentData.dirty.len()
}

// IsStyleDirty reports whether the element is currently queued for style
// resolution under this document.
func (d *Document) IsStyleDirty(el *Element) bool {
	return d.AsNode().documentData.dirty.has(el)
}
