package dom

import "strings"

// Node represents a node in the tree. One struct covers every kind; the
// nodeType tag selects which of the per-kind data pointers is populated and
// the Element, Document, and DocumentFragment view types re-expose it with
// kind-specific methods.
type Node struct {
	serial   uint64
	nodeType NodeType
	nodeName string

	// parent and root are non-owning back references. root points at the
	// Document or DocumentFragment node this subtree is attached under and
	// is shared by every node in the tree; it is nil for nodes (and whole
	// subtrees) not attached under such a root.
	parent *Node
	root   *Node

	// index is the zero-based position among siblings, -1 while detached.
	// The owning container guarantees children.at(index) == this node.
	index int

	// subtreeNodes and subtreeElements count all descendants including
	// self. Every ancestor maintains them incrementally on each structural
	// change.
	subtreeNodes    int
	subtreeElements int

	// childElements counts the direct children that are elements. Only
	// meaningful on containers.
	childElements int

	// children is the ordered child storage, allocated only for container
	// kinds and owned exclusively by this node.
	children *childList

	// Kind-specific data; exactly one is non-nil (leaf text/comment share
	// the string pointer layout).
	elementData  *elementData
	textData     *string
	commentData  *string
	documentData *documentData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	tagName   string
	attrs     map[string]string
	attrOrder []string

	// classes is the cached split of the class attribute.
	classes []string

	// computed is the cached resolved style. nil means stale; the element
	// must then be on its root's dirty queue whenever it is attached to a
	// style-bearing root.
	computed ResolvedStyle
}

// documentData holds the cross-cutting state owned by a tree root: the
// element lookup tables, the style dirty queue, and the attached resolver.
type documentData struct {
	lookup   *ElementLookup
	dirty    *styleDirtySet
	resolver StyleResolver
}

// nextSerial feeds the debug-only node identity. The tree is single-threaded
// by design, so a plain counter suffices.
var nextSerial uint64

func newNode(nodeType NodeType, nodeName string) *Node {
	nextSerial++
	n := &Node{
		serial:       nextSerial,
		nodeType:     nodeType,
		nodeName:     nodeName,
		index:        -1,
		subtreeNodes: 1,
	}
	if nodeType == ElementNode {
		n.subtreeElements = 1
	}
	if nodeType.isContainer() {
		n.children = &childList{}
	}
	return n
}

// NodeType returns the kind of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node: the lower-case tag name for
// elements, "#text", "#comment", "#document", or "#document-fragment".
func (n *Node) NodeName() string {
	return n.nodeName
}

// DebugID returns the node's creation serial. It exists for diagnostics and
// log output only; no tree logic keys off it.
func (n *Node) DebugID() uint64 {
	return n.serial
}

// ParentNode returns the parent of this node, or nil while detached.
func (n *Node) ParentNode() *Node {
	return n.parent
}

// ParentElement returns the parent as an Element, or nil if the parent is
// absent or not an element.
func (n *Node) ParentElement() *Element {
	if n.parent != nil && n.parent.nodeType == ElementNode {
		return (*Element)(n.parent)
	}
	return nil
}

// Index returns the node's position among its siblings, or -1 while
// detached.
func (n *Node) Index() int {
	return n.index
}

// SubtreeNodeCount returns the number of nodes in this subtree, including
// this node.
func (n *Node) SubtreeNodeCount() int {
	return n.subtreeNodes
}

// SubtreeElementCount returns the number of elements in this subtree,
// including this node if it is an element.
func (n *Node) SubtreeElementCount() int {
	return n.subtreeElements
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	if n.children == nil {
		return 0
	}
	return n.children.count()
}

// ChildElementCount returns the number of direct children that are elements.
func (n *Node) ChildElementCount() int {
	return n.childElements
}

// ChildAt returns the child at position i.
func (n *Node) ChildAt(i int) (*Node, error) {
	if n.children == nil || i < 0 || i >= n.children.count() {
		return nil, ErrIndexOutOfRange("child index out of range")
	}
	return n.children.at(i), nil
}

// FirstChild returns the first child, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	if n.children == nil || n.children.count() == 0 {
		return nil
	}
	return n.children.at(0)
}

// LastChild returns the last child, or nil if there are no children.
func (n *Node) LastChild() *Node {
	if n.children == nil || n.children.count() == 0 {
		return nil
	}
	return n.children.at(n.children.count() - 1)
}

// PreviousSibling returns the sibling at index-1, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.index <= 0 {
		return nil
	}
	return n.parent.children.at(n.index - 1)
}

// NextSibling returns the sibling at index+1, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= n.parent.children.count() {
		return nil
	}
	return n.parent.children.at(n.index + 1)
}

// ChildNodes returns a snapshot slice of the current children.
func (n *Node) ChildNodes() []*Node {
	if n.children == nil {
		return nil
	}
	return n.children.snapshot()
}

// EachChild calls f for every child in order until f returns false.
func (n *Node) EachChild(f func(*Node) bool) {
	if n.children != nil {
		n.children.each(f)
	}
}

// HasChildNodes returns true if this node has any children.
func (n *Node) HasChildNodes() bool {
	return n.children != nil && n.children.count() > 0
}

// Data returns the text of a Text or Comment node, otherwise "".
func (n *Node) Data() string {
	switch {
	case n.textData != nil:
		return *n.textData
	case n.commentData != nil:
		return *n.commentData
	}
	return ""
}

// SetData replaces the text of a Text or Comment node. It is a no-op on
// other kinds.
func (n *Node) SetData(data string) {
	switch n.nodeType {
	case TextNode:
		n.textData = &data
	case CommentNode:
		n.commentData = &data
	}
}

// GetRootNode returns the topmost node of the tree containing this node.
// Unlike Root, it also resolves subtrees whose top is a plain element.
func (n *Node) GetRootNode() *Node {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top
}

// Root returns the Document or DocumentFragment node this node is attached
// under, or nil.
func (n *Node) Root() *Node {
	return n.root
}

// Contains returns true if other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	for nd := other; nd != nil; nd = nd.parent {
		if nd == n {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of this node's subtree, or the
// node's own data for leaf kinds.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.Data()
	}
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	n.EachChild(func(child *Node) bool {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.Data())
		case ElementNode:
			child.collectTextContent(sb)
		}
		return true
	})
}

// AppendChild adds a node to the end of this node's children. For the
// error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of this node's children.
// If the node is currently attached elsewhere it is detached first.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts newChild before refChild, or appends when refChild is
// nil. For the error-returning version, use InsertBeforeWithError.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts newChild before refChild, or appends when
// refChild is nil. All validation happens before any storage mutation, so a
// failed call leaves the tree untouched.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validateInsert(newChild, refChild, nil); err != nil {
		return nil, err
	}
	if newChild == refChild {
		return newChild, nil
	}
	if newChild.parent != nil {
		// Detaching a preceding sibling shifts refChild's index, so the
		// insertion position is read only afterwards.
		newChild.parent.detachChild(newChild)
	}
	at := n.children.count()
	if refChild != nil {
		at = refChild.index
	}
	n.attachChildAt(at, newChild)
	n.audit()
	return newChild, nil
}

// RemoveChild removes a child from this node. For the error-returning
// version, use RemoveChildWithError.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child from this node. The removed subtree
// keeps its internal structure but loses its root, lookup entries, and any
// pending dirty-queue membership.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrInvalidArgument("the node to be removed is nil")
	}
	if child.parent != n {
		return nil, ErrHierarchyViolation("the node to be removed is not a child of this node")
	}
	n.detachChild(child)
	n.audit()
	return child, nil
}

// ReplaceChild swaps oldChild for newChild in a single storage slot, which
// avoids renumbering later siblings twice. For the error-returning version,
// use ReplaceChildWithError.
func (n *Node) ReplaceChild(newChild, oldChild *Node) *Node {
	result, _ := n.ReplaceChildWithError(newChild, oldChild)
	return result
}

// ReplaceChildWithError swaps oldChild for newChild and returns oldChild.
func (n *Node) ReplaceChildWithError(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil {
		return nil, ErrInvalidArgument("the node to be replaced is nil")
	}
	if oldChild.parent != n {
		return nil, ErrHierarchyViolation("the node to be replaced is not a child of this node")
	}
	if err := n.validateInsert(newChild, nil, oldChild); err != nil {
		return nil, err
	}
	if newChild == oldChild {
		return oldChild, nil
	}
	if newChild.parent != nil {
		// May shift oldChild's index when both share this parent.
		newChild.parent.detachChild(newChild)
	}
	at := oldChild.index

	setSubtreeRoot(oldChild, nil)
	n.children.set(at, newChild)
	oldChild.parent = nil
	oldChild.index = -1
	if oldChild.nodeType == ElementNode {
		n.childElements--
	}
	n.addToAncestorCounts(-oldChild.subtreeNodes, -oldChild.subtreeElements)

	newChild.parent = n
	newChild.index = at
	if newChild.nodeType == ElementNode {
		n.childElements++
	}
	n.addToAncestorCounts(newChild.subtreeNodes, newChild.subtreeElements)
	setSubtreeRoot(newChild, n.root)
	n.audit()
	return oldChild, nil
}

// Clear detaches all children at once. The container trusts its own storage,
// so no per-child membership checks run.
func (n *Node) Clear() {
	if n.children == nil || n.children.count() == 0 {
		return
	}
	removed := n.children.snapshot()
	dn, de := 0, 0
	for _, child := range removed {
		setSubtreeRoot(child, nil)
		child.parent = nil
		child.index = -1
		dn += child.subtreeNodes
		de += child.subtreeElements
	}
	n.children.reset()
	n.childElements = 0
	n.addToAncestorCounts(-dn, -de)
	n.audit()
}

// Normalize merges adjacent text nodes and removes empty text nodes in this
// subtree. Applying it twice yields the same tree as applying it once.
func (n *Node) Normalize() {
	if n.children == nil {
		return
	}
	var remove []*Node
	var prevText *Node
	n.children.each(func(child *Node) bool {
		switch child.nodeType {
		case TextNode:
			if child.Data() == "" {
				remove = append(remove, child)
			} else if prevText != nil {
				prevText.SetData(prevText.Data() + child.Data())
				remove = append(remove, child)
			} else {
				prevText = child
			}
		default:
			prevText = nil
			if child.nodeType == ElementNode {
				child.Normalize()
			}
		}
		return true
	})
	for _, nd := range remove {
		n.detachChild(nd)
	}
	n.audit()
}

// CloneNode returns a copy of this node. With deep set, the whole subtree is
// cloned; the clone is always detached and carries no cached style.
func (n *Node) CloneNode(deep bool) *Node {
	clone := newNode(n.nodeType, n.nodeName)
	switch n.nodeType {
	case ElementNode:
		ed := &elementData{tagName: n.elementData.tagName}
		if len(n.elementData.attrs) > 0 {
			ed.attrs = make(map[string]string, len(n.elementData.attrs))
			for k, v := range n.elementData.attrs {
				ed.attrs[k] = v
			}
			ed.attrOrder = append([]string(nil), n.elementData.attrOrder...)
			ed.classes = append([]string(nil), n.elementData.classes...)
		}
		clone.elementData = ed
	case TextNode:
		data := *n.textData
		clone.textData = &data
	case CommentNode:
		data := *n.commentData
		clone.commentData = &data
	case DocumentNode, DocumentFragmentNode:
		clone.documentData = newDocumentData()
		clone.root = clone
	}
	if deep {
		n.EachChild(func(child *Node) bool {
			clone.AppendChild(child.CloneNode(true))
			return true
		})
	}
	return clone
}

// validateInsert runs every check for inserting newChild under n before any
// state changes. replacing, when non-nil, is the child about to be swapped
// out and is excluded from the document-element count.
func (n *Node) validateInsert(newChild, refChild, replacing *Node) error {
	if newChild == nil {
		return ErrInvalidArgument("the node to be inserted is nil")
	}
	if n.children == nil {
		return ErrInvalidArgument(n.nodeType.String() + " cannot have children")
	}
	switch newChild.nodeType {
	case ElementNode, CommentNode:
		// accepted everywhere
	case TextNode:
		if n.nodeType == DocumentNode {
			return ErrInvalidArgument("a Text node cannot be a direct child of a Document")
		}
	default:
		return ErrInvalidArgument("a " + newChild.nodeType.String() + " cannot be inserted as a child")
	}
	if newChild.Contains(n) {
		return ErrHierarchyViolation("the new child contains this node")
	}
	if refChild != nil && refChild.parent != n {
		return ErrHierarchyViolation("the reference node is not a child of this node")
	}
	if n.nodeType == DocumentNode && newChild.nodeType == ElementNode {
		conflict := false
		n.children.each(func(c *Node) bool {
			if c != replacing && c != newChild && c.nodeType == ElementNode {
				conflict = true
				return false
			}
			return true
		})
		if conflict {
			return ErrHierarchyViolation("document already has a document element")
		}
	}
	return nil
}

// attachChildAt inserts child into storage at position at and commits every
// derived piece of state: index numbering, element counts, ancestor subtree
// counts, root propagation, lookup indexing, and dirty-queue membership.
// Lookup and style bookkeeping run last, once sibling indices are
// consistent.
func (n *Node) attachChildAt(at int, child *Node) {
	n.children.insert(at, child)
	child.parent = n
	child.index = at
	n.renumberFrom(at + 1)
	if child.nodeType == ElementNode {
		n.childElements++
	}
	n.addToAncestorCounts(child.subtreeNodes, child.subtreeElements)
	setSubtreeRoot(child, n.root)
}

// detachChild removes child from storage and unwinds the same derived state.
// De-indexing runs first, while the subtree is still reachable from its old
// root.
func (n *Node) detachChild(child *Node) {
	setSubtreeRoot(child, nil)
	at := child.index
	n.children.removeAt(at)
	child.parent = nil
	child.index = -1
	n.renumberFrom(at)
	if child.nodeType == ElementNode {
		n.childElements--
	}
	n.addToAncestorCounts(-child.subtreeNodes, -child.subtreeElements)
}

// renumberFrom rewrites the index field of every child at position from and
// later.
func (n *Node) renumberFrom(from int) {
	i := 0
	n.children.each(func(c *Node) bool {
		if i >= from {
			c.index = i
		}
		i++
		return true
	})
}

// addToAncestorCounts adds the deltas to this node and every ancestor.
func (n *Node) addToAncestorCounts(dn, de int) {
	for a := n; a != nil; a = a.parent {
		a.subtreeNodes += dn
		a.subtreeElements += de
	}
}

// setSubtreeRoot rewrites the root back reference of an entire subtree. The
// walk uses an explicit work stack rather than recursion so arbitrarily deep
// trees cannot exhaust the call stack. Elements leaving a root are removed
// from its lookup tables and dirty queue; elements entering a style-bearing
// root lose any cached style and are enqueued for resolution.
func setSubtreeRoot(start *Node, newRoot *Node) {
	if start.root == newRoot {
		return
	}
	stack := []*Node{start}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if old := nd.root; old != nil && nd.nodeType == ElementNode {
			el := (*Element)(nd)
			old.documentData.lookup.RemoveElement(el)
			old.documentData.dirty.remove(el)
		}
		nd.root = newRoot
		if newRoot != nil && nd.nodeType == ElementNode {
			el := (*Element)(nd)
			newRoot.documentData.lookup.AddElement(el)
			if newRoot.documentData.resolver != nil {
				nd.elementData.computed = nil
				newRoot.documentData.dirty.add(el)
			}
		}

		nd.EachChild(func(c *Node) bool {
			stack = append(stack, c)
			return true
		})
	}
}
