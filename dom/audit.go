package dom

import "fmt"

// AuditTree recomputes every derived field of the tree containing n from
// scratch (child indices, parent back-pointers, root references, subtree
// counts, lookup-table membership, and dirty-queue soundness) and returns an
// InvariantViolationError describing the first disagreement with the cached
// state. A nil result means the tree is internally consistent.
//
// Under the domdebug build tag this runs automatically after every mutating
// operation; release builds only run it when a caller (usually a test)
// invokes it directly.
func AuditTree(n *Node) error {
	top := n.GetRootNode()
	var expectedRoot *Node
	if top.documentData != nil {
		expectedRoot = top
	}
	if _, _, err := auditNode(top, expectedRoot); err != nil {
		return err
	}
	if expectedRoot != nil {
		return auditRootState(expectedRoot)
	}
	return nil
}

// auditNode verifies one node and its subtree, returning the recomputed
// node/element counts.
func auditNode(n *Node, expectedRoot *Node) (nodes, elements int, err error) {
	if n.root != expectedRoot {
		return 0, 0, violationf(n, "root is %s, want %s", describeNode(n.root), describeNode(expectedRoot))
	}
	nodes = 1
	if n.nodeType == ElementNode {
		elements = 1
	}
	childElems := 0
	if n.children != nil {
		for i, child := range n.children.snapshot() {
			if child.index != i {
				return 0, 0, violationf(child, "index is %d, want %d", child.index, i)
			}
			if child.parent != n {
				return 0, 0, violationf(child, "parent is %s, want %s", describeNode(child.parent), describeNode(n))
			}
			cn, ce, cerr := auditNode(child, expectedRoot)
			if cerr != nil {
				return 0, 0, cerr
			}
			nodes += cn
			elements += ce
			if child.nodeType == ElementNode {
				childElems++
			}
		}
	}
	if n.childElements != childElems {
		return 0, 0, violationf(n, "childElements is %d, recomputed %d", n.childElements, childElems)
	}
	if n.subtreeNodes != nodes {
		return 0, 0, violationf(n, "subtreeNodes is %d, recomputed %d", n.subtreeNodes, nodes)
	}
	if n.subtreeElements != elements {
		return 0, 0, violationf(n, "subtreeElements is %d, recomputed %d", n.subtreeElements, elements)
	}
	return nodes, elements, nil
}

// auditRootState checks the lookup tables and the dirty queue against the
// actual tree shape.
func auditRootState(root *Node) error {
	dd := root.documentData
	stack := []*Node{root}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.nodeType == ElementNode {
			el := (*Element)(nd)
			if !dd.lookup.GetElementsByType(el.TagName()).Has(el) {
				return violationf(nd, "missing from the tag index")
			}
			if id := el.Id(); id != "" && !dd.lookup.GetElementsById(id).Has(el) {
				return violationf(nd, "missing from the id index for %q", id)
			}
			for _, class := range el.Classes() {
				if !dd.lookup.GetElementsByClassname(class).Has(el) {
					return violationf(nd, "missing from the class index for %q", class)
				}
			}
			if dd.resolver != nil {
				stale := nd.elementData.computed == nil
				if stale && !dd.dirty.has(el) {
					return violationf(nd, "stale style but not on the dirty queue")
				}
				if !stale && dd.dirty.has(el) {
					return violationf(nd, "valid style but still on the dirty queue")
				}
			}
		}
		nd.EachChild(func(c *Node) bool {
			stack = append(stack, c)
			return true
		})
	}
	return nil
}

func violationf(n *Node, format string, args ...interface{}) error {
	return ErrInvariantViolation(describeNode(n) + ": " + fmt.Sprintf(format, args...))
}

func describeNode(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", n.nodeName, n.serial)
}
