package dom

// Position is the result of a document-order comparison between two nodes.
type Position int

const (
	// PositionBefore means the receiver precedes the other node.
	PositionBefore Position = -1
	// PositionSame means both arguments are the same node.
	PositionSame Position = 0
	// PositionAfter means the receiver follows the other node.
	PositionAfter Position = 1
	// PositionDisjoint means the nodes live in different trees.
	PositionDisjoint Position = 2
)

// Bit flags returned by CompareDocumentPosition, matching the DOM standard.
const (
	DocumentPositionDisconnected uint16 = 0x01
	DocumentPositionPreceding    uint16 = 0x02
	DocumentPositionFollowing    uint16 = 0x04
	DocumentPositionContains     uint16 = 0x08
	DocumentPositionContainedBy  uint16 = 0x10
)

// AncestorTrail is a reusable buffer holding a node's path from the tree top
// down to the node itself. Callers that compare or sort many nodes can keep
// one around so repeated fills stop allocating once the buffer has grown to
// the tree depth.
type AncestorTrail struct {
	path []*Node
}

// Fill replaces the trail's contents with the top-to-node path of n.
func (t *AncestorTrail) Fill(n *Node) {
	t.path = t.path[:0]
	for nd := n; nd != nil; nd = nd.parent {
		t.path = append(t.path, nd)
	}
	// reverse into root-first order
	for i, j := 0, len(t.path)-1; i < j; i, j = i+1, j-1 {
		t.path[i], t.path[j] = t.path[j], t.path[i]
	}
}

// Len returns the number of nodes on the trail.
func (t *AncestorTrail) Len() int {
	return len(t.path)
}

// At returns the i-th node on the trail, counting from the tree top.
func (t *AncestorTrail) At(i int) *Node {
	return t.path[i]
}

// Package-level scratch trails for the comparison entry points. The tree is
// single-threaded by design, so the shared buffers need no locking.
var cmpTrailA, cmpTrailB AncestorTrail

// ComparePosition reports the document-order relation of n to other:
// PositionBefore if n precedes other, PositionAfter if it follows,
// PositionSame for identity, and PositionDisjoint when the two nodes are in
// different trees. A node precedes its own descendants.
//
// Siblings and direct parent/child pairs are resolved in O(1); the general
// case costs O(depth) via the ancestor trails.
func (n *Node) ComparePosition(other *Node) Position {
	if n == other {
		return PositionSame
	}
	if other == nil {
		return PositionDisjoint
	}

	// Fast path: siblings under the same parent compare by index alone.
	// Two distinct parentless nodes are roots of different trees.
	if n.parent == other.parent {
		if n.parent == nil {
			return PositionDisjoint
		}
		if n.index < other.index {
			return PositionBefore
		}
		return PositionAfter
	}

	// Fast path: direct parent/child.
	if n == other.parent {
		return PositionBefore
	}
	if other == n.parent {
		return PositionAfter
	}

	cmpTrailA.Fill(n)
	cmpTrailB.Fill(other)
	return compareTrails(&cmpTrailA, &cmpTrailB)
}

// compareTrails walks two root-first trails until they diverge. A strict
// prefix marks an ancestor, which sorts first; otherwise the indices of the
// first diverging pair decide.
func compareTrails(a, b *AncestorTrail) Position {
	if a.At(0) != b.At(0) {
		return PositionDisjoint
	}
	limit := a.Len()
	if b.Len() < limit {
		limit = b.Len()
	}
	for i := 1; i < limit; i++ {
		ca, cb := a.At(i), b.At(i)
		if ca == cb {
			continue
		}
		if ca.index < cb.index {
			return PositionBefore
		}
		return PositionAfter
	}
	if a.Len() < b.Len() {
		return PositionBefore
	}
	return PositionAfter
}

// CompareDocumentPosition returns the DOM standard bitmask describing where
// other sits relative to n. It shares the fast paths and the trail walk with
// ComparePosition.
func (n *Node) CompareDocumentPosition(other *Node) uint16 {
	if n == other {
		return 0
	}
	if other == nil {
		return DocumentPositionDisconnected
	}

	if n.parent != nil && n.parent == other.parent {
		if other.index < n.index {
			return DocumentPositionPreceding
		}
		return DocumentPositionFollowing
	}

	cmpTrailA.Fill(n)
	cmpTrailB.Fill(other)
	if cmpTrailA.At(0) != cmpTrailB.At(0) {
		return DocumentPositionDisconnected
	}
	switch compareTrails(&cmpTrailA, &cmpTrailB) {
	case PositionBefore:
		if n.Contains(other) {
			return DocumentPositionContainedBy | DocumentPositionFollowing
		}
		return DocumentPositionFollowing
	default:
		if other.Contains(n) {
			return DocumentPositionContains | DocumentPositionPreceding
		}
		return DocumentPositionPreceding
	}
}
