package dom

// smallChildCap is the inline capacity of a childList. Containers with at
// most this many children keep them in a dense array; larger containers
// switch to the persistent sequence in seq.go.
const smallChildCap = 8

// shrinkChildCount is the size at which a removal flattens the persistent
// sequence back into the inline array. Keeping it at half the grow threshold
// prevents representation thrashing right at the boundary.
const shrinkChildCount = smallChildCap / 2

// childList is the ordered child storage of a container node. It is owned
// exclusively by that container; nothing else mutates it.
type childList struct {
	small [smallChildCap]*Node
	n     int
	seq   *nodeSeq // non-nil while the list is in its large representation
}

func (cl *childList) count() int {
	if cl.seq != nil {
		return cl.seq.size
	}
	return cl.n
}

// at returns the child at position i. The caller has already checked bounds.
func (cl *childList) at(i int) *Node {
	if cl.seq != nil {
		return cl.seq.at(i)
	}
	return cl.small[i]
}

// set overwrites position i in place. Used by the single-slot child
// replacement path.
func (cl *childList) set(i int, nd *Node) {
	if cl.seq != nil {
		cl.seq = cl.seq.set(i, nd)
		return
	}
	cl.small[i] = nd
}

// add appends nd.
func (cl *childList) add(nd *Node) {
	cl.insert(cl.count(), nd)
}

// insert places nd at position i, shifting later children right. Crossing
// the size threshold bulk-copies the inline array into a fresh persistent
// sequence exactly once.
func (cl *childList) insert(i int, nd *Node) {
	if cl.seq != nil {
		cl.seq = cl.seq.insert(i, nd)
		return
	}
	if cl.n == smallChildCap {
		cl.seq = seqFromSlice(cl.small[:cl.n]).insert(i, nd)
		cl.clearSmall()
		return
	}
	copy(cl.small[i+1:cl.n+1], cl.small[i:cl.n])
	cl.small[i] = nd
	cl.n++
}

// removeAt deletes the child at position i. When the large representation
// falls to the shrink threshold it is flattened back into the inline array.
func (cl *childList) removeAt(i int) {
	if cl.seq != nil {
		cl.seq = cl.seq.removeAt(i)
		if cl.seq != nil && cl.seq.size <= shrinkChildCount {
			cl.n = len(cl.seq.appendTo(cl.small[:0]))
			cl.seq = nil
		} else if cl.seq == nil {
			cl.n = 0
		}
		return
	}
	copy(cl.small[i:cl.n-1], cl.small[i+1:cl.n])
	cl.n--
	cl.small[cl.n] = nil
}

// removeRange deletes count children starting at start.
func (cl *childList) removeRange(start, count int) {
	for k := 0; k < count; k++ {
		cl.removeAt(start)
	}
}

// indexOf returns the position of nd, or -1 if nd is not a child.
func (cl *childList) indexOf(nd *Node) int {
	found := -1
	i := 0
	cl.each(func(c *Node) bool {
		if c == nd {
			found = i
			return false
		}
		i++
		return true
	})
	return found
}

// each calls f for every child in order until f returns false.
func (cl *childList) each(f func(*Node) bool) {
	if cl.seq != nil {
		cl.seq.each(f)
		return
	}
	for i := 0; i < cl.n; i++ {
		if !f(cl.small[i]) {
			return
		}
	}
}

// snapshot returns the children as a fresh slice.
func (cl *childList) snapshot() []*Node {
	if cl.seq != nil {
		return cl.seq.appendTo(make([]*Node, 0, cl.seq.size))
	}
	out := make([]*Node, cl.n)
	copy(out, cl.small[:cl.n])
	return out
}

// reset empties the list and returns to the inline representation.
func (cl *childList) reset() {
	cl.seq = nil
	cl.clearSmall()
}

// isLarge reports whether the list currently uses the persistent sequence.
func (cl *childList) isLarge() bool {
	return cl.seq != nil
}

func (cl *childList) clearSmall() {
	for i := 0; i < cl.n; i++ {
		cl.small[i] = nil
	}
	cl.n = 0
}
