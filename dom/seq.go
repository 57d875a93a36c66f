package dom

// nodeSeq is a persistent, height-balanced sequence of nodes. It backs a
// childList once the child count outgrows the inline array. Every operation
// copies the nodes along the affected root-to-leaf path and leaves earlier
// versions of the tree intact, so iterators observed before an edit keep
// seeing the sequence they started on.
//
// Each tree node holds exactly one child reference plus the size and height
// of its subtree, giving O(log n) positional access, insert, and removal.
type nodeSeq struct {
	left, right *nodeSeq
	item        *Node
	size        int
	height      int
}

func seqSize(s *nodeSeq) int {
	if s == nil {
		return 0
	}
	return s.size
}

func seqHeight(s *nodeSeq) int {
	if s == nil {
		return 0
	}
	return s.height
}

// mk builds a fresh tree node above the given subtrees.
func seqMk(left *nodeSeq, item *Node, right *nodeSeq) *nodeSeq {
	h := seqHeight(left)
	if rh := seqHeight(right); rh > h {
		h = rh
	}
	return &nodeSeq{
		left:   left,
		right:  right,
		item:   item,
		size:   seqSize(left) + seqSize(right) + 1,
		height: h + 1,
	}
}

// seqBalance rebuilds a node so the height difference between its subtrees
// is at most one. left/item/right are the intended contents; the rotations
// allocate replacement nodes instead of mutating shared ones.
func seqBalance(left *nodeSeq, item *Node, right *nodeSeq) *nodeSeq {
	lh, rh := seqHeight(left), seqHeight(right)
	switch {
	case lh > rh+1:
		if seqHeight(left.left) >= seqHeight(left.right) {
			// single rotation to the right
			return seqMk(left.left, left.item, seqMk(left.right, item, right))
		}
		// double rotation: left-right
		lr := left.right
		return seqMk(
			seqMk(left.left, left.item, lr.left),
			lr.item,
			seqMk(lr.right, item, right),
		)
	case rh > lh+1:
		if seqHeight(right.right) >= seqHeight(right.left) {
			return seqMk(seqMk(left, item, right.left), right.item, right.right)
		}
		rl := right.left
		return seqMk(
			seqMk(left, item, rl.left),
			rl.item,
			seqMk(rl.right, right.item, right.right),
		)
	default:
		return seqMk(left, item, right)
	}
}

// at returns the element at position i. The caller guarantees 0 <= i < size.
func (s *nodeSeq) at(i int) *Node {
	for {
		ls := seqSize(s.left)
		switch {
		case i < ls:
			s = s.left
		case i == ls:
			return s.item
		default:
			i -= ls + 1
			s = s.right
		}
	}
}

// set returns a sequence with position i replaced by v.
func (s *nodeSeq) set(i int, v *Node) *nodeSeq {
	ls := seqSize(s.left)
	switch {
	case i < ls:
		return seqMk(s.left.set(i, v), s.item, s.right)
	case i == ls:
		return seqMk(s.left, v, s.right)
	default:
		return seqMk(s.left, s.item, s.right.set(i-ls-1, v))
	}
}

// insert returns a sequence with v inserted at position i, shifting later
// elements right. i may equal size (append).
func (s *nodeSeq) insert(i int, v *Node) *nodeSeq {
	if s == nil {
		return seqMk(nil, v, nil)
	}
	ls := seqSize(s.left)
	if i <= ls {
		return seqBalance(s.left.insert(i, v), s.item, s.right)
	}
	return seqBalance(s.left, s.item, s.right.insert(i-ls-1, v))
}

// removeAt returns a sequence with position i deleted.
func (s *nodeSeq) removeAt(i int) *nodeSeq {
	ls := seqSize(s.left)
	switch {
	case i < ls:
		return seqBalance(s.left.removeAt(i), s.item, s.right)
	case i > ls:
		return seqBalance(s.left, s.item, s.right.removeAt(i-ls-1))
	default:
		return seqJoin(s.left, s.right)
	}
}

// seqJoin concatenates two balanced sequences whose heights may differ by
// more than one.
func seqJoin(left, right *nodeSeq) *nodeSeq {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}
	if seqHeight(left) >= seqHeight(right) {
		item, rest := right.popFront()
		return seqBalance(left, item, rest)
	}
	item, rest := left.popBack()
	return seqBalance(rest, item, right)
}

// popFront removes and returns the first element.
func (s *nodeSeq) popFront() (*Node, *nodeSeq) {
	if s.left == nil {
		return s.item, s.right
	}
	item, rest := s.left.popFront()
	return item, seqBalance(rest, s.item, s.right)
}

// popBack removes and returns the last element.
func (s *nodeSeq) popBack() (*Node, *nodeSeq) {
	if s.right == nil {
		return s.item, s.left
	}
	item, rest := s.right.popBack()
	return item, seqBalance(s.left, s.item, rest)
}

// seqFromSlice builds a balanced sequence from items in one pass.
func seqFromSlice(items []*Node) *nodeSeq {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	return seqMk(seqFromSlice(items[:mid]), items[mid], seqFromSlice(items[mid+1:]))
}

// appendTo flattens the sequence onto buf in order.
func (s *nodeSeq) appendTo(buf []*Node) []*Node {
	if s == nil {
		return buf
	}
	buf = s.left.appendTo(buf)
	buf = append(buf, s.item)
	return s.right.appendTo(buf)
}

// each calls f for every element in order until f returns false.
func (s *nodeSeq) each(f func(*Node) bool) bool {
	if s == nil {
		return true
	}
	if !s.left.each(f) {
		return false
	}
	if !f(s.item) {
		return false
	}
	return s.right.each(f)
}
