package dom

// styleDirtySet is the set of elements whose resolved style is stale. It is
// owned by the tree root. Membership is idempotent; the set carries no
// ordering because resolution always walks up to the nearest valid ancestor
// anyway.
type styleDirtySet struct {
	members map[*Element]struct{}
}

func newStyleDirtySet() *styleDirtySet {
	return &styleDirtySet{members: make(map[*Element]struct{})}
}

func (ds *styleDirtySet) add(el *Element) {
	ds.members[el] = struct{}{}
}

func (ds *styleDirtySet) remove(el *Element) {
	delete(ds.members, el)
}

func (ds *styleDirtySet) has(el *Element) bool {
	_, ok := ds.members[el]
	return ok
}

func (ds *styleDirtySet) len() int {
	return len(ds.members)
}

// snapshot returns the current members so a caller can drain the set while
// resolution mutates it.
func (ds *styleDirtySet) snapshot() []*Element {
	out := make([]*Element, 0, len(ds.members))
	for el := range ds.members {
		out = append(out, el)
	}
	return out
}
