package dom

// ElementSet is the result type of the lookup tables: the set of currently
// attached elements matching one key. Returned sets are owned by the lookup
// tables; callers must not modify them.
type ElementSet map[*Element]struct{}

// Has returns true if el is a member.
func (s ElementSet) Has(el *Element) bool {
	_, ok := s[el]
	return ok
}

// Len returns the number of members.
func (s ElementSet) Len() int {
	return len(s)
}

// emptyElementSet is the shared result for unknown keys. Lookups never
// return nil.
var emptyElementSet = ElementSet{}

// setPoolCap bounds how many emptied sets the lookup tables keep around for
// reuse. Rapid attach/detach cycles would otherwise churn map allocations.
const setPoolCap = 64

// ElementLookup holds the incremental secondary indices of one tree root:
// elements by id, by class name, by tag name, by name attribute, and by type
// attribute. An element appears under key K in a map iff it is currently
// attached under the owning root and its attribute/class matches K. The
// attach/detach walk and the attribute setters are the only writers.
type ElementLookup struct {
	byID    map[string]ElementSet
	byClass map[string]ElementSet
	byTag   map[string]ElementSet
	byName  map[string]ElementSet
	byType  map[string]ElementSet

	pool []ElementSet
}

// NewElementLookup creates empty lookup tables.
func NewElementLookup() *ElementLookup {
	return &ElementLookup{
		byID:    make(map[string]ElementSet),
		byClass: make(map[string]ElementSet),
		byTag:   make(map[string]ElementSet),
		byName:  make(map[string]ElementSet),
		byType:  make(map[string]ElementSet),
	}
}

// AddElement indexes el under every key it currently carries. Adding twice
// is harmless.
func (lk *ElementLookup) AddElement(el *Element) {
	lk.addKey(lk.byTag, el.TagName(), el)
	if id := el.Id(); id != "" {
		lk.addKey(lk.byID, id, el)
	}
	for _, class := range el.Classes() {
		lk.addKey(lk.byClass, class, el)
	}
	if name := el.GetAttribute("name"); name != "" {
		lk.addKey(lk.byName, name, el)
	}
	if typ := el.GetAttribute("type"); typ != "" {
		lk.addKey(lk.byType, typ, el)
	}
}

// RemoveElement drops el from every index. Removing an unindexed element is
// harmless.
func (lk *ElementLookup) RemoveElement(el *Element) {
	lk.removeKey(lk.byTag, el.TagName(), el)
	if id := el.Id(); id != "" {
		lk.removeKey(lk.byID, id, el)
	}
	for _, class := range el.Classes() {
		lk.removeKey(lk.byClass, class, el)
	}
	if name := el.GetAttribute("name"); name != "" {
		lk.removeKey(lk.byName, name, el)
	}
	if typ := el.GetAttribute("type"); typ != "" {
		lk.removeKey(lk.byType, typ, el)
	}
}

// GetElementsById returns the attached elements whose id attribute equals id.
func (lk *ElementLookup) GetElementsById(id string) ElementSet {
	return lk.get(lk.byID, id)
}

// GetElementsByClassname returns the attached elements carrying the class.
func (lk *ElementLookup) GetElementsByClassname(class string) ElementSet {
	return lk.get(lk.byClass, class)
}

// GetElementsByType returns the attached elements with the given tag name.
func (lk *ElementLookup) GetElementsByType(tag string) ElementSet {
	return lk.get(lk.byTag, tag)
}

// GetElementsByName returns the attached elements whose name attribute
// equals name. This reads the name index, not the id index.
func (lk *ElementLookup) GetElementsByName(name string) ElementSet {
	return lk.get(lk.byName, name)
}

// GetElementsByTypeAttribute returns the attached elements whose type
// attribute equals typ.
func (lk *ElementLookup) GetElementsByTypeAttribute(typ string) ElementSet {
	return lk.get(lk.byType, typ)
}

// updateID moves el between id keys after an id attribute change.
func (lk *ElementLookup) updateID(el *Element, old, new string) {
	if old == new {
		return
	}
	if old != "" {
		lk.removeKey(lk.byID, old, el)
	}
	if new != "" {
		lk.addKey(lk.byID, new, el)
	}
}

// updateName moves el between name-attribute keys.
func (lk *ElementLookup) updateName(el *Element, old, new string) {
	if old == new {
		return
	}
	if old != "" {
		lk.removeKey(lk.byName, old, el)
	}
	if new != "" {
		lk.addKey(lk.byName, new, el)
	}
}

// updateType moves el between type-attribute keys.
func (lk *ElementLookup) updateType(el *Element, old, new string) {
	if old == new {
		return
	}
	if old != "" {
		lk.removeKey(lk.byType, old, el)
	}
	if new != "" {
		lk.addKey(lk.byType, new, el)
	}
}

// addClass indexes el under one additional class name.
func (lk *ElementLookup) addClass(el *Element, class string) {
	lk.addKey(lk.byClass, class, el)
}

// removeClass drops el from one class key.
func (lk *ElementLookup) removeClass(el *Element, class string) {
	lk.removeKey(lk.byClass, class, el)
}

func (lk *ElementLookup) get(m map[string]ElementSet, key string) ElementSet {
	if set, ok := m[key]; ok {
		return set
	}
	return emptyElementSet
}

func (lk *ElementLookup) addKey(m map[string]ElementSet, key string, el *Element) {
	set, ok := m[key]
	if !ok {
		set = lk.takeSet()
		m[key] = set
	}
	set[el] = struct{}{}
}

func (lk *ElementLookup) removeKey(m map[string]ElementSet, key string, el *Element) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, el)
	if len(set) == 0 {
		delete(m, key)
		lk.releaseSet(set)
	}
}

// takeSet reuses an emptied set when one is pooled.
func (lk *ElementLookup) takeSet() ElementSet {
	if n := len(lk.pool); n > 0 {
		set := lk.pool[n-1]
		lk.pool = lk.pool[:n-1]
		return set
	}
	return make(ElementSet, 1)
}

func (lk *ElementLookup) releaseSet(set ElementSet) {
	if len(lk.pool) < setPoolCap {
		lk.pool = append(lk.pool, set)
	}
}
