package css

import (
	"sort"
	"strings"

	"github.com/styledom/styledom/dom"
)

// Matches reports whether el satisfies the complex selector. Matching runs
// right-to-left: the last compound must match el itself, then each earlier
// compound is matched against ancestors or preceding siblings according to
// the combinator between them.
func Matches(el *dom.Element, sel *ComplexSelector) bool {
	last := len(sel.Compounds) - 1
	if !matchCompound(el, &sel.Compounds[last]) {
		return false
	}
	return matchLeft(el, sel, last-1)
}

func matchLeft(el *dom.Element, sel *ComplexSelector, idx int) bool {
	if idx < 0 {
		return true
	}
	compound := &sel.Compounds[idx]
	switch sel.Combinators[idx] {
	case CombinatorChild:
		p := el.AsNode().ParentElement()
		if p == nil || !matchCompound(p, compound) {
			return false
		}
		return matchLeft(p, sel, idx-1)
	case CombinatorAdjacent:
		s := el.PreviousElementSibling()
		if s == nil || !matchCompound(s, compound) {
			return false
		}
		return matchLeft(s, sel, idx-1)
	default: // descendant
		for p := el.AsNode().ParentElement(); p != nil; p = p.AsNode().ParentElement() {
			if matchCompound(p, compound) && matchLeft(p, sel, idx-1) {
				return true
			}
		}
		return false
	}
}

func matchCompound(el *dom.Element, c *CompoundSelector) bool {
	if c.Tag != "" && c.Tag != "*" && el.TagName() != c.Tag {
		return false
	}
	if c.ID != "" && el.Id() != c.ID {
		return false
	}
	for _, class := range c.Classes {
		if !el.HasClass(class) {
			return false
		}
	}
	for i := range c.Attrs {
		if !matchAttr(el, &c.Attrs[i]) {
			return false
		}
	}
	return true
}

func matchAttr(el *dom.Element, m *AttrMatcher) bool {
	if !el.HasAttribute(m.Name) {
		return false
	}
	value := el.GetAttribute(m.Name)
	switch m.Op {
	case AttrPresent:
		return true
	case AttrEquals:
		return value == m.Value
	case AttrIncludes:
		for _, word := range strings.Fields(value) {
			if word == m.Value {
				return true
			}
		}
		return false
	case AttrPrefix:
		return m.Value != "" && strings.HasPrefix(value, m.Value)
	case AttrSuffix:
		return m.Value != "" && strings.HasSuffix(value, m.Value)
	case AttrContains:
		return m.Value != "" && strings.Contains(value, m.Value)
	}
	return false
}

// MatchesSelector parses the selector and matches el against it. A parse
// failure matches nothing.
func MatchesSelector(el *dom.Element, selector string) bool {
	for _, part := range strings.Split(selector, ",") {
		sel, err := ParseSelector(part)
		if err != nil {
			continue
		}
		if Matches(el, sel) {
			return true
		}
	}
	return false
}

// Find returns every element under the document matching the selector, in
// document order. Selectors that are syntactically just "#id" or ".class"
// are answered straight from the root's lookup tables without touching the
// general matcher.
func Find(doc *dom.Document, selector string) ([]*dom.Element, error) {
	selector = strings.TrimSpace(selector)
	if !strings.Contains(selector, ",") {
		if id, ok := bareIDSelector(selector); ok {
			return sortedSet(doc.GetElementsById(id)), nil
		}
		if class, ok := bareClassSelector(selector); ok {
			return sortedSet(doc.GetElementsByClassname(class)), nil
		}
	}

	var sels []*ComplexSelector
	for _, part := range strings.Split(selector, ",") {
		sel, err := ParseSelector(part)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}

	var out []*dom.Element
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		n.EachChild(func(c *dom.Node) bool {
			if c.NodeType() == dom.ElementNode {
				el := (*dom.Element)(c)
				for _, sel := range sels {
					if Matches(el, sel) {
						out = append(out, el)
						break
					}
				}
			}
			walk(c)
			return true
		})
	}
	walk(doc.AsNode())
	return out, nil
}

// QuerySelector returns the first match of Find, or nil.
func QuerySelector(doc *dom.Document, selector string) (*dom.Element, error) {
	els, err := Find(doc, selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return els[0], nil
}

// bareIDSelector reports whether the selector is exactly "#ident".
func bareIDSelector(selector string) (string, bool) {
	if len(selector) < 2 || selector[0] != '#' {
		return "", false
	}
	id := selector[1:]
	for i := 0; i < len(id); i++ {
		if !isIdentChar(id[i]) {
			return "", false
		}
	}
	return id, true
}

// bareClassSelector reports whether the selector is exactly ".ident".
func bareClassSelector(selector string) (string, bool) {
	if len(selector) < 2 || selector[0] != '.' {
		return "", false
	}
	class := selector[1:]
	for i := 0; i < len(class); i++ {
		if !isIdentChar(class[i]) {
			return "", false
		}
	}
	return class, true
}

// sortedSet flattens a lookup result into document order.
func sortedSet(set dom.ElementSet) []*dom.Element {
	out := make([]*dom.Element, 0, set.Len())
	for el := range set {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AsNode().ComparePosition(out[j].AsNode()) == dom.PositionBefore
	})
	return out
}
