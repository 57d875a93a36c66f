package dom

import (
	"math/rand"
	"testing"
)

func buildSampleTree() (*Document, *Element, *Element, *Element) {
	doc := NewDocument()
	div := NewElement("div")
	p1 := NewElement("p")
	p2 := NewElement("p")
	doc.AsNode().AppendChild(div.AsNode())
	div.AsNode().AppendChild(p1.AsNode())
	div.AsNode().AppendChild(p2.AsNode())
	return doc, div, p1, p2
}

func TestComparePositionSiblings(t *testing.T) {
	_, div, p1, p2 := buildSampleTree()

	if got := p1.AsNode().ComparePosition(p2.AsNode()); got != PositionBefore {
		t.Errorf("first <p> vs second <p> = %v, want PositionBefore", got)
	}
	if got := p2.AsNode().ComparePosition(p1.AsNode()); got != PositionAfter {
		t.Errorf("second <p> vs first <p> = %v, want PositionAfter", got)
	}
	if got := div.AsNode().ComparePosition(div.AsNode()); got != PositionSame {
		t.Errorf("self comparison = %v, want PositionSame", got)
	}
}

func TestComparePositionContainment(t *testing.T) {
	_, div, p1, _ := buildSampleTree()

	// An ancestor precedes its descendants in document order.
	if got := div.AsNode().ComparePosition(p1.AsNode()); got != PositionBefore {
		t.Errorf("container vs child = %v, want PositionBefore", got)
	}
	if got := p1.AsNode().ComparePosition(div.AsNode()); got != PositionAfter {
		t.Errorf("child vs container = %v, want PositionAfter", got)
	}
}

func TestComparePositionDeep(t *testing.T) {
	_, div, p1, p2 := buildSampleTree()
	deep := NewText("x")
	span := NewElement("span").AsNode()
	p1.AsNode().AppendChild(span)
	span.AppendChild(deep)

	if got := deep.ComparePosition(p2.AsNode()); got != PositionBefore {
		t.Errorf("deep node vs later cousin = %v, want PositionBefore", got)
	}
	if got := p2.AsNode().ComparePosition(deep); got != PositionAfter {
		t.Errorf("later cousin vs deep node = %v, want PositionAfter", got)
	}
	if got := div.AsNode().ComparePosition(deep); got != PositionBefore {
		t.Errorf("ancestor vs deep descendant = %v, want PositionBefore", got)
	}
}

func TestComparePositionDisjoint(t *testing.T) {
	_, _, p1, _ := buildSampleTree()
	other := NewElement("div")

	if got := p1.AsNode().ComparePosition(other.AsNode()); got != PositionDisjoint {
		t.Errorf("nodes in different trees = %v, want PositionDisjoint", got)
	}
	if got := p1.AsNode().ComparePosition(nil); got != PositionDisjoint {
		t.Errorf("nil argument = %v, want PositionDisjoint", got)
	}

	// Two distinct detached roots are disjoint even though both parents are
	// nil.
	a, b := NewElement("a"), NewElement("b")
	if got := a.AsNode().ComparePosition(b.AsNode()); got != PositionDisjoint {
		t.Errorf("detached roots = %v, want PositionDisjoint", got)
	}
}

func TestComparePositionTotalOrder(t *testing.T) {
	// Over a random tree, exactly one of before/same/after holds for any
	// attached pair, antisymmetrically, and the relation is transitive.
	rng := rand.New(rand.NewSource(42))
	doc := NewDocument()
	root := NewElement("root").AsNode()
	doc.AsNode().AppendChild(root)
	all := []*Node{root}
	for i := 0; i < 120; i++ {
		parent := all[rng.Intn(len(all))]
		child := NewElement("x").AsNode()
		parent.AppendChild(child)
		all = append(all, child)
	}

	for trial := 0; trial < 500; trial++ {
		a := all[rng.Intn(len(all))]
		b := all[rng.Intn(len(all))]
		ab := a.ComparePosition(b)
		ba := b.ComparePosition(a)
		if a == b {
			if ab != PositionSame {
				t.Fatalf("identical nodes compare %v", ab)
			}
			continue
		}
		if ab == PositionDisjoint || ab == PositionSame {
			t.Fatalf("attached pair compares %v", ab)
		}
		if ab != -ba {
			t.Fatalf("antisymmetry violated: %v vs %v", ab, ba)
		}
		c := all[rng.Intn(len(all))]
		if a.ComparePosition(b) == PositionBefore &&
			b.ComparePosition(c) == PositionBefore &&
			a.ComparePosition(c) != PositionBefore {
			t.Fatalf("transitivity violated")
		}
	}
}

func TestCompareDocumentPosition(t *testing.T) {
	_, div, p1, p2 := buildSampleTree()

	if got := p1.AsNode().CompareDocumentPosition(p2.AsNode()); got != DocumentPositionFollowing {
		t.Errorf("p1 vs p2 = %#x, want FOLLOWING", got)
	}
	if got := p2.AsNode().CompareDocumentPosition(p1.AsNode()); got != DocumentPositionPreceding {
		t.Errorf("p2 vs p1 = %#x, want PRECEDING", got)
	}

	want := DocumentPositionContainedBy | DocumentPositionFollowing
	if got := div.AsNode().CompareDocumentPosition(p1.AsNode()); got != want {
		t.Errorf("div vs p1 = %#x, want CONTAINED_BY|FOLLOWING", got)
	}
	want = DocumentPositionContains | DocumentPositionPreceding
	if got := p1.AsNode().CompareDocumentPosition(div.AsNode()); got != want {
		t.Errorf("p1 vs div = %#x, want CONTAINS|PRECEDING", got)
	}

	other := NewElement("em")
	if got := p1.AsNode().CompareDocumentPosition(other.AsNode()); got&DocumentPositionDisconnected == 0 {
		t.Errorf("different trees = %#x, want DISCONNECTED set", got)
	}
	if got := div.AsNode().CompareDocumentPosition(div.AsNode()); got != 0 {
		t.Errorf("self = %#x, want 0", got)
	}
}

func TestAncestorTrailReuse(t *testing.T) {
	_, _, p1, p2 := buildSampleTree()
	var trail AncestorTrail

	trail.Fill(p1.AsNode())
	if trail.Len() != 3 {
		t.Fatalf("trail length = %d, want 3", trail.Len())
	}
	if trail.At(0) != p1.AsNode().GetRootNode() {
		t.Error("trail should start at the tree top")
	}
	if trail.At(trail.Len()-1) != p1.AsNode() {
		t.Error("trail should end at the node itself")
	}

	// Refilling reuses the buffer and reflects the new node.
	trail.Fill(p2.AsNode())
	if trail.At(trail.Len()-1) != p2.AsNode() {
		t.Error("refilled trail should end at the new node")
	}
}
