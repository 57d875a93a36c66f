package dom

import (
	"fmt"
	"testing"
)

func TestChildListRepresentationSwitch(t *testing.T) {
	div := NewElement("div").AsNode()

	// Up to the threshold the inline array is used.
	for i := 0; i < smallChildCap; i++ {
		div.AppendChild(NewElement(fmt.Sprintf("c%d", i)).AsNode())
		if div.children.isLarge() {
			t.Fatalf("storage switched early at count %d", i+1)
		}
	}

	// The ninth append crosses the threshold.
	div.AppendChild(NewElement("c8").AsNode())
	if !div.children.isLarge() {
		t.Fatal("storage should be in its large representation at count 9")
	}
	if div.ChildCount() != smallChildCap+1 {
		t.Fatalf("count = %d, want %d", div.ChildCount(), smallChildCap+1)
	}
	for i := 0; i <= smallChildCap; i++ {
		child, err := div.ChildAt(i)
		if err != nil {
			t.Fatalf("ChildAt(%d): %v", i, err)
		}
		if child.Index() != i {
			t.Errorf("child %d carries index %d", i, child.Index())
		}
	}
	mustAudit(t, div)
}

func TestChildListGrowsTo20(t *testing.T) {
	div := NewElement("div").AsNode()
	for i := 0; i < 20; i++ {
		div.AppendChild(NewElement(fmt.Sprintf("c%d", i)).AsNode())
	}
	if div.ChildCount() != 20 {
		t.Fatalf("count = %d, want 20", div.ChildCount())
	}
	for i := 0; i < 20; i++ {
		child, _ := div.ChildAt(i)
		if want := fmt.Sprintf("c%d", i); child.NodeName() != want {
			t.Errorf("child %d = %s, want %s", i, child.NodeName(), want)
		}
	}
	mustAudit(t, div)
}

func TestChildListShrinkHysteresis(t *testing.T) {
	div := NewElement("div").AsNode()
	for i := 0; i < 12; i++ {
		div.AppendChild(NewElement(fmt.Sprintf("c%d", i)).AsNode())
	}
	if !div.children.isLarge() {
		t.Fatal("expected large representation")
	}

	// Removing down to just above half the threshold keeps the sequence.
	for div.ChildCount() > shrinkChildCount+1 {
		div.RemoveChild(div.FirstChild())
	}
	if !div.children.isLarge() {
		t.Error("storage shrank before reaching half the threshold")
	}

	// One more removal flattens back to the array.
	div.RemoveChild(div.FirstChild())
	if div.children.isLarge() {
		t.Error("storage should be back in its array representation")
	}
	for i := 0; i < div.ChildCount(); i++ {
		child, _ := div.ChildAt(i)
		if child.Index() != i {
			t.Errorf("child %d carries index %d after shrink", i, child.Index())
		}
	}
	mustAudit(t, div)
}

func TestChildListInsertMiddleLarge(t *testing.T) {
	div := NewElement("div").AsNode()
	for i := 0; i < 16; i++ {
		div.AppendChild(NewElement(fmt.Sprintf("c%d", i)).AsNode())
	}
	ref, _ := div.ChildAt(7)
	div.InsertBefore(NewElement("mid").AsNode(), ref)

	child, _ := div.ChildAt(7)
	if child.NodeName() != "mid" {
		t.Errorf("child 7 = %s, want mid", child.NodeName())
	}
	if ref.Index() != 8 {
		t.Errorf("reference index = %d, want 8", ref.Index())
	}
	mustAudit(t, div)
}

func TestNodeSeqPersistence(t *testing.T) {
	// Edits must not disturb previously obtained sequence roots.
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewText(fmt.Sprintf("t%d", i))
	}
	s1 := seqFromSlice(nodes)
	s2 := s1.insert(5, NewText("new"))
	s3 := s2.removeAt(0)

	if s1.size != 10 || s2.size != 11 || s3.size != 10 {
		t.Fatalf("sizes = %d/%d/%d, want 10/11/10", s1.size, s2.size, s3.size)
	}
	for i := 0; i < 10; i++ {
		if s1.at(i) != nodes[i] {
			t.Fatalf("s1 changed at %d after later edits", i)
		}
	}
	if s2.at(5).Data() != "new" {
		t.Errorf("s2.at(5) = %q, want %q", s2.at(5).Data(), "new")
	}
	if s3.at(0) != nodes[1] {
		t.Error("s3 should start at the second original node")
	}
}

func TestNodeSeqBalance(t *testing.T) {
	var s *nodeSeq
	const n = 1024
	for i := 0; i < n; i++ {
		s = s.insert(0, NewText(fmt.Sprintf("t%d", i)))
	}
	if s.size != n {
		t.Fatalf("size = %d, want %d", s.size, n)
	}
	// Height of a balanced tree over 1024 items stays close to log2.
	if s.height > 16 {
		t.Errorf("height = %d, tree is not balanced", s.height)
	}
	for i := 0; i < n; i++ {
		if want := fmt.Sprintf("t%d", n-1-i); s.at(i).Data() != want {
			t.Fatalf("at(%d) = %q, want %q", i, s.at(i).Data(), want)
		}
	}
}

func TestRemoveRange(t *testing.T) {
	cl := &childList{}
	nodes := make([]*Node, 12)
	for i := range nodes {
		nodes[i] = NewText(fmt.Sprintf("t%d", i))
		cl.add(nodes[i])
	}
	cl.removeRange(3, 5)
	if cl.count() != 7 {
		t.Fatalf("count = %d, want 7", cl.count())
	}
	want := []int{0, 1, 2, 8, 9, 10, 11}
	for i, idx := range want {
		if cl.at(i) != nodes[idx] {
			t.Errorf("position %d holds %s, want t%d", i, cl.at(i).Data(), idx)
		}
	}
}
