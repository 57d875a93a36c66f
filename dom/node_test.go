package dom

import (
	"testing"
)

// mustAudit fails the test with a tree dump if the full consistency audit
// finds any disagreement between cached and recomputed state.
func mustAudit(t *testing.T, n *Node) {
	t.Helper()
	if err := AuditTree(n); err != nil {
		t.Logf("tree:\n%s", DumpTree(n))
		t.Fatalf("audit failed: %v", err)
	}
}

func TestAppendChild(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	p := NewElement("p")
	text := NewText("hello")

	doc.AsNode().AppendChild(div.AsNode())
	div.AsNode().AppendChild(p.AsNode())
	p.AsNode().AppendChild(text)

	if div.AsNode().ParentNode() != doc.AsNode() {
		t.Error("div parent should be the document")
	}
	if div.AsNode().Index() != 0 {
		t.Errorf("div index = %d, want 0", div.AsNode().Index())
	}
	if text.Root() != doc.AsNode() {
		t.Error("root should propagate to the whole appended subtree")
	}
	if got := doc.AsNode().SubtreeNodeCount(); got != 4 {
		t.Errorf("document subtreeNodeCount = %d, want 4", got)
	}
	if got := doc.AsNode().SubtreeElementCount(); got != 2 {
		t.Errorf("document subtreeElementCount = %d, want 2", got)
	}
	mustAudit(t, doc.AsNode())
}

func TestAppendChildErrors(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	doc.AsNode().AppendChild(div.AsNode())

	if _, err := div.AsNode().AppendChildWithError(nil); err == nil {
		t.Error("appending nil should fail")
	} else if derr := err.(*DOMError); derr.Name != "InvalidArgumentError" {
		t.Errorf("appending nil: got %s, want InvalidArgumentError", derr.Name)
	}

	// A document may not be a child of an element.
	other := NewDocument()
	if _, err := div.AsNode().AppendChildWithError(other.AsNode()); err == nil {
		t.Error("appending a Document should fail")
	} else if derr := err.(*DOMError); derr.Name != "InvalidArgumentError" {
		t.Errorf("appending a Document: got %s, want InvalidArgumentError", derr.Name)
	}

	// Text may not be a direct child of a Document.
	if _, err := doc.AsNode().AppendChildWithError(NewText("x")); err == nil {
		t.Error("appending Text to a Document should fail")
	}

	// Cycle: an ancestor may not become a descendant of its own subtree.
	inner := NewElement("span")
	div.AsNode().AppendChild(inner.AsNode())
	if _, err := inner.AsNode().AppendChildWithError(div.AsNode()); err == nil {
		t.Error("creating a cycle should fail")
	} else if derr := err.(*DOMError); derr.Name != "HierarchyViolationError" {
		t.Errorf("cycle: got %s, want HierarchyViolationError", derr.Name)
	}

	// Leaf nodes cannot have children.
	text := NewText("leaf")
	if _, err := text.AppendChildWithError(NewText("x")); err == nil {
		t.Error("appending to a text node should fail")
	}

	// A failed call must leave the tree untouched.
	mustAudit(t, doc.AsNode())
	if div.AsNode().ChildCount() != 1 {
		t.Errorf("div child count = %d, want 1", div.AsNode().ChildCount())
	}
}

func TestDocumentSingleElementChild(t *testing.T) {
	doc := NewDocument()
	doc.AsNode().AppendChild(NewElement("html").AsNode())
	if _, err := doc.AsNode().AppendChildWithError(NewElement("html").AsNode()); err == nil {
		t.Error("second document element should be rejected")
	} else if derr := err.(*DOMError); derr.Name != "HierarchyViolationError" {
		t.Errorf("got %s, want HierarchyViolationError", derr.Name)
	}
}

func TestInsertBefore(t *testing.T) {
	div := NewElement("div").AsNode()
	a := NewElement("a").AsNode()
	c := NewElement("c").AsNode()
	div.AppendChild(a)
	div.AppendChild(c)

	b := NewElement("b").AsNode()
	div.InsertBefore(b, c)

	want := []string{"a", "b", "c"}
	for i, name := range want {
		child, err := div.ChildAt(i)
		if err != nil {
			t.Fatalf("ChildAt(%d): %v", i, err)
		}
		if child.NodeName() != name {
			t.Errorf("child %d = %s, want %s", i, child.NodeName(), name)
		}
		if child.Index() != i {
			t.Errorf("child %d index = %d", i, child.Index())
		}
	}

	// nil reference behaves as append.
	d := NewElement("d").AsNode()
	div.InsertBefore(d, nil)
	if div.LastChild() != d {
		t.Error("InsertBefore(_, nil) should append")
	}

	// Reference node under a different parent is a hierarchy violation.
	stranger := NewElement("x").AsNode()
	if _, err := div.InsertBeforeWithError(NewElement("y").AsNode(), stranger); err == nil {
		t.Error("foreign reference node should fail")
	}
	mustAudit(t, div)
}

func TestInsertBeforeMovesEarlierSibling(t *testing.T) {
	div := NewElement("div").AsNode()
	a := NewElement("a").AsNode()
	b := NewElement("b").AsNode()
	c := NewElement("c").AsNode()
	div.AppendChild(a)
	div.AppendChild(b)
	div.AppendChild(c)

	// Moving a before c must account for the index shift a's removal causes.
	div.InsertBefore(a, c)

	want := []string{"b", "a", "c"}
	for i, name := range want {
		child, _ := div.ChildAt(i)
		if child.NodeName() != name {
			t.Errorf("child %d = %s, want %s", i, child.NodeName(), name)
		}
	}
	mustAudit(t, div)
}

func TestReattachDetachesFirst(t *testing.T) {
	docA := NewDocument()
	docB := NewDocument()
	div := NewElement("div")
	div.SetId("mover")
	docA.AsNode().AppendChild(div.AsNode())

	docB.AsNode().AppendChild(div.AsNode())

	if docA.GetElementById("mover") != nil {
		t.Error("element should be de-indexed from its old root")
	}
	if docB.GetElementById("mover") != div {
		t.Error("element should be indexed under its new root")
	}
	if docA.AsNode().ChildCount() != 0 {
		t.Error("old parent should have no children left")
	}
	if div.AsNode().Root() != docB.AsNode() {
		t.Error("root should point at the new document")
	}
	mustAudit(t, docA.AsNode())
	mustAudit(t, docB.AsNode())
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div").AsNode()
	doc.AsNode().AppendChild(div)
	var spans []*Node
	for i := 0; i < 3; i++ {
		s := NewElement("span").AsNode()
		div.AppendChild(s)
		spans = append(spans, s)
	}

	div.RemoveChild(spans[1])

	if spans[1].ParentNode() != nil || spans[1].Root() != nil {
		t.Error("removed node should be fully detached")
	}
	if spans[1].Index() != -1 {
		t.Errorf("removed node index = %d, want -1", spans[1].Index())
	}
	if spans[2].Index() != 1 {
		t.Errorf("later sibling index = %d, want 1", spans[2].Index())
	}
	if got := doc.AsNode().SubtreeNodeCount(); got != 4 {
		t.Errorf("document subtreeNodeCount = %d, want 4", got)
	}

	// Removing a non-child is a hierarchy violation.
	if _, err := div.RemoveChildWithError(spans[1]); err == nil {
		t.Error("removing a detached node should fail")
	} else if derr := err.(*DOMError); derr.Name != "HierarchyViolationError" {
		t.Errorf("got %s, want HierarchyViolationError", derr.Name)
	}
	mustAudit(t, doc.AsNode())
}

func TestRemoveSubtreeClearsRoots(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div").AsNode()
	p := NewElement("p").AsNode()
	text := NewText("x")
	doc.AsNode().AppendChild(div)
	div.AppendChild(p)
	p.AppendChild(text)

	doc.AsNode().RemoveChild(div)

	for _, nd := range []*Node{div, p, text} {
		if nd.Root() != nil {
			t.Errorf("%s should have no root after subtree removal", nd.NodeName())
		}
	}
	mustAudit(t, div)
}

func TestReplaceChild(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div").AsNode()
	doc.AsNode().AppendChild(div)
	a := NewElement("a").AsNode()
	b := NewElement("b").AsNode()
	c := NewElement("c").AsNode()
	div.AppendChild(a)
	div.AppendChild(b)
	div.AppendChild(c)

	repl := NewElement("x")
	repl.SetId("swapped-in")
	old, err := div.ReplaceChildWithError(repl.AsNode(), b)
	if err != nil {
		t.Fatalf("ReplaceChild: %v", err)
	}
	if old != b {
		t.Error("ReplaceChild should return the replaced node")
	}
	if repl.AsNode().Index() != 1 {
		t.Errorf("replacement index = %d, want 1", repl.AsNode().Index())
	}
	if c.Index() != 2 {
		t.Errorf("sibling index disturbed: %d", c.Index())
	}
	if b.ParentNode() != nil || b.Root() != nil {
		t.Error("replaced node should be detached")
	}
	if doc.GetElementById("swapped-in") != repl {
		t.Error("replacement should be indexed under the document")
	}
	mustAudit(t, doc.AsNode())
}

func TestReplaceChildWithSibling(t *testing.T) {
	div := NewElement("div").AsNode()
	a := NewElement("a").AsNode()
	b := NewElement("b").AsNode()
	div.AppendChild(a)
	div.AppendChild(b)

	// Replacing a with its own later sibling must survive the index shift
	// caused by detaching b first.
	div.ReplaceChild(b, a)

	if div.ChildCount() != 1 {
		t.Fatalf("child count = %d, want 1", div.ChildCount())
	}
	if div.FirstChild() != b || b.Index() != 0 {
		t.Error("b should be the only child at index 0")
	}
	if a.ParentNode() != nil {
		t.Error("a should be detached")
	}
	mustAudit(t, div)
}

func TestClear(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div").AsNode()
	doc.AsNode().AppendChild(div)
	kids := make([]*Node, 5)
	for i := range kids {
		kids[i] = NewElement("span").AsNode()
		div.AppendChild(kids[i])
	}

	div.Clear()

	if div.ChildCount() != 0 {
		t.Errorf("child count = %d, want 0", div.ChildCount())
	}
	if div.SubtreeNodeCount() != 1 {
		t.Errorf("subtreeNodeCount = %d, want 1", div.SubtreeNodeCount())
	}
	for _, k := range kids {
		if k.ParentNode() != nil || k.Root() != nil || k.Index() != -1 {
			t.Error("cleared child should be fully detached")
		}
	}
	mustAudit(t, doc.AsNode())
}

func TestNormalize(t *testing.T) {
	div := NewElement("div").AsNode()
	div.AppendChild(NewText("foo"))
	div.AppendChild(NewText(""))
	div.AppendChild(NewText("bar"))
	inner := NewElement("span").AsNode()
	inner.AppendChild(NewText("a"))
	inner.AppendChild(NewText("b"))
	div.AppendChild(inner)
	div.AppendChild(NewText("baz"))

	div.Normalize()

	if div.ChildCount() != 3 {
		t.Fatalf("child count = %d, want 3\n%s", div.ChildCount(), DumpTree(div))
	}
	first, _ := div.ChildAt(0)
	if first.Data() != "foobar" {
		t.Errorf("merged text = %q, want %q", first.Data(), "foobar")
	}
	if inner.ChildCount() != 1 || inner.FirstChild().Data() != "ab" {
		t.Error("normalize should recurse into element children")
	}

	// Idempotence: a second pass changes nothing.
	before := div.OuterHTML()
	div.Normalize()
	if after := div.OuterHTML(); after != before {
		t.Errorf("normalize not idempotent: %q vs %q", before, after)
	}
	mustAudit(t, div)
}

func TestSubtreeCountInvariant(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html").AsNode()
	doc.AsNode().AppendChild(html)
	body := NewElement("body").AsNode()
	html.AppendChild(body)
	for i := 0; i < 10; i++ {
		p := NewElement("p").AsNode()
		p.AppendChild(NewText("t"))
		body.AppendChild(p)
	}

	var check func(n *Node)
	check = func(n *Node) {
		nodes, elements := 1, 0
		if n.NodeType() == ElementNode {
			elements = 1
		}
		n.EachChild(func(c *Node) bool {
			check(c)
			nodes += c.SubtreeNodeCount()
			elements += c.SubtreeElementCount()
			return true
		})
		if n.SubtreeNodeCount() != nodes || n.SubtreeElementCount() != elements {
			t.Errorf("%s: counts (%d,%d), recomputed (%d,%d)",
				n.NodeName(), n.SubtreeNodeCount(), n.SubtreeElementCount(), nodes, elements)
		}
	}
	check(doc.AsNode())
}

func TestTextContent(t *testing.T) {
	div := NewElement("div").AsNode()
	div.AppendChild(NewText("a"))
	span := NewElement("span").AsNode()
	span.AppendChild(NewText("b"))
	div.AppendChild(span)
	div.AppendChild(NewComment("not text"))
	div.AppendChild(NewText("c"))

	if got := div.TextContent(); got != "abc" {
		t.Errorf("TextContent = %q, want %q", got, "abc")
	}
}

func TestCloneNode(t *testing.T) {
	div := NewElement("div")
	div.SetId("orig")
	div.SetClassName("a b")
	div.AsNode().AppendChild(NewText("hi"))

	clone := div.AsNode().CloneNode(true)
	cel := (*Element)(clone)

	if cel.Id() != "orig" || cel.ClassName() != "a b" {
		t.Error("clone should copy attributes")
	}
	if clone.ParentNode() != nil || clone.Root() != nil {
		t.Error("clone should be detached")
	}
	if clone.ChildCount() != 1 || clone.FirstChild().Data() != "hi" {
		t.Error("deep clone should copy the subtree")
	}

	// Mutating the clone must not affect the original.
	cel.SetId("changed")
	if div.Id() != "orig" {
		t.Error("clone mutation leaked into the original")
	}

	shallow := div.AsNode().CloneNode(false)
	if shallow.ChildCount() != 0 {
		t.Error("shallow clone should have no children")
	}
}

func TestDeepTreeRootPropagation(t *testing.T) {
	// The root walk is iterative, so a pathologically deep chain must not
	// overflow the stack.
	const depth = 200000
	deepest := NewElement("div").AsNode()
	top := deepest
	for i := 0; i < depth; i++ {
		parent := NewElement("div").AsNode()
		parent.AppendChild(top)
		top = parent
	}
	doc := NewDocument()
	doc.AsNode().AppendChild(top)
	if deepest.Root() != doc.AsNode() {
		t.Error("deepest node did not receive the root")
	}
	doc.AsNode().RemoveChild(top)
	if deepest.Root() != nil {
		t.Error("deepest node kept a stale root")
	}
}
