package dom

import "testing"

func TestRenderElement(t *testing.T) {
	div := NewElement("div")
	div.SetId("box")
	div.SetClassName("a b")
	div.AsNode().AppendChild(NewText("hi & bye"))
	div.AsNode().AppendChild(NewComment("note"))
	span := NewElement("span")
	div.AsNode().AppendChild(span.AsNode())

	got := div.AsNode().OuterHTML()
	want := `<div id="box" class="a b">hi &amp; bye<!--note--><span></span></div>`
	if got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}

	if inner := div.InnerHTML(); inner != `hi &amp; bye<!--note--><span></span>` {
		t.Errorf("InnerHTML = %q", inner)
	}
}

func TestRenderVoidElement(t *testing.T) {
	br := NewElement("br")
	if got := br.AsNode().OuterHTML(); got != "<br>" {
		t.Errorf("OuterHTML = %q, want %q", got, "<br>")
	}
	img := NewElement("img")
	img.SetAttribute("src", "x.png")
	if got := img.AsNode().OuterHTML(); got != `<img src="x.png">` {
		t.Errorf("OuterHTML = %q", got)
	}
}

func TestRenderDocumentOrder(t *testing.T) {
	doc := NewDocument()
	root := NewElement("ul")
	doc.AsNode().AppendChild(root.AsNode())
	for _, txt := range []string{"one", "two", "three"} {
		li := NewElement("li")
		li.AsNode().AppendChild(NewText(txt))
		root.AsNode().AppendChild(li.AsNode())
	}
	// Reorder: move the first item to the end; serialization must follow
	// the storage order.
	first := root.AsNode().FirstChild()
	root.AsNode().AppendChild(first)

	want := "<ul><li>two</li><li>three</li><li>one</li></ul>"
	if got := doc.AsNode().OuterHTML(); got != want {
		t.Errorf("document renders %q, want %q", got, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	a := NewElement("a")
	a.SetAttribute("title", `say "hi" <now>`)
	got := a.AsNode().OuterHTML()
	want := `<a title="say &#34;hi&#34; &lt;now&gt;"></a>`
	if got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
}
