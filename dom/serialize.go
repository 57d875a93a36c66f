package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// voidElements render without a closing tag and never serialize children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Render appends the node's markup to sb: tag with attributes and children
// for elements, escaped data for text, <!--…--> for comments, and just the
// children for document and fragment roots. Child order follows the ordered
// child storage.
func (n *Node) Render(sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		sb.WriteString(html.EscapeString(n.Data()))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data())
		sb.WriteString("-->")
	case ElementNode:
		el := (*Element)(n)
		sb.WriteByte('<')
		sb.WriteString(el.TagName())
		for _, name := range el.AttributeNames() {
			sb.WriteByte(' ')
			sb.WriteString(name)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(el.GetAttribute(name)))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if voidElements[el.TagName()] {
			return
		}
		n.renderChildren(sb)
		sb.WriteString("</")
		sb.WriteString(el.TagName())
		sb.WriteByte('>')
	case DocumentNode, DocumentFragmentNode:
		n.renderChildren(sb)
	}
}

func (n *Node) renderChildren(sb *strings.Builder) {
	n.EachChild(func(child *Node) bool {
		child.Render(sb)
		return true
	})
}

// OuterHTML returns the node's markup including the node itself.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.Render(&sb)
	return sb.String()
}

// InnerHTML returns the markup of the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	e.AsNode().renderChildren(&sb)
	return sb.String()
}
