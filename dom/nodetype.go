// Package dom implements a document object model for HTML-like trees with
// incrementally maintained lookup indices and a lazily resolved style cascade.
// Structure follows the DOM Living Standard where it applies.
// https://dom.spec.whatwg.org/
package dom

// NodeType represents the kind of a Node. The numeric values match the DOM
// specification so they can be surfaced to scripting environments unchanged.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CommentNode represents a Comment node.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
	// DocumentFragmentNode represents a DocumentFragment node.
	DocumentFragmentNode NodeType = 11
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	case DocumentFragmentNode:
		return "DOCUMENT_FRAGMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}

// isContainer reports whether nodes of this type may own children.
func (nt NodeType) isContainer() bool {
	switch nt {
	case ElementNode, DocumentNode, DocumentFragmentNode:
		return true
	default:
		return false
	}
}
