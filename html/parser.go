// Package html parses HTML text into the dom package's tree. Tokenizing and
// tree construction are delegated to golang.org/x/net/html; this package only
// converts the parsed nodes.
package html

import (
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/styledom/styledom/dom"
)

// Parse reads a complete HTML document. The parser applies the usual
// normalizations: missing html/head/body elements are synthesized, doctype
// nodes are dropped.
func Parse(r io.Reader) (*dom.Document, error) {
	root, err := xhtml.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := dom.NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c); n != nil {
			if _, err := doc.AsNode().AppendChildWithError(n); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*dom.Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses markup in a body context and returns the resulting
// detached nodes.
func ParseFragment(s string) ([]*dom.Node, error) {
	ctx := &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	parsed, err := xhtml.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, err
	}
	var out []*dom.Node
	for _, c := range parsed {
		if n := convert(c); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// convert maps one parsed node and its subtree. Unsupported node kinds
// (doctype for one) convert to nil and are dropped.
func convert(src *xhtml.Node) *dom.Node {
	switch src.Type {
	case xhtml.ElementNode:
		el := dom.NewElement(src.Data)
		for _, attr := range src.Attr {
			if attr.Namespace != "" {
				continue
			}
			el.SetAttribute(attr.Key, attr.Val)
		}
		n := el.AsNode()
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	case xhtml.TextNode:
		return dom.NewText(src.Data)
	case xhtml.CommentNode:
		return dom.NewComment(src.Data)
	default:
		return nil
	}
}
