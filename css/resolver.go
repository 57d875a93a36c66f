package css

import (
	"sort"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/styledom/styledom/dom"
)

// Cascade layers, weakest first. Important declarations reverse the origin
// order, so user-agent important ends up strongest.
const (
	layerUserAgent = iota
	layerAuthor
	layerInline
	layerAuthorImportant
	layerInlineImportant
	layerUserAgentImportant
)

// Resolver is the style system the dom package consumes: it holds the
// user-agent sheet plus any number of author sheets and computes one
// element's style by running matched declarations through the cascade.
type Resolver struct {
	userAgent *Stylesheet
	sheets    []*Stylesheet

	// inline caches the parsed form of each element's style attribute, keyed
	// by the raw text so a changed attribute reparses exactly once.
	inline map[*dom.Element]*inlineEntry
}

type inlineEntry struct {
	raw   string
	decls []*douceur.Declaration
}

// NewResolver creates a resolver carrying only the built-in user-agent sheet.
func NewResolver() *Resolver {
	return &Resolver{
		userAgent: userAgentStylesheet(),
		inline:    make(map[*dom.Element]*inlineEntry),
	}
}

// AddStylesheet appends a compiled author sheet. Later sheets win ties.
func (r *Resolver) AddStylesheet(ss *Stylesheet) {
	r.sheets = append(r.sheets, ss)
}

// AddStylesheetText parses and appends an author sheet.
func (r *Resolver) AddStylesheetText(text string) error {
	ss, err := ParseStylesheet(text)
	if err != nil {
		return err
	}
	r.AddStylesheet(ss)
	return nil
}

// LoadDocumentStyles compiles the text of every style element attached to the
// document, in document order, and appends the results as author sheets.
func (r *Resolver) LoadDocumentStyles(doc *dom.Document) error {
	set := doc.GetElementsByType("style")
	els := make([]*dom.Element, 0, set.Len())
	for el := range set {
		els = append(els, el)
	}
	sort.Slice(els, func(i, j int) bool {
		return els[i].AsNode().ComparePosition(els[j].AsNode()) == dom.PositionBefore
	})
	for _, el := range els {
		if err := r.AddStylesheetText(el.AsNode().TextContent()); err != nil {
			return err
		}
	}
	return nil
}

// cascadeEntry is one matched declaration awaiting cascade ordering. seq is
// the collection order and breaks ties between equal layer and specificity.
type cascadeEntry struct {
	layer int
	spec  Specificity
	seq   int
	decl  *douceur.Declaration
}

// ComputeStyle implements dom.StyleResolver. It derives the element's style
// from the parent's resolved style, then applies every matched declaration in
// cascade order so the strongest declaration lands last.
func (r *Resolver) ComputeStyle(el *dom.Element, parent dom.ResolvedStyle) dom.ResolvedStyle {
	parentCS, _ := parent.(*ComputedStyle)
	cs := NewComputedStyle(parentCS)

	var entries []cascadeEntry
	seq := 0
	add := func(normal, important int, spec Specificity, decls []*douceur.Declaration) {
		for _, d := range decls {
			layer := normal
			if d.Important {
				layer = important
			}
			entries = append(entries, cascadeEntry{layer: layer, spec: spec, seq: seq, decl: d})
			seq++
		}
	}

	for _, rule := range r.userAgent.Rules {
		if Matches(el, rule.Selector) {
			add(layerUserAgent, layerUserAgentImportant, rule.Specificity, rule.Declarations)
		}
	}
	for _, sheet := range r.sheets {
		for _, rule := range sheet.Rules {
			if Matches(el, rule.Selector) {
				add(layerAuthor, layerAuthorImportant, rule.Specificity, rule.Declarations)
			}
		}
	}
	if decls := r.inlineDeclarations(el); len(decls) > 0 {
		// Inline declarations carry no selector; specificity is moot inside
		// their own layers.
		add(layerInline, layerInlineImportant, Specificity{}, decls)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if a.spec != b.spec {
			return a.spec.Less(b.spec)
		}
		return a.seq < b.seq
	})
	for _, ent := range entries {
		cs.setProperty(ent.decl.Property, ent.decl.Value, parentCS)
	}
	return cs
}

// inlineDeclarations returns the parsed style attribute of el, reparsing only
// when the raw text changed since the last resolution.
func (r *Resolver) inlineDeclarations(el *dom.Element) []*douceur.Declaration {
	raw := el.GetAttribute("style")
	if raw == "" {
		delete(r.inline, el)
		return nil
	}
	if entry, ok := r.inline[el]; ok && entry.raw == raw {
		return entry.decls
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		decls = nil
	}
	r.inline[el] = &inlineEntry{raw: raw, decls: decls}
	return decls
}

// UsesClass implements dom.StyleResolver.
func (r *Resolver) UsesClass(name string) bool {
	if r.userAgent.UsesClass(name) {
		return true
	}
	for _, sheet := range r.sheets {
		if sheet.UsesClass(name) {
			return true
		}
	}
	return false
}

// UsesAttribute implements dom.StyleResolver.
func (r *Resolver) UsesAttribute(name string) bool {
	if r.userAgent.UsesAttribute(name) {
		return true
	}
	for _, sheet := range r.sheets {
		if sheet.UsesAttribute(name) {
			return true
		}
	}
	return false
}
