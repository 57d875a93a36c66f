package css

import (
	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// StyleRule is one compiled rule: a parsed selector plus the declarations
// its source rule carried. A source rule with a selector list compiles into
// one StyleRule per selector.
type StyleRule struct {
	Selector     *ComplexSelector
	Specificity  Specificity
	Declarations []*douceur.Declaration
}

// Stylesheet is a compiled stylesheet: the rules plus the dependency sets
// the dom core consults to decide whether a class or attribute mutation can
// affect style at all.
type Stylesheet struct {
	Rules []*StyleRule

	// classesUsed and attrsUsed record every class name and attribute name
	// referenced by any selector in this sheet. idsUsed tracks id selectors
	// so id mutations can be treated as attribute dependencies.
	classesUsed map[string]bool
	attrsUsed   map[string]bool
	idsUsed     bool
}

// ParseStylesheet parses stylesheet text and compiles it. Rules whose
// selector fails to parse are dropped individually; a malformed sheet as a
// whole returns the parser's error.
func ParseStylesheet(text string) (*Stylesheet, error) {
	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return compileStylesheet(parsed), nil
}

func compileStylesheet(parsed *douceur.Stylesheet) *Stylesheet {
	ss := &Stylesheet{
		classesUsed: make(map[string]bool),
		attrsUsed:   make(map[string]bool),
	}
	for _, rule := range parsed.Rules {
		ss.compileRule(rule)
	}
	return ss
}

func (ss *Stylesheet) compileRule(rule *douceur.Rule) {
	// At-rules with nested rules (media and the like) contribute their
	// inner rules unconditionally; media evaluation is not this layer's
	// concern.
	for _, nested := range rule.Rules {
		ss.compileRule(nested)
	}
	if len(rule.Declarations) == 0 || rule.Kind != douceur.QualifiedRule {
		return
	}
	for _, selText := range rule.Selectors {
		sel, err := ParseSelector(selText)
		if err != nil {
			continue
		}
		ss.Rules = append(ss.Rules, &StyleRule{
			Selector:     sel,
			Specificity:  sel.CalculateSpecificity(),
			Declarations: rule.Declarations,
		})
		ss.recordDependencies(sel)
	}
}

func (ss *Stylesheet) recordDependencies(sel *ComplexSelector) {
	for _, c := range sel.Compounds {
		for _, class := range c.Classes {
			ss.classesUsed[class] = true
		}
		for _, m := range c.Attrs {
			ss.attrsUsed[m.Name] = true
		}
		if c.ID != "" {
			ss.idsUsed = true
		}
	}
}

// UsesClass reports whether any rule in this sheet references the class.
func (ss *Stylesheet) UsesClass(name string) bool {
	return ss.classesUsed[name]
}

// UsesAttribute reports whether any rule references the attribute. Id
// selectors count as a dependency on the id attribute.
func (ss *Stylesheet) UsesAttribute(name string) bool {
	if name == "id" && ss.idsUsed {
		return true
	}
	return ss.attrsUsed[name]
}
