package css

import (
	"errors"
	"strings"
	"unicode"
)

// Specificity orders selectors within one cascade layer: ids, then
// classes/attributes, then type selectors.
type Specificity [3]int

// Less reports whether s loses to other.
func (s Specificity) Less(other Specificity) bool {
	for i := 0; i < 3; i++ {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

// AttrOp is the comparison an attribute matcher applies.
type AttrOp int

const (
	// AttrPresent matches any value, e.g. [disabled].
	AttrPresent AttrOp = iota
	// AttrEquals matches the exact value, e.g. [type="text"].
	AttrEquals
	// AttrIncludes matches one whitespace-separated word, e.g. [rel~="nofollow"].
	AttrIncludes
	// AttrPrefix matches a value prefix, e.g. [href^="https:"].
	AttrPrefix
	// AttrSuffix matches a value suffix, e.g. [src$=".png"].
	AttrSuffix
	// AttrContains matches a substring, e.g. [href*="example"].
	AttrContains
)

// AttrMatcher is one [attr…] condition of a compound selector.
type AttrMatcher struct {
	Name  string
	Op    AttrOp
	Value string
}

// CompoundSelector is a run of simple selectors applying to one element:
// optional tag, optional id, classes, and attribute matchers.
type CompoundSelector struct {
	Tag     string // "" or "*" matches any element
	ID      string
	Classes []string
	Attrs   []AttrMatcher
}

// Combinator links two compounds of a complex selector.
type Combinator int

const (
	// CombinatorDescendant is whitespace: "div p".
	CombinatorDescendant Combinator = iota
	// CombinatorChild is ">": "ul > li".
	CombinatorChild
	// CombinatorAdjacent is "+": "h1 + p".
	CombinatorAdjacent
)

// ComplexSelector is a full selector: compounds joined left-to-right by
// combinators. Combinators[i] sits between Compounds[i] and Compounds[i+1].
type ComplexSelector struct {
	Compounds   []CompoundSelector
	Combinators []Combinator
	Source      string
}

// CalculateSpecificity sums the specificity of every compound.
func (sel *ComplexSelector) CalculateSpecificity() Specificity {
	var sp Specificity
	for _, c := range sel.Compounds {
		if c.ID != "" {
			sp[0]++
		}
		sp[1] += len(c.Classes) + len(c.Attrs)
		if c.Tag != "" && c.Tag != "*" {
			sp[2]++
		}
	}
	return sp
}

// ParseSelector parses one complex selector. Selector lists (comma
// separated) are split by the stylesheet compiler before this runs.
func ParseSelector(input string) (*ComplexSelector, error) {
	p := &selectorParser{input: strings.TrimSpace(input)}
	sel, err := p.parse()
	if err != nil {
		return nil, err
	}
	sel.Source = strings.TrimSpace(input)
	return sel, nil
}

type selectorParser struct {
	input string
	pos   int
}

func (p *selectorParser) parse() (*ComplexSelector, error) {
	sel := &ComplexSelector{}
	for {
		compound, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		sel.Compounds = append(sel.Compounds, compound)

		comb, more := p.parseCombinator()
		if !more {
			break
		}
		sel.Combinators = append(sel.Combinators, comb)
	}
	if len(sel.Compounds) == 0 {
		return nil, errors.New("css: empty selector")
	}
	return sel, nil
}

// parseCombinator consumes trailing whitespace and an optional explicit
// combinator. It reports false at the end of the input.
func (p *selectorParser) parseCombinator() (Combinator, bool) {
	sawSpace := false
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
		sawSpace = true
	}
	if p.pos >= len(p.input) {
		return 0, false
	}
	switch p.input[p.pos] {
	case '>':
		p.pos++
		p.skipSpace()
		return CombinatorChild, true
	case '+':
		p.pos++
		p.skipSpace()
		return CombinatorAdjacent, true
	}
	if sawSpace {
		return CombinatorDescendant, true
	}
	return 0, false
}

func (p *selectorParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *selectorParser) parseCompound() (CompoundSelector, error) {
	var c CompoundSelector
	start := p.pos
	for p.pos < len(p.input) {
		switch ch := p.input[p.pos]; {
		case ch == '*':
			p.pos++
			c.Tag = "*"
		case ch == '#':
			p.pos++
			c.ID = p.parseIdent()
			if c.ID == "" {
				return c, errors.New("css: expected identifier after '#'")
			}
		case ch == '.':
			p.pos++
			class := p.parseIdent()
			if class == "" {
				return c, errors.New("css: expected identifier after '.'")
			}
			c.Classes = append(c.Classes, class)
		case ch == '[':
			m, err := p.parseAttrMatcher()
			if err != nil {
				return c, err
			}
			c.Attrs = append(c.Attrs, m)
		case ch == ':':
			// Pseudo-classes and pseudo-elements are skipped rather than
			// rejected so real-world sheets still load; the compound keeps
			// matching on its remaining simple selectors.
			p.pos++
			if p.pos < len(p.input) && p.input[p.pos] == ':' {
				p.pos++
			}
			p.parseIdent()
			p.skipParenGroup()
		case isIdentChar(ch):
			if c.Tag != "" || p.pos != start {
				return c, errors.New("css: misplaced type selector in " + p.input)
			}
			c.Tag = strings.ToLower(p.parseIdent())
		default:
			if p.pos == start {
				return c, errors.New("css: unexpected character " + string(ch))
			}
			return c, nil
		}
		if next := p.peek(); next == ' ' || next == '>' || next == '+' || next == 0 {
			return c, nil
		}
	}
	if p.pos == start {
		return c, errors.New("css: empty selector")
	}
	return c, nil
}

func (p *selectorParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	ch := p.input[p.pos]
	if unicode.IsSpace(rune(ch)) {
		return ' '
	}
	return ch
}

func (p *selectorParser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *selectorParser) skipParenGroup() {
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return
	}
	depth := 0
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

func (p *selectorParser) parseAttrMatcher() (AttrMatcher, error) {
	var m AttrMatcher
	p.pos++ // consume '['
	p.skipSpace()
	m.Name = p.parseIdent()
	if m.Name == "" {
		return m, errors.New("css: expected attribute name")
	}
	p.skipSpace()
	if p.pos >= len(p.input) {
		return m, errors.New("css: unterminated attribute selector")
	}
	if p.input[p.pos] == ']' {
		p.pos++
		m.Op = AttrPresent
		return m, nil
	}

	switch {
	case strings.HasPrefix(p.input[p.pos:], "~="):
		m.Op, p.pos = AttrIncludes, p.pos+2
	case strings.HasPrefix(p.input[p.pos:], "^="):
		m.Op, p.pos = AttrPrefix, p.pos+2
	case strings.HasPrefix(p.input[p.pos:], "$="):
		m.Op, p.pos = AttrSuffix, p.pos+2
	case strings.HasPrefix(p.input[p.pos:], "*="):
		m.Op, p.pos = AttrContains, p.pos+2
	case p.input[p.pos] == '=':
		m.Op, p.pos = AttrEquals, p.pos+1
	default:
		return m, errors.New("css: malformed attribute selector")
	}

	p.skipSpace()
	if p.pos < len(p.input) && (p.input[p.pos] == '"' || p.input[p.pos] == '\'') {
		quote := p.input[p.pos]
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		m.Value = p.input[start:p.pos]
		if p.pos < len(p.input) {
			p.pos++
		}
	} else {
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != ']' && !unicode.IsSpace(rune(p.input[p.pos])) {
			p.pos++
		}
		m.Value = p.input[start:p.pos]
	}
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		return m, errors.New("css: unterminated attribute selector")
	}
	p.pos++
	return m, nil
}

func isIdentChar(ch byte) bool {
	return ch == '-' || ch == '_' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
