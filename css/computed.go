// Package css implements stylesheet compilation, selector matching, and the
// cascade resolver that feeds the dom package's lazy style resolution.
// Stylesheet text is parsed with github.com/aymerick/douceur; this package
// owns selector semantics, specificity, and cascade ordering.
package css

// ComputedStyle is the resolved style of one element after cascade and
// inheritance. The dom package caches it as an opaque value.
type ComputedStyle struct {
	props map[string]string
}

// NewComputedStyle derives the starting point for an element from its
// parent's resolved style: inherited properties are copied, everything else
// begins at its initial value.
func NewComputedStyle(parent *ComputedStyle) *ComputedStyle {
	cs := &ComputedStyle{props: make(map[string]string, len(initialValues))}
	for prop, val := range initialValues {
		cs.props[prop] = val
	}
	if parent != nil {
		for prop := range inheritedProperties {
			if v, ok := parent.props[prop]; ok {
				cs.props[prop] = v
			}
		}
	}
	return cs
}

// GetPropertyValue returns the computed value of a property, or "" when the
// property was never set and has no initial value here.
func (cs *ComputedStyle) GetPropertyValue(property string) string {
	return cs.props[property]
}

// Properties returns the property names with a computed value.
func (cs *ComputedStyle) Properties() []string {
	out := make([]string, 0, len(cs.props))
	for p := range cs.props {
		out = append(out, p)
	}
	return out
}

// setProperty applies one cascaded declaration. The keyword "inherit" pulls
// the parent's value explicitly.
func (cs *ComputedStyle) setProperty(property, value string, parent *ComputedStyle) {
	if value == "inherit" {
		if parent != nil {
			cs.props[property] = parent.props[property]
		}
		return
	}
	cs.props[property] = value
}

// Display returns the computed display value.
func (cs *ComputedStyle) Display() string {
	return cs.props["display"]
}

// inheritedProperties are passed from parent to child when unset.
var inheritedProperties = map[string]bool{
	"color":           true,
	"cursor":          true,
	"direction":       true,
	"font-family":     true,
	"font-size":       true,
	"font-style":      true,
	"font-weight":     true,
	"letter-spacing":  true,
	"line-height":     true,
	"list-style-type": true,
	"text-align":      true,
	"visibility":      true,
	"white-space":     true,
	"word-spacing":    true,
}

// initialValues seed every computed style before the cascade runs.
var initialValues = map[string]string{
	"display":          "inline",
	"color":            "#000000",
	"background-color": "transparent",
	"font-family":      "serif",
	"font-size":        "16px",
	"font-style":       "normal",
	"font-weight":      "400",
	"text-align":       "left",
	"visibility":       "visible",
	"white-space":      "normal",
}
