package css

// userAgentCSS is the built-in default sheet. It covers the handful of
// defaults the resolver needs before any author sheet loads: block-level
// containers, hidden metadata elements, and basic text emphasis.
const userAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6,
ul, ol, li, header, footer, section, article, nav, main,
form, fieldset, table, blockquote, pre {
	display: block;
}
h1 { font-size: 32px; font-weight: 700; }
h2 { font-size: 24px; font-weight: 700; }
h3 { font-size: 19px; font-weight: 700; }
b, strong { font-weight: 700; }
i, em { font-style: italic; }
a { color: #0000ee; }
pre, code { font-family: monospace; white-space: pre; }
center { display: block; text-align: center; }
head, style, script, title, meta, link { display: none; }
[hidden] { display: none; }
`

// userAgentStylesheet compiles the built-in sheet. The text is a constant, so
// a parse failure is a programming error.
func userAgentStylesheet() *Stylesheet {
	ss, err := ParseStylesheet(userAgentCSS)
	if err != nil {
		panic("css: user-agent stylesheet failed to parse: " + err.Error())
	}
	return ss
}
