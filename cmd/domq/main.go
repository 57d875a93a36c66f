// Command domq loads an HTML document, optionally applies stylesheets and a
// script, and prints the elements matching a selector along with requested
// computed properties.
//
// Usage:
//
//	domq [-css file] [-js file] [-query selector] [-props p1,p2] [-dump] page.html
//
// With "-" as the input path the document is read from stdin.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/styledom/styledom/css"
	"github.com/styledom/styledom/dom"
	"github.com/styledom/styledom/html"
	"github.com/styledom/styledom/js"
)

func main() {
	var (
		cssPath  = flag.String("css", "", "stylesheet file to apply in addition to document styles")
		jsPath   = flag.String("js", "", "script file to run against the document before querying")
		query    = flag.String("query", "", "selector to match; omit to just load the document")
		props    = flag.String("props", "", "comma-separated computed properties to print per match")
		dumpTree = flag.Bool("dump", false, "print the document tree")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: domq [flags] page.html")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *cssPath, *jsPath, *query, *props, *dumpTree); err != nil {
		fmt.Fprintln(os.Stderr, "domq:", err)
		os.Exit(1)
	}
}

func run(htmlPath, cssPath, jsPath, query, props string, dumpTree bool) error {
	doc, err := loadDocument(htmlPath)
	if err != nil {
		return fmt.Errorf("parse %s: %w", htmlPath, err)
	}

	resolver := css.NewResolver()
	if err := resolver.LoadDocumentStyles(doc); err != nil {
		return fmt.Errorf("document styles: %w", err)
	}
	if cssPath != "" {
		text, err := os.ReadFile(cssPath)
		if err != nil {
			return err
		}
		if err := resolver.AddStylesheetText(string(text)); err != nil {
			return fmt.Errorf("parse %s: %w", cssPath, err)
		}
	}
	doc.SetStyleResolver(resolver)

	if jsPath != "" {
		src, err := os.ReadFile(jsPath)
		if err != nil {
			return err
		}
		if _, err := js.NewRuntime(doc).Run(string(src)); err != nil {
			return fmt.Errorf("run %s: %w", jsPath, err)
		}
	}

	if dumpTree {
		fmt.Print(dom.DumpTree(doc.AsNode()))
	}
	if query == "" {
		return nil
	}

	matches, err := css.Find(doc, query)
	if err != nil {
		return fmt.Errorf("selector %q: %w", query, err)
	}
	propNames := splitProps(props)
	for _, el := range matches {
		fmt.Println(describe(el))
		if len(propNames) == 0 {
			continue
		}
		cs, _ := el.GetComputedStyle().(*css.ComputedStyle)
		for _, p := range propNames {
			value := ""
			if cs != nil {
				value = cs.GetPropertyValue(p)
			}
			fmt.Printf("  %s: %s\n", p, value)
		}
	}
	return nil
}

func loadDocument(path string) (*dom.Document, error) {
	if path == "-" {
		return html.Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return html.Parse(f)
}

func splitProps(props string) []string {
	var out []string
	for _, p := range strings.Split(props, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// describe renders one matched element as a single selector-ish line.
func describe(el *dom.Element) string {
	var sb strings.Builder
	sb.WriteString(el.TagName())
	if id := el.Id(); id != "" {
		sb.WriteString("#" + id)
	}
	for _, class := range el.Classes() {
		sb.WriteString("." + class)
	}
	return sb.String()
}
