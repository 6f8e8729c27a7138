// Package extract turns one listing document into a partial fact set.
// Four strategies run in priority order, each only filling keys that are
// still missing: JSON-LD structured data, itemprop annotations, table and
// definition-list label/value pairs, and a whole-text regex fallback.
package extract

import (
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"golang.org/x/net/html"
)

// Extraction is the output for one document. Title and Description are kept
// for observability only; they never feed the fact set directly.
type Extraction struct {
	Facts       model.FactSet
	Title       string
	Description string
}

// strategy fills missing keys in facts from the parsed document.
type strategy func(doc *html.Node, facts model.FactSet)

// Extractor applies the strategy chain to listing documents.
type Extractor struct {
	strategies []strategy
}

// NewExtractor creates an extractor with the standard strategy order.
func NewExtractor() *Extractor {
	return &Extractor{
		strategies: []strategy{
			extractStructuredData,
			extractItemprops,
			extractTabular,
			extractPatterns,
		},
	}
}

// Extract produces a partial fact set from raw markup. Malformed input never
// fails the caller: a parse error yields an empty extraction.
func (e *Extractor) Extract(markup string) Extraction {
	out := Extraction{Facts: model.NewFactSet()}
	if strings.TrimSpace(markup) == "" {
		return out
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return out
	}

	for _, apply := range e.strategies {
		apply(doc, out.Facts)
	}

	out.Title = documentTitle(doc)
	out.Description = documentDescription(doc)
	return out
}

// documentTitle returns the <title> text, if any.
func documentTitle(doc *html.Node) string {
	var title string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return false
		}
		return true
	})
	return title
}

// documentDescription returns the meta description content, if any.
func documentDescription(doc *html.Node) string {
	var desc string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "meta" {
			if attr(n, "name") == "description" {
				desc = strings.TrimSpace(attr(n, "content"))
				return false
			}
		}
		return true
	})
	return desc
}

// walk traverses the tree depth-first. Returning false from fn stops the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// textContent collects the visible text under n, skipping script-like
// elements, with single spaces between text nodes.
func textContent(n *html.Node) string {
	var buf strings.Builder

	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}

	rec(n)
	return buf.String()
}
