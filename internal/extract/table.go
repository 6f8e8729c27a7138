package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
	"golang.org/x/net/html"
)

// extractTabular scans table rows, definition lists, and spec/summary-classed
// blocks for label/value pairs. A label is accepted only when its alias maps
// to a canonical key and it stays short after whitespace removal; the first
// match per key wins.
func extractTabular(doc *html.Node, facts model.FactSet) {
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch {
		case n.Data == "tr":
			label, value := rowPair(n)
			acceptPair(facts, label, value)
		case n.Data == "dl":
			for _, pair := range definitionPairs(n) {
				acceptPair(facts, pair.label, pair.value)
			}
		case isSpecBlock(n):
			label, value := childPair(n)
			acceptPair(facts, label, value)
		}
		return true
	})
}

// acceptPair records label/value if the label resolves to a known key.
func acceptPair(facts model.FactSet, label, value string) {
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	if label == "" || value == "" {
		return
	}
	normalized := schema.NormalizeLabel(label)
	if utf8.RuneCountInString(normalized) > schema.MaxLabelRunes {
		return
	}
	key, ok := schema.LookupAlias(label)
	if !ok {
		return
	}
	facts.SetIfAbsent(key, value)
}

// rowPair reads the first two cells of a table row as label and value.
func rowPair(tr *html.Node) (string, string) {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, textContent(c))
			if len(cells) == 2 {
				break
			}
		}
	}
	if len(cells) < 2 {
		return "", ""
	}
	return cells[0], cells[1]
}

// labelValue is one observed label/value pair, in document order.
type labelValue struct {
	label string
	value string
}

// definitionPairs reads dt/dd pairs from a definition list in document order.
// Each dd is associated with the most recent dt. Order matters: two labels
// can alias to the same key, and the earlier one must win.
func definitionPairs(dl *html.Node) []labelValue {
	var pairs []labelValue
	term := ""
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			term = textContent(c)
		case "dd":
			if term != "" {
				pairs = append(pairs, labelValue{label: term, value: textContent(c)})
			}
		}
	}
	return pairs
}

// isSpecBlock reports whether an element carries a spec/summary-like class.
func isSpecBlock(n *html.Node) bool {
	class := strings.ToLower(attr(n, "class"))
	return strings.Contains(class, "spec") || strings.Contains(class, "summary")
}

// childPair reads the first two element children of a block as label/value.
func childPair(n *html.Node) (string, string) {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			parts = append(parts, textContent(c))
			if len(parts) == 2 {
				break
			}
		}
	}
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
