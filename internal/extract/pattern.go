package extract

import (
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
	"golang.org/x/net/html"
)

// extractPatterns runs the whole-document text against the pattern table for
// any key still missing. At most one value is recovered per key: the first
// capture group of the first match.
func extractPatterns(doc *html.Node, facts model.FactSet) {
	text := collapseWhitespace(textContent(doc))
	if text == "" {
		return
	}

	for _, key := range schema.PatternKeys() {
		if _, known := facts.Get(key); known {
			continue
		}
		re, _ := schema.Pattern(key)
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			facts.SetIfAbsent(key, m[1])
		}
	}
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
