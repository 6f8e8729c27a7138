// Package gate decides whether a merged, scoped fact set has enough
// substance to justify calling the text service, and renders the fixed
// disclosure output when it does not.
package gate

import (
	"fmt"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

// DefaultMinFacts is the evidence threshold: the count of known facts that
// unlocks generation. At exactly this count generation proceeds.
const DefaultMinFacts = 3

// HasEnoughEvidence reports whether generation may proceed.
func HasEnoughEvidence(facts model.FactSet, minFacts int) bool {
	if minFacts <= 0 {
		minFacts = DefaultMinFacts
	}
	return facts.Count() >= minFacts
}

// Disclosure renders the fixed-format fallback: a header stating generation
// was withheld, every known fact itemized, and scope-specific guidance on
// what would unlock generation. This path never calls the text service.
func Disclosure(facts model.FactSet, s model.Scope, minFacts int) string {
	if minFacts <= 0 {
		minFacts = DefaultMinFacts
	}

	var b strings.Builder
	b.WriteString("確認できた情報が少ないため、紹介文の自動生成を見送りました。\n")
	b.WriteString(fmt.Sprintf("(known facts: %d, required: %d)\n\n", facts.Count(), minFacts))

	b.WriteString("現在確認できている情報:\n")
	if facts.Count() == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, key := range schema.Keys {
			if value, ok := facts.Get(key); ok {
				b.WriteString(fmt.Sprintf("- %s: %s\n", schema.Labels[key], value))
			}
		}
	}

	b.WriteString("\n生成に進むには、次の情報の追加をご検討ください:\n")
	for _, key := range schema.RequiredGuidance(s) {
		if _, ok := facts.Get(key); ok {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s\n", schema.Labels[key]))
	}

	return b.String()
}
