// Package scope filters facts and sentences by presentation mode. Building
// scope excludes everything that describes a single dwelling unit.
package scope

import (
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

// FilterFacts removes unit-only keys at building scope. Unit scope is
// identity. The input is never mutated.
func FilterFacts(facts model.FactSet, s model.Scope) model.FactSet {
	if s != model.ScopeBuilding {
		return facts.Clone()
	}
	out := model.NewFactSet()
	for key, value := range facts {
		if schema.IsUnitOnly(key) {
			continue
		}
		out[key] = value
	}
	return out
}

// FilterText removes unit-describing sentences at building scope and rejoins
// the survivors. If everything would be discarded, the first original
// sentence is returned instead: this function never returns nothing.
func FilterText(text string, s model.Scope) string {
	if s != model.ScopeBuilding {
		return text
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	kept := FilterSentences(sentences, s)
	if len(kept) == 0 {
		return sentences[0]
	}
	return strings.Join(kept, "")
}

// FilterSentences drops sentences containing a unit keyword at building
// scope. Unlike FilterText, the result may be empty; the pipeline treats an
// empty result as total failure and falls back to disclosure.
func FilterSentences(sentences []string, s model.Scope) []string {
	if s != model.ScopeBuilding {
		return sentences
	}
	var kept []string
	for _, sentence := range sentences {
		if !MentionsUnit(sentence) {
			kept = append(kept, sentence)
		}
	}
	return kept
}

// MentionsUnit reports whether a sentence contains a unit-only keyword.
func MentionsUnit(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range schema.UnitKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// sentence-ending runes; a newline also terminates a sentence.
var terminators = map[rune]bool{
	'。': true, '．': true, '.': true,
	'!': true, '！': true,
	'?': true, '？': true,
}

// SplitSentences splits text at sentence-ending punctuation or newlines,
// keeping the delimiter at the end of the preceding sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if terminators[r] {
			flush()
		}
	}
	flush()

	return sentences
}
