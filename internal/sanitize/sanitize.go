// Package sanitize performs the post-validation passes: banned-vocabulary
// substitution, boilerplate removal for the legacy free-text path, and the
// must-include completeness addendum.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
	"github.com/ymiyake/bukkengen/internal/scope"
)

// Sanitize replaces every literal banned term with an annotated placeholder.
// The term is wrapped, not deleted: the reader must be able to see that a
// substitution occurred rather than silently losing content.
func Sanitize(text string) string {
	for _, term := range schema.BannedTerms {
		if !containsFold(text, term) {
			continue
		}
		text = replaceFold(text, term, "[adjusted:"+term+"]")
	}
	return text
}

// StripHedges removes sentences carrying a boilerplate hedge phrase. The
// grounding validator already rejects these on the structured path; this is
// the equivalent pass for legacy free-text output.
func StripHedges(text string) string {
	sentences := scope.SplitSentences(text)
	var kept []string
	for _, s := range sentences {
		hedged := false
		lower := strings.ToLower(s)
		for _, phrase := range schema.HedgePhrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				hedged = true
				break
			}
		}
		if !hedged {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return text
	}
	return strings.Join(kept, "")
}

// EnforceCompleteness appends a visible addendum for every required key that
// is applicable at the current scope, has a known value, and is not already
// found in the text. A fact counts as present when the text contains the
// bare value, "label：value", or "label:value". Precision over fluency: a
// required fact is never silently omitted.
func EnforceCompleteness(text string, facts model.FactSet, required []model.FactKey, s model.Scope) string {
	var missing []model.FactKey
	for _, key := range required {
		if s == model.ScopeBuilding && schema.IsUnitOnly(key) {
			continue
		}
		value, known := facts.Get(key)
		if !known {
			continue
		}
		if factMentioned(text, key, value) {
			continue
		}
		missing = append(missing, key)
	}

	if len(missing) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n【物件情報】\n")
	for _, key := range missing {
		value, _ := facts.Get(key)
		b.WriteString(fmt.Sprintf("- %s：%s\n", schema.Labels[key], value))
	}
	return b.String()
}

// factMentioned checks the three accepted textual forms of a fact.
func factMentioned(text string, key model.FactKey, value string) bool {
	if strings.Contains(text, value) {
		return true
	}
	label := schema.Labels[key]
	return strings.Contains(text, label+"："+value) ||
		strings.Contains(text, label+":"+value)
}

// containsFold is a case-insensitive substring check (banned terms include
// English words that may appear capitalized).
func containsFold(text, term string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// replaceFold replaces every case-insensitive occurrence of term, keeping
// the original casing inside the placeholder.
func replaceFold(text, term, replacement string) string {
	lowerTerm := strings.ToLower(term)
	var b strings.Builder
	for {
		idx := strings.Index(strings.ToLower(text), lowerTerm)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		original := text[idx : idx+len(term)]
		b.WriteString(strings.Replace(replacement, term, original, 1))
		text = text[idx+len(term):]
	}
	return b.String()
}
