// Package merge folds per-source fact sets into one, resolving collisions by
// an information-richness rule: the longer trimmed value wins.
package merge

import (
	"strings"
	"unicode/utf8"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

// Merge combines base and addition into a new fact set. Per key: absent in
// base takes the addition's value; present in both keeps whichever string is
// longer after trimming, counted in runes so Japanese and ASCII values
// compare fairly. Empty values are never kept.
func Merge(base, addition model.FactSet) model.FactSet {
	out := base.Clone()
	for key, added := range addition {
		added = strings.TrimSpace(added)
		if added == "" {
			continue
		}
		current, ok := out[key]
		if !ok || utf8.RuneCountInString(added) > utf8.RuneCountInString(strings.TrimSpace(current)) {
			out[key] = added
		}
	}
	return out
}

// MergeAll folds sets left to right.
func MergeAll(sets ...model.FactSet) model.FactSet {
	out := model.NewFactSet()
	for _, s := range sets {
		out = Merge(out, s)
	}
	return out
}

// ApplyManual merges operator-entered facts last. The free-text block is one
// "label: value" pair per line (ASCII or full-width colon), each label
// resolved through the alias table and merged under the normal length rule.
// An explicitly supplied name is asserted ground truth and overrides
// unconditionally instead of length-comparing.
func ApplyManual(facts model.FactSet, name, extra string) model.FactSet {
	out := Merge(facts, ParseExtraFacts(extra))
	if name = strings.TrimSpace(name); name != "" {
		out[model.KeyName] = name
	}
	return out
}

// ParseExtraFacts parses a free-text block of label:value lines into a fact
// set. Lines without a colon or with an unrecognized label are skipped; the
// closed vocabulary holds even for manual input.
func ParseExtraFacts(block string) model.FactSet {
	facts := model.NewFactSet()
	for _, line := range strings.Split(block, "\n") {
		label, value, ok := splitLabelValue(line)
		if !ok {
			continue
		}
		key, ok := schema.LookupAlias(label)
		if !ok {
			continue
		}
		facts.SetIfAbsent(key, value)
	}
	return facts
}

// splitLabelValue splits one line on the first ASCII or full-width colon.
func splitLabelValue(line string) (label, value string, ok bool) {
	idx := strings.IndexAny(line, ":：")
	if idx < 0 {
		return "", "", false
	}
	label = strings.TrimSpace(line[:idx])
	_, size := utf8.DecodeRuneInString(line[idx:])
	value = strings.TrimSpace(line[idx+size:])
	if label == "" || value == "" {
		return "", "", false
	}
	return label, value, true
}
