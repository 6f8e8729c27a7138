package ground

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

// ErrNothingGrounded signals that no sentence survived validation. The
// pipeline treats it like insufficient evidence and falls back to the
// disclosure output.
var ErrNothingGrounded = errors.New("no sentence survived grounding validation")

// Validator accepts or rejects generated sentences against the scoped fact
// set. Each check is a hard filter: failing sentences are dropped, never
// corrected.
type Validator struct {
	// facts holds the permitted keys and their literal values. A key
	// absent from this set is automatically disqualifying.
	facts model.FactSet
}

// NewValidator creates a validator for one request's scoped fact set.
func NewValidator(facts model.FactSet) *Validator {
	return &Validator{facts: facts}
}

// Validate parses raw model output as the structured draft shape and returns
// the surviving sentences in draft order. Sections with zero survivors are
// dropped entirely; zero survivors overall is ErrNothingGrounded.
func (v *Validator) Validate(raw string) ([]string, error) {
	draft, err := ParseDraft(raw)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, section := range draft.Sections {
		for _, sentence := range section.Sentences {
			if v.Accept(sentence) {
				kept = append(kept, strings.TrimSpace(sentence.Text))
			}
		}
	}

	if len(kept) == 0 {
		return nil, ErrNothingGrounded
	}
	return kept, nil
}

// Accept applies the per-sentence filters: at least one claimed evidence
// key, every claimed key permitted and known, at least one claimed value
// verbatim in the text, and no boilerplate hedge phrase.
func (v *Validator) Accept(s model.DraftSentence) bool {
	if strings.TrimSpace(s.Text) == "" {
		return false
	}
	return v.evidencePermitted(s) && v.valueSubstantiated(s) && !containsHedge(s.Text)
}

// evidencePermitted requires a non-empty evidence set drawn entirely from
// the permitted keys.
func (v *Validator) evidencePermitted(s model.DraftSentence) bool {
	if len(s.Evidence) == 0 {
		return false
	}
	for _, raw := range s.Evidence {
		key := model.FactKey(strings.TrimSpace(raw))
		if !schema.IsKnownKey(key) {
			return false
		}
		if _, ok := v.facts.Get(key); !ok {
			return false
		}
	}
	return true
}

// valueSubstantiated is the actual grounding check: at least one claimed
// key's literal fact value must appear verbatim inside the sentence text, so
// a reader can point to the fact reproduced in it.
func (v *Validator) valueSubstantiated(s model.DraftSentence) bool {
	for _, raw := range s.Evidence {
		key := model.FactKey(strings.TrimSpace(raw))
		value, ok := v.facts.Get(key)
		if !ok {
			continue
		}
		if strings.Contains(s.Text, value) {
			return true
		}
	}
	return false
}

// containsHedge reports whether the text carries a banned boilerplate
// generalization.
func containsHedge(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range schema.HedgePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// ParseDraft extracts and decodes the structured draft from noisy raw
// output. Surrounding non-JSON text is tolerated, including brace-bearing
// quoted fragments before the draft: a candidate object that fails to decode
// is skipped and scanning resumes after its opening brace. Parsing fails
// only when no candidate in the output decodes.
func ParseDraft(raw string) (*model.Draft, error) {
	rest := raw
	var lastErr error
	for {
		obj, ok := ExtractJSONObject(rest)
		if !ok {
			if lastErr != nil {
				return nil, fmt.Errorf("decode draft: %w", lastErr)
			}
			return nil, fmt.Errorf("no JSON object found in model output")
		}

		var draft model.Draft
		err := json.Unmarshal([]byte(obj), &draft)
		if err == nil {
			return &draft, nil
		}
		lastErr = err

		rest = rest[strings.Index(rest, obj)+1:]
	}
}

// JoinSentences concatenates sentences into prose. Japanese sentences end in
// their own terminator and join directly; ASCII-terminated sentences get a
// separating space.
func JoinSentences(sentences []string) string {
	var b strings.Builder
	for i, s := range sentences {
		b.WriteString(s)
		if i == len(sentences)-1 {
			break
		}
		if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
			b.WriteString(" ")
		}
	}
	return b.String()
}
