package model

import "time"

// Result is the outcome of one generation request: the final sanitized text
// plus the fact set that was actually available to the generator.
type Result struct {
	// Text is the final description, or the disclosure output when
	// generation was withheld.
	Text string `json:"text"`

	// Facts is the scoped fact set the generator was allowed to use.
	Facts map[string]string `json:"facts"`

	// Disclosure marks the fixed-format fallback (insufficient evidence or
	// total grounding failure). Still a successful result, never an error.
	Disclosure bool `json:"disclosure"`

	Scope       Scope     `json:"scope"`
	GeneratedAt time.Time `json:"generated_at"`

	// LLM carries generation metadata when the text service was called.
	LLM *LLMMeta `json:"llm,omitempty"`
}

// LLMMeta records which provider and model produced the draft.
type LLMMeta struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// Draft is the structured payload the text service is asked to return:
// ordered named sections of evidence-tagged sentences. This shape exists to
// make grounding verifiable sentence by sentence.
type Draft struct {
	Sections []DraftSection `json:"sections"`
}

// DraftSection is one named block of the draft. Section names come from a
// fixed vocabulary (see SectionNames).
type DraftSection struct {
	Name      string          `json:"name"`
	Sentences []DraftSentence `json:"sentences"`
}

// DraftSentence pairs generated text with the fact keys the generator claims
// support it. Consumed exactly once by the grounding validator.
type DraftSentence struct {
	Text     string   `json:"text"`
	Evidence []string `json:"evidence"`
}

// SectionNames is the fixed section vocabulary, in presentation order.
var SectionNames = []string{
	"introduction",
	"access",
	"building-overview",
	"surroundings",
	"closing",
}
