package model

import "fmt"

// MaxSources is the maximum number of listing pages per request.
const MaxSources = 3

// Target length bounds (characters of generated prose).
const (
	MinTargetLength = 100
	MaxTargetLength = 2000
)

// DescribeRequest is one generation request. All fields are request-scoped
// values; nothing here is shared across requests.
type DescribeRequest struct {
	// Sources are listing page URLs, at most MaxSources. May be empty when
	// ExtraFacts supplies everything.
	Sources []string `json:"sources"`

	// Name is an operator-supplied property name. Asserted ground truth:
	// it overrides any extracted name unconditionally.
	Name string `json:"name,omitempty"`

	// ExtraFacts is an operator-supplied block of "label: value" lines
	// (ASCII or full-width colon), merged after all extracted sources.
	ExtraFacts string `json:"extra_facts,omitempty"`

	Scope Scope `json:"scope"`
	Tone  Tone  `json:"tone"`

	// TargetLength is the requested prose length in characters.
	TargetLength int `json:"target_length"`

	// MustInclude lists fact keys the caller wants forced into the output.
	// Keys without a known value are skipped; unit-only keys are skipped at
	// building scope.
	MustInclude []FactKey `json:"must_include,omitempty"`

	// FreeText selects the legacy free-text output shape. The structured
	// shape with per-sentence grounding is the default and preferred path.
	FreeText bool `json:"free_text,omitempty"`
}

// Validate checks the request before the pipeline runs. A validation error
// means the pipeline never starts.
func (r *DescribeRequest) Validate() error {
	if len(r.Sources) == 0 && r.Name == "" && r.ExtraFacts == "" {
		return fmt.Errorf("request needs at least one source URL, a name, or extra facts")
	}
	if len(r.Sources) > MaxSources {
		return fmt.Errorf("too many sources: %d (max %d)", len(r.Sources), MaxSources)
	}
	if !r.Scope.Valid() {
		return fmt.Errorf("invalid scope: %q (want %q or %q)", r.Scope, ScopeUnit, ScopeBuilding)
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("invalid tone: %q (want formal, neutral, or friendly)", r.Tone)
	}
	if r.TargetLength < MinTargetLength || r.TargetLength > MaxTargetLength {
		return fmt.Errorf("target length %d out of range [%d, %d]", r.TargetLength, MinTargetLength, MaxTargetLength)
	}
	return nil
}
