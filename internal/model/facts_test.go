package model

import "testing"

func TestFactSetSetTrimsAndRejectsEmpty(t *testing.T) {
	f := NewFactSet()
	f.Set(KeyName, "  パークハイツ青葉台  ")
	f.Set(KeyLocation, "   ")

	if got := f[KeyName]; got != "パークハイツ青葉台" {
		t.Errorf("value not trimmed: %q", got)
	}
	if _, ok := f.Get(KeyLocation); ok {
		t.Error("whitespace-only value must not be stored")
	}
}

func TestFactSetSetIfAbsent(t *testing.T) {
	f := NewFactSet()
	f.SetIfAbsent(KeyName, "first")
	f.SetIfAbsent(KeyName, "second")

	if got := f[KeyName]; got != "first" {
		t.Errorf("first value must win: %q", got)
	}
}

func TestFactSetCloneIndependent(t *testing.T) {
	f := FactSet{KeyName: "A棟"}
	c := f.Clone()
	c.Set(KeyName, "B棟")

	if f[KeyName] != "A棟" {
		t.Errorf("clone mutation leaked into original: %q", f[KeyName])
	}
}

func TestScopeAndToneValidation(t *testing.T) {
	if !ScopeUnit.Valid() || !ScopeBuilding.Valid() {
		t.Error("canonical scopes must validate")
	}
	if Scope("district").Valid() {
		t.Error("unknown scope must not validate")
	}
	if !ToneFormal.Valid() || !ToneNeutral.Valid() || !ToneFriendly.Valid() {
		t.Error("canonical tones must validate")
	}
	if Tone("sarcastic").Valid() {
		t.Error("unknown tone must not validate")
	}
}

func TestDescribeRequestValidate(t *testing.T) {
	valid := DescribeRequest{
		Sources:      []string{"https://example.jp/1"},
		Scope:        ScopeBuilding,
		Tone:         ToneNeutral,
		TargetLength: 400,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	// Extra facts alone are enough input.
	factsOnly := valid
	factsOnly.Sources = nil
	factsOnly.ExtraFacts = "物件名: A棟"
	if err := factsOnly.Validate(); err != nil {
		t.Errorf("facts-only request rejected: %v", err)
	}

	empty := valid
	empty.Sources = nil
	if err := empty.Validate(); err == nil {
		t.Error("request without any input must be rejected")
	}

	tooMany := valid
	tooMany.Sources = []string{"a", "b", "c", "d"}
	if err := tooMany.Validate(); err == nil {
		t.Error("more than MaxSources must be rejected")
	}

	short := valid
	short.TargetLength = MinTargetLength - 1
	if err := short.Validate(); err == nil {
		t.Error("target length below minimum must be rejected")
	}

	long := valid
	long.TargetLength = MaxTargetLength + 1
	if err := long.Validate(); err == nil {
		t.Error("target length above maximum must be rejected")
	}
}
