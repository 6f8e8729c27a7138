package ground

import (
	"errors"
	"strings"
	"testing"

	"github.com/ymiyake/bukkengen/internal/model"
)

func testFacts() model.FactSet {
	return model.FactSet{
		model.KeyName:           "パークハイツ青葉台",
		model.KeyYearBuilt:      "1991年3月築",
		model.KeyNearestStation: "中目黒駅",
	}
}

func draftJSON(sentences ...string) string {
	return `{"sections":[{"name":"introduction","sentences":[` + strings.Join(sentences, ",") + `]}]}`
}

func TestValidateKeepsGroundedSentence(t *testing.T) {
	v := NewValidator(testFacts())
	raw := draftJSON(`{"text":"パークハイツ青葉台は1991年3月築のマンションです。","evidence":["name","year-built"]}`)

	kept, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(kept))
	}
}

func TestValidateRejectsUnknownEvidenceKey(t *testing.T) {
	v := NewValidator(testFacts())
	raw := draftJSON(
		`{"text":"パークハイツ青葉台は素晴らしい。","evidence":["name","price"]}`,
		`{"text":"中目黒駅が最寄りです。","evidence":["nearest-station"]}`,
	)

	kept, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || !strings.Contains(kept[0], "中目黒駅") {
		t.Errorf("sentence with out-of-vocabulary evidence must be dropped, kept %v", kept)
	}
}

func TestValidateRejectsKeyWithoutKnownValue(t *testing.T) {
	v := NewValidator(testFacts())
	// structure is a known vocabulary key but has no value in this fact set.
	raw := draftJSON(`{"text":"RC造の建物です。","evidence":["structure"]}`)

	_, err := v.Validate(raw)
	if !errors.Is(err, ErrNothingGrounded) {
		t.Fatalf("expected ErrNothingGrounded, got %v", err)
	}
}

func TestValidateRejectsEmptyEvidence(t *testing.T) {
	v := NewValidator(testFacts())
	raw := draftJSON(`{"text":"パークハイツ青葉台は1991年3月築です。","evidence":[]}`)

	_, err := v.Validate(raw)
	if !errors.Is(err, ErrNothingGrounded) {
		t.Fatalf("sentence without evidence must not survive, got %v", err)
	}
}

func TestValidateRejectsParaphrasedValue(t *testing.T) {
	v := NewValidator(testFacts())
	// "1990年頃" is not the literal fact value "1991年3月築".
	raw := draftJSON(
		`{"text":"1990年頃に建てられたマンションです。","evidence":["year-built"]}`,
		`{"text":"1991年3月築の建物です。","evidence":["year-built"]}`,
	)

	kept, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || !strings.Contains(kept[0], "1991年3月築") {
		t.Errorf("paraphrased value must be dropped, kept %v", kept)
	}
}

func TestValidateRejectsHedgedSentence(t *testing.T) {
	v := NewValidator(testFacts())
	raw := draftJSON(`{"text":"中目黒駅が近いので便利と言えるでしょう。","evidence":["nearest-station"]}`)

	_, err := v.Validate(raw)
	if !errors.Is(err, ErrNothingGrounded) {
		t.Fatalf("hedged sentence must not survive, got %v", err)
	}
}

func TestValidatePreservesDraftOrder(t *testing.T) {
	v := NewValidator(testFacts())
	raw := `{"sections":[
		{"name":"introduction","sentences":[{"text":"パークハイツ青葉台のご紹介です。","evidence":["name"]}]},
		{"name":"access","sentences":[{"text":"最寄駅は中目黒駅です。","evidence":["nearest-station"]}]}
	]}`

	kept, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(kept))
	}
	if !strings.Contains(kept[0], "パークハイツ青葉台") || !strings.Contains(kept[1], "中目黒駅") {
		t.Errorf("order not preserved: %v", kept)
	}
}

func TestValidateTotalFailure(t *testing.T) {
	v := NewValidator(testFacts())
	raw := draftJSON(`{"text":"駅近の好物件です。","evidence":["price","view"]}`)

	_, err := v.Validate(raw)
	if !errors.Is(err, ErrNothingGrounded) {
		t.Fatalf("expected ErrNothingGrounded, got %v", err)
	}
}

func TestValidateMalformedPayload(t *testing.T) {
	v := NewValidator(testFacts())

	if _, err := v.Validate("no json at all"); err == nil {
		t.Error("expected error for missing JSON object")
	}
	if _, err := v.Validate(`{"sections": "not an array"}`); err == nil {
		t.Error("expected error for wrong shape")
	}
}

func TestParseDraftToleratesNoise(t *testing.T) {
	raw := "Sure! Here is the draft:\n" + draftJSON(`{"text":"t","evidence":["name"]}`) + "\nLet me know."

	draft, err := ParseDraft(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(draft.Sections) != 1 || len(draft.Sections[0].Sentences) != 1 {
		t.Errorf("unexpected draft shape: %+v", draft)
	}
}

func TestParseDraftSkipsQuotedBraceNoise(t *testing.T) {
	// A brace-bearing quoted fragment precedes the draft; the undecodable
	// candidate must be skipped in favor of the real object.
	raw := `Here is the "{draft}" you asked for: ` + draftJSON(`{"text":"t","evidence":["name"]}`)

	draft, err := ParseDraft(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(draft.Sections) != 1 || len(draft.Sections[0].Sentences) != 1 {
		t.Errorf("unexpected draft shape: %+v", draft)
	}
}

func TestValidateRecoversAfterDecoyObject(t *testing.T) {
	v := NewValidator(testFacts())
	raw := `The "{sections}" key is filled in below.
` + draftJSON(`{"text":"最寄駅は中目黒駅です。","evidence":["nearest-station"]}`)

	kept, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 1 || !strings.Contains(kept[0], "中目黒駅") {
		t.Errorf("draft after decoy noise was lost, kept %v", kept)
	}
}

func TestJoinSentences(t *testing.T) {
	got := JoinSentences([]string{"一文目です。", "二文目です。"})
	if got != "一文目です。二文目です。" {
		t.Errorf("japanese sentences must join directly, got %q", got)
	}

	got = JoinSentences([]string{"First.", "Second."})
	if got != "First. Second." {
		t.Errorf("ascii sentences need a separating space, got %q", got)
	}
}
