package scope

import (
	"strings"
	"testing"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

func buildingAndUnitFacts() model.FactSet {
	return model.FactSet{
		model.KeyName:      "パークハイツ青葉台",
		model.KeyLocation:  "東京都目黒区青葉台1-2-3",
		model.KeyYearBuilt: "1998年3月築",
		model.KeyFloorPlan: "3LDK",
		model.KeyFloorArea: "72.5㎡",
		model.KeyFloor:     "7階",
	}
}

func TestFilterFactsBuildingDropsUnitOnly(t *testing.T) {
	out := FilterFacts(buildingAndUnitFacts(), model.ScopeBuilding)

	for key := range out {
		if schema.IsUnitOnly(key) {
			t.Errorf("unit-only key %s survived building scope", key)
		}
	}
	if out.Count() != 3 {
		t.Errorf("expected 3 general facts, got %d", out.Count())
	}
}

func TestFilterFactsUnitKeepsEverything(t *testing.T) {
	facts := buildingAndUnitFacts()
	out := FilterFacts(facts, model.ScopeUnit)

	if out.Count() != facts.Count() {
		t.Errorf("unit scope must keep all facts: got %d, want %d", out.Count(), facts.Count())
	}
}

func TestFilterFactsIdempotent(t *testing.T) {
	once := FilterFacts(buildingAndUnitFacts(), model.ScopeBuilding)
	twice := FilterFacts(once, model.ScopeBuilding)

	if twice.Count() != once.Count() {
		t.Errorf("second application changed the set: %d vs %d", twice.Count(), once.Count())
	}
}

func TestFilterFactsDoesNotMutateInput(t *testing.T) {
	facts := buildingAndUnitFacts()
	before := facts.Count()

	_ = FilterFacts(facts, model.ScopeBuilding)

	if facts.Count() != before {
		t.Errorf("input was mutated: %d vs %d", facts.Count(), before)
	}
}

func TestFilterSentencesDropsUnitMentions(t *testing.T) {
	sentences := []string{
		"パークハイツ青葉台は1998年3月築の建物です。",
		"間取りは3LDKです。",
		"最寄駅は中目黒駅です。",
	}

	kept := FilterSentences(sentences, model.ScopeBuilding)

	if len(kept) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(kept), kept)
	}
	for _, s := range kept {
		if MentionsUnit(s) {
			t.Errorf("unit-mentioning sentence survived: %q", s)
		}
	}
}

func TestFilterSentencesMayBeEmpty(t *testing.T) {
	kept := FilterSentences([]string{"間取りは3LDKです。"}, model.ScopeBuilding)
	if len(kept) != 0 {
		t.Errorf("expected empty result, got %v", kept)
	}
}

func TestFilterSentencesUnitScopeIsIdentity(t *testing.T) {
	sentences := []string{"間取りは3LDKです。", "南向きのバルコニーです。"}
	kept := FilterSentences(sentences, model.ScopeUnit)
	if len(kept) != len(sentences) {
		t.Errorf("unit scope must keep all sentences, got %d", len(kept))
	}
}

func TestFilterTextNeverEmpty(t *testing.T) {
	text := "間取りは3LDKです。南向きのバルコニーがあります。"

	out := FilterText(text, model.ScopeBuilding)

	if strings.TrimSpace(out) == "" {
		t.Fatal("FilterText returned nothing")
	}
	if out != "間取りは3LDKです。" {
		t.Errorf("expected first-sentence fallback, got %q", out)
	}
}

func TestFilterTextKeepsSurvivors(t *testing.T) {
	text := "1998年3月築の建物です。間取りは3LDKです。最寄駅は中目黒駅です。"

	out := FilterText(text, model.ScopeBuilding)

	if strings.Contains(out, "3LDK") {
		t.Errorf("unit sentence survived: %q", out)
	}
	if !strings.Contains(out, "中目黒駅") {
		t.Errorf("general sentence was lost: %q", out)
	}
}

func TestMentionsUnitCaseInsensitive(t *testing.T) {
	if !MentionsUnit("The Floor Plan is spacious.") {
		t.Error("expected case-insensitive keyword match")
	}
	if MentionsUnit("最寄駅は中目黒駅です。") {
		t.Error("general sentence flagged as unit-describing")
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "japanese terminators",
			text: "一文目です。二文目です。",
			want: []string{"一文目です。", "二文目です。"},
		},
		{
			name: "ascii terminators",
			text: "First sentence. Second one!",
			want: []string{"First sentence.", "Second one!"},
		},
		{
			name: "newline splits",
			text: "箇条書きの行\n次の行",
			want: []string{"箇条書きの行", "次の行"},
		},
		{
			name: "trailing fragment kept",
			text: "終止符あり。終止符なし",
			want: []string{"終止符あり。", "終止符なし"},
		},
		{
			name: "empty input",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
