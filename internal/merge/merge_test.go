package merge

import (
	"testing"

	"github.com/ymiyake/bukkengen/internal/model"
)

func TestMergeLongerValueWins(t *testing.T) {
	base := model.FactSet{
		model.KeyLocation: "東京都",
		model.KeyName:     "パークハイツ青葉台",
	}
	addition := model.FactSet{
		model.KeyLocation: "東京都目黒区青葉台1-2-3",
		model.KeyName:     "パーク",
	}

	out := Merge(base, addition)

	if got := out[model.KeyLocation]; got != "東京都目黒区青葉台1-2-3" {
		t.Errorf("expected longer location to win, got %q", got)
	}
	if got := out[model.KeyName]; got != "パークハイツ青葉台" {
		t.Errorf("expected longer name to be kept, got %q", got)
	}
}

func TestMergeAbsentKeyTaken(t *testing.T) {
	base := model.FactSet{model.KeyName: "A棟"}
	addition := model.FactSet{model.KeyYearBuilt: "1998年3月築"}

	out := Merge(base, addition)

	if out.Count() != 2 {
		t.Fatalf("expected 2 facts, got %d", out.Count())
	}
	if got := out[model.KeyYearBuilt]; got != "1998年3月築" {
		t.Errorf("expected absent key to be filled, got %q", got)
	}
}

func TestMergeComparesLengthInRunes(t *testing.T) {
	// "Nakameguro" is 10 runes in 10 bytes; "中目黒駅" is 4 runes in 12
	// bytes. A byte comparison would let the shorter Japanese value
	// replace the romanized one.
	base := model.FactSet{model.KeyNearestStation: "Nakameguro"}
	addition := model.FactSet{model.KeyNearestStation: "中目黒駅"}

	out := Merge(base, addition)

	if got := out[model.KeyNearestStation]; got != "Nakameguro" {
		t.Errorf("length must be compared in runes, not bytes, got %q", got)
	}

	// And symmetrically: the 10-rune value replaces the 4-rune one.
	out = Merge(addition, base)
	if got := out[model.KeyNearestStation]; got != "Nakameguro" {
		t.Errorf("10-rune value must win over 4-rune value, got %q", got)
	}
}

func TestMergeIgnoresEmptyAddition(t *testing.T) {
	base := model.FactSet{model.KeyName: "A棟"}
	addition := model.FactSet{model.KeyName: "   "}

	out := Merge(base, addition)

	if got := out[model.KeyName]; got != "A棟" {
		t.Errorf("whitespace-only value must never replace a known value, got %q", got)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := model.FactSet{model.KeyName: "short"}
	addition := model.FactSet{model.KeyName: "much longer name"}

	_ = Merge(base, addition)

	if base[model.KeyName] != "short" {
		t.Errorf("base was mutated: %q", base[model.KeyName])
	}
}

func TestMergeAllOrderIndependentForDisjointKeys(t *testing.T) {
	a := model.FactSet{model.KeyName: "A棟"}
	b := model.FactSet{model.KeyLocation: "横浜市"}
	c := model.FactSet{model.KeyYearBuilt: "2005年築"}

	out := MergeAll(a, b, c)
	if out.Count() != 3 {
		t.Fatalf("expected 3 facts, got %d", out.Count())
	}

	reversed := MergeAll(c, b, a)
	for k, v := range out {
		if reversed[k] != v {
			t.Errorf("key %s differs by order: %q vs %q", k, v, reversed[k])
		}
	}
}

func TestApplyManualNameOverrides(t *testing.T) {
	extracted := model.FactSet{
		model.KeyName:     "とても長い抽出された物件名称ですが正しくない",
		model.KeyLocation: "東京都",
	}

	out := ApplyManual(extracted, "A棟", "")

	if got := out[model.KeyName]; got != "A棟" {
		t.Errorf("explicit name must override regardless of length, got %q", got)
	}
}

func TestApplyManualExtraFactsLengthCompared(t *testing.T) {
	extracted := model.FactSet{model.KeyLocation: "東京都目黒区青葉台1-2-3"}

	out := ApplyManual(extracted, "", "所在地: 東京都")

	if got := out[model.KeyLocation]; got != "東京都目黒区青葉台1-2-3" {
		t.Errorf("shorter manual value must not replace richer extracted value, got %q", got)
	}
}

func TestParseExtraFacts(t *testing.T) {
	block := "所在地: 東京都目黒区\n築年月：1998年3月\nunknown label: ignored\nno colon line\n最寄駅: 中目黒駅"

	facts := ParseExtraFacts(block)

	if facts.Count() != 3 {
		t.Fatalf("expected 3 facts, got %d: %v", facts.Count(), facts)
	}
	if got := facts[model.KeyLocation]; got != "東京都目黒区" {
		t.Errorf("location = %q", got)
	}
	if got := facts[model.KeyYearBuilt]; got != "1998年3月" {
		t.Errorf("full-width colon line not parsed, year-built = %q", got)
	}
	if got := facts[model.KeyNearestStation]; got != "中目黒駅" {
		t.Errorf("nearest-station = %q", got)
	}
}

func TestParseExtraFactsValueMayContainColon(t *testing.T) {
	facts := ParseExtraFacts("設備: オートロック:宅配ボックス")

	if got := facts[model.KeyEquipment]; got != "オートロック:宅配ボックス" {
		t.Errorf("split must happen at the first colon only, got %q", got)
	}
}

func TestParseExtraFactsEnglishLabels(t *testing.T) {
	facts := ParseExtraFacts("Nearest Station: Nakameguro\nYear Built: 1998")

	if got := facts[model.KeyNearestStation]; got != "Nakameguro" {
		t.Errorf("english alias not resolved, got %q", got)
	}
	if got := facts[model.KeyYearBuilt]; got != "1998" {
		t.Errorf("spaced english alias not resolved, got %q", got)
	}
}
