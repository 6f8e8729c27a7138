package schema

import "github.com/ymiyake/bukkengen/internal/model"

// BannedTerms is the literal advertising vocabulary that must never reach
// the reader unmarked. Based on the fair-trade rules for real-estate
// advertising (superlatives, absolutes, and bargain language) plus English
// equivalents for mixed-language listings.
var BannedTerms = []string{
	// absolutes / superlatives
	"完璧", "完全", "絶対", "万全",
	"日本一", "業界一", "当社だけ", "他に類を見ない", "抜群",
	"特選", "厳選",
	"最高", "極上",
	// bargain language
	"格安", "激安", "破格", "投売り", "掘り出し物",
	"バーゲンセール",
	// english equivalents
	"perfect", "flawless", "guaranteed", "best in japan",
	"one of a kind", "bargain", "dirt cheap", "steal",
}

// HedgePhrases are boilerplate generalizations that assert nothing a reader
// can verify. Sentences containing one are dropped by the grounding
// validator; the free-text path strips them in the sanitizer.
var HedgePhrases = []string{
	"と言えるでしょう",
	"と言えます",
	"と思われます",
	"と思われ",
	"が期待できます",
	"が期待でき",
	"ではないでしょうか",
	"と考えられます",
	"is expected to",
	"can be said to",
	"is thought to",
	"one could say",
	"it is believed",
}

// UnitKeywords flag sentences that describe a single dwelling unit. The
// scope filter removes any sentence containing one at building scope.
var UnitKeywords = []string{
	"間取り", "間取",
	"専有面積", "専有部",
	"所在階",
	"バルコニー",
	"リフォーム", "リノベーション",
	"LDK", "SLDK", "DK",
	"和室", "洋室",
	"南向き", "北向き", "東向き", "西向き",
	"floor plan", "layout",
	"floor area",
	"balcony",
	"renovat",
	"this unit", "the unit",
}

// RequiredGuidance maps each scope to the facts most worth adding when the
// evidence gate withholds generation.
func RequiredGuidance(scope model.Scope) []model.FactKey {
	general := []model.FactKey{
		model.KeyLocation,
		model.KeyNearestStation,
		model.KeyYearBuilt,
		model.KeyTotalFloors,
	}
	if scope == model.ScopeBuilding {
		return general
	}
	return append(general, model.KeyFloorPlan, model.KeyFloorArea)
}
