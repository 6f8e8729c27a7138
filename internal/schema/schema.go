// Package schema holds the static fact vocabulary: key classification, the
// label alias table, free-text patterns, banned advertising vocabulary, and
// the boilerplate hedge list. Everything here is read-only after init; the
// rest of the pipeline treats it as process-wide immutable configuration.
package schema

import (
	"regexp"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
)

// Keys lists the closed vocabulary in a stable order.
var Keys = []model.FactKey{
	model.KeyName,
	model.KeyLocation,
	model.KeyNearestStation,
	model.KeyStationDistance,
	model.KeyYearBuilt,
	model.KeyStructure,
	model.KeyTotalFloors,
	model.KeyTotalUnits,
	model.KeyBuilder,
	model.KeyManagement,
	model.KeySurroundings,
	model.KeyFloorPlan,
	model.KeyFloorArea,
	model.KeyFloor,
	model.KeyOrientation,
	model.KeyBalconyArea,
	model.KeyRenovation,
	model.KeyEquipment,
}

// unitOnly tags the keys that describe a single dwelling unit.
var unitOnly = map[model.FactKey]bool{
	model.KeyFloorPlan:   true,
	model.KeyFloorArea:   true,
	model.KeyFloor:       true,
	model.KeyOrientation: true,
	model.KeyBalconyArea: true,
	model.KeyRenovation:  true,
	model.KeyEquipment:   true,
}

// IsUnitOnly reports whether key is meaningless at building scope.
func IsUnitOnly(key model.FactKey) bool {
	return unitOnly[key]
}

// IsKnownKey reports whether key belongs to the closed vocabulary.
func IsKnownKey(key model.FactKey) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Labels maps each key to its display label, used in disclosure output and
// the completeness addendum.
var Labels = map[model.FactKey]string{
	model.KeyName:            "物件名",
	model.KeyLocation:        "所在地",
	model.KeyNearestStation:  "最寄駅",
	model.KeyStationDistance: "駅距離",
	model.KeyYearBuilt:       "築年月",
	model.KeyStructure:       "構造",
	model.KeyTotalFloors:     "階建",
	model.KeyTotalUnits:      "総戸数",
	model.KeyBuilder:         "施工会社",
	model.KeyManagement:      "管理",
	model.KeySurroundings:    "周辺環境",
	model.KeyFloorPlan:       "間取り",
	model.KeyFloorArea:       "専有面積",
	model.KeyFloor:           "所在階",
	model.KeyOrientation:     "向き",
	model.KeyBalconyArea:     "バルコニー面積",
	model.KeyRenovation:      "リフォーム",
	model.KeyEquipment:       "設備",
}

// aliases maps observed label strings to canonical keys. Many-to-one;
// lookup normalizes case and strips whitespace first.
var aliases = map[string]model.FactKey{
	// name
	"物件名": model.KeyName, "物件名称": model.KeyName, "建物名": model.KeyName,
	"マンション名": model.KeyName, "name": model.KeyName, "propertyname": model.KeyName,
	// location
	"所在地": model.KeyLocation, "住所": model.KeyLocation, "物件所在地": model.KeyLocation,
	"location": model.KeyLocation, "address": model.KeyLocation,
	// nearest station
	"最寄駅": model.KeyNearestStation, "最寄り駅": model.KeyNearestStation,
	"交通": model.KeyNearestStation, "アクセス": model.KeyNearestStation,
	"neareststation": model.KeyNearestStation, "station": model.KeyNearestStation,
	// station distance
	"駅距離": model.KeyStationDistance, "駅徒歩": model.KeyStationDistance,
	"徒歩": model.KeyStationDistance, "stationdistance": model.KeyStationDistance,
	// year built
	"築年月": model.KeyYearBuilt, "築年月日": model.KeyYearBuilt, "築年数": model.KeyYearBuilt,
	"建築年月": model.KeyYearBuilt, "完成時期": model.KeyYearBuilt,
	"yearbuilt": model.KeyYearBuilt, "built": model.KeyYearBuilt,
	// structure
	"構造": model.KeyStructure, "建物構造": model.KeyStructure, "構造・階建て": model.KeyStructure,
	"structure": model.KeyStructure,
	// total floors
	"階建": model.KeyTotalFloors, "階数": model.KeyTotalFloors, "建物階数": model.KeyTotalFloors,
	"totalfloors": model.KeyTotalFloors, "floors": model.KeyTotalFloors,
	// total units
	"総戸数": model.KeyTotalUnits, "総区画数": model.KeyTotalUnits,
	"totalunits": model.KeyTotalUnits, "units": model.KeyTotalUnits,
	// builder
	"施工会社": model.KeyBuilder, "施工": model.KeyBuilder, "分譲会社": model.KeyBuilder,
	"builder": model.KeyBuilder, "constructor": model.KeyBuilder,
	// management
	"管理": model.KeyManagement, "管理会社": model.KeyManagement, "管理形態": model.KeyManagement,
	"management": model.KeyManagement,
	// surroundings
	"周辺環境": model.KeySurroundings, "周辺施設": model.KeySurroundings,
	"surroundings": model.KeySurroundings, "neighborhood": model.KeySurroundings,
	// floor plan
	"間取り": model.KeyFloorPlan, "間取": model.KeyFloorPlan,
	"floorplan": model.KeyFloorPlan, "layout": model.KeyFloorPlan,
	// floor area
	"専有面積": model.KeyFloorArea, "面積": model.KeyFloorArea, "建物面積": model.KeyFloorArea,
	"floorarea": model.KeyFloorArea, "area": model.KeyFloorArea,
	// floor
	"所在階": model.KeyFloor, "階": model.KeyFloor, "floor": model.KeyFloor,
	// orientation
	"向き": model.KeyOrientation, "方位": model.KeyOrientation, "主要採光面": model.KeyOrientation,
	"orientation": model.KeyOrientation, "facing": model.KeyOrientation,
	// balcony area
	"バルコニー面積": model.KeyBalconyArea, "バルコニー": model.KeyBalconyArea,
	"balconyarea": model.KeyBalconyArea, "balcony": model.KeyBalconyArea,
	// renovation
	"リフォーム": model.KeyRenovation, "リノベーション": model.KeyRenovation,
	"renovation": model.KeyRenovation, "renovated": model.KeyRenovation,
	// equipment
	"設備": model.KeyEquipment, "主な設備": model.KeyEquipment, "その他設備": model.KeyEquipment,
	"equipment": model.KeyEquipment, "amenities": model.KeyEquipment,
}

// MaxLabelRunes is the longest label the tabular strategy accepts, counted
// after whitespace removal. Longer strings are prose, not labels.
const MaxLabelRunes = 20

// LookupAlias resolves an observed label to a canonical key.
func LookupAlias(label string) (model.FactKey, bool) {
	key, ok := aliases[NormalizeLabel(label)]
	return key, ok
}

// NormalizeLabel lowercases a label and removes all whitespace, including
// full-width spaces, so "最寄り駅 " and "Nearest Station" both resolve.
func NormalizeLabel(label string) string {
	label = strings.ToLower(label)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '　':
			return -1
		}
		return r
	}, label)
}

// patterns recovers values from whitespace-collapsed whole-document text
// for keys the structured strategies missed. At most one value per key per
// document: the first capture group of the first match.
var patterns = map[model.FactKey]*regexp.Regexp{
	model.KeyFloorPlan:       regexp.MustCompile(`([1-9][SLDK]+[SLDK+]*)`),
	model.KeyFloorArea:       regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)(?:m2|㎡|平米)`),
	model.KeyYearBuilt:       regexp.MustCompile(`((?:19|20)[0-9]{2}年(?:[0-9]{1,2}月)?築?|築[0-9]{1,3}年|built in (?:19|20)[0-9]{2})`),
	model.KeyStationDistance: regexp.MustCompile(`(徒歩[0-9]{1,3}分|[0-9]{1,3} ?min(?:ute)?s? walk)`),
	model.KeyNearestStation:  regexp.MustCompile(`「?([^「」\s]{2,12}駅)」?`),
	model.KeyTotalFloors:     regexp.MustCompile(`((?:地上)?[0-9]{1,3}階建)`),
	model.KeyTotalUnits:      regexp.MustCompile(`(総戸数[0-9]{1,5}戸|[0-9]{1,5}戸)`),
	model.KeyStructure:       regexp.MustCompile(`((?:鉄筋|鉄骨鉄筋)コンクリート造|RC造|SRC造|木造|鉄骨造)`),
}

// Pattern returns the free-text fallback pattern for key, if one exists.
func Pattern(key model.FactKey) (*regexp.Regexp, bool) {
	re, ok := patterns[key]
	return re, ok
}

// PatternKeys lists the keys that have a fallback pattern, in vocabulary order.
func PatternKeys() []model.FactKey {
	out := make([]model.FactKey, 0, len(patterns))
	for _, k := range Keys {
		if _, ok := patterns[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
