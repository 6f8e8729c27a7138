package model

import "strings"

// FactKey identifies one attribute of a property listing.
// The vocabulary is closed: only the keys declared here ever appear in a FactSet.
type FactKey string

// General keys describe the building or the location.
const (
	KeyName            FactKey = "name"
	KeyLocation        FactKey = "location"
	KeyNearestStation  FactKey = "nearest-station"
	KeyStationDistance FactKey = "station-distance"
	KeyYearBuilt       FactKey = "year-built"
	KeyStructure       FactKey = "structure"
	KeyTotalFloors     FactKey = "total-floors"
	KeyTotalUnits      FactKey = "total-units"
	KeyBuilder         FactKey = "builder"
	KeyManagement      FactKey = "management"
	KeySurroundings    FactKey = "surroundings"
)

// Unit-only keys describe a single dwelling unit and are meaningless at
// building scope.
const (
	KeyFloorPlan   FactKey = "floor-plan"
	KeyFloorArea   FactKey = "floor-area"
	KeyFloor       FactKey = "floor"
	KeyOrientation FactKey = "orientation"
	KeyBalconyArea FactKey = "balcony-area"
	KeyRenovation  FactKey = "renovation"
	KeyEquipment   FactKey = "equipment"
)

// FactSet maps fact keys to their string values. Absence means unknown;
// a present key always has a non-empty trimmed value.
type FactSet map[FactKey]string

// NewFactSet creates an empty fact set.
func NewFactSet() FactSet {
	return make(FactSet)
}

// Set stores a value under key after trimming. Empty values are ignored so
// the non-empty invariant holds for every stored key.
func (f FactSet) Set(key FactKey, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	f[key] = value
}

// SetIfAbsent stores a value only when the key is not yet known.
// Used by the extraction strategies: first non-empty value per key wins.
func (f FactSet) SetIfAbsent(key FactKey, value string) {
	if _, ok := f[key]; ok {
		return
	}
	f.Set(key, value)
}

// Get returns the value for key and whether it is known.
func (f FactSet) Get(key FactKey) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Count returns the number of known facts.
func (f FactSet) Count() int {
	return len(f)
}

// Clone returns an independent copy.
func (f FactSet) Clone() FactSet {
	out := make(FactSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Flat converts the set to a plain string map for JSON output.
func (f FactSet) Flat() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[string(k)] = v
	}
	return out
}

// Scope is the presentation mode controlling which facts and sentences are
// admissible. Immutable for the duration of one request.
type Scope string

const (
	ScopeUnit     Scope = "unit"
	ScopeBuilding Scope = "building"
)

// Valid reports whether s is a recognized scope.
func (s Scope) Valid() bool {
	return s == ScopeUnit || s == ScopeBuilding
}

// Tone selects the register of the generated prose.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
)

// Valid reports whether t is a recognized tone.
func (t Tone) Valid() bool {
	return t == ToneFormal || t == ToneNeutral || t == ToneFriendly
}
