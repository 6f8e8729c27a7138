package extract

import (
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"golang.org/x/net/html"
)

// itempropKeys is the fixed attribute→key table for inline annotations.
var itempropKeys = map[string]model.FactKey{
	"name":                       model.KeyName,
	"address":                    model.KeyLocation,
	"streetAddress":              model.KeyLocation,
	"yearBuilt":                  model.KeyYearBuilt,
	"numberOfFloors":             model.KeyTotalFloors,
	"numberOfAccommodationUnits": model.KeyTotalUnits,
	"floorSize":                  model.KeyFloorArea,
	"numberOfRooms":              model.KeyFloorPlan,
	"floorLevel":                 model.KeyFloor,
	"amenityFeature":             model.KeyEquipment,
}

// extractItemprops reads elements carrying itemprop annotations and fills
// keys not already set by the structured-data strategy.
func extractItemprops(doc *html.Node, facts model.FactSet) {
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		prop := attr(n, "itemprop")
		if prop == "" {
			return true
		}
		key, ok := itempropKeys[prop]
		if !ok {
			return true
		}

		// <meta itemprop=... content=...> carries its value in the
		// attribute; everything else in its text content.
		value := ""
		if n.Data == "meta" {
			value = attr(n, "content")
		} else {
			value = textContent(n)
		}
		facts.SetIfAbsent(key, strings.TrimSpace(value))
		return true
	})
}
