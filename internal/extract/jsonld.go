package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"golang.org/x/net/html"
)

// extractStructuredData reads embedded JSON-LD blocks and maps recognized
// schema.org-style fields to fact keys. Every block is examined; the first
// non-empty value per key wins.
func extractStructuredData(doc *html.Node, facts model.FactSet) {
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "script" && attr(n, "type") == "application/ld+json" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				for _, obj := range decodeJSONLD(n.FirstChild.Data) {
					mapStructuredObject(obj, facts)
				}
			}
		}
		return true
	})
}

// decodeJSONLD tolerates a single object, a top-level array, and @graph
// wrappers. A malformed block is skipped.
func decodeJSONLD(raw string) []map[string]any {
	raw = strings.TrimSpace(raw)
	var objs []map[string]any

	var single map[string]any
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		objs = append(objs, single)
	} else {
		var list []map[string]any
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil
		}
		objs = append(objs, list...)
	}

	// Unwrap @graph entries alongside their container.
	var out []map[string]any
	for _, obj := range objs {
		out = append(out, obj)
		if graph, ok := obj["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// mapStructuredObject fills facts from one JSON-LD object.
func mapStructuredObject(obj map[string]any, facts model.FactSet) {
	if v := jsonString(obj["name"]); v != "" {
		facts.SetIfAbsent(model.KeyName, v)
	}
	if v := structuredAddress(obj["address"]); v != "" {
		facts.SetIfAbsent(model.KeyLocation, v)
	}
	if v := jsonString(obj["yearBuilt"]); v != "" {
		facts.SetIfAbsent(model.KeyYearBuilt, v)
	}
	if v := jsonString(obj["numberOfFloors"]); v != "" {
		facts.SetIfAbsent(model.KeyTotalFloors, v)
	}
	if v := jsonString(obj["numberOfAccommodationUnits"]); v != "" {
		facts.SetIfAbsent(model.KeyTotalUnits, v)
	} else if v := jsonString(obj["numberOfUnits"]); v != "" {
		facts.SetIfAbsent(model.KeyTotalUnits, v)
	}
	if v := jsonString(obj["structureType"]); v != "" {
		facts.SetIfAbsent(model.KeyStructure, v)
	}
	if v := quantitativeValue(obj["floorSize"]); v != "" {
		facts.SetIfAbsent(model.KeyFloorArea, v)
	}
	if v := jsonString(obj["numberOfRooms"]); v != "" {
		facts.SetIfAbsent(model.KeyFloorPlan, v)
	}
}

// structuredAddress renders either a plain string or a PostalAddress object.
func structuredAddress(v any) string {
	switch addr := v.(type) {
	case string:
		return strings.TrimSpace(addr)
	case map[string]any:
		parts := []string{
			jsonString(addr["addressRegion"]),
			jsonString(addr["addressLocality"]),
			jsonString(addr["streetAddress"]),
		}
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		return strings.Join(kept, "")
	}
	return ""
}

// quantitativeValue renders a schema.org QuantitativeValue ({value, unitText}).
func quantitativeValue(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	value := jsonString(m["value"])
	if value == "" {
		return ""
	}
	unit := jsonString(m["unitText"])
	if unit == "" {
		unit = "㎡"
	}
	return value + unit
}

// jsonString renders scalar JSON values as trimmed strings.
func jsonString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	}
	return ""
}
