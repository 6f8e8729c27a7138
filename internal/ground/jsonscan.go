// Package ground validates machine-generated drafts: every kept sentence
// must be traceable to permitted facts, with the claimed value reproduced
// verbatim in the sentence text.
package ground

// ExtractJSONObject locates the first balanced JSON object in raw output
// that may be wrapped in prose, code fences, or other noise. The scanner is
// string-aware: delimiters inside quoted text (including escaped quotes) do
// not affect the nesting depth. Returns the object substring and whether one
// was found.
func ExtractJSONObject(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}

	return "", false
}
