package llm

import (
	"fmt"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/schema"
)

// SystemPrompt frames every generation call.
const SystemPrompt = "You are a real-estate copywriter. You write short marketing descriptions " +
	"strictly from the facts you are given. You never assert anything that is not in the fact list."

// PromptInput bundles everything the request builder needs.
type PromptInput struct {
	Facts        model.FactSet
	Scope        model.Scope
	Tone         model.Tone
	TargetLength int
	MustInclude  []model.FactKey

	// Structured selects the evidence-tagged JSON output contract.
	Structured bool
}

// BuildPrompt turns the scoped fact set and request parameters into the
// instruction payload. The payload explicitly enumerates the permitted keys,
// the banned vocabulary, the scope rule, the must-include list, and the
// constraint that nothing outside the permitted keys may be asserted.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Write a property description in Japanese.\n\n")

	b.WriteString("PERMITTED FACTS (the only information you may use):\n")
	for _, key := range schema.Keys {
		if value, ok := in.Facts.Get(key); ok {
			b.WriteString(fmt.Sprintf("- %s: %s\n", key, value))
		}
	}

	b.WriteString("\nRULES:\n")
	b.WriteString("1. Do not assert any information outside the permitted facts above. No inference, no embellishment of numbers, names, or dates.\n")
	b.WriteString("2. Reproduce fact values verbatim when you use them. Do not round, approximate, or paraphrase a value.\n")

	if in.Scope == model.ScopeBuilding {
		b.WriteString("3. Building scope: do not mention anything about an individual dwelling unit (layout, floor area, floor number, orientation, renovation, in-unit equipment).\n")
	} else {
		b.WriteString("3. Unit scope: you may describe the individual unit as well as the building.\n")
	}

	b.WriteString("4. The following terms are banned by advertising regulations and must not appear:\n")
	b.WriteString("   " + strings.Join(schema.BannedTerms, ", ") + "\n")
	b.WriteString("5. Avoid vague hedging such as: " + strings.Join(schema.HedgePhrases, ", ") + "\n")

	if len(in.MustInclude) > 0 {
		b.WriteString("6. These facts must appear in the description:\n")
		for _, key := range in.MustInclude {
			if value, ok := in.Facts.Get(key); ok {
				b.WriteString(fmt.Sprintf("   - %s: %s\n", key, value))
			}
		}
	}

	b.WriteString(fmt.Sprintf("\nTone: %s. Target length: about %d characters.\n", in.Tone, in.TargetLength))

	if in.Structured {
		b.WriteString("\n" + structuredShapeContract(in.Facts))
	} else {
		b.WriteString("\nReturn one block of prose, nothing else.\n")
	}

	return b.String()
}

// structuredShapeContract describes the strict JSON output shape: ordered
// named sections of sentences, each sentence tagged with the fact keys that
// support it. The tags make the draft verifiable sentence by sentence.
func structuredShapeContract(facts model.FactSet) string {
	var keys []string
	for _, key := range schema.Keys {
		if _, ok := facts.Get(key); ok {
			keys = append(keys, string(key))
		}
	}

	return fmt.Sprintf(`Return ONLY a JSON object with this exact shape:
{
  "sections": [
    {
      "name": "<one of: %s>",
      "sentences": [
        {"text": "<one sentence>", "evidence": ["<fact key>", ...]}
      ]
    }
  ]
}
Every sentence must list at least one evidence key from: %s.
A sentence's evidence keys must be the facts it actually states. Sections
appear in the order listed above; omit a section rather than padding it.`,
		strings.Join(model.SectionNames, ", "),
		strings.Join(keys, ", "))
}
