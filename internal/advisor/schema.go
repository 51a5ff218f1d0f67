package advisor

import "github.com/abhisek/siaga/internal/llm"

// AdviceSchema defines the JSON schema for LLM counselling advice.
var AdviceSchema = &llm.Schema{
	Name:        "counselling-advice",
	Description: "Follow-up suggestions for a counsellor after a dropout-risk assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One sentence describing the overall follow-up",
			},
			"actions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    4,
				"description": "Short concrete actions for the counsellor, most important first",
			},
		},
		"required":             []any{"summary", "actions"},
		"additionalProperties": false,
	},
}
