package generator

import (
	"github.com/vytor/dilvane/internal/llm"
	"github.com/vytor/dilvane/internal/models"
)

func exerciseTypeEnum() []any {
	out := make([]any, len(models.ExerciseTypes))
	for i, t := range models.ExerciseTypes {
		out[i] = string(t)
	}
	return out
}

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// LessonSchema is the structured output requested from the model. Strict
// structured output needs every property listed as required, so fields that do
// not apply to a kind come back empty.
var LessonSchema = &llm.Schema{
	Name:        "turkish-lesson",
	Description: "A Turkish lesson made of mixed exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":           map[string]any{"type": "string"},
						"type":         map[string]any{"type": "string", "enum": exerciseTypeEnum()},
						"question":     map[string]any{"type": "string", "minLength": 1},
						"answer":       map[string]any{"type": "string", "minLength": 1},
						"wordBank":     stringArray("Words to pick from. Empty unless word-bank or sentence-arrange."),
						"correctOrder": stringArray("Words of the answer in order, all taken from wordBank."),
						"options":      stringArray("Choices for multiple-choice or fill-blank. Empty otherwise."),
						"hint":         map[string]any{"type": "string"},
						"context":      map[string]any{"type": "string"},
						"wordDetails": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"word":          map[string]any{"type": "string"},
									"translation":   map[string]any{"type": "string"},
									"pronunciation": map[string]any{"type": "string"},
								},
								"required":             []any{"word", "translation", "pronunciation"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"id", "type", "question", "answer", "wordBank", "correctOrder", "options", "hint", "context", "wordDetails"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"exercises"},
		"additionalProperties": false,
	},
}
