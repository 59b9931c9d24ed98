package contentgen

import "github.com/abhisek/studyforge/internal/llm"

// Schemas are written to be accepted by OpenAI strict mode: the root is an
// object, every property is required and no extra properties are allowed.

var optionText = map[string]any{"type": "string"}

// QuizSchema is the response shape for GenerateQuiz.
var QuizSchema = &llm.Schema{
	Name:        "quiz-items",
	Description: "Multiple-choice quiz items covering the source notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem, self-contained",
						},
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"A": optionText, "B": optionText, "C": optionText, "D": optionText,
							},
							"required":             []string{"A", "B", "C", "D"},
							"additionalProperties": false,
						},
						"correct_option": map[string]any{
							"type": "string",
							"enum": []string{"A", "B", "C", "D"},
						},
						"answer_explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "The main concept this question tests",
						},
						"difficulty": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     5,
							"description": "1 (recall) to 5 (multi-step reasoning)",
						},
						"prerequisites": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "integer", "minimum": 0},
							"description": "Zero-based positions of earlier questions that should be seen first",
						},
					},
					"required":             []string{"question", "options", "correct_option", "answer_explanation", "topic", "difficulty", "prerequisites"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"items"},
		"additionalProperties": false,
	},
}

// FlashcardSchema is the response shape for GenerateFlashcards.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "Question and answer flashcards covering the source notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"answer":   map[string]any{"type": "string"},
					},
					"required":             []string{"question", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"cards"},
		"additionalProperties": false,
	},
}
