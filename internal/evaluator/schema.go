package evaluator

import "github.com/abhisek/intervue/internal/llm"

// questionSetSchema constrains question generation output.
var questionSetSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "An ordered set of interview questions matching a difficulty plan",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"difficulty", "question"},
					"properties": map[string]any{
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"question": map[string]any{
							"type": "string",
						},
					},
				},
			},
		},
	},
}

// scoreSchema constrains answer grading output.
var scoreSchema = &llm.Schema{
	Name:        "answer-score",
	Description: "A numeric grade and short feedback for one interview answer",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"score", "feedback"},
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"description": "Grade from 0 to 10",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short constructive feedback",
			},
		},
	},
}

// summarySchema constrains closing summary output.
var summarySchema = &llm.Schema{
	Name:        "interview-summary",
	Description: "A concise closing summary and hiring recommendation",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"summary"},
		"properties": map[string]any{
			"summary": map[string]any{
				"type": "string",
			},
			"recommendation": map[string]any{
				"type": "string",
			},
		},
	},
}
