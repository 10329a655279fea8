package questiongen

import "github.com/abhisek/mathcoach/internal/llm"

// QuestionSchema defines the JSON reply expected from the model.
var QuestionSchema = &llm.Schema{
	Name:        "math-question",
	Description: "A single maths practice question with its answer and a worked explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the student, in plain text",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The short final answer the student should type, e.g. \"7\" or \"x = 3\"",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step worked solution",
			},
		},
		"required":             []any{"question", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}
