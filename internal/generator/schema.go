package generator

import "github.com/Uttam-Mahata/questcart/internal/model"

// Schema is a JSON Schema descriptor handed to the provider as the
// parameters of the forced submit_questions tool call.
type Schema map[string]interface{}

// BatchSchema builds the structured-output schema for a batch of count
// questions of the given variant. The item shape differs per variant:
// MCQ/MSQ carry an option list with correctness flags, NUM carries a
// single numeric answer.
func BatchSchema(questionType model.QuestionType, count int) Schema {
	return Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"questions": map[string]interface{}{
				"type":     "array",
				"minItems": count,
				"maxItems": count,
				"items":    questionSchema(questionType),
			},
		},
		"required": []string{"questions"},
	}
}

func questionSchema(questionType model.QuestionType) map[string]interface{} {
	properties := map[string]interface{}{
		"question_text": map[string]interface{}{
			"type":        "string",
			"description": "The full question text",
		},
		"explanation": map[string]interface{}{
			"type":        "string",
			"description": "Brief explanation of the correct answer",
		},
	}
	required := []string{"question_text", "explanation"}

	switch questionType {
	case model.QuestionTypeNumerical:
		properties["answer"] = map[string]interface{}{
			"type":        "number",
			"description": "The single numerical answer",
		}
		required = append(required, "answer")
	default: // MCQ and MSQ share the option shape
		properties["options"] = map[string]interface{}{
			"type":     "array",
			"minItems": 4,
			"maxItems": 4,
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Option text",
					},
					"is_correct": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether this option is correct",
					},
				},
				"required": []string{"text", "is_correct"},
			},
		}
		required = append(required, "options")
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
