package generator

import (
	"strings"
	"testing"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

func TestBuildPromptMCQ(t *testing.T) {
	negative := 0.25
	prompt := BuildPrompt(Request{
		SectionName:      "Physics",
		ExamName:         "JEE Mock 1",
		Topics:           "kinematics, optics",
		QuestionType:     model.QuestionTypeMCQ,
		Count:            10,
		MarksPerQuestion: 4,
		NegativeMarks:    &negative,
	})

	for _, want := range []string{
		"10 high-quality multiple-choice questions",
		"Physics",
		"JEE Mock 1",
		"Exactly one option must be correct",
		"worth 4 marks",
		"Negative marking of 0.25 marks",
		"kinematics, optics",
		"Return exactly 10 questions",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptNumericalOmitsOptionRules(t *testing.T) {
	prompt := BuildPrompt(Request{
		SectionName:  "Maths",
		ExamName:     "Sample",
		QuestionType: model.QuestionTypeNumerical,
		Count:        5,
	})

	if strings.Contains(prompt, "option") {
		t.Errorf("numerical prompt must not mention options:\n%s", prompt)
	}
	if !strings.Contains(prompt, "single precise numerical answer") {
		t.Errorf("numerical prompt missing answer requirement:\n%s", prompt)
	}
	if strings.Contains(prompt, "Negative marking") {
		t.Errorf("prompt must omit negative marking when not set:\n%s", prompt)
	}
}

func TestBuildExplanationPromptMarksCorrectOption(t *testing.T) {
	prompt := BuildExplanationPrompt("Capital of France?", []model.Option{
		{Text: "Paris", IsCorrect: true},
		{Text: "Lyon"},
	}, nil)

	if !strings.Contains(prompt, "Option 1: Paris (correct)") {
		t.Errorf("prompt missing correct marker:\n%s", prompt)
	}
	if strings.Contains(prompt, "Lyon (correct)") {
		t.Errorf("wrong option marked correct:\n%s", prompt)
	}
}

func TestBatchSchemaCountBounds(t *testing.T) {
	schema := BatchSchema(model.QuestionTypeMCQ, 7)

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema has no properties: %v", schema)
	}
	questions, ok := props["questions"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema has no questions property: %v", props)
	}
	if questions["minItems"] != 7 || questions["maxItems"] != 7 {
		t.Fatalf("questions bounds = %v/%v, want 7/7", questions["minItems"], questions["maxItems"])
	}
}
