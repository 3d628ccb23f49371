package generator

import (
	"fmt"
	"strings"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

// BuildPrompt assembles the natural-language generation request for a
// section. The type-specific shape constraints are stated in prose even
// though the schema enforces them, so the provider understands intent.
func BuildPrompt(req Request) string {
	var b strings.Builder

	switch req.QuestionType {
	case model.QuestionTypeMCQ:
		fmt.Fprintf(&b, "Generate %d high-quality multiple-choice questions (MCQs) for a section named %q of the exam %q.\n\n",
			req.Count, req.SectionName, req.ExamName)
		b.WriteString("Requirements:\n")
		b.WriteString("- Each question must have exactly 4 options\n")
		b.WriteString("- Exactly one option must be correct\n")
	case model.QuestionTypeMSQ:
		fmt.Fprintf(&b, "Generate %d high-quality multiple-select questions (MSQs) for a section named %q of the exam %q.\n\n",
			req.Count, req.SectionName, req.ExamName)
		b.WriteString("Requirements:\n")
		b.WriteString("- Each question must have exactly 4 options\n")
		b.WriteString("- Between 1 and 3 options must be correct\n")
	case model.QuestionTypeNumerical:
		fmt.Fprintf(&b, "Generate %d high-quality numerical questions for a section named %q of the exam %q.\n\n",
			req.Count, req.SectionName, req.ExamName)
		b.WriteString("Requirements:\n")
		b.WriteString("- Each question must have a single precise numerical answer\n")
	}

	b.WriteString("- Questions should be challenging but fair\n")
	fmt.Fprintf(&b, "- Each question is worth %g marks\n", req.MarksPerQuestion)
	if req.NegativeMarks != nil {
		fmt.Fprintf(&b, "- Negative marking of %g marks applies to wrong answers\n", *req.NegativeMarks)
	}
	if req.Topics != "" {
		fmt.Fprintf(&b, "- Cover these topics: %s\n", req.Topics)
	}
	fmt.Fprintf(&b, "\nReturn exactly %d questions via the submit_questions tool.\n", req.Count)

	return b.String()
}

// BuildExplanationPrompt asks for a free-text explanation of an existing
// question's correct answer.
func BuildExplanationPrompt(questionText string, options []model.Option, numericalAnswer *float64) string {
	var b strings.Builder

	b.WriteString("Write a concise explanation (2-4 sentences) of the correct answer for this exam question.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", questionText)

	for i, opt := range options {
		marker := ""
		if opt.IsCorrect {
			marker = " (correct)"
		}
		fmt.Fprintf(&b, "Option %d: %s%s\n", i+1, opt.Text, marker)
	}
	if numericalAnswer != nil {
		fmt.Fprintf(&b, "Answer: %g\n", *numericalAnswer)
	}

	b.WriteString("\nRespond with the explanation text only, no preamble.\n")
	return b.String()
}
