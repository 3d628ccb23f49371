package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

// Request carries a section's generation requirements. The exam name and
// topics are generation context only and are never persisted per-question.
type Request struct {
	SectionID        uuid.UUID
	SectionName      string
	ExamName         string
	Topics           string
	QuestionType     model.QuestionType
	Count            int
	MarksPerQuestion float64
	NegativeMarks    *float64
}

// wire types mirror the submit_questions tool schema.
type wireBatch struct {
	Questions []wireQuestion `json:"questions"`
}

type wireQuestion struct {
	QuestionText string       `json:"question_text"`
	Explanation  string       `json:"explanation"`
	Options      []wireOption `json:"options,omitempty"`
	Answer       *float64     `json:"answer,omitempty"`
}

type wireOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Generator produces a batch of exactly Request.Count typed question
// variants for a section, or fails. It never pads a short batch and never
// returns more than requested.
type Generator struct {
	llm ProviderClient
	log zerolog.Logger
}

// New creates a Generator on top of a provider client.
func New(llm ProviderClient, log zerolog.Logger) *Generator {
	return &Generator{
		llm: llm,
		log: log.With().Str("component", "generator").Logger(),
	}
}

// Generate calls the provider with a structured-output contract and maps
// the result into the variant model. Items that violate the variant's
// structural contract are discarded; the batch is then truncated to the
// requested count and rejected if still short.
func (g *Generator) Generate(ctx context.Context, req Request) ([]model.GeneratedQuestion, error) {
	prompt := BuildPrompt(req)
	schema := BatchSchema(req.QuestionType, req.Count)

	g.log.Info().
		Str("section_id", req.SectionID.String()).
		Str("question_type", string(req.QuestionType)).
		Int("count", req.Count).
		Msg("Requesting question batch")

	raw, err := g.llm.GenerateStructured(ctx, prompt, schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	var batch wireBatch
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(batch.Questions) == 0 {
		return nil, fmt.Errorf("%w: provider returned no questions", ErrFormat)
	}

	if len(batch.Questions) < req.Count {
		g.log.Warn().
			Str("section_id", req.SectionID.String()).
			Int("requested", req.Count).
			Int("returned", len(batch.Questions)).
			Msg("Provider returned fewer questions than requested")
	}

	questions := make([]model.GeneratedQuestion, 0, req.Count)
	for i, wq := range batch.Questions {
		q, err := g.mapQuestion(req.QuestionType, wq)
		if err != nil {
			g.log.Warn().
				Err(err).
				Str("section_id", req.SectionID.String()).
				Int("item", i).
				Msg("Discarding structurally invalid question")
			continue
		}
		questions = append(questions, q)
		if len(questions) == req.Count {
			break // never return more than requested
		}
	}

	if len(questions) < req.Count {
		return nil, fmt.Errorf("%w: requested %d questions, got %d usable",
			ErrShortfall, req.Count, len(questions))
	}

	g.log.Info().
		Str("section_id", req.SectionID.String()).
		Int("count", len(questions)).
		Msg("Question batch generated")

	return questions, nil
}

// Explain produces a free-text explanation for an existing question.
func (g *Generator) Explain(ctx context.Context, questionText string, options []model.Option, numericalAnswer *float64) (string, error) {
	prompt := BuildExplanationPrompt(questionText, options, numericalAnswer)
	text, err := g.llm.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: provider returned empty explanation", ErrFormat)
	}
	return text, nil
}

// mapQuestion converts one wire item into the variant model, enforcing the
// per-variant correctness contract: MCQ exactly 1 correct option, MSQ 1-3,
// NUM a present numeric answer.
func (g *Generator) mapQuestion(questionType model.QuestionType, wq wireQuestion) (model.GeneratedQuestion, error) {
	if wq.QuestionText == "" {
		return model.GeneratedQuestion{}, model.ErrMissingQuestionText
	}

	q := model.GeneratedQuestion{
		QuestionType: questionType,
		QuestionText: wq.QuestionText,
		Explanation:  wq.Explanation,
	}

	switch questionType {
	case model.QuestionTypeMCQ, model.QuestionTypeMSQ:
		if len(wq.Options) < 2 {
			return model.GeneratedQuestion{}, fmt.Errorf("expected at least 2 options, got %d", len(wq.Options))
		}
		correct := 0
		options := make([]model.Option, len(wq.Options))
		for i, opt := range wq.Options {
			if opt.Text == "" {
				return model.GeneratedQuestion{}, fmt.Errorf("option %d has empty text", i)
			}
			if opt.IsCorrect {
				correct++
			}
			options[i] = model.Option{Text: opt.Text, IsCorrect: opt.IsCorrect}
		}
		if questionType == model.QuestionTypeMCQ && correct != 1 {
			return model.GeneratedQuestion{}, fmt.Errorf("MCQ must have exactly 1 correct option, got %d", correct)
		}
		if questionType == model.QuestionTypeMSQ && (correct < 1 || correct > 3) {
			return model.GeneratedQuestion{}, fmt.Errorf("MSQ must have 1-3 correct options, got %d", correct)
		}
		q.Options = options
	case model.QuestionTypeNumerical:
		if wq.Answer == nil {
			return model.GeneratedQuestion{}, fmt.Errorf("numerical question has no answer")
		}
		q.Answer = wq.Answer
	default:
		return model.GeneratedQuestion{}, fmt.Errorf("unsupported question type %q", questionType)
	}

	return q, nil
}
