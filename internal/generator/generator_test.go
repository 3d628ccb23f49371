package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

// stubClient returns a canned structured response, or an error.
type stubClient struct {
	raw  string
	text string
	err  error
}

func (s *stubClient) GenerateStructured(ctx context.Context, prompt string, schema Schema) (string, error) {
	return s.raw, s.err
}

func (s *stubClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func mcqBatch(n int, correctPerQuestion int) string {
	batch := wireBatch{}
	for i := 0; i < n; i++ {
		q := wireQuestion{
			QuestionText: fmt.Sprintf("Question %d?", i+1),
			Explanation:  "Because.",
		}
		for j := 0; j < 4; j++ {
			q.Options = append(q.Options, wireOption{
				Text:      fmt.Sprintf("Option %d", j+1),
				IsCorrect: j < correctPerQuestion,
			})
		}
		batch.Questions = append(batch.Questions, q)
	}
	raw, _ := json.Marshal(batch)
	return string(raw)
}

func newTestGenerator(client ProviderClient) *Generator {
	return New(client, zerolog.Nop())
}

func TestGenerateReturnsRequestedCount(t *testing.T) {
	g := newTestGenerator(&stubClient{raw: mcqBatch(5, 1)})

	questions, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	for _, q := range questions {
		if q.QuestionType != model.QuestionTypeMCQ {
			t.Fatalf("question type = %s, want MCQ", q.QuestionType)
		}
		if len(q.Options) != 4 {
			t.Fatalf("got %d options, want 4", len(q.Options))
		}
	}
}

func TestGenerateTruncatesSurplus(t *testing.T) {
	g := newTestGenerator(&stubClient{raw: mcqBatch(7, 1)})

	questions, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5 after truncation", len(questions))
	}
}

func TestGenerateShortfallFails(t *testing.T) {
	g := newTestGenerator(&stubClient{raw: mcqBatch(3, 1)})

	_, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        5,
	})
	if !errors.Is(err, ErrShortfall) {
		t.Fatalf("err = %v, want ErrShortfall", err)
	}
}

func TestGenerateProviderError(t *testing.T) {
	g := newTestGenerator(&stubClient{err: errors.New("rate limited")})

	_, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        3,
	})
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("err = %v, want ErrProvider", err)
	}
}

func TestGenerateMalformedJSON(t *testing.T) {
	g := newTestGenerator(&stubClient{raw: "not json at all"})

	_, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        3,
	})
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

func TestGenerateDiscardsInvalidMCQ(t *testing.T) {
	// Two correct options per question violates the MCQ contract, so every
	// item is discarded and the batch falls short.
	g := newTestGenerator(&stubClient{raw: mcqBatch(5, 2)})

	_, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMCQ,
		Count:        5,
	})
	if !errors.Is(err, ErrShortfall) {
		t.Fatalf("err = %v, want ErrShortfall", err)
	}
}

func TestGenerateMSQCorrectnessBounds(t *testing.T) {
	// Two correct options is valid for MSQ.
	g := newTestGenerator(&stubClient{raw: mcqBatch(4, 2)})

	questions, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMSQ,
		Count:        4,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("got %d questions, want 4", len(questions))
	}

	// Four correct options exceeds the MSQ limit of 3.
	g = newTestGenerator(&stubClient{raw: mcqBatch(4, 4)})
	_, err = g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeMSQ,
		Count:        4,
	})
	if !errors.Is(err, ErrShortfall) {
		t.Fatalf("err = %v, want ErrShortfall", err)
	}
}

func TestGenerateNumerical(t *testing.T) {
	answer := 42.0
	batch := wireBatch{Questions: []wireQuestion{
		{QuestionText: "Answer to everything?", Explanation: "Obvious.", Answer: &answer},
		{QuestionText: "Missing answer?"}, // discarded
		{QuestionText: "Half of 84?", Answer: &answer},
	}}
	raw, _ := json.Marshal(batch)
	g := newTestGenerator(&stubClient{raw: string(raw)})

	questions, err := g.Generate(context.Background(), Request{
		QuestionType: model.QuestionTypeNumerical,
		Count:        2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	for _, q := range questions {
		if q.Answer == nil || *q.Answer != answer {
			t.Fatalf("answer = %v, want %v", q.Answer, answer)
		}
		if q.Options != nil {
			t.Fatal("numerical question must not carry options")
		}
	}
}

func TestExplain(t *testing.T) {
	g := newTestGenerator(&stubClient{text: "Berlin is the capital of Germany."})

	explanation, err := g.Explain(context.Background(), "Capital of Germany?", []model.Option{
		{Text: "Berlin", IsCorrect: true},
		{Text: "Munich"},
	}, nil)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if explanation != "Berlin is the capital of Germany." {
		t.Fatalf("explanation = %q", explanation)
	}
}

func TestExplainEmptyResponse(t *testing.T) {
	g := newTestGenerator(&stubClient{text: ""})

	_, err := g.Explain(context.Background(), "Capital of Germany?", nil, nil)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}
