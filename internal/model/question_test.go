package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestCorrectIndexesDerivation(t *testing.T) {
	options := []Option{
		{Text: "Paris", IsCorrect: false},
		{Text: "Berlin", IsCorrect: true},
		{Text: "Madrid", IsCorrect: false},
		{Text: "Rome", IsCorrect: false},
	}

	got := CorrectIndexes(options)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("CorrectIndexes = %v, want [1]", got)
	}

	multi := []Option{
		{Text: "2", IsCorrect: true},
		{Text: "3", IsCorrect: true},
		{Text: "4", IsCorrect: false},
		{Text: "5", IsCorrect: true},
	}
	got = CorrectIndexes(multi)
	want := []int{0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("CorrectIndexes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CorrectIndexes = %v, want %v", got, want)
		}
	}
}

func TestEncodeDecodeOptionsRoundTrip(t *testing.T) {
	options := []Option{
		{Text: "Water", IsCorrect: false},
		{Text: "Hydrogen", IsCorrect: true},
	}

	optionsBlob, correctBlob, err := EncodeOptions(options)
	if err != nil {
		t.Fatalf("EncodeOptions: %v", err)
	}

	decoded, err := DecodeOptions(optionsBlob)
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Text != "Hydrogen" || !decoded[1].IsCorrect {
		t.Fatalf("decoded options = %+v", decoded)
	}

	indexes, err := DecodeCorrectIndexes(correctBlob)
	if err != nil {
		t.Fatalf("DecodeCorrectIndexes: %v", err)
	}
	if len(indexes) != 1 || indexes[0] != 1 {
		t.Fatalf("decoded indexes = %v, want [1]", indexes)
	}
}

func TestEncodeOptionsRejectsEmptyList(t *testing.T) {
	if _, _, err := EncodeOptions(nil); err == nil {
		t.Fatal("expected error for empty option list")
	}
}

func TestRowMapsMCQVariant(t *testing.T) {
	sectionID := uuid.New()
	g := GeneratedQuestion{
		QuestionType: QuestionTypeMCQ,
		QuestionText: "What is 2+2?",
		Explanation:  "Basic arithmetic.",
		Options: []Option{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
			{Text: "5"},
			{Text: "6"},
		},
	}

	q, err := g.Row(sectionID)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if q.SectionID != sectionID {
		t.Fatalf("SectionID = %s, want %s", q.SectionID, sectionID)
	}
	if q.NumericalAnswer != nil {
		t.Fatal("MCQ row must not carry a numerical answer")
	}
	if q.Explanation == nil || *q.Explanation != "Basic arithmetic." {
		t.Fatalf("Explanation = %v", q.Explanation)
	}

	var indexes []int
	if err := json.Unmarshal(q.CorrectAnswer, &indexes); err != nil {
		t.Fatalf("unmarshal correct answer: %v", err)
	}
	if len(indexes) != 1 || indexes[0] != 1 {
		t.Fatalf("correct indexes = %v, want [1]", indexes)
	}
}

func TestRowMapsNumericalVariant(t *testing.T) {
	answer := 9.81
	g := GeneratedQuestion{
		QuestionType: QuestionTypeNumerical,
		QuestionText: "Acceleration due to gravity in m/s^2?",
		Answer:       &answer,
	}

	q, err := g.Row(uuid.New())
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if q.Options != nil || q.CorrectAnswer != nil {
		t.Fatal("numerical row must not carry option blobs")
	}
	if q.NumericalAnswer == nil || *q.NumericalAnswer != answer {
		t.Fatalf("NumericalAnswer = %v, want %v", q.NumericalAnswer, answer)
	}
}

func TestRowRejectsEmptyQuestionText(t *testing.T) {
	g := GeneratedQuestion{QuestionType: QuestionTypeMCQ}
	if _, err := g.Row(uuid.New()); err != ErrMissingQuestionText {
		t.Fatalf("err = %v, want ErrMissingQuestionText", err)
	}
}
