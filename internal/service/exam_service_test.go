package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

func strPtr(s string) *string { return &s }

func TestCreateExamDerivesTotalMarks(t *testing.T) {
	exams := newFakeExamStore()
	svc := NewExamService(exams, zerolog.Nop())

	negative := 1.0
	created, err := svc.Create(context.Background(), model.CreateExamRequest{
		Name:        "JEE Mock 1",
		TimeMinutes: 180,
		Sections: []model.CreateSectionRequest{
			{
				Name:               "Physics",
				Topics:             strPtr("kinematics"),
				TotalQuestions:     20,
				QuestionsToAttempt: 20,
				MarksPerQuestion:   4,
				QuestionType:       "MCQ",
			},
			{
				Name:                   "Maths",
				TotalQuestions:         10,
				QuestionsToAttempt:     8,
				MarksPerQuestion:       3,
				NegativeMarkingAllowed: true,
				NegativeMarks:          &negative,
				QuestionType:           "NUM",
			},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 20*4 + 10*3
	if created.TotalMarks != 110 {
		t.Fatalf("TotalMarks = %v, want 110", created.TotalMarks)
	}
	if len(created.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(created.Sections))
	}
	if created.Sections[1].QuestionType != model.QuestionTypeNumerical {
		t.Fatalf("section type = %s, want NUM", created.Sections[1].QuestionType)
	}
	if created.ID == uuid.Nil {
		t.Fatal("exam ID must be assigned")
	}
}

func TestGetExamNotFound(t *testing.T) {
	svc := NewExamService(newFakeExamStore(), zerolog.Nop())

	_, err := svc.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("err = %v, want ErrExamNotFound", err)
	}
}

func TestListClampsPagination(t *testing.T) {
	exams := newFakeExamStore()
	svc := NewExamService(exams, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), model.CreateExamRequest{
			Name:        "Exam",
			TimeMinutes: 60,
			Sections: []model.CreateSectionRequest{{
				Name:               "S",
				TotalQuestions:     5,
				QuestionsToAttempt: 5,
				MarksPerQuestion:   1,
				QuestionType:       "MCQ",
			}},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, pagination, err := svc.List(context.Background(), -4, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if pagination.Page != 1 || pagination.PerPage != 10 {
		t.Fatalf("pagination = %+v, want page 1 per_page 10", pagination)
	}
	if len(got) != 3 || pagination.TotalItems != 3 || pagination.TotalPages != 1 {
		t.Fatalf("got %d exams, pagination %+v", len(got), pagination)
	}

	_, pagination, err = svc.List(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if pagination.PerPage != 100 {
		t.Fatalf("per_page = %d, want clamp to 100", pagination.PerPage)
	}

	got, _, err = svc.List(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d exams on far page, want 0", len(got))
	}
}
