package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Uttam-Mahata/questcart/internal/generator"
	"github.com/Uttam-Mahata/questcart/internal/model"
)

// ExamStore is the exam/section persistence contract the services depend
// on. Satisfied by repository.ExamRepository.
type ExamStore interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.Exam, int, error)
	GetSection(ctx context.Context, id uuid.UUID) (*model.Section, error)
	UpdateSectionSyllabus(ctx context.Context, id uuid.UUID, fileURL string) error
}

// QuestionStore is the question persistence contract.
// Satisfied by repository.QuestionRepository.
type QuestionStore interface {
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error)
	CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	InsertBatch(ctx context.Context, sectionID uuid.UUID, batch []model.Question) ([]model.Question, error)
	Update(ctx context.Context, q *model.Question) error
	UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.Question, error)
	UpdateExplanation(ctx context.Context, id uuid.UUID, explanation string) (*model.Question, error)
}

// QuestionGenerator is the generation adapter contract.
// Satisfied by generator.Generator.
type QuestionGenerator interface {
	Generate(ctx context.Context, req generator.Request) ([]model.GeneratedQuestion, error)
	Explain(ctx context.Context, questionText string, options []model.Option, numericalAnswer *float64) (string, error)
}

// SectionLocker serializes generation attempts per section ahead of the
// authoritative database-level check. Satisfied by RedisSectionLocker.
type SectionLocker interface {
	Acquire(ctx context.Context, sectionID uuid.UUID) (bool, error)
	Release(ctx context.Context, sectionID uuid.UUID)
}
