package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/model"
	"github.com/Uttam-Mahata/questcart/internal/response"
)

// ExamService handles exam creation and retrieval.
type ExamService struct {
	exams ExamStore
	log   zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(exams ExamStore, log zerolog.Logger) *ExamService {
	return &ExamService{
		exams: exams,
		log:   log.With().Str("component", "exam_service").Logger(),
	}
}

// Create inserts an exam with its sections. Total marks are derived from
// the section requirements; sections are immutable afterwards.
func (s *ExamService) Create(ctx context.Context, req model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Name:        req.Name,
		TotalMarks:  req.TotalMarks(),
		TimeMinutes: req.TimeMinutes,
		Sections:    make([]model.Section, len(req.Sections)),
	}
	for i, sec := range req.Sections {
		exam.Sections[i] = model.Section{
			Name:                   sec.Name,
			Topics:                 sec.Topics,
			TotalQuestions:         sec.TotalQuestions,
			QuestionsToAttempt:     sec.QuestionsToAttempt,
			MarksPerQuestion:       sec.MarksPerQuestion,
			NegativeMarkingAllowed: sec.NegativeMarkingAllowed,
			NegativeMarks:          sec.NegativeMarks,
			QuestionType:           model.QuestionType(sec.QuestionType),
		}
	}

	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Int("sections", len(exam.Sections)).
		Msg("Exam created")
	return exam, nil
}

// GetByID retrieves an exam with its sections.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

// List retrieves exams with pagination.
func (s *ExamService) List(ctx context.Context, page, perPage int) ([]model.Exam, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	exams, total, err := s.exams.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return exams, pagination, nil
}
