package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/generator"
	"github.com/Uttam-Mahata/questcart/internal/model"
	"github.com/Uttam-Mahata/questcart/internal/repository"
	"github.com/Uttam-Mahata/questcart/internal/storage"
)

// Allowed image MIME types for question/option images.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// QuestionService orchestrates section-scoped question generation and
// question mutations.
type QuestionService struct {
	exams          ExamStore
	questions      QuestionStore
	gen            QuestionGenerator
	locker         SectionLocker
	store          storage.BlobStore
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	exams ExamStore,
	questions QuestionStore,
	gen QuestionGenerator,
	locker SectionLocker,
	store storage.BlobStore,
	maxUploadBytes int64,
	log zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		exams:          exams,
		questions:      questions,
		gen:            gen,
		locker:         locker,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "question_service").Logger(),
	}
}

// Generate produces and persists the question set for a section.
//
// A section's question set is created at most once: the existing-question
// check rejects populated sections before the provider is invoked, the
// section lock rejects concurrent attempts, and the batch insert re-checks
// under a database-level lock so exactly one concurrent caller commits.
// The batch is written all-or-nothing.
func (s *QuestionService) Generate(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error) {
	section, err := s.exams.GetSection(ctx, sectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	count, err := s.questions.CountBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrQuestionsExist
	}

	acquired, err := s.locker.Acquire(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrGenerationInProgress
	}
	defer s.locker.Release(ctx, sectionID)

	exam, err := s.exams.GetByID(ctx, section.ExamID)
	if err != nil {
		return nil, fmt.Errorf("load owning exam: %w", err)
	}

	req := generator.Request{
		SectionID:        section.ID,
		SectionName:      section.Name,
		ExamName:         exam.Name,
		QuestionType:     section.QuestionType,
		Count:            section.TotalQuestions,
		MarksPerQuestion: section.MarksPerQuestion,
	}
	if section.Topics != nil {
		req.Topics = *section.Topics
	}
	if section.NegativeMarkingAllowed {
		req.NegativeMarks = section.NegativeMarks
	}

	batch, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Question, len(batch))
	for i, g := range batch {
		row, err := g.Row(sectionID)
		if err != nil {
			return nil, fmt.Errorf("map question %d: %w", i, err)
		}
		rows[i] = row
	}

	inserted, err := s.questions.InsertBatch(ctx, sectionID, rows)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionsExist) {
			return nil, ErrQuestionsExist
		}
		return nil, err
	}

	s.log.Info().
		Str("section_id", sectionID.String()).
		Int("count", len(inserted)).
		Msg("Question batch persisted")
	return inserted, nil
}

// ListBySection returns a section's questions in creation order. The
// section must exist even when it has no questions yet.
func (s *QuestionService) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error) {
	if _, err := s.exams.GetSection(ctx, sectionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	questions, err := s.questions.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// GetByID retrieves a single question.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// Update applies a partial update to a question. Only fields present in
// the request are touched, and only when they fit the question's variant;
// inapplicable fields are ignored. Replacing options recomputes the
// correct-answer index set.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.QuestionText != nil {
		q.QuestionText = *req.QuestionText
	}

	switch q.QuestionType {
	case model.QuestionTypeMCQ, model.QuestionTypeMSQ:
		if req.Options != nil {
			options, correct, err := model.EncodeOptions(req.Options)
			if err != nil {
				return nil, err
			}
			q.Options = options
			q.CorrectAnswer = correct
		}
	case model.QuestionTypeNumerical:
		if req.NumericalAnswer != nil {
			q.NumericalAnswer = req.NumericalAnswer
		}
	}

	if err := s.questions.Update(ctx, q); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// SetImage uploads a question image to the blob store and records its URL.
// The row is only updated after a successful upload; deleting the
// superseded image is best-effort and never blocks the update.
func (s *QuestionService) SetImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.Question, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := s.validateImage(contentType, int64(len(data)))
	if err != nil {
		return nil, err
	}

	container := fmt.Sprintf("questions/%s", q.SectionID)
	blobName := uuid.New().String() + ext
	url, err := s.store.Upload(ctx, container, blobName, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	oldURL := q.ImageURL
	updated, err := s.questions.UpdateImage(ctx, id, url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if oldURL != nil && *oldURL != "" {
		if err := s.store.Delete(ctx, *oldURL); err != nil {
			s.log.Warn().
				Err(err).
				Str("question_id", id.String()).
				Str("url", *oldURL).
				Msg("Failed to delete superseded question image")
		}
	}

	return updated, nil
}

// UploadOptionImage uploads an option image for a section and returns its
// URL. The caller attaches the URL to an option via Update.
func (s *QuestionService) UploadOptionImage(ctx context.Context, sectionID uuid.UUID, data []byte, contentType string) (string, error) {
	if _, err := s.exams.GetSection(ctx, sectionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSectionNotFound
		}
		return "", err
	}

	ext, err := s.validateImage(contentType, int64(len(data)))
	if err != nil {
		return "", err
	}

	container := fmt.Sprintf("options/%s", sectionID)
	blobName := uuid.New().String() + ext
	url, err := s.store.Upload(ctx, container, blobName, data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return url, nil
}

// RegenerateExplanation asks the provider for a fresh explanation of an
// existing question and persists it.
func (s *QuestionService) RegenerateExplanation(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := model.DecodeOptions(q.Options)
	if err != nil {
		return nil, err
	}

	explanation, err := s.gen.Explain(ctx, q.QuestionText, options, q.NumericalAnswer)
	if err != nil {
		return nil, err
	}

	updated, err := s.questions.UpdateExplanation(ctx, id, explanation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *QuestionService) validateImage(contentType string, size int64) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	if size > s.maxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, s.maxUploadBytes)
	}
	return ext, nil
}
