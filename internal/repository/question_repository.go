package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

// ErrQuestionsExist is returned by InsertBatch when the section already has
// a persisted question set.
var ErrQuestionsExist = errors.New("questions already exist for this section")

const questionColumns = `id, section_id, position, question_text, question_type, explanation,
	 options, correct_answer, numerical_answer, image_url, created_at, last_modified`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListBySection retrieves all questions for a section in creation order.
// Position, not created_at, carries the order: a batch insert stamps every
// row with the same transaction timestamp.
func (r *QuestionRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions WHERE section_id = $1
		 ORDER BY position`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountBySection returns the number of persisted questions for a section.
func (r *QuestionRepository) CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE section_id = $1`, sectionID).Scan(&count)
	return count, err
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// InsertBatch persists a full generation batch in one transaction.
//
// The transaction takes a per-section advisory lock and re-checks the
// existing question count before inserting, so two concurrent generation
// attempts for the same section serialize here and exactly one commits.
func (r *QuestionRepository) InsertBatch(ctx context.Context, sectionID uuid.UUID, batch []model.Question) ([]model.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, sectionID); err != nil {
		return nil, fmt.Errorf("acquire section lock: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE section_id = $1`, sectionID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return nil, ErrQuestionsExist
	}

	inserted := make([]model.Question, len(batch))
	for i, q := range batch {
		q.Position = i + 1
		err := tx.QueryRow(ctx,
			`INSERT INTO questions
			   (section_id, position, question_text, question_type, explanation,
			    options, correct_answer, numerical_answer, image_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id, created_at, last_modified`,
			sectionID, q.Position, q.QuestionText, q.QuestionType, q.Explanation,
			q.Options, q.CorrectAnswer, q.NumericalAnswer, q.ImageURL,
		).Scan(&q.ID, &q.CreatedAt, &q.LastModified)
		if err != nil {
			return nil, fmt.Errorf("insert question %d: %w", i, err)
		}
		inserted[i] = q
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// Update rewrites a question's mutable content fields and stamps
// last_modified. The caller supplies the already-encoded blobs.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET question_text = $1, explanation = $2, options = $3,
		     correct_answer = $4, numerical_answer = $5, last_modified = NOW()
		 WHERE id = $6
		 RETURNING last_modified`,
		q.QuestionText, q.Explanation, q.Options,
		q.CorrectAnswer, q.NumericalAnswer, q.ID,
	).Scan(&q.LastModified)
}

// UpdateImage sets only the image reference and stamps last_modified.
func (r *QuestionRepository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET image_url = $1, last_modified = NOW()
		 WHERE id = $2
		 RETURNING `+questionColumns, imageURL, id)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateExplanation sets only the explanation and stamps last_modified.
func (r *QuestionRepository) UpdateExplanation(ctx context.Context, id uuid.UUID, explanation string) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET explanation = $1, last_modified = NOW()
		 WHERE id = $2
		 RETURNING `+questionColumns, explanation, id)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.SectionID, &q.Position, &q.QuestionText, &q.QuestionType, &q.Explanation,
		&q.Options, &q.CorrectAnswer, &q.NumericalAnswer, &q.ImageURL, &q.CreatedAt, &q.LastModified)
	return q, err
}
