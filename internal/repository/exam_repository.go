package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

// ExamRepository handles exam and section data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// Create inserts an exam and all its sections in one transaction.
func (r *ExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (name, total_marks, time_minutes)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		exam.Name, exam.TotalMarks, exam.TimeMinutes,
	).Scan(&exam.ID, &exam.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	for i := range exam.Sections {
		s := &exam.Sections[i]
		s.ExamID = exam.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO sections
			   (exam_id, name, topics, total_questions, questions_to_attempt,
			    marks_per_question, negative_marking_allowed, negative_marks, question_type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			s.ExamID, s.Name, s.Topics, s.TotalQuestions, s.QuestionsToAttempt,
			s.MarksPerQuestion, s.NegativeMarkingAllowed, s.NegativeMarks, s.QuestionType,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an exam with its sections.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, total_marks, time_minutes, created_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.TotalMarks, &e.TimeMinutes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	sections, err := r.sectionsByExam(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Sections = sections
	return e, nil
}

// ListPaginated retrieves exams (with sections) ordered by creation time.
func (r *ExamRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Exam, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, total_marks, time_minutes, created_at
		 FROM exams
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.TotalMarks, &e.TimeMinutes, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range exams {
		sections, err := r.sectionsByExam(ctx, exams[i].ID)
		if err != nil {
			return nil, 0, err
		}
		exams[i].Sections = sections
	}

	return exams, total, nil
}

// GetSection retrieves a single section.
func (r *ExamRepository) GetSection(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, name, topics, syllabus_file_url, total_questions,
		        questions_to_attempt, marks_per_question, negative_marking_allowed,
		        negative_marks, question_type
		 FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.ExamID, &s.Name, &s.Topics, &s.SyllabusFileURL, &s.TotalQuestions,
		&s.QuestionsToAttempt, &s.MarksPerQuestion, &s.NegativeMarkingAllowed,
		&s.NegativeMarks, &s.QuestionType)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSectionSyllabus stores the syllabus file URL on a section.
func (r *ExamRepository) UpdateSectionSyllabus(ctx context.Context, id uuid.UUID, fileURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sections SET syllabus_file_url = $1 WHERE id = $2`, fileURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExamRepository) sectionsByExam(ctx context.Context, examID uuid.UUID) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, name, topics, syllabus_file_url, total_questions,
		        questions_to_attempt, marks_per_question, negative_marking_allowed,
		        negative_marks, question_type
		 FROM sections WHERE exam_id = $1
		 ORDER BY id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.ExamID, &s.Name, &s.Topics, &s.SyllabusFileURL,
			&s.TotalQuestions, &s.QuestionsToAttempt, &s.MarksPerQuestion,
			&s.NegativeMarkingAllowed, &s.NegativeMarks, &s.QuestionType); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}
