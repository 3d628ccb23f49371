package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents an exam paper composed of one or more sections.
type Exam struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TotalMarks  float64   `json:"total_marks"`
	TimeMinutes int       `json:"time_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	Sections    []Section `json:"sections,omitempty"`
}

// Section is a named block within an exam. Its question type, count and
// marks are fixed at exam creation and drive question generation.
type Section struct {
	ID                     uuid.UUID    `json:"id"`
	ExamID                 uuid.UUID    `json:"exam_id"`
	Name                   string       `json:"name"`
	Topics                 *string      `json:"topics,omitempty"`
	SyllabusFileURL        *string      `json:"syllabus_file_url,omitempty"`
	TotalQuestions         int          `json:"total_questions"`
	QuestionsToAttempt     int          `json:"questions_to_attempt"`
	MarksPerQuestion       float64      `json:"marks_per_question"`
	NegativeMarkingAllowed bool         `json:"negative_marking_allowed"`
	NegativeMarks          *float64     `json:"negative_marks,omitempty"`
	QuestionType           QuestionType `json:"question_type"`
}

// CreateExamRequest is the payload for creating a new exam with its sections.
type CreateExamRequest struct {
	Name        string                 `json:"name" binding:"required,min=3,max=255"`
	TimeMinutes int                    `json:"time_minutes" binding:"required,min=1,max=480"`
	Sections    []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

// CreateSectionRequest describes one section of a new exam.
type CreateSectionRequest struct {
	Name                   string   `json:"name" binding:"required,min=1,max=255"`
	Topics                 *string  `json:"topics" binding:"omitempty,max=2000"`
	TotalQuestions         int      `json:"total_questions" binding:"required,min=1,max=100"`
	QuestionsToAttempt     int      `json:"questions_to_attempt" binding:"required,min=1,ltefield=TotalQuestions"`
	MarksPerQuestion       float64  `json:"marks_per_question" binding:"required,gt=0"`
	NegativeMarkingAllowed bool     `json:"negative_marking_allowed"`
	NegativeMarks          *float64 `json:"negative_marks" binding:"omitempty,gt=0"`
	QuestionType           string   `json:"question_type" binding:"required,oneof=MCQ MSQ NUM"`
}

// TotalMarks computes the exam total from its section requirements.
func (r CreateExamRequest) TotalMarks() float64 {
	var total float64
	for _, s := range r.Sections {
		total += float64(s.TotalQuestions) * s.MarksPerQuestion
	}
	return total
}
