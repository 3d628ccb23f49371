package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuestionType discriminates the three question variants.
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "MCQ" // multiple choice, exactly one correct option
	QuestionTypeMSQ       QuestionType = "MSQ" // multiple select, 1-3 correct options
	QuestionTypeNumerical QuestionType = "NUM" // single floating-point answer, no options
)

// Question is the persisted row shape. Options and CorrectAnswer hold the
// serialized option list and correct-index set for MCQ/MSQ rows and stay
// null for numerical rows; NumericalAnswer is the inverse. The index set,
// not the option text, is authoritative for correctness. Position fixes
// the question's place within its section, assigned once at batch insert.
type Question struct {
	ID              uuid.UUID       `json:"id"`
	SectionID       uuid.UUID       `json:"section_id"`
	Position        int             `json:"position"`
	QuestionText    string          `json:"question_text"`
	QuestionType    QuestionType    `json:"question_type"`
	Explanation     *string         `json:"explanation,omitempty"`
	Options         json.RawMessage `json:"options,omitempty"`
	CorrectAnswer   json.RawMessage `json:"correct_answer,omitempty"`
	NumericalAnswer *float64        `json:"numerical_answer,omitempty"`
	ImageURL        *string         `json:"image_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	LastModified    time.Time       `json:"last_modified"`
}

// GeneratedQuestion is the in-memory variant model produced by the
// generation adapter, before persistence mapping. The QuestionType tag
// determines which payload fields are populated: Options for MCQ/MSQ,
// Answer for NUM.
type GeneratedQuestion struct {
	QuestionType QuestionType
	QuestionText string
	Explanation  string
	Options      []Option
	Answer       *float64
}

// ErrMissingQuestionText is returned when a variant has no question text.
var ErrMissingQuestionText = errors.New("question text is empty")

// Row maps a generated variant to its flat storage row: options are
// serialized as an ordered list, correct answers as the derived index set,
// and the numerical answer goes to its own nullable column.
func (g GeneratedQuestion) Row(sectionID uuid.UUID) (Question, error) {
	if g.QuestionText == "" {
		return Question{}, ErrMissingQuestionText
	}

	q := Question{
		SectionID:    sectionID,
		QuestionText: g.QuestionText,
		QuestionType: g.QuestionType,
	}
	if g.Explanation != "" {
		q.Explanation = &g.Explanation
	}

	switch g.QuestionType {
	case QuestionTypeMCQ, QuestionTypeMSQ:
		options, correct, err := EncodeOptions(g.Options)
		if err != nil {
			return Question{}, err
		}
		q.Options = options
		q.CorrectAnswer = correct
	case QuestionTypeNumerical:
		q.NumericalAnswer = g.Answer
	default:
		return Question{}, errors.New("unknown question type: " + string(g.QuestionType))
	}

	return q, nil
}

// UpdateQuestionRequest is the partial-update payload for a question.
// Fields that do not apply to the question's variant are ignored.
type UpdateQuestionRequest struct {
	QuestionText    *string  `json:"question_text" binding:"omitempty,min=1,max=5000"`
	Options         []Option `json:"options" binding:"omitempty,min=2,max=10,dive"`
	NumericalAnswer *float64 `json:"numerical_answer"`
}

// SetImageRequest sets only a question's image reference.
type SetImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,max=1024"`
}
