package model

import (
	"encoding/json"
	"fmt"
)

// Option is one answer choice of an MCQ/MSQ question.
type Option struct {
	Text      string  `json:"text" binding:"required,max=2000"`
	IsCorrect bool    `json:"is_correct"`
	ImageURL  *string `json:"image_url,omitempty" binding:"omitempty,max=1024"`
}

// CorrectIndexes derives the zero-based positions of correct options by
// scanning the ordered list for is_correct = true.
func CorrectIndexes(options []Option) []int {
	indexes := make([]int, 0, len(options))
	for i, opt := range options {
		if opt.IsCorrect {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// EncodeOptions serializes an ordered option list into the two storage
// blobs: the option list itself and the derived correct-index set.
func EncodeOptions(options []Option) (json.RawMessage, json.RawMessage, error) {
	if len(options) == 0 {
		return nil, nil, fmt.Errorf("option list is empty")
	}

	optionsBlob, err := json.Marshal(options)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal options: %w", err)
	}

	correctBlob, err := json.Marshal(CorrectIndexes(options))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal correct indexes: %w", err)
	}

	return optionsBlob, correctBlob, nil
}

// DecodeOptions parses the stored option blob back into the ordered list.
func DecodeOptions(raw json.RawMessage) ([]Option, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var options []Option
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	return options, nil
}

// DecodeCorrectIndexes parses the stored correct-index blob.
func DecodeCorrectIndexes(raw json.RawMessage) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var indexes []int
	if err := json.Unmarshal(raw, &indexes); err != nil {
		return nil, fmt.Errorf("unmarshal correct indexes: %w", err)
	}
	return indexes, nil
}
