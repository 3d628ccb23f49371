package service

import "errors"

// Domain errors surfaced to handlers.
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")

	// ErrQuestionsExist rejects a generate call on a populated section.
	ErrQuestionsExist = errors.New("questions already generated for this section")
	// ErrGenerationInProgress rejects a generate call while another one
	// holds the section lock.
	ErrGenerationInProgress = errors.New("question generation already in progress for this section")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrStorageFailed       = errors.New("blob storage operation failed")
)
