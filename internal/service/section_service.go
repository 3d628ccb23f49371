package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/storage"
)

const syllabusContainer = "syllabus"

// SectionService handles section-level operations outside generation,
// currently syllabus uploads.
type SectionService struct {
	exams          ExamStore
	store          storage.BlobStore
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewSectionService creates a new SectionService.
func NewSectionService(exams ExamStore, store storage.BlobStore, maxUploadBytes int64, log zerolog.Logger) *SectionService {
	return &SectionService{
		exams:          exams,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "section_service").Logger(),
	}
}

// UploadSyllabus stores a syllabus PDF for a section and records its URL.
// Only PDFs are accepted; the section row is updated only after the blob
// is stored.
func (s *SectionService) UploadSyllabus(ctx context.Context, sectionID uuid.UUID, data []byte, contentType string) (string, error) {
	section, err := s.exams.GetSection(ctx, sectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSectionNotFound
		}
		return "", err
	}

	if contentType != "application/pdf" {
		return "", fmt.Errorf("%w: %s (only PDF syllabus files are allowed)", ErrUnsupportedFileType, contentType)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), s.maxUploadBytes)
	}

	blobName := fmt.Sprintf("%s/%s.pdf", sectionID, uuid.New())
	url, err := s.store.Upload(ctx, syllabusContainer, blobName, data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	if err := s.exams.UpdateSectionSyllabus(ctx, sectionID, url); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSectionNotFound
		}
		return "", err
	}

	oldURL := section.SyllabusFileURL
	if oldURL != nil && *oldURL != "" {
		if err := s.store.Delete(ctx, *oldURL); err != nil {
			s.log.Warn().
				Err(err).
				Str("section_id", sectionID.String()).
				Str("url", *oldURL).
				Msg("Failed to delete superseded syllabus file")
		}
	}

	return url, nil
}
