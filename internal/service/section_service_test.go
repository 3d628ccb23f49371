package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/model"
)

func newSectionHarness(t *testing.T) (*SectionService, *fakeExamStore, *fakeBlobStore, uuid.UUID) {
	t.Helper()

	exams := newFakeExamStore()
	store := newFakeBlobStore()

	exam := &model.Exam{
		Name:        "Sample Exam",
		TimeMinutes: 60,
		Sections: []model.Section{{
			Name:               "Section A",
			TotalQuestions:     5,
			QuestionsToAttempt: 5,
			MarksPerQuestion:   2,
			QuestionType:       model.QuestionTypeMCQ,
		}},
	}
	if err := exams.Create(context.Background(), exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}

	svc := NewSectionService(exams, store, 1<<20, zerolog.Nop())
	return svc, exams, store, exam.Sections[0].ID
}

func TestUploadSyllabusRecordsURL(t *testing.T) {
	svc, exams, _, sectionID := newSectionHarness(t)

	url, err := svc.UploadSyllabus(context.Background(), sectionID, []byte("%PDF-1.7"), "application/pdf")
	if err != nil {
		t.Fatalf("UploadSyllabus: %v", err)
	}
	if !strings.Contains(url, "syllabus/") {
		t.Fatalf("url = %q, want syllabus container path", url)
	}

	section, _ := exams.GetSection(context.Background(), sectionID)
	if section.SyllabusFileURL == nil || *section.SyllabusFileURL != url {
		t.Fatalf("stored syllabus URL = %v, want %q", section.SyllabusFileURL, url)
	}
}

func TestUploadSyllabusReplacementDeletesOld(t *testing.T) {
	svc, _, store, sectionID := newSectionHarness(t)

	first, err := svc.UploadSyllabus(context.Background(), sectionID, []byte("%PDF-1.7"), "application/pdf")
	if err != nil {
		t.Fatalf("first UploadSyllabus: %v", err)
	}

	second, err := svc.UploadSyllabus(context.Background(), sectionID, []byte("%PDF-1.7 v2"), "application/pdf")
	if err != nil {
		t.Fatalf("second UploadSyllabus: %v", err)
	}
	if second == first {
		t.Fatal("replacement must produce a new URL")
	}
	if len(store.deleted) != 1 || store.deleted[0] != first {
		t.Fatalf("deleted = %v, want [%s]", store.deleted, first)
	}
}

func TestUploadSyllabusRejectsNonPDF(t *testing.T) {
	svc, _, _, sectionID := newSectionHarness(t)

	_, err := svc.UploadSyllabus(context.Background(), sectionID, []byte("hello"), "text/plain")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}
}

func TestUploadSyllabusUnknownSection(t *testing.T) {
	svc, _, _, _ := newSectionHarness(t)

	_, err := svc.UploadSyllabus(context.Background(), uuid.New(), []byte("%PDF-1.7"), "application/pdf")
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}

func TestUploadSyllabusStorageFailureLeavesSection(t *testing.T) {
	svc, exams, store, sectionID := newSectionHarness(t)
	store.uploadErr = errors.New("bucket unavailable")

	_, err := svc.UploadSyllabus(context.Background(), sectionID, []byte("%PDF-1.7"), "application/pdf")
	if !errors.Is(err, ErrStorageFailed) {
		t.Fatalf("err = %v, want ErrStorageFailed", err)
	}

	section, _ := exams.GetSection(context.Background(), sectionID)
	if section.SyllabusFileURL != nil {
		t.Fatal("syllabus URL must not be set after a failed upload")
	}
}
