package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Uttam-Mahata/questcart/internal/generator"
	"github.com/Uttam-Mahata/questcart/internal/model"
	"github.com/Uttam-Mahata/questcart/internal/response"
	"github.com/Uttam-Mahata/questcart/internal/service"
	"github.com/Uttam-Mahata/questcart/internal/validator"
)

// QuestionHandler handles question generation and management endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GenerateQuestions godoc
// POST /api/v1/sections/:id/questions/generate
// Generates and persists the question set for a section. A section's
// questions are generated at most once.
func (h *QuestionHandler) GenerateQuestions(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.Generate(c.Request.Context(), sectionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrQuestionsExist):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyExists)
		case errors.Is(err, service.ErrGenerationInProgress):
			response.Fail(c, http.StatusConflict, response.ErrGenerationInProgress)
		case errors.Is(err, generator.ErrProvider),
			errors.Is(err, generator.ErrFormat),
			errors.Is(err, generator.ErrShortfall):
			response.Fail(c, http.StatusBadGateway, response.ErrGenerationFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"questions": questions})
}

// ListQuestions godoc
// GET /api/v1/sections/:id/questions
// Lists a section's questions in creation order.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ListBySection(c.Request.Context(), sectionID)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// GetQuestion godoc
// GET /api/v1/questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// UpdateQuestion godoc
// PATCH /api/v1/questions/:id
// Applies a partial update; fields not matching the question's variant are
// ignored.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// SetQuestionImage godoc
// POST /api/v1/questions/:id/image
// Uploads a question image and records its URL on the question.
func (h *QuestionHandler) SetQuestionImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, contentType, ok := readUpload(c)
	if !ok {
		return
	}

	question, err := h.questionService.SetImage(c.Request.Context(), id, data, contentType)
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// UploadOptionImage godoc
// POST /api/v1/sections/:id/options/image
// Uploads an option image and returns its URL.
func (h *QuestionHandler) UploadOptionImage(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, contentType, ok := readUpload(c)
	if !ok {
		return
	}

	url, err := h.questionService.UploadOptionImage(c.Request.Context(), sectionID, data, contentType)
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image_url": url})
}

// RegenerateExplanation godoc
// POST /api/v1/questions/:id/explanation
// Generates a fresh explanation for the question and persists it.
func (h *QuestionHandler) RegenerateExplanation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.RegenerateExplanation(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, generator.ErrProvider), errors.Is(err, generator.ErrFormat):
			response.Fail(c, http.StatusBadGateway, response.ErrGenerationFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// readUpload extracts the "file" multipart part. On failure it writes the
// error response and returns ok=false.
func readUpload(c *gin.Context) (data []byte, contentType string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return nil, "", false
	}
	return data, header.Header.Get("Content-Type"), true
}

// failUpload maps upload-path service errors to responses.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound), errors.Is(err, service.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrStorageFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrStorage)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
