package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Uttam-Mahata/questcart/internal/response"
	"github.com/Uttam-Mahata/questcart/internal/service"
)

// SectionHandler handles section-level endpoints.
type SectionHandler struct {
	sectionService *service.SectionService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// UploadSyllabus godoc
// POST /api/v1/sections/:id/syllabus
// Uploads a syllabus PDF for a section and records its URL.
func (h *SectionHandler) UploadSyllabus(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, contentType, ok := readUpload(c)
	if !ok {
		return
	}

	url, err := h.sectionService.UploadSyllabus(c.Request.Context(), sectionID, data, contentType)
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"file_url": url})
}
