package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classhub-id/academic-eval-api/internal/middleware"
	"github.com/classhub-id/academic-eval-api/internal/service"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
	"github.com/classhub-id/academic-eval-api/pkg/response"
)

// SummaryHandler exposes the recomputed reporting views.
type SummaryHandler struct {
	summaries *service.SummaryService
	exports   *service.ExportService
}

// NewSummaryHandler constructs handler.
func NewSummaryHandler(summaries *service.SummaryService, exports *service.ExportService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, exports: exports}
}

// StudentLifetime godoc
// @Summary Lifetime academic summary for a student
// @Tags Summaries
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/summary [get]
func (h *SummaryHandler) StudentLifetime(c *gin.Context) {
	summary, cacheHit, err := h.summaries.StudentLifetime(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

// ClassExam godoc
// @Summary Per-subject summary of one examination for a class
// @Tags Summaries
// @Produce json
// @Param classNumber path int true "Class number"
// @Param examId path string true "Examination ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{classNumber}/examinations/{examId}/summary [get]
func (h *SummaryHandler) ClassExam(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "classNumber must be an integer"))
		return
	}
	summary, cacheHit, err := h.summaries.ClassExam(c.Request.Context(), classNumber, c.Param("examId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export a class examination summary as CSV or PDF
// @Tags Summaries
// @Produce octet-stream
// @Param classNumber path int true "Class number"
// @Param examId path string true "Examination ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /classes/{classNumber}/examinations/{examId}/summary/export [get]
func (h *SummaryHandler) Export(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "classNumber must be an integer"))
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	file, err := h.exports.ClassExamSummary(c.Request.Context(), classNumber, c.Param("examId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
