package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classhub-id/academic-eval-api/internal/service"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
	"github.com/classhub-id/academic-eval-api/pkg/response"
)

// MarkingHandler exposes exam marking endpoints.
type MarkingHandler struct {
	marking *service.MarkingService
}

// NewMarkingHandler constructs handler.
func NewMarkingHandler(marking *service.MarkingService) *MarkingHandler {
	return &MarkingHandler{marking: marking}
}

// Bulk godoc
// @Summary Submit marks for a whole schedule in one batch
// @Tags Marking
// @Accept json
// @Produce json
// @Param payload body service.BulkMarksRequest true "Bulk marks payload"
// @Success 200 {object} response.Envelope
// @Router /marking/bulk [post]
func (h *MarkingHandler) Bulk(c *gin.Context) {
	var req service.BulkMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.MarkedBy = markerFromContext(c)
	result, err := h.marking.SubmitBulkMarks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Update godoc
// @Summary Correct a single exam result
// @Tags Marking
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param payload body service.UpdateResultRequest true "Partial result payload"
// @Success 200 {object} response.Envelope
// @Router /results/{id} [patch]
func (h *MarkingHandler) Update(c *gin.Context) {
	var req service.UpdateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.MarkedBy = markerFromContext(c)
	result, err := h.marking.UpdateResult(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ResultsBySchedule godoc
// @Summary List results for a schedule
// @Tags Marking
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/results [get]
func (h *MarkingHandler) ResultsBySchedule(c *gin.Context) {
	results, err := h.marking.ResultsBySchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// ResultsByStudent godoc
// @Summary List exam results for a student
// @Tags Marking
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/results [get]
func (h *MarkingHandler) ResultsByStudent(c *gin.Context) {
	results, err := h.marking.ResultsByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// Sessions godoc
// @Summary List bulk marking audit sessions for a schedule
// @Tags Marking
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/marking-sessions [get]
func (h *MarkingHandler) Sessions(c *gin.Context) {
	sessions, err := h.marking.MarkingSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}
