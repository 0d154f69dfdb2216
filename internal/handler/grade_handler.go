package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classhub-id/academic-eval-api/internal/models"
	"github.com/classhub-id/academic-eval-api/internal/service"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
	"github.com/classhub-id/academic-eval-api/pkg/response"
)

// GradeHandler exposes yearly grade endpoints.
type GradeHandler struct {
	grades *service.YearlyGradeService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades *service.YearlyGradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Submit godoc
// @Summary Submit or replace a student's yearly grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.SubmitYearlyGradeRequest true "Yearly grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/yearly [post]
func (h *GradeHandler) Submit(c *gin.Context) {
	var req service.SubmitYearlyGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rollup, err := h.grades.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rollup, nil)
}

// List godoc
// @Summary List yearly grades
// @Tags Grades
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param classNumber query int false "Filter by class"
// @Param year query int false "Filter by year"
// @Success 200 {object} response.Envelope
// @Router /grades/yearly [get]
func (h *GradeHandler) List(c *gin.Context) {
	filter := models.YearlyGradeFilter{StudentID: c.Query("studentId")}
	if raw := c.Query("classNumber"); raw != "" {
		classNumber, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "classNumber must be an integer"))
			return
		}
		filter.ClassNumber = classNumber
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "year must be an integer"))
			return
		}
		filter.Year = year
	}
	grades, err := h.grades.Grades(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}
