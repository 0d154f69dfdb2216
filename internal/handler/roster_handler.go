package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classhub-id/academic-eval-api/internal/service"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
	"github.com/classhub-id/academic-eval-api/pkg/response"
)

// RosterHandler exposes class subject roster administration.
type RosterHandler struct {
	rosters *service.RosterService
}

// NewRosterHandler constructs handler.
func NewRosterHandler(rosters *service.RosterService) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// List godoc
// @Summary List class subject rosters
// @Tags Rosters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rosters [get]
func (h *RosterHandler) List(c *gin.Context) {
	rosters, err := h.rosters.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rosters, nil)
}

// Get godoc
// @Summary Get a class subject roster
// @Tags Rosters
// @Produce json
// @Param classNumber path int true "Class number"
// @Success 200 {object} response.Envelope
// @Router /rosters/{classNumber} [get]
func (h *RosterHandler) Get(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "classNumber must be an integer"))
		return
	}
	roster, err := h.rosters.Get(c.Request.Context(), classNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// Update godoc
// @Summary Create or replace a class subject roster
// @Tags Rosters
// @Accept json
// @Produce json
// @Param classNumber path int true "Class number"
// @Param payload body service.UpdateRosterRequest true "Roster payload"
// @Success 200 {object} response.Envelope
// @Router /rosters/{classNumber} [put]
func (h *RosterHandler) Update(c *gin.Context) {
	classNumber, err := strconv.Atoi(c.Param("classNumber"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "classNumber must be an integer"))
		return
	}
	var req service.UpdateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	roster, err := h.rosters.Update(c.Request.Context(), classNumber, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}
