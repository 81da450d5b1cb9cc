package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/service"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/response"
)

// PersonnelHandler exposes staff record endpoints.
type PersonnelHandler struct {
	personnel *service.PersonnelService
}

// NewPersonnelHandler constructs PersonnelHandler.
func NewPersonnelHandler(personnel *service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnel: personnel}
}

// List godoc
// @Summary List staff records
// @Tags Personnel
// @Produce json
// @Param search query string false "Search by name"
// @Param position query string false "Filter by position"
// @Param active query bool false "Filter by active state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /personnel [get]
func (h *PersonnelHandler) List(c *gin.Context) {
	var filter models.PersonnelFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("position"); raw != "" {
		if role, ok := models.NormalizeRole(raw); ok {
			filter.Position = role
		}
	}
	filter.Active = parseBoolQuery(c.Query("active"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	personnel, pagination, err := h.personnel.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, personnel, pagination)
}

// Get godoc
// @Summary Get a staff record
// @Tags Personnel
// @Produce json
// @Param id path string true "Personnel ID"
// @Success 200 {object} response.Envelope
// @Router /personnel/{id} [get]
func (h *PersonnelHandler) Get(c *gin.Context) {
	person, err := h.personnel.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Create godoc
// @Summary Register a staff record
// @Tags Personnel
// @Accept json
// @Produce json
// @Param payload body service.SavePersonnelRequest true "Personnel payload"
// @Success 201 {object} response.Envelope
// @Router /personnel [post]
func (h *PersonnelHandler) Create(c *gin.Context) {
	var req service.SavePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.personnel.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// Update godoc
// @Summary Update a staff record
// @Tags Personnel
// @Accept json
// @Produce json
// @Param id path string true "Personnel ID"
// @Param payload body service.SavePersonnelRequest true "Personnel payload"
// @Success 200 {object} response.Envelope
// @Router /personnel/{id} [put]
func (h *PersonnelHandler) Update(c *gin.Context) {
	var req service.SavePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.personnel.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Deactivate godoc
// @Summary Deactivate a staff record
// @Tags Personnel
// @Param id path string true "Personnel ID"
// @Success 204
// @Router /personnel/{id} [delete]
func (h *PersonnelHandler) Deactivate(c *gin.Context) {
	if err := h.personnel.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
