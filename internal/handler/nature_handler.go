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

// NatureHandler exposes inquiry nature catalog endpoints.
type NatureHandler struct {
	catalog *service.CatalogService
}

// NewNatureHandler constructs NatureHandler.
func NewNatureHandler(catalog *service.CatalogService) *NatureHandler {
	return &NatureHandler{catalog: catalog}
}

// List godoc
// @Summary List inquiry natures
// @Tags Natures
// @Produce json
// @Param search query string false "Search by name or description"
// @Param routing_role query string false "Filter by routing role"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /natures [get]
func (h *NatureHandler) List(c *gin.Context) {
	var filter models.NatureFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("routing_role"); raw != "" {
		if role, ok := models.NormalizeRole(raw); ok {
			filter.RoutingRole = role
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	natures, pagination, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, natures, pagination)
}

// Get godoc
// @Summary Get an inquiry nature
// @Tags Natures
// @Produce json
// @Param id path string true "Nature ID"
// @Success 200 {object} response.Envelope
// @Router /natures/{id} [get]
func (h *NatureHandler) Get(c *gin.Context) {
	nature, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nature, nil)
}

// Create godoc
// @Summary Create an inquiry nature
// @Tags Natures
// @Accept json
// @Produce json
// @Param payload body service.SaveNatureRequest true "Nature payload"
// @Success 201 {object} response.Envelope
// @Router /natures [post]
func (h *NatureHandler) Create(c *gin.Context) {
	var req service.SaveNatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	nature, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nature)
}

// Update godoc
// @Summary Update an inquiry nature
// @Tags Natures
// @Accept json
// @Produce json
// @Param id path string true "Nature ID"
// @Param payload body service.SaveNatureRequest true "Nature payload"
// @Success 200 {object} response.Envelope
// @Router /natures/{id} [put]
func (h *NatureHandler) Update(c *gin.Context) {
	var req service.SaveNatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	nature, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nature, nil)
}

// Delete godoc
// @Summary Delete an unreferenced inquiry nature
// @Tags Natures
// @Param id path string true "Nature ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /natures/{id} [delete]
func (h *NatureHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
