package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govdesk/front-office-api/internal/service"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/response"
)

// DashboardHandler exposes aggregate statistics and report exports.
type DashboardHandler struct {
	dashboard *service.DashboardService
	reports   *service.ReportService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// GenerateReport godoc
// @Summary Generate an appointment register export
// @Tags Dashboard
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/appointments [post]
func (h *DashboardHandler) GenerateReport(c *gin.Context) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be YYYY-MM-DD"))
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be YYYY-MM-DD"))
		return
	}
	format := service.ReportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.reports.Generate(c.Request.Context(), from, to, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// DownloadReport godoc
// @Summary Download a generated report with a signed token
// @Tags Dashboard
// @Produce octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /reports/download [get]
func (h *DashboardHandler) DownloadReport(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	name, file, err := h.reports.OpenByToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.FileAttachment(file.Name(), name)
}
