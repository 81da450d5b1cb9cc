package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/service"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/response"
)

const dateLayout = "2006-01-02"

// AppointmentHandler exposes appointment booking and lifecycle endpoints.
type AppointmentHandler struct {
	admission *service.AdmissionService
	lifecycle *service.LifecycleService
	feedback  *service.FeedbackService
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(
	admission *service.AdmissionService,
	lifecycle *service.LifecycleService,
	feedback *service.FeedbackService,
	dashboard *service.DashboardService,
	metrics *service.MetricsService,
) *AppointmentHandler {
	return &AppointmentHandler{
		admission: admission,
		lifecycle: lifecycle,
		feedback:  feedback,
		dashboard: dashboard,
		metrics:   metrics,
	}
}

type proposeAppointmentPayload struct {
	ClientID        string  `json:"client_id"`
	NatureID        string  `json:"nature_id"`
	Nature          string  `json:"nature"`
	AppointmentDate string  `json:"appointment_date"`
	OfficerID       string  `json:"officer_id"`
	Notes           *string `json:"notes"`
}

// Propose godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body proposeAppointmentPayload true "Appointment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments [post]
func (h *AppointmentHandler) Propose(c *gin.Context) {
	var payload proposeAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	date, err := time.Parse(dateLayout, payload.AppointmentDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "appointment_date must be YYYY-MM-DD"))
		return
	}

	detail, err := h.admission.Propose(c.Request.Context(), service.ProposeAppointmentRequest{
		ClientID:        payload.ClientID,
		NatureID:        payload.NatureID,
		Nature:          payload.Nature,
		AppointmentDate: date,
		OfficerID:       payload.OfficerID,
		Notes:           payload.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordBooking(string(detail.Status))
	h.invalidateDashboard(c)
	response.Created(c, detail)
}

// List godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param client_id query string false "Filter by client"
// @Param officer_id query string false "Filter by officer"
// @Param nature_id query string false "Filter by inquiry nature"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Range start (YYYY-MM-DD)"
// @Param date_to query string false "Range end (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter models.AppointmentFilter
	filter.ClientID = c.Query("client_id")
	filter.OfficerID = c.Query("officer_id")
	filter.NatureID = c.Query("nature_id")
	filter.Status = models.AppointmentStatus(c.Query("status"))
	if raw := c.Query("date_from"); raw != "" {
		if from, err := time.Parse(dateLayout, raw); err == nil {
			filter.DateFrom = &from
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if to, err := time.Parse(dateLayout, raw); err == nil {
			filter.DateTo = &to
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	appointments, pagination, err := h.lifecycle.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments, pagination)
}

// Get godoc
// @Summary Get appointment detail
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	detail, err := h.lifecycle.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Confirm godoc
// @Summary Confirm a pending appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	detail, err := h.lifecycle.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.JSON(c, http.StatusOK, detail, nil)
}

// Cancel godoc
// @Summary Cancel an open appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	detail, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.JSON(c, http.StatusOK, detail, nil)
}

// Complete godoc
// @Summary Mark an appointment as served
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	detail, err := h.lifecycle.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.JSON(c, http.StatusOK, detail, nil)
}

type reassignPayload struct {
	OfficerID string `json:"officer_id" binding:"required"`
}

// Reassign godoc
// @Summary Reassign the handling officer
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body reassignPayload true "New officer"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id}/reassign [post]
func (h *AppointmentHandler) Reassign(c *gin.Context) {
	var payload reassignPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.lifecycle.Reassign(c.Request.Context(), c.Param("id"), payload.OfficerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

type updateDatePayload struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
}

// UpdateDate godoc
// @Summary Move an appointment to a new date
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body updateDatePayload true "New date"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/date [patch]
func (h *AppointmentHandler) UpdateDate(c *gin.Context) {
	var payload updateDatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	date, err := time.Parse(dateLayout, payload.AppointmentDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "appointment_date must be YYYY-MM-DD"))
		return
	}
	detail, err := h.lifecycle.UpdateDate(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.JSON(c, http.StatusOK, detail, nil)
}

type updateNotesPayload struct {
	Notes *string `json:"notes"`
}

// UpdateNotes godoc
// @Summary Update appointment notes
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body updateNotesPayload true "Notes"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id}/notes [patch]
func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	var payload updateNotesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.lifecycle.UpdateNotes(c.Request.Context(), c.Param("id"), payload.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Delete godoc
// @Summary Delete an appointment
// @Tags Appointments
// @Param id path string true "Appointment ID"
// @Success 204
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.lifecycle.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.NoContent(c)
}

// SubmitFeedback godoc
// @Summary Record feedback for a completed appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body service.SubmitFeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/feedback [post]
func (h *AppointmentHandler) SubmitFeedback(c *gin.Context) {
	var req service.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Feedback = strings.TrimSpace(req.Feedback)
	detail, err := h.feedback.Submit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateDashboard(c)
	response.JSON(c, http.StatusOK, detail, nil)
}

func (h *AppointmentHandler) invalidateDashboard(c *gin.Context) {
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
}
