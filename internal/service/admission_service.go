package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type admissionAppointmentRepo interface {
	CreateWithCapacity(ctx context.Context, appt *models.Appointment, capacity int) error
	FindDetailByID(ctx context.Context, id string) (*models.AppointmentDetail, error)
}

type natureResolver interface {
	FindByID(ctx context.Context, id string) (*models.InquiryNature, error)
	FindByName(ctx context.Context, name string) (*models.InquiryNature, error)
}

type clientReader interface {
	FindByID(ctx context.Context, id string) (*models.Client, error)
}

type officerResolver interface {
	FindByID(ctx context.Context, id string) (*models.Personnel, error)
	FindActiveByPosition(ctx context.Context, position models.RoutingRole) (*models.Personnel, error)
	FindAnyActive(ctx context.Context) (*models.Personnel, error)
}

// appointmentNotifier receives lifecycle events for client messaging. All
// methods are fire-and-forget.
type appointmentNotifier interface {
	AppointmentBooked(detail *models.AppointmentDetail)
	AppointmentConfirmed(detail *models.AppointmentDetail)
	AppointmentCancelled(detail *models.AppointmentDetail)
}

// ProposeAppointmentRequest holds payload for booking an appointment. The
// inquiry nature may be referenced by id or resolved by name.
type ProposeAppointmentRequest struct {
	ClientID        string    `json:"client_id" validate:"required"`
	NatureID        string    `json:"nature_id"`
	Nature          string    `json:"nature"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	OfficerID       string    `json:"officer_id"`
	Notes           *string   `json:"notes"`
}

// AdmissionService validates and books appointment proposals.
type AdmissionService struct {
	appointments admissionAppointmentRepo
	natures      natureResolver
	clients      clientReader
	personnel    officerResolver
	notifier     appointmentNotifier
	engine       config.EngineConfig
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAdmissionService constructs the admission service.
func NewAdmissionService(
	appointments admissionAppointmentRepo,
	natures natureResolver,
	clients clientReader,
	personnel officerResolver,
	notifier appointmentNotifier,
	engine config.EngineConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *AdmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{
		appointments: appointments,
		natures:      natures,
		clients:      clients,
		personnel:    personnel,
		notifier:     notifier,
		engine:       engine,
		validator:    validate,
		logger:       logger,
	}
}

// Propose books an appointment. Checks run in a fixed order: date, nature,
// officer, then capacity, so a request failing multiple checks always reports
// the same error. Priority clients are confirmed immediately.
func (s *AdmissionService) Propose(ctx context.Context, req ProposeAppointmentRequest) (*models.AppointmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}
	if req.NatureID == "" && req.Nature == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "inquiry nature is required")
	}

	date := normalizeDate(req.AppointmentDate)
	if date.Before(normalizeDate(time.Now().UTC())) {
		return nil, appErrors.ErrInvalidDate
	}

	nature, err := s.resolveNature(ctx, req)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "client not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load client")
	}
	if !client.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "client profile is inactive")
	}

	officer, err := s.resolveOfficer(ctx, req.OfficerID, nature.RoutingRole)
	if err != nil {
		return nil, err
	}

	status := models.StatusPending
	if s.isPriority(client, date) {
		status = models.StatusConfirmed
	}

	appt := &models.Appointment{
		ClientID:          client.ID,
		InquiryNatureID:   nature.ID,
		AppointmentDate:   date,
		Status:            status,
		AssignedOfficerID: officer.ID,
		Notes:             req.Notes,
	}
	if err := s.appointments.CreateWithCapacity(ctx, appt, s.engine.DailyCapacity); err != nil {
		if errors.Is(err, repository.ErrDailyCapacityReached) {
			return nil, appErrors.ErrCapacityExceeded
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment")
	}

	detail, err := s.appointments.FindDetailByID(ctx, appt.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}

	if s.notifier != nil {
		s.notifier.AppointmentBooked(detail)
	}
	return detail, nil
}

func (s *AdmissionService) resolveNature(ctx context.Context, req ProposeAppointmentRequest) (*models.InquiryNature, error) {
	var (
		nature *models.InquiryNature
		err    error
	)
	if req.NatureID != "" {
		nature, err = s.natures.FindByID(ctx, req.NatureID)
	} else {
		nature, err = s.natures.FindByName(ctx, req.Nature)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrUnknownNature
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve inquiry nature")
	}
	return nature, nil
}

// resolveOfficer picks the assigned officer. An explicit choice is checked
// against the nature's routing role; under the advisory policy a mismatch is
// logged and allowed, under the strict policy it is rejected. Without an
// explicit choice the routing role selects an active officer, with any active
// officer as the advisory fallback.
func (s *AdmissionService) resolveOfficer(ctx context.Context, officerID string, role models.RoutingRole) (*models.Personnel, error) {
	if officerID != "" {
		officer, err := s.personnel.FindByID(ctx, officerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "officer not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load officer")
		}
		if !officer.Active {
			return nil, appErrors.Clone(appErrors.ErrValidation, "officer is inactive")
		}
		if officer.Position != role {
			if s.engine.RoleMatchPolicy == config.RoleMatchStrict {
				return nil, appErrors.ErrRoleMismatch
			}
			s.logger.Sugar().Warnw("officer role does not match inquiry routing",
				"officer_id", officer.ID, "position", officer.Position, "routing_role", role)
		}
		return officer, nil
	}

	officer, err := s.personnel.FindActiveByPosition(ctx, role)
	if err == nil {
		return officer, nil
	}
	if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve officer")
	}

	if s.engine.RoleMatchPolicy == config.RoleMatchStrict {
		return nil, appErrors.Clone(appErrors.ErrRoleMismatch, "no active officer holds the routing role")
	}

	officer, err = s.personnel.FindAnyActive(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active officer available")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve officer")
	}
	s.logger.Sugar().Warnw("no officer holds the routing role, assigned fallback",
		"officer_id", officer.ID, "routing_role", role)
	return officer, nil
}

// isPriority reports whether the client qualifies for immediate confirmation:
// persons with disability, pregnant clients, and senior citizens.
func (s *AdmissionService) isPriority(client *models.Client, date time.Time) bool {
	if client.IsPWD || client.IsPregnant {
		return true
	}
	seniorAge := s.engine.SeniorAge
	if seniorAge <= 0 {
		seniorAge = 60
	}
	return client.AgeAt(date) >= seniorAge
}

// normalizeDate truncates a timestamp to its UTC calendar date.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
