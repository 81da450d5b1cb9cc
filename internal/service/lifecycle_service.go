package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type lifecycleAppointmentRepo interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindDetailByID(ctx context.Context, id string) (*models.AppointmentDetail, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	UpdateDateWithCapacity(ctx context.Context, id string, newDate time.Time, capacity int) error
	Reassign(ctx context.Context, id, officerID string) error
	UpdateNotes(ctx context.Context, id string, notes *string) error
	Delete(ctx context.Context, id string) error
}

type attachmentLister interface {
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.Attachment, error)
}

type fileRemover interface {
	Delete(ref string) error
}

// LifecycleService drives appointment status transitions and mutations after
// admission.
type LifecycleService struct {
	appointments lifecycleAppointmentRepo
	personnel    officerResolver
	attachments  attachmentLister
	files        fileRemover
	notifier     appointmentNotifier
	engine       config.EngineConfig
	logger       *zap.Logger
}

// NewLifecycleService constructs the lifecycle service.
func NewLifecycleService(
	appointments lifecycleAppointmentRepo,
	personnel officerResolver,
	attachments attachmentLister,
	files fileRemover,
	notifier appointmentNotifier,
	engine config.EngineConfig,
	logger *zap.Logger,
) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		appointments: appointments,
		personnel:    personnel,
		attachments:  attachments,
		files:        files,
		notifier:     notifier,
		engine:       engine,
		logger:       logger,
	}
}

// List returns appointments and pagination metadata.
func (s *LifecycleService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, *models.Pagination, error) {
	appointments, total, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return appointments, pagination, nil
}

// Get returns detailed appointment information.
func (s *LifecycleService) Get(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	detail, err := s.appointments.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return detail, nil
}

// Confirm moves a pending appointment to Confirmed and notifies the client.
func (s *LifecycleService) Confirm(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "only pending appointments can be confirmed")
	}
	detail, err := s.transition(ctx, id, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.AppointmentConfirmed(detail)
	}
	return detail, nil
}

// Cancel moves a non-terminal appointment to Cancelled, releasing its slot,
// and notifies the client.
func (s *LifecycleService) Cancel(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "appointment is already closed")
	}
	detail, err := s.transition(ctx, id, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.AppointmentCancelled(detail)
	}
	return detail, nil
}

// Complete marks a pending or confirmed appointment as served. Completion is
// quiet; the client gives feedback in person.
func (s *LifecycleService) Complete(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending && appt.Status != models.StatusConfirmed {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "only pending or confirmed appointments can be completed")
	}
	return s.transition(ctx, id, models.StatusCompleted)
}

// Reassign changes the assigned officer on a non-terminal appointment. The
// new officer is checked against the inquiry's routing role under the
// configured policy.
func (s *LifecycleService) Reassign(ctx context.Context, id, officerID string) (*models.AppointmentDetail, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "appointment is already closed")
	}

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
	if officer.Position != detail.RoutingRole {
		if s.engine.RoleMatchPolicy == config.RoleMatchStrict {
			return nil, appErrors.ErrRoleMismatch
		}
		s.logger.Sugar().Warnw("officer role does not match inquiry routing",
			"officer_id", officer.ID, "position", officer.Position, "routing_role", detail.RoutingRole)
	}

	if err := s.appointments.Reassign(ctx, id, officerID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign appointment")
	}
	return s.Get(ctx, id)
}

// UpdateDate moves a non-terminal appointment to a new date. The target date
// must not be in the past and must still have a free slot; the appointment's
// own slot never counts against it.
func (s *LifecycleService) UpdateDate(ctx context.Context, id string, newDate time.Time) (*models.AppointmentDetail, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "appointment is already closed")
	}

	date := normalizeDate(newDate)
	if date.Before(normalizeDate(time.Now().UTC())) {
		return nil, appErrors.ErrInvalidDate
	}

	if err := s.appointments.UpdateDateWithCapacity(ctx, id, date, s.engine.DailyCapacity); err != nil {
		if errors.Is(err, repository.ErrDailyCapacityReached) {
			return nil, appErrors.ErrCapacityExceeded
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to move appointment")
	}
	return s.Get(ctx, id)
}

// UpdateNotes replaces the free-text notes on an appointment.
func (s *LifecycleService) UpdateNotes(ctx context.Context, id string, notes *string) (*models.AppointmentDetail, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if err := s.appointments.UpdateNotes(ctx, id, notes); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notes")
	}
	return s.Get(ctx, id)
}

// Delete removes an appointment together with its attachments and their
// stored files.
func (s *LifecycleService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	var refs []string
	if s.attachments != nil {
		attachments, err := s.attachments.ListByAppointment(ctx, id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attachments")
		}
		for _, att := range attachments {
			refs = append(refs, att.StorageRef)
		}
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete appointment")
	}

	// Files are removed after the rows commit; an orphaned file is preferable
	// to a dangling database reference.
	if s.files != nil {
		for _, ref := range refs {
			if err := s.files.Delete(ref); err != nil {
				s.logger.Sugar().Warnw("failed to remove attachment file", "ref", ref, "error", err)
			}
		}
	}
	return nil
}

func (s *LifecycleService) load(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return appt, nil
}

func (s *LifecycleService) transition(ctx context.Context, id string, status models.AppointmentStatus) (*models.AppointmentDetail, error) {
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update appointment status")
	}
	return s.Get(ctx, id)
}
