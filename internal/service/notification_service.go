package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/pkg/config"
	"github.com/govdesk/front-office-api/pkg/jobs"
	"github.com/govdesk/front-office-api/pkg/sms"
)

const (
	jobTypeSMS = "sms"

	dateFormatHuman = "January 2, 2006"
)

type smsPayload struct {
	Number  string
	Message string
}

// NotificationService dispatches SMS notifications through a background
// worker pool. Sends are fire-and-forget: a failed or dropped message never
// affects the appointment operation that triggered it.
type NotificationService struct {
	queue   *jobs.Queue
	sender  sms.Sender
	enabled bool
	logger  *zap.Logger
}

// NewNotificationService constructs the notification service and its queue.
func NewNotificationService(sender sms.Sender, cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{sender: sender, enabled: cfg.Enabled && sender != nil, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(smsPayload)
	if !ok {
		s.logger.Sugar().Errorw("unexpected notification payload", "job_id", job.ID, "type", job.Type)
		return nil
	}
	return s.sender.Send(ctx, payload.Number, payload.Message)
}

// AppointmentBooked notifies the client that a proposal was received, with
// wording that differs for auto-confirmed priority bookings.
func (s *NotificationService) AppointmentBooked(detail *models.AppointmentDetail) {
	var message string
	if detail.Status == models.StatusConfirmed {
		message = fmt.Sprintf("Good day %s! Your priority appointment for %s on %s is confirmed. Please arrive 15 minutes early and bring a valid ID.",
			detail.ClientName, detail.NatureName, detail.AppointmentDate.Format(dateFormatHuman))
	} else {
		message = fmt.Sprintf("Good day %s! We received your appointment request for %s on %s. You will be notified once it is confirmed.",
			detail.ClientName, detail.NatureName, detail.AppointmentDate.Format(dateFormatHuman))
	}
	s.send(detail.ClientContact, message)
}

// AppointmentConfirmed notifies the client that staff confirmed the booking.
func (s *NotificationService) AppointmentConfirmed(detail *models.AppointmentDetail) {
	message := fmt.Sprintf("Good day %s! Your appointment for %s on %s has been confirmed. Please arrive 15 minutes early and bring a valid ID.",
		detail.ClientName, detail.NatureName, detail.AppointmentDate.Format(dateFormatHuman))
	s.send(detail.ClientContact, message)
}

// AppointmentCancelled notifies the client that the booking was cancelled.
func (s *NotificationService) AppointmentCancelled(detail *models.AppointmentDetail) {
	message := fmt.Sprintf("Good day %s. Your appointment for %s on %s has been cancelled. You may book a new schedule at your convenience.",
		detail.ClientName, detail.NatureName, detail.AppointmentDate.Format(dateFormatHuman))
	s.send(detail.ClientContact, message)
}

func (s *NotificationService) send(number, message string) {
	if !s.enabled {
		return
	}
	if number == "" {
		s.logger.Sugar().Warnw("skipping notification without contact number")
		return
	}
	job := jobs.Job{
		ID:       uuid.NewString(),
		Type:     jobTypeSMS,
		Payload:  smsPayload{Number: number, Message: message},
		Enqueued: time.Now().UTC(),
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Sugar().Warnw("failed to enqueue notification", "error", err)
	}
}
