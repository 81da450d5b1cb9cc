package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/storage"
)

type attachmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attachment, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.Attachment, error)
	Create(ctx context.Context, att *models.Attachment) error
	Delete(ctx context.Context, id string) error
}

type appointmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
}

// AttachmentService stores appointment files and issues signed download URLs.
type AttachmentService struct {
	repo         attachmentRepository
	appointments appointmentReader
	store        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	maxSizeBytes int64
	logger       *zap.Logger
}

// NewAttachmentService constructs the attachment service.
func NewAttachmentService(
	repo attachmentRepository,
	appointments appointmentReader,
	store *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	cfg config.AttachmentsConfig,
	logger *zap.Logger,
) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{
		repo:         repo,
		appointments: appointments,
		store:        store,
		signer:       signer,
		maxSizeBytes: cfg.MaxFileSizeBytes,
		logger:       logger,
	}
}

// List returns the attachments of an appointment.
func (s *AttachmentService) List(ctx context.Context, appointmentID string) ([]models.Attachment, error) {
	if _, err := s.loadAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}
	attachments, err := s.repo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attachments")
	}
	return attachments, nil
}

// Upload stores a file against an open appointment. Closed appointments no
// longer accept documents.
func (s *AttachmentService) Upload(ctx context.Context, appointmentID, filename string, size int64, r io.Reader) (*models.Attachment, error) {
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "closed appointments do not accept attachments")
	}
	if filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filename is required")
	}
	if s.maxSizeBytes > 0 && size > s.maxSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.maxSizeBytes))
	}

	ref := fmt.Sprintf("%s/%s%s", appointmentID, uuid.NewString(), filepath.Ext(filename))
	if _, err := s.store.SaveStream(ref, r); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	att := &models.Attachment{
		AppointmentID: appointmentID,
		Filename:      filepath.Base(filename),
		FileSizeBytes: size,
		StorageRef:    ref,
		UploadedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, att); err != nil {
		if cleanupErr := s.store.Delete(ref); cleanupErr != nil {
			s.logger.Sugar().Warnw("failed to remove orphaned attachment file", "ref", ref, "error", cleanupErr)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}
	return att, nil
}

// DownloadURL issues a short-lived signed token for fetching the attachment.
func (s *AttachmentService) DownloadURL(ctx context.Context, id string) (string, time.Time, error) {
	att, err := s.Get(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	token, expiresAt, err := s.signer.Generate(att.ID, att.StorageRef)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// OpenByToken validates a signed token and opens the underlying file.
func (s *AttachmentService) OpenByToken(ctx context.Context, token string) (*models.Attachment, *os.File, error) {
	id, ref, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	att, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if att.StorageRef != ref {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := s.store.Open(ref)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment")
	}
	return att, file, nil
}

// Get returns an attachment record.
func (s *AttachmentService) Get(ctx context.Context, id string) (*models.Attachment, error) {
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attachment")
	}
	return att, nil
}

// Delete removes an attachment record and its stored file.
func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	att, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attachment")
	}
	if err := s.store.Delete(att.StorageRef); err != nil {
		s.logger.Sugar().Warnw("failed to remove attachment file", "ref", att.StorageRef, "error", err)
	}
	return nil
}

func (s *AttachmentService) loadAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return appt, nil
}
