package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/govdesk/front-office-api/internal/models"
)

// AttachmentRepository provides database access for appointment attachments.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// FindByID returns an attachment by identifier.
func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*models.Attachment, error) {
	const query = `SELECT id, appointment_id, filename, file_size_bytes, storage_ref, uploaded_at FROM attachments WHERE id = $1 LIMIT 1`
	var att models.Attachment
	if err := r.db.GetContext(ctx, &att, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find attachment by id: %w", err)
	}
	return &att, nil
}

// ListByAppointment returns all attachments owned by an appointment.
func (r *AttachmentRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.Attachment, error) {
	const query = `SELECT id, appointment_id, filename, file_size_bytes, storage_ref, uploaded_at FROM attachments WHERE appointment_id = $1 ORDER BY uploaded_at ASC`
	var attachments []models.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, appointmentID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

// Create inserts a new attachment record.
func (r *AttachmentRepository) Create(ctx context.Context, att *models.Attachment) error {
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	if att.UploadedAt.IsZero() {
		att.UploadedAt = time.Now().UTC()
	}

	const query = `INSERT INTO attachments (id, appointment_id, filename, file_size_bytes, storage_ref, uploaded_at) VALUES (:id, :appointment_id, :filename, :file_size_bytes, :storage_ref, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, att); err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// Delete removes an attachment record.
func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM attachments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
