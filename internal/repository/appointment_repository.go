package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/govdesk/front-office-api/internal/models"
)

// ErrDailyCapacityReached is returned by capacity-guarded writes when the
// requested date already holds the maximum number of bookings.
var ErrDailyCapacityReached = errors.New("daily appointment capacity reached")

const appointmentColumns = `id, client_id, inquiry_nature_id, appointment_date, status, assigned_officer_id, notes, feedback, translated_feedback, feedback_language, rating, sentiment_score, sentiment_label, created_at, updated_at`

const appointmentDetailColumns = `a.id, a.client_id, a.inquiry_nature_id, a.appointment_date, a.status, a.assigned_officer_id, a.notes, a.feedback, a.translated_feedback, a.feedback_language, a.rating, a.sentiment_score, a.sentiment_label, a.created_at, a.updated_at,
	TRIM(c.first_name || ' ' || c.last_name) AS client_name,
	c.contact_number AS client_contact,
	TRIM(p.first_name || ' ' || p.last_name) AS officer_name,
	p.position AS officer_position,
	n.nature AS nature_name,
	n.description AS nature_description,
	n.routing_role AS routing_role`

// AppointmentRepository provides database access for appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// FindByID returns an appointment by identifier.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1 LIMIT 1`, appointmentColumns)
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find appointment by id: %w", err)
	}
	return &appt, nil
}

// FindDetailByID returns an appointment with client, officer, and nature
// display fields resolved.
func (r *AppointmentRepository) FindDetailByID(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN personnel p ON p.id = a.assigned_officer_id
		JOIN inquiry_natures n ON n.id = a.inquiry_nature_id
		WHERE a.id = $1 LIMIT 1`, appointmentDetailColumns)
	var detail models.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find appointment detail: %w", err)
	}
	return &detail, nil
}

// List returns appointments matching the filter along with the total count.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	baseQuery := `FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN personnel p ON p.id = a.assigned_officer_id
		JOIN inquiry_natures n ON n.id = a.inquiry_nature_id
		WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", len(args)+1))
		args = append(args, filter.ClientID)
	}
	if filter.OfficerID != "" {
		conditions = append(conditions, fmt.Sprintf("a.assigned_officer_id = $%d", len(args)+1))
		args = append(args, filter.OfficerID)
	}
	if filter.NatureID != "" {
		conditions = append(conditions, fmt.Sprintf("a.inquiry_nature_id = $%d", len(args)+1))
		args = append(args, filter.NatureID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"appointment_date": "a.appointment_date",
		"status":           "a.status",
		"created_at":       "a.created_at",
		"updated_at":       "a.updated_at",
	}
	sortColumn, ok := allowedSorts[sortBy]
	if !ok {
		sortColumn = "a.appointment_date"
	}

	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", appointmentDetailColumns, baseQuery, sortColumn, sortOrder, pageSize, offset)

	var appointments []models.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	return appointments, total, nil
}

// CountOnDate returns the number of appointments booked on the given date.
// Every status counts against capacity, cancelled bookings included. When
// excludeID is non empty its row is ignored, which lets date moves recheck
// capacity without counting the appointment being moved.
func (r *AppointmentRepository) CountOnDate(ctx context.Context, date time.Time, excludeID string) (int, error) {
	const query = `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1 AND ($2 = '' OR id <> $2)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, date, excludeID); err != nil {
		return 0, fmt.Errorf("count appointments on date: %w", err)
	}
	return count, nil
}

// CreateWithCapacity inserts the appointment only if the date still has a free
// slot. The count and insert run in one transaction, serialized per date by an
// advisory lock so concurrent proposals cannot both observe a free slot.
func (r *AppointmentRepository) CreateWithCapacity(ctx context.Context, appt *models.Appointment, capacity int) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = now
	}
	appt.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create appointment tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockDate(ctx, tx, appt.AppointmentDate); err != nil {
		return err
	}

	const countQuery = `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`
	var count int
	if err := tx.GetContext(ctx, &count, countQuery, appt.AppointmentDate); err != nil {
		return fmt.Errorf("count appointments on date: %w", err)
	}
	if count >= capacity {
		return ErrDailyCapacityReached
	}

	const insertQuery = `INSERT INTO appointments (id, client_id, inquiry_nature_id, appointment_date, status, assigned_officer_id, notes, created_at, updated_at)
		VALUES (:id, :client_id, :inquiry_nature_id, :appointment_date, :status, :assigned_officer_id, :notes, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, appt); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create appointment tx: %w", err)
	}
	return nil
}

// UpdateStatus sets the appointment status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const query = `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// UpdateDateWithCapacity moves the appointment to a new date when that date
// still has a free slot. The appointment's own row never counts against the
// target date, so a same-date update always succeeds.
func (r *AppointmentRepository) UpdateDateWithCapacity(ctx context.Context, id string, newDate time.Time, capacity int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update date tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockDate(ctx, tx, newDate); err != nil {
		return err
	}

	const countQuery = `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1 AND id <> $2`
	var count int
	if err := tx.GetContext(ctx, &count, countQuery, newDate, id); err != nil {
		return fmt.Errorf("count appointments on date: %w", err)
	}
	if count >= capacity {
		return ErrDailyCapacityReached
	}

	const updateQuery = `UPDATE appointments SET appointment_date = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, id, newDate, time.Now().UTC()); err != nil {
		return fmt.Errorf("update appointment date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update date tx: %w", err)
	}
	return nil
}

// Reassign changes the assigned officer.
func (r *AppointmentRepository) Reassign(ctx context.Context, id, officerID string) error {
	const query = `UPDATE appointments SET assigned_officer_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, officerID, time.Now().UTC()); err != nil {
		return fmt.Errorf("reassign appointment: %w", err)
	}
	return nil
}

// UpdateNotes replaces the free-text notes.
func (r *AppointmentRepository) UpdateNotes(ctx context.Context, id string, notes *string) error {
	const query = `UPDATE appointments SET notes = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, notes, time.Now().UTC()); err != nil {
		return fmt.Errorf("update appointment notes: %w", err)
	}
	return nil
}

// FeedbackRecord carries the full analyzed feedback state written in one
// statement so a partially analyzed record can never be observed.
type FeedbackRecord struct {
	Feedback           string
	TranslatedFeedback string
	Language           string
	Rating             int
	SentimentScore     float64
	SentimentLabel     models.SentimentLabel
}

// SaveFeedback persists the analyzed feedback atomically. A repeated
// submission overwrites the previous record.
func (r *AppointmentRepository) SaveFeedback(ctx context.Context, id string, rec FeedbackRecord) error {
	const query = `UPDATE appointments SET feedback = $2, translated_feedback = $3, feedback_language = $4, rating = $5, sentiment_score = $6, sentiment_label = $7, updated_at = $8 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, rec.Feedback, rec.TranslatedFeedback, rec.Language, rec.Rating, rec.SentimentScore, rec.SentimentLabel, time.Now().UTC()); err != nil {
		return fmt.Errorf("save appointment feedback: %w", err)
	}
	return nil
}

// Delete removes the appointment and its attachment rows in one transaction.
// Stored attachment files are cleaned up by the caller.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete appointment tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE appointment_id = $1`, id); err != nil {
		return fmt.Errorf("delete appointment attachments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete appointment tx: %w", err)
	}
	return nil
}

// lockDate takes a transaction-scoped advisory lock keyed on the booking date
// so capacity checks for the same day are serialized across connections.
func lockDate(ctx context.Context, tx *sqlx.Tx, date time.Time) error {
	key := date.Format("2006-01-02")
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock booking date %s: %w", key, err)
	}
	return nil
}
