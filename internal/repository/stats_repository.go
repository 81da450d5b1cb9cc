package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/govdesk/front-office-api/internal/models"
)

// StatsRepository provides aggregate queries for the dashboard and reports.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// StatusCounts returns appointment totals broken down by lifecycle status.
func (r *StatsRepository) StatusCounts(ctx context.Context) (*models.StatusCounts, error) {
	const query = `SELECT COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'Confirmed') AS confirmed,
		COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled,
		COUNT(*) FILTER (WHERE status = 'Completed') AS completed
		FROM appointments`
	var counts models.StatusCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	return &counts, nil
}

// DailyCounts returns per-date booking volume for the given range, counting
// only slots that consume capacity.
func (r *StatsRepository) DailyCounts(ctx context.Context, from, to time.Time) ([]models.DailyCount, error) {
	const query = `SELECT appointment_date, COUNT(*) AS count
		FROM appointments
		WHERE appointment_date BETWEEN $1 AND $2 AND status <> 'Cancelled'
		GROUP BY appointment_date
		ORDER BY appointment_date ASC`
	var counts []models.DailyCount
	if err := r.db.SelectContext(ctx, &counts, query, from, to); err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	return counts, nil
}

// DemographicCounts buckets appointments by the booking client's priority
// category at query time.
func (r *StatsRepository) DemographicCounts(ctx context.Context, seniorCutoff time.Time) (*models.DemographicCounts, error) {
	const query = `SELECT
		COUNT(*) FILTER (WHERE c.is_pwd) AS pwd,
		COUNT(*) FILTER (WHERE c.is_pregnant AND NOT c.is_pwd) AS pregnant,
		COUNT(*) FILTER (WHERE c.birthday <= $1 AND NOT c.is_pwd AND NOT c.is_pregnant) AS senior,
		COUNT(*) FILTER (WHERE NOT c.is_pwd AND NOT c.is_pregnant AND c.birthday > $1) AS regular
		FROM appointments a JOIN clients c ON c.id = a.client_id`
	var counts models.DemographicCounts
	if err := r.db.GetContext(ctx, &counts, query, seniorCutoff); err != nil {
		return nil, fmt.Errorf("demographic counts: %w", err)
	}
	return &counts, nil
}

// TopNatures returns the most requested inquiry natures.
func (r *StatsRepository) TopNatures(ctx context.Context, limit int) ([]models.NatureCount, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT n.id AS nature_id, n.nature AS nature_name, COUNT(a.id) AS count
		FROM appointments a JOIN inquiry_natures n ON n.id = a.inquiry_nature_id
		GROUP BY n.id, n.nature
		ORDER BY count DESC, n.nature ASC
		LIMIT $1`
	var counts []models.NatureCount
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("top natures: %w", err)
	}
	return counts, nil
}

// FeedbackSummary aggregates ratings and sentiment labels across appointments
// that have feedback recorded.
func (r *StatsRepository) FeedbackSummary(ctx context.Context) (*models.FeedbackSummary, error) {
	const query = `SELECT
		COALESCE(AVG(rating), 0) AS average_rating,
		COUNT(*) AS responses,
		COUNT(*) FILTER (WHERE sentiment_label = 'Positive') AS positive,
		COUNT(*) FILTER (WHERE sentiment_label = 'Neutral') AS neutral,
		COUNT(*) FILTER (WHERE sentiment_label = 'Negative') AS negative
		FROM appointments WHERE rating IS NOT NULL`
	var summary models.FeedbackSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("feedback summary: %w", err)
	}
	return &summary, nil
}

// ListForReport returns appointment detail rows inside a date range for CSV
// and PDF exports.
func (r *StatsRepository) ListForReport(ctx context.Context, from, to time.Time) ([]models.AppointmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN personnel p ON p.id = a.assigned_officer_id
		JOIN inquiry_natures n ON n.id = a.inquiry_nature_id
		WHERE a.appointment_date BETWEEN $1 AND $2
		ORDER BY a.appointment_date ASC, a.created_at ASC`, appointmentDetailColumns)
	var rows []models.AppointmentDetail
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("list appointments for report: %w", err)
	}
	return rows, nil
}
