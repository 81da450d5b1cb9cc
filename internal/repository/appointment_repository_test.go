package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
)

func newAppointmentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAppointmentRepositoryCountOnDate(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE appointment_date = \$1 AND \(\$2 = '' OR id <> \$2\)`).
		WithArgs(date, "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountOnDate(context.Background(), date, "")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCreateWithCapacity(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("2026-10-01").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE appointment_date = \$1`).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	appt := &models.Appointment{
		ClientID:          "client-1",
		InquiryNatureID:   "nature-1",
		AppointmentDate:   date,
		Status:            models.StatusPending,
		AssignedOfficerID: "officer-1",
	}
	err := repo.CreateWithCapacity(context.Background(), appt, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCreateWithCapacityFull(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("2026-10-01").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectRollback()

	err := repo.CreateWithCapacity(context.Background(), &models.Appointment{AppointmentDate: date, Status: models.StatusPending}, 10)
	assert.ErrorIs(t, err, ErrDailyCapacityReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryUpdateDateWithCapacity(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	newDate := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("2026-10-02").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE appointment_date = \$1 AND id <> \$2`).
		WithArgs(newDate, "appt-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	mock.ExpectExec(`UPDATE appointments SET appointment_date = \$2`).
		WithArgs("appt-1", newDate, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateDateWithCapacity(context.Background(), "appt-1", newDate, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(`UPDATE appointments SET status = \$2`).
		WithArgs("appt-1", models.StatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "appt-1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositorySaveFeedback(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(`UPDATE appointments SET feedback = \$2, translated_feedback = \$3, feedback_language = \$4, rating = \$5, sentiment_score = \$6, sentiment_label = \$7`).
		WithArgs("appt-1", "Mabilis ang serbisyo", "The service was fast", "tl", 5, 0.74, models.SentimentPositive, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveFeedback(context.Background(), "appt-1", FeedbackRecord{
		Feedback:           "Mabilis ang serbisyo",
		TranslatedFeedback: "The service was fast",
		Language:           "tl",
		Rating:             5,
		SentimentScore:     0.74,
		SentimentLabel:     models.SentimentPositive,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM attachments WHERE appointment_id = \$1`).
		WithArgs("appt-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM appointments WHERE id = \$1`).
		WithArgs("appt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
