package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
)

func TestNatureRepositoryFindByName(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewNatureRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nature", "routing_role", "description", "created_at", "updated_at"}).
		AddRow("nature-1", "Business Permit", "AdministrativeOfficer", "Permit applications and renewals", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT id, nature, routing_role, description, created_at, updated_at FROM inquiry_natures WHERE LOWER\(nature\) = LOWER\(\$1\)`).
		WithArgs("business permit").
		WillReturnRows(rows)

	nature, err := repo.FindByName(context.Background(), "  business permit ")
	require.NoError(t, err)
	assert.Equal(t, "Business Permit", nature.Nature)
	assert.Equal(t, models.RoleAdministrativeOfficer, nature.RoutingRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNatureRepositoryFindByNameMissing(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewNatureRepository(db)

	mock.ExpectQuery(`FROM inquiry_natures`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByName(context.Background(), "unknown")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNatureRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewNatureRepository(db)

	mock.ExpectExec("INSERT INTO inquiry_natures").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	nature := &models.InquiryNature{Nature: "Civil Registry", RoutingRole: models.RoleExaminer, Description: "Certificates and records"}
	err := repo.Create(context.Background(), nature)
	require.NoError(t, err)
	assert.NotEmpty(t, nature.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNatureRepositoryReferenced(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewNatureRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("nature-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	referenced, err := repo.Referenced(context.Background(), "nature-1")
	require.NoError(t, err)
	assert.True(t, referenced)
	assert.NoError(t, mock.ExpectationsWereMet())
}
