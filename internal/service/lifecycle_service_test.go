package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type mockAttachmentLister struct {
	attachments map[string][]models.Attachment
}

func (m *mockAttachmentLister) ListByAppointment(ctx context.Context, appointmentID string) ([]models.Attachment, error) {
	return m.attachments[appointmentID], nil
}

type mockFileRemover struct {
	removed []string
}

func (m *mockFileRemover) Delete(ref string) error {
	m.removed = append(m.removed, ref)
	return nil
}

func lifecycleFixture(policy string) (*LifecycleService, *mockAppointmentRepo, *mockNotifier, *mockFileRemover) {
	appts := newMockAppointmentRepo()
	officer := models.Personnel{ID: "officer-1", Position: models.RoleAdministrativeOfficer, Active: true}
	examiner := models.Personnel{ID: "officer-2", Position: models.RoleExaminer, Active: true}
	inactive := models.Personnel{ID: "officer-3", Position: models.RoleAdministrativeOfficer, Active: false}
	personnel := &mockPersonnelRepo{
		byID: map[string]models.Personnel{"officer-1": officer, "officer-2": examiner, "officer-3": inactive},
	}
	attachments := &mockAttachmentLister{attachments: map[string][]models.Attachment{
		"appt-1": {{ID: "att-1", AppointmentID: "appt-1", StorageRef: "appt-1/file.pdf"}},
	}}
	files := &mockFileRemover{}
	notifier := &mockNotifier{}
	engine := config.EngineConfig{DailyCapacity: 10, RoleMatchPolicy: policy, SeniorAge: 60}
	svc := NewLifecycleService(appts, personnel, attachments, files, notifier, engine, nil)
	return svc, appts, notifier, files
}

func seedAppointment(appts *mockAppointmentRepo, status models.AppointmentStatus) {
	appts.put(models.Appointment{
		ID:                "appt-1",
		ClientID:          "client-1",
		InquiryNatureID:   "nature-1",
		AppointmentDate:   futureDate(3),
		Status:            status,
		AssignedOfficerID: "officer-1",
	})
}

func TestLifecycleConfirmPending(t *testing.T) {
	svc, appts, notifier, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	detail, err := svc.Confirm(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, detail.Status)
	assert.Equal(t, []string{"appt-1"}, notifier.confirmed)
}

func TestLifecycleConfirmAlreadyConfirmed(t *testing.T) {
	svc, appts, notifier, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusConfirmed)

	_, err := svc.Confirm(context.Background(), "appt-1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTransition))
	assert.Empty(t, notifier.confirmed)
}

func TestLifecycleCancelConfirmed(t *testing.T) {
	svc, appts, notifier, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusConfirmed)

	detail, err := svc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, detail.Status)
	assert.Equal(t, []string{"appt-1"}, notifier.cancelled)
}

func TestLifecycleCancelTerminal(t *testing.T) {
	svc, appts, notifier, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusCompleted)

	_, err := svc.Cancel(context.Background(), "appt-1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTransition))
	assert.Empty(t, notifier.cancelled)
}

func TestLifecycleCompleteFromPending(t *testing.T) {
	svc, appts, notifier, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	detail, err := svc.Complete(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, detail.Status)
	assert.Empty(t, notifier.confirmed)
	assert.Empty(t, notifier.cancelled)
}

func TestLifecycleCompleteFromCancelled(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusCancelled)

	_, err := svc.Complete(context.Background(), "appt-1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTransition))
}

func TestLifecycleReassignStrictMismatch(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchStrict)
	seedAppointment(appts, models.StatusPending)

	_, err := svc.Reassign(context.Background(), "appt-1", "officer-2")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrRoleMismatch))
}

func TestLifecycleReassignInactiveOfficer(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	_, err := svc.Reassign(context.Background(), "appt-1", "officer-3")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestLifecycleReassignAdvisoryMismatch(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	detail, err := svc.Reassign(context.Background(), "appt-1", "officer-2")
	require.NoError(t, err)
	assert.Equal(t, "officer-2", detail.AssignedOfficerID)
}

func TestLifecycleUpdateDateCapacityFull(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)
	appts.capacityFull = true

	_, err := svc.UpdateDate(context.Background(), "appt-1", futureDate(5))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCapacityExceeded))
}

func TestLifecycleUpdateDatePast(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	_, err := svc.UpdateDate(context.Background(), "appt-1", time.Now().UTC().AddDate(0, 0, -2))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidDate))
}

func TestLifecycleUpdateDateMoves(t *testing.T) {
	svc, appts, _, _ := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusConfirmed)

	target := futureDate(7)
	detail, err := svc.UpdateDate(context.Background(), "appt-1", target)
	require.NoError(t, err)
	assert.Equal(t, target.Format("2006-01-02"), detail.AppointmentDate.Format("2006-01-02"))
}

func TestLifecycleDeleteRemovesFiles(t *testing.T) {
	svc, appts, _, files := lifecycleFixture(config.RoleMatchAdvisory)
	seedAppointment(appts, models.StatusPending)

	err := svc.Delete(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"appt-1"}, appts.deleted)
	assert.Equal(t, []string{"appt-1/file.pdf"}, files.removed)
}

func TestLifecycleGetMissing(t *testing.T) {
	svc, _, _, _ := lifecycleFixture(config.RoleMatchAdvisory)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}
