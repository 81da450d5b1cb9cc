package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/pkg/config"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type mockAppointmentRepo struct {
	appointments map[string]models.Appointment
	details      map[string]models.AppointmentDetail
	capacityFull bool
	feedback     map[string]repository.FeedbackRecord
	statusLog    []models.AppointmentStatus
	deleted      []string
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{
		appointments: make(map[string]models.Appointment),
		details:      make(map[string]models.AppointmentDetail),
		feedback:     make(map[string]repository.FeedbackRecord),
	}
}

func (m *mockAppointmentRepo) put(appt models.Appointment) {
	m.appointments[appt.ID] = appt
	m.details[appt.ID] = models.AppointmentDetail{
		Appointment:   appt,
		ClientName:    "Maria Santos",
		ClientContact: "09171234567",
		OfficerName:   "Jose Cruz",
		NatureName:    "Business Permit",
		RoutingRole:   models.RoleAdministrativeOfficer,
	}
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	out := make([]models.AppointmentDetail, 0, len(m.details))
	for _, d := range m.details {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	if appt, ok := m.appointments[id]; ok {
		return &appt, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAppointmentRepo) FindDetailByID(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	if detail, ok := m.details[id]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAppointmentRepo) CreateWithCapacity(ctx context.Context, appt *models.Appointment, capacity int) error {
	if m.capacityFull {
		return repository.ErrDailyCapacityReached
	}
	if appt.ID == "" {
		appt.ID = "generated"
	}
	m.put(*appt)
	return nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	appt := m.appointments[id]
	appt.Status = status
	m.put(appt)
	m.statusLog = append(m.statusLog, status)
	return nil
}

func (m *mockAppointmentRepo) UpdateDateWithCapacity(ctx context.Context, id string, newDate time.Time, capacity int) error {
	if m.capacityFull {
		return repository.ErrDailyCapacityReached
	}
	appt := m.appointments[id]
	appt.AppointmentDate = newDate
	m.put(appt)
	return nil
}

func (m *mockAppointmentRepo) Reassign(ctx context.Context, id, officerID string) error {
	appt := m.appointments[id]
	appt.AssignedOfficerID = officerID
	m.put(appt)
	return nil
}

func (m *mockAppointmentRepo) UpdateNotes(ctx context.Context, id string, notes *string) error {
	appt := m.appointments[id]
	appt.Notes = notes
	m.put(appt)
	return nil
}

func (m *mockAppointmentRepo) SaveFeedback(ctx context.Context, id string, rec repository.FeedbackRecord) error {
	m.feedback[id] = rec
	return nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id string) error {
	delete(m.appointments, id)
	delete(m.details, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockNatureRepo struct {
	natures map[string]models.InquiryNature
}

func (m *mockNatureRepo) FindByID(ctx context.Context, id string) (*models.InquiryNature, error) {
	if n, ok := m.natures[id]; ok {
		return &n, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockNatureRepo) FindByName(ctx context.Context, name string) (*models.InquiryNature, error) {
	for _, n := range m.natures {
		if n.Nature == name {
			nature := n
			return &nature, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockClientRepo struct {
	clients map[string]models.Client
}

func (m *mockClientRepo) FindByID(ctx context.Context, id string) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

type mockPersonnelRepo struct {
	byID       map[string]models.Personnel
	byPosition map[models.RoutingRole]models.Personnel
	anyActive  *models.Personnel
}

func (m *mockPersonnelRepo) FindByID(ctx context.Context, id string) (*models.Personnel, error) {
	if p, ok := m.byID[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonnelRepo) FindActiveByPosition(ctx context.Context, position models.RoutingRole) (*models.Personnel, error) {
	if p, ok := m.byPosition[position]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonnelRepo) FindAnyActive(ctx context.Context) (*models.Personnel, error) {
	if m.anyActive != nil {
		return m.anyActive, nil
	}
	return nil, sql.ErrNoRows
}

type mockNotifier struct {
	booked    []string
	confirmed []string
	cancelled []string
}

func (m *mockNotifier) AppointmentBooked(detail *models.AppointmentDetail) {
	m.booked = append(m.booked, detail.ID)
}

func (m *mockNotifier) AppointmentConfirmed(detail *models.AppointmentDetail) {
	m.confirmed = append(m.confirmed, detail.ID)
}

func (m *mockNotifier) AppointmentCancelled(detail *models.AppointmentDetail) {
	m.cancelled = append(m.cancelled, detail.ID)
}

func futureDate(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

func admissionFixture(policy string) (*AdmissionService, *mockAppointmentRepo, *mockNotifier) {
	appts := newMockAppointmentRepo()
	natures := &mockNatureRepo{natures: map[string]models.InquiryNature{
		"nature-1": {ID: "nature-1", Nature: "Business Permit", RoutingRole: models.RoleAdministrativeOfficer},
	}}
	clients := &mockClientRepo{clients: map[string]models.Client{
		"client-1": {ID: "client-1", FirstName: "Maria", LastName: "Santos", ContactNumber: "09171234567", Birthday: time.Now().UTC().AddDate(-30, 0, 0), Active: true},
		"client-2": {ID: "client-2", FirstName: "Pedro", LastName: "Reyes", ContactNumber: "09179876543", Birthday: time.Now().UTC().AddDate(-72, 0, 0), Active: true},
	}}
	officer := models.Personnel{ID: "officer-1", FirstName: "Jose", LastName: "Cruz", Position: models.RoleAdministrativeOfficer, Active: true}
	examiner := models.Personnel{ID: "officer-2", FirstName: "Ana", LastName: "Lim", Position: models.RoleExaminer, Active: true}
	personnel := &mockPersonnelRepo{
		byID:       map[string]models.Personnel{"officer-1": officer, "officer-2": examiner},
		byPosition: map[models.RoutingRole]models.Personnel{models.RoleAdministrativeOfficer: officer, models.RoleExaminer: examiner},
		anyActive:  &officer,
	}
	notifier := &mockNotifier{}
	engine := config.EngineConfig{DailyCapacity: 10, RoleMatchPolicy: policy, SeniorAge: 60}
	svc := NewAdmissionService(appts, natures, clients, personnel, notifier, engine, nil, nil)
	return svc, appts, notifier
}

func TestAdmissionProposePending(t *testing.T) {
	svc, _, notifier := admissionFixture(config.RoleMatchAdvisory)

	detail, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: futureDate(3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, detail.Status)
	assert.Equal(t, "officer-1", detail.AssignedOfficerID)
	assert.Len(t, notifier.booked, 1)
}

func TestAdmissionProposePriorityAutoConfirm(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchAdvisory)

	detail, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-2",
		NatureID:        "nature-1",
		AppointmentDate: futureDate(3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, detail.Status)
}

func TestAdmissionProposePastDate(t *testing.T) {
	svc, _, notifier := admissionFixture(config.RoleMatchAdvisory)

	_, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: time.Now().UTC().AddDate(0, 0, -1),
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidDate))
	assert.Empty(t, notifier.booked)
}

func TestAdmissionProposeSameDayAllowed(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchAdvisory)

	_, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestAdmissionProposeUnknownNature(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchAdvisory)

	_, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "missing",
		AppointmentDate: futureDate(3),
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnknownNature))
}

func TestAdmissionProposeCapacityFull(t *testing.T) {
	svc, appts, notifier := admissionFixture(config.RoleMatchAdvisory)
	appts.capacityFull = true

	_, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: futureDate(3),
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCapacityExceeded))
	assert.Empty(t, notifier.booked)
}

func TestAdmissionProposeRoleMismatchAdvisory(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchAdvisory)

	detail, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: futureDate(3),
		OfficerID:       "officer-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "officer-2", detail.AssignedOfficerID)
}

func TestAdmissionProposeRoleMismatchStrict(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchStrict)

	_, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		NatureID:        "nature-1",
		AppointmentDate: futureDate(3),
		OfficerID:       "officer-2",
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrRoleMismatch))
}

func TestAdmissionProposeNatureByName(t *testing.T) {
	svc, _, _ := admissionFixture(config.RoleMatchAdvisory)

	detail, err := svc.Propose(context.Background(), ProposeAppointmentRequest{
		ClientID:        "client-1",
		Nature:          "Business Permit",
		AppointmentDate: futureDate(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "nature-1", detail.InquiryNatureID)
}
