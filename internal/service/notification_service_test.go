package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/pkg/config"
)

type capturingSender struct {
	mu       sync.Mutex
	messages []string
	numbers  []string
	done     chan struct{}
}

func newCapturingSender(expected int) *capturingSender {
	return &capturingSender{done: make(chan struct{}, expected)}
}

func (s *capturingSender) Send(ctx context.Context, number, message string) error {
	s.mu.Lock()
	s.numbers = append(s.numbers, number)
	s.messages = append(s.messages, message)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *capturingSender) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func notificationDetail(status models.AppointmentStatus) *models.AppointmentDetail {
	return &models.AppointmentDetail{
		Appointment: models.Appointment{
			ID:              "appt-1",
			Status:          status,
			AppointmentDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		ClientName:    "Maria Santos",
		ClientContact: "09171234567",
		NatureName:    "Business Permit",
	}
}

func TestNotificationBookedPending(t *testing.T) {
	sender := newCapturingSender(1)
	svc := NewNotificationService(sender, config.NotificationsConfig{Enabled: true, Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentBooked(notificationDetail(models.StatusPending))
	sender.wait(t)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "09171234567", sender.numbers[0])
	assert.Contains(t, sender.messages[0], "Maria Santos")
	assert.Contains(t, sender.messages[0], "Business Permit")
	assert.Contains(t, sender.messages[0], "October 1, 2026")
	assert.Contains(t, sender.messages[0], "once it is confirmed")
}

func TestNotificationBookedPriority(t *testing.T) {
	sender := newCapturingSender(1)
	svc := NewNotificationService(sender, config.NotificationsConfig{Enabled: true, Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentBooked(notificationDetail(models.StatusConfirmed))
	sender.wait(t)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "priority appointment")
	assert.Contains(t, sender.messages[0], "is confirmed")
}

func TestNotificationCancelled(t *testing.T) {
	sender := newCapturingSender(1)
	svc := NewNotificationService(sender, config.NotificationsConfig{Enabled: true, Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentCancelled(notificationDetail(models.StatusCancelled))
	sender.wait(t)

	require.Len(t, sender.messages, 1)
	assert.True(t, strings.Contains(sender.messages[0], "has been cancelled"))
}

func TestNotificationDisabled(t *testing.T) {
	sender := newCapturingSender(1)
	svc := NewNotificationService(sender, config.NotificationsConfig{Enabled: false, Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.AppointmentConfirmed(notificationDetail(models.StatusConfirmed))

	select {
	case <-sender.done:
		t.Fatal("disabled service should not send")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotificationSkipsEmptyNumber(t *testing.T) {
	sender := newCapturingSender(1)
	svc := NewNotificationService(sender, config.NotificationsConfig{Enabled: true, Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	detail := notificationDetail(models.StatusConfirmed)
	detail.ClientContact = ""
	svc.AppointmentConfirmed(detail)

	select {
	case <-sender.done:
		t.Fatal("no message expected without a contact number")
	case <-time.After(100 * time.Millisecond):
	}
}
