package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govdesk/front-office-api/internal/models"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
)

type mockDetector struct {
	language string
	err      error
}

func (m *mockDetector) Detect(ctx context.Context, text string) (string, error) {
	return m.language, m.err
}

type mockTranslator struct {
	translated string
	err        error
	calls      int
}

func (m *mockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	m.calls++
	return m.translated, m.err
}

type mockScorer struct {
	score float64
	err   error
	texts []string
}

func (m *mockScorer) Score(ctx context.Context, text string) (float64, error) {
	m.texts = append(m.texts, text)
	return m.score, m.err
}

func feedbackFixture(status models.AppointmentStatus, detector *mockDetector, translator *mockTranslator, scorer *mockScorer) (*FeedbackService, *mockAppointmentRepo) {
	appts := newMockAppointmentRepo()
	appts.put(models.Appointment{ID: "appt-1", Status: status, AppointmentDate: futureDate(0)})
	svc := NewFeedbackService(appts, detector, translator, scorer, nil, nil)
	return svc, appts
}

func TestFeedbackSubmitNotCompleted(t *testing.T) {
	svc, _ := feedbackFixture(models.StatusConfirmed, &mockDetector{language: "en"}, &mockTranslator{}, &mockScorer{})

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "great", Rating: 5})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotCompletable))
}

func TestFeedbackSubmitInvalidRating(t *testing.T) {
	svc, _ := feedbackFixture(models.StatusCompleted, &mockDetector{language: "en"}, &mockTranslator{}, &mockScorer{})

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "great", Rating: 6})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidFeedback))

	_, err = svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "great", Rating: 0})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidFeedback))
}

func TestFeedbackSubmitBlankText(t *testing.T) {
	svc, _ := feedbackFixture(models.StatusCompleted, &mockDetector{language: "en"}, &mockTranslator{}, &mockScorer{})

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "   ", Rating: 3})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidFeedback))
}

func TestFeedbackSubmitEnglishSkipsTranslation(t *testing.T) {
	translator := &mockTranslator{}
	scorer := &mockScorer{score: 0.8}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{language: "en"}, translator, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "Fast and friendly service", Rating: 5})
	require.NoError(t, err)
	assert.Zero(t, translator.calls)

	rec := appts.feedback["appt-1"]
	assert.Equal(t, "en", rec.Language)
	assert.Equal(t, "Fast and friendly service", rec.TranslatedFeedback)
	assert.Equal(t, models.SentimentPositive, rec.SentimentLabel)
}

func TestFeedbackSubmitTagalogTranslated(t *testing.T) {
	translator := &mockTranslator{translated: "The service was fast"}
	scorer := &mockScorer{score: 0.6}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{language: "tl"}, translator, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "Mabilis ang serbisyo", Rating: 5})
	require.NoError(t, err)

	rec := appts.feedback["appt-1"]
	assert.Equal(t, "tl", rec.Language)
	assert.Equal(t, "The service was fast", rec.TranslatedFeedback)
	assert.Equal(t, "Mabilis ang serbisyo", rec.Feedback)
	assert.Equal(t, []string{"The service was fast"}, scorer.texts)
}

func TestFeedbackSubmitDetectionFailure(t *testing.T) {
	scorer := &mockScorer{score: 0.0}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{err: errors.New("detector down")}, &mockTranslator{}, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "ok lang", Rating: 3})
	require.NoError(t, err)

	rec := appts.feedback["appt-1"]
	assert.Equal(t, "unknown", rec.Language)
	assert.Equal(t, "ok lang", rec.TranslatedFeedback)
	assert.Equal(t, models.SentimentNeutral, rec.SentimentLabel)
}

func TestFeedbackSubmitTranslationFailure(t *testing.T) {
	translator := &mockTranslator{err: errors.New("translator down")}
	scorer := &mockScorer{score: -0.3}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{language: "tl"}, translator, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "Mabagal ang proseso", Rating: 2})
	require.NoError(t, err)

	rec := appts.feedback["appt-1"]
	assert.Equal(t, "unknown", rec.Language)
	assert.Equal(t, "Mabagal ang proseso", rec.TranslatedFeedback)
	assert.Equal(t, models.SentimentNegative, rec.SentimentLabel)
}

func TestFeedbackSubmitScorerFailure(t *testing.T) {
	scorer := &mockScorer{err: errors.New("scorer down")}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{language: "en"}, &mockTranslator{}, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "fine", Rating: 3})
	assert.Error(t, err)
	assert.Empty(t, appts.feedback)
}

func TestFeedbackSubmitOverwritesPrevious(t *testing.T) {
	scorer := &mockScorer{score: 0.9}
	svc, appts := feedbackFixture(models.StatusCompleted, &mockDetector{language: "en"}, &mockTranslator{}, scorer)

	_, err := svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "good", Rating: 4})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "appt-1", SubmitFeedbackRequest{Feedback: "excellent", Rating: 5})
	require.NoError(t, err)

	rec := appts.feedback["appt-1"]
	assert.Equal(t, "excellent", rec.Feedback)
	assert.Equal(t, 5, rec.Rating)
}

func TestLabelForScoreBounds(t *testing.T) {
	assert.Equal(t, models.SentimentPositive, models.LabelForScore(0.05))
	assert.Equal(t, models.SentimentNegative, models.LabelForScore(-0.05))
	assert.Equal(t, models.SentimentNeutral, models.LabelForScore(0.049))
	assert.Equal(t, models.SentimentNeutral, models.LabelForScore(-0.049))
	assert.Equal(t, models.SentimentNeutral, models.LabelForScore(0))
	assert.Equal(t, models.SentimentPositive, models.LabelForScore(1))
	assert.Equal(t, models.SentimentNegative, models.LabelForScore(-1))
}
