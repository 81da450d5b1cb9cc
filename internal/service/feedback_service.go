package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/sentiment"
	"github.com/govdesk/front-office-api/pkg/translate"
)

// languageUnknown marks feedback whose language could not be established.
// Sentiment still runs against the original text in that case.
const languageUnknown = "unknown"

const languageEnglish = "en"

type feedbackAppointmentRepo interface {
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindDetailByID(ctx context.Context, id string) (*models.AppointmentDetail, error)
	SaveFeedback(ctx context.Context, id string, rec repository.FeedbackRecord) error
}

// SubmitFeedbackRequest holds payload for recording client feedback.
type SubmitFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

// FeedbackService records and analyzes client feedback on completed
// appointments.
type FeedbackService struct {
	appointments feedbackAppointmentRepo
	detector     translate.Detector
	translator   translate.Translator
	scorer       sentiment.Scorer
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(
	appointments feedbackAppointmentRepo,
	detector translate.Detector,
	translator translate.Translator,
	scorer sentiment.Scorer,
	validate *validator.Validate,
	logger *zap.Logger,
) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		appointments: appointments,
		detector:     detector,
		translator:   translator,
		scorer:       scorer,
		validator:    validate,
		logger:       logger,
	}
}

// Submit analyzes and records feedback for a completed appointment. The text
// is translated to English before sentiment scoring; when detection or
// translation fails the original text is scored and the language is recorded
// as unknown. A repeated submission replaces the previous record.
func (s *FeedbackService) Submit(ctx context.Context, appointmentID string, req SubmitFeedbackRequest) (*models.AppointmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidFeedback, "feedback text and a rating between 1 and 5 are required")
	}
	text := strings.TrimSpace(req.Feedback)
	if text == "" {
		return nil, appErrors.ErrInvalidFeedback
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	if appt.Status != models.StatusCompleted {
		return nil, appErrors.ErrNotCompletable
	}

	language, translated := s.translateToEnglish(ctx, text)

	score, err := s.scorer.Score(ctx, translated)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to analyze feedback sentiment")
	}
	label := models.LabelForScore(score)

	rec := repository.FeedbackRecord{
		Feedback:           text,
		TranslatedFeedback: translated,
		Language:           language,
		Rating:             req.Rating,
		SentimentScore:     score,
		SentimentLabel:     label,
	}
	if err := s.appointments.SaveFeedback(ctx, appointmentID, rec); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save feedback")
	}

	detail, err := s.appointments.FindDetailByID(ctx, appointmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return detail, nil
}

// translateToEnglish returns the detected language and the English text used
// for scoring. Failures degrade instead of rejecting the submission.
func (s *FeedbackService) translateToEnglish(ctx context.Context, text string) (string, string) {
	language, err := s.detector.Detect(ctx, text)
	if err != nil || language == "" {
		if err != nil {
			s.logger.Sugar().Warnw("language detection failed, scoring original text", "error", err)
		}
		return languageUnknown, text
	}
	if language == languageEnglish {
		return language, text
	}

	translated, err := s.translator.Translate(ctx, text, language, languageEnglish)
	if err != nil || translated == "" {
		if err != nil {
			s.logger.Sugar().Warnw("translation failed, scoring original text", "language", language, "error", err)
		}
		return languageUnknown, text
	}
	return language, translated
}
