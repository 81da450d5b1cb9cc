package models

import "time"

// AppointmentStatus enumerates the lifecycle states of an appointment. The
// literals must round-trip exactly against existing stored data.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
	// StatusRescheduled exists in stored data but no engine transition
	// produces it; rescheduling is modelled as cancel plus a new proposal.
	StatusRescheduled AppointmentStatus = "Rescheduled"
)

// Valid reports whether the status is a known enumeration value.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRescheduled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// SentimentLabel classifies the polarity of feedback text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// Classification thresholds for the compound sentiment score.
const (
	sentimentPositiveBound = 0.05
	sentimentNegativeBound = -0.05
)

// LabelForScore maps a compound score in [-1,1] onto a sentiment label.
// The bounds are inclusive: 0.05 is Positive, -0.05 is Negative.
func LabelForScore(score float64) SentimentLabel {
	switch {
	case score >= sentimentPositiveBound:
		return SentimentPositive
	case score <= sentimentNegativeBound:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Appointment is the central entity of the registry.
type Appointment struct {
	ID                 string            `db:"id" json:"id"`
	ClientID           string            `db:"client_id" json:"client_id"`
	InquiryNatureID    string            `db:"inquiry_nature_id" json:"inquiry_nature_id"`
	AppointmentDate    time.Time         `db:"appointment_date" json:"appointment_date"`
	Status             AppointmentStatus `db:"status" json:"status"`
	AssignedOfficerID  string            `db:"assigned_officer_id" json:"assigned_officer_id"`
	Notes              *string           `db:"notes" json:"notes,omitempty"`
	Feedback           *string           `db:"feedback" json:"feedback,omitempty"`
	TranslatedFeedback *string           `db:"translated_feedback" json:"translated_feedback,omitempty"`
	FeedbackLanguage   *string           `db:"feedback_language" json:"feedback_language,omitempty"`
	Rating             *int              `db:"rating" json:"rating,omitempty"`
	SentimentScore     *float64          `db:"sentiment_score" json:"sentiment_score,omitempty"`
	SentimentLabel     *SentimentLabel   `db:"sentiment_label" json:"sentiment_label,omitempty"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail contains an appointment with read-through display fields
// resolved from the client, officer, and inquiry nature.
type AppointmentDetail struct {
	Appointment
	ClientName        string      `db:"client_name" json:"client_name"`
	ClientContact     string      `db:"client_contact" json:"client_contact"`
	OfficerName       string      `db:"officer_name" json:"officer_name"`
	OfficerPosition   RoutingRole `db:"officer_position" json:"officer_position"`
	NatureName        string      `db:"nature_name" json:"nature_name"`
	NatureDescription string      `db:"nature_description" json:"nature_description"`
	RoutingRole       RoutingRole `db:"routing_role" json:"routing_role"`
}

// AppointmentFilter captures search parameters for listing appointments.
type AppointmentFilter struct {
	ClientID  string
	OfficerID string
	NatureID  string
	Status    AppointmentStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
