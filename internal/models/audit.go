package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin              = "LOGIN"
	AuditActionLogout             = "LOGOUT"
	AuditActionAppointmentCreate  = "APPOINTMENT_CREATE"
	AuditActionAppointmentUpdate  = "APPOINTMENT_UPDATE"
	AuditActionAppointmentDelete  = "APPOINTMENT_DELETE"
	AuditActionNatureCreate       = "NATURE_CREATE"
	AuditActionNatureUpdate       = "NATURE_UPDATE"
	AuditActionPersonnelCreate    = "PERSONNEL_CREATE"
	AuditActionPersonnelUpdate    = "PERSONNEL_UPDATE"
	AuditActionClientCreate       = "CLIENT_CREATE"
	AuditActionClientUpdate       = "CLIENT_UPDATE"
	AuditActionFeedbackSubmit     = "FEEDBACK_SUBMIT"
	AuditActionAttachmentUpload   = "ATTACHMENT_UPLOAD"
	AuditActionAttachmentDownload = "ATTACHMENT_DOWNLOAD"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
