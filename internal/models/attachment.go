package models

import "time"

// Attachment is a file owned by an appointment. Attachments are removed when
// their appointment is deleted.
type Attachment struct {
	ID            string    `db:"id" json:"id"`
	AppointmentID string    `db:"appointment_id" json:"appointment_id"`
	Filename      string    `db:"filename" json:"filename"`
	FileSizeBytes int64     `db:"file_size_bytes" json:"file_size_bytes"`
	StorageRef    string    `db:"storage_ref" json:"-"`
	UploadedAt    time.Time `db:"uploaded_at" json:"uploaded_at"`
}
