package models

import (
	"strings"
	"time"
)

// Personnel represents a staff member who can be assigned appointments.
type Personnel struct {
	ID           string      `db:"id" json:"id"`
	FirstName    string      `db:"first_name" json:"first_name"`
	MiddleName   *string     `db:"middle_name" json:"middle_name,omitempty"`
	LastName     string      `db:"last_name" json:"last_name"`
	Position     RoutingRole `db:"position" json:"position"`
	MobileNumber string      `db:"mobile_number" json:"mobile_number"`
	Active       bool        `db:"active" json:"active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// FullName composes the staff member's display name.
func (p Personnel) FullName() string {
	parts := []string{p.FirstName}
	if p.MiddleName != nil && *p.MiddleName != "" {
		parts = append(parts, *p.MiddleName)
	}
	parts = append(parts, p.LastName)
	return strings.Join(parts, " ")
}

// PersonnelFilter captures search parameters for listing personnel.
type PersonnelFilter struct {
	Search   string
	Position RoutingRole
	Active   *bool
	Page     int
	PageSize int
}
