package models

import (
	"strings"
	"time"
)

// Client represents a registered member of the public who books appointments.
type Client struct {
	ID            string    `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	MiddleName    *string   `db:"middle_name" json:"middle_name,omitempty"`
	LastName      string    `db:"last_name" json:"last_name"`
	Email         string    `db:"email" json:"email"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Province      string    `db:"province" json:"province"`
	City          string    `db:"city" json:"city"`
	Barangay      string    `db:"barangay" json:"barangay"`
	Street        *string   `db:"street" json:"street,omitempty"`
	Birthday      time.Time `db:"birthday" json:"birthday"`
	IsPWD         bool      `db:"is_pwd" json:"is_pwd"`
	IsPregnant    bool      `db:"is_pregnant" json:"is_pregnant"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// FullName composes the display name including an optional middle name.
func (c Client) FullName() string {
	parts := []string{c.FirstName}
	if c.MiddleName != nil && *c.MiddleName != "" {
		parts = append(parts, *c.MiddleName)
	}
	parts = append(parts, c.LastName)
	return strings.Join(parts, " ")
}

// AgeAt returns the client's age in whole years at the given date.
func (c Client) AgeAt(at time.Time) int {
	age := at.Year() - c.Birthday.Year()
	if at.Month() < c.Birthday.Month() ||
		(at.Month() == c.Birthday.Month() && at.Day() < c.Birthday.Day()) {
		age--
	}
	return age
}

// FullAddress composes the address parts into a single line.
func (c Client) FullAddress() string {
	parts := make([]string, 0, 4)
	if c.Street != nil && *c.Street != "" {
		parts = append(parts, *c.Street)
	}
	parts = append(parts, c.Barangay, c.City, c.Province)
	return strings.Join(parts, ", ")
}

// ClientFilter captures search parameters for listing clients.
type ClientFilter struct {
	Search   string
	Active   *bool
	Priority *bool
	Page     int
	PageSize int
}
