package models

import "time"

// InquiryNature is reference data mapping an inquiry reason to the staff role
// that handles it. Natures referenced by appointments are never deleted.
type InquiryNature struct {
	ID          string      `db:"id" json:"id"`
	Nature      string      `db:"nature" json:"nature"`
	RoutingRole RoutingRole `db:"routing_role" json:"routing_role"`
	Description string      `db:"description" json:"description"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// NatureFilter captures search parameters for listing inquiry natures.
type NatureFilter struct {
	Search      string
	RoutingRole RoutingRole
	Page        int
	PageSize    int
}
