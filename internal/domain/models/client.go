package models

import "time"

// Client is a managed contact record owned by the authenticated users,
// distinct from network clients. Each client owns a directory tree of
// folders under the storage root.
type Client struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        *string   `json:"email"`
	GroupName    *string   `json:"group_name"`
	MobileNumber string    `json:"mobile_number"`
	City         string    `json:"city"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
