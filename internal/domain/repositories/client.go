package repositories

import (
	"context"

	"userfiles/internal/domain/models"
)

// ClientRepository defines data access operations for client records
type ClientRepository interface {
	// List retrieves all clients, newest first
	List(ctx context.Context) ([]models.Client, error)

	// Create inserts a new client row
	Create(ctx context.Context, client *models.Client) error

	// GetActiveByID retrieves an active client by ID
	GetActiveByID(ctx context.Context, id int64) (*models.Client, error)

	// Update updates a client row
	Update(ctx context.Context, client *models.Client) error

	// Delete deletes a client row
	Delete(ctx context.Context, id int64) error

	// MobileNumberInUse reports whether another client already uses the
	// mobile number. excludeID skips one client (0 to check all).
	MobileNumberInUse(ctx context.Context, mobileNumber string, excludeID int64) (bool, error)
}
