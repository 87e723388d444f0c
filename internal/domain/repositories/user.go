package repositories

import (
	"context"

	"userfiles/internal/domain/models"
)

// UserRepository defines data access operations for user accounts
type UserRepository interface {
	// Create inserts a new user row
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
