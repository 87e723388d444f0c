package repositories

import (
	"context"

	"userfiles/internal/domain/models"
)

// FolderRepository defines data access operations for client folders
type FolderRepository interface {
	// ListByClient lists a client's folders, newest first
	ListByClient(ctx context.Context, clientID int64) ([]models.Folder, error)

	// Create inserts a new folder row
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID scoped to a client
	GetByID(ctx context.Context, id, clientID int64) (*models.Folder, error)

	// Rename updates a folder's name and updated_at timestamp
	Rename(ctx context.Context, id, clientID int64, folderName string) (*models.Folder, error)

	// Delete deletes a folder row
	Delete(ctx context.Context, id, clientID int64) error
}
