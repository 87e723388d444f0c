package repositories

import (
	"context"

	"userfiles/internal/domain/models"
)

// FileRepository defines data access operations for folder files
type FileRepository interface {
	// ListByFolder lists a folder's files ordered by name
	ListByFolder(ctx context.Context, folderID int64) ([]models.File, error)

	// Create inserts a new file row
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID scoped to a folder
	GetByID(ctx context.Context, id, folderID int64) (*models.File, error)

	// Get retrieves a file by ID alone
	Get(ctx context.Context, id int64) (*models.File, error)

	// ExistsByName reports whether a file row with the name exists in the folder
	ExistsByName(ctx context.Context, folderID int64, name string) (bool, error)

	// Rename updates a file's name, path and last_modified timestamp
	Rename(ctx context.Context, id int64, name, path string) error

	// Delete deletes a file row
	Delete(ctx context.Context, id int64) error
}
