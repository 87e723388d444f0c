package repositories

import (
	"context"

	"userfiles/internal/domain/models"
)

// FolderLinkRepository defines data access operations for share links
type FolderLinkRepository interface {
	// Create inserts a new share link row
	Create(ctx context.Context, link *models.FolderLink) error

	// GetByCode retrieves a share link by its code
	GetByCode(ctx context.Context, code string) (*models.FolderLink, error)

	// Delete deletes a share link row. Deleting an absent code is not an
	// error; concurrent lazy expiry makes that a normal outcome.
	Delete(ctx context.Context, code string) error
}
