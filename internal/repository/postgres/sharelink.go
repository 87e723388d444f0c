package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
)

// PostgresFolderLinkRepository implements the FolderLinkRepository interface
type PostgresFolderLinkRepository struct {
	pool *pgxpool.Pool
}

// NewFolderLinkRepository creates a new folder link repository
func NewFolderLinkRepository(config *RepositoryConfig) repositories.FolderLinkRepository {
	return &PostgresFolderLinkRepository{pool: config.Pool}
}

// Create inserts a new share link row
func (r *PostgresFolderLinkRepository) Create(ctx context.Context, link *models.FolderLink) error {
	query := `
		INSERT INTO folder_links (code, folder_id, client_id, expiry)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		link.Code,
		link.FolderID,
		link.ClientID,
		link.Expiry,
	).Scan(&link.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", link.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder link: %w", err)
	}

	return nil
}

// GetByCode retrieves a share link by its code
func (r *PostgresFolderLinkRepository) GetByCode(ctx context.Context, code string) (*models.FolderLink, error) {
	query := `
		SELECT code, folder_id, client_id, expiry, created_at
		FROM folder_links
		WHERE code = $1
	`

	var link models.FolderLink
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, code).Scan(
		&link.Code,
		&link.FolderID,
		&link.ClientID,
		&link.Expiry,
		&link.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("share link: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder link: %w", err)
	}

	return &link, nil
}

// Delete deletes a share link row. Absent codes are not an error so that two
// concurrent accesses to a just-expired link both succeed.
func (r *PostgresFolderLinkRepository) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM folder_links WHERE code = $1`

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, code); err != nil {
		return fmt.Errorf("delete folder link: %w", err)
	}

	return nil
}
