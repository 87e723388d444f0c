package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{pool: config.Pool}
}

// ListByClient lists a client's folders, newest first
func (r *PostgresFolderRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Folder, error) {
	query := `
		SELECT id, client_id, folder_name, created_at, updated_at
		FROM client_folders
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.ClientID, &f.FolderName, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return folders, nil
}

// Create inserts a new folder row
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO client_folders (client_id, folder_name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.ClientID,
		folder.FolderName,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("client %d: %w", folder.ClientID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID scoped to a client
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, clientID int64) (*models.Folder, error) {
	query := `
		SELECT id, client_id, folder_name, created_at, updated_at
		FROM client_folders
		WHERE id = $1 AND client_id = $2
	`

	var f models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, clientID).Scan(
		&f.ID,
		&f.ClientID,
		&f.FolderName,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &f, nil
}

// Rename updates a folder's name and updated_at timestamp
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, clientID int64, folderName string) (*models.Folder, error) {
	query := `
		UPDATE client_folders
		SET folder_name = $1, updated_at = $2
		WHERE id = $3 AND client_id = $4
		RETURNING id, client_id, folder_name, created_at, updated_at
	`

	var f models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderName, time.Now(), id, clientID).Scan(
		&f.ID,
		&f.ClientID,
		&f.FolderName,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("rename folder: %w", err)
	}

	return &f, nil
}

// Delete deletes a folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, clientID int64) error {
	query := `DELETE FROM client_folders WHERE id = $1 AND client_id = $2`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, clientID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
