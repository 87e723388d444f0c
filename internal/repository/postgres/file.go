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

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{pool: config.Pool}
}

// ListByFolder lists a folder's files ordered by name
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID int64) ([]models.File, error) {
	query := `
		SELECT id, folder_id, name, relative_path, size, last_modified
		FROM client_folder_files
		WHERE folder_id = $1
		ORDER BY name
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.FolderID, &f.Name, &f.Path, &f.Size, &f.LastModified); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

// Create inserts a new file row
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO client_folder_files (folder_id, name, relative_path, size, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		file.FolderID,
		file.Name,
		file.Path,
		file.Size,
		file.LastModified,
	).Scan(&file.ID)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", file.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID scoped to a folder
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, folderID int64) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, relative_path, size, last_modified
		FROM client_folder_files
		WHERE id = $1 AND folder_id = $2
	`

	var f models.File
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, folderID).Scan(
		&f.ID,
		&f.FolderID,
		&f.Name,
		&f.Path,
		&f.Size,
		&f.LastModified,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &f, nil
}

// Get retrieves a file by ID alone
func (r *PostgresFileRepository) Get(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, folder_id, name, relative_path, size, last_modified
		FROM client_folder_files
		WHERE id = $1
	`

	var f models.File
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.FolderID,
		&f.Name,
		&f.Path,
		&f.Size,
		&f.LastModified,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &f, nil
}

// ExistsByName reports whether a file row with the name exists in the folder
func (r *PostgresFileRepository) ExistsByName(ctx context.Context, folderID int64, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client_folder_files WHERE folder_id = $1 AND name = $2)`

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check file name: %w", err)
	}

	return exists, nil
}

// Rename updates a file's name, path and last_modified timestamp
func (r *PostgresFileRepository) Rename(ctx context.Context, id int64, name, path string) error {
	query := `
		UPDATE client_folder_files
		SET name = $1, relative_path = $2, last_modified = $3
		WHERE id = $4
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, name, path, time.Now(), id)
	if err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a file row
func (r *PostgresFileRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM client_folder_files WHERE id = $1`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
