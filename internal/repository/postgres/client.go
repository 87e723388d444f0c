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

// PostgresClientRepository implements the ClientRepository interface
type PostgresClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new client repository
func NewClientRepository(config *RepositoryConfig) repositories.ClientRepository {
	return &PostgresClientRepository{pool: config.Pool}
}

const clientColumns = `id, first_name, last_name, email, group_name, mobile_number, city, is_active, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }, c *models.Client) error {
	return row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.GroupName,
		&c.MobileNumber,
		&c.City,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// List retrieves all clients, newest first
func (r *PostgresClientRepository) List(ctx context.Context) ([]models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY created_at DESC`, clientColumns)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

// Create inserts a new client row
func (r *PostgresClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, email, group_name, mobile_number, city)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		client.GroupName,
		client.MobileNumber,
		client.City,
	).Scan(&client.ID, &client.IsActive, &client.CreatedAt, &client.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("mobile number %q: %w", client.MobileNumber, domain.ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetActiveByID retrieves an active client by ID
func (r *PostgresClientRepository) GetActiveByID(ctx context.Context, id int64) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1 AND is_active = true`, clientColumns)

	var client models.Client
	if err := scanClient(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &client); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &client, nil
}

// Update updates a client row
func (r *PostgresClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, email = $3, group_name = $4,
		    mobile_number = $5, city = $6, is_active = $7, updated_at = $8
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		client.GroupName,
		client.MobileNumber,
		client.City,
		client.IsActive,
		time.Now(),
		client.ID,
	).Scan(&client.CreatedAt, &client.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("client %d: %w", client.ID, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return fmt.Errorf("mobile number %q: %w", client.MobileNumber, domain.ErrConflict)
		}
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

// Delete deletes a client row
func (r *PostgresClientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	return nil
}

// MobileNumberInUse reports whether another client already uses the mobile number
func (r *PostgresClientRepository) MobileNumberInUse(ctx context.Context, mobileNumber string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE mobile_number = $1 AND id != $2)`

	var inUse bool
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, mobileNumber, excludeID).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check mobile number: %w", err)
	}

	return inUse, nil
}
