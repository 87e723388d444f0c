package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
)

// ClientService handles client record CRUD.
type ClientService struct {
	clients   repositories.ClientRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewClientService creates a new client service
func NewClientService(
	clients repositories.ClientRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *ClientService {
	return &ClientService{
		clients:   clients,
		txManager: txManager,
		logger:    logger,
	}
}

// ClientRequest is the payload for creating or updating a client record.
type ClientRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        *string `json:"email"`
	GroupName    *string `json:"groupName"`
	MobileNumber string  `json:"mobileNumber"`
	City         string  `json:"city"`
	IsActive     *bool   `json:"is_active"`
}

func (r ClientRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.MobileNumber,
			validation.Required,
			validation.Match(mobileRegex).Error("invalid mobile number format"),
		),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.Email,
			validation.When(r.Email != nil && *r.Email != "",
				validation.Match(emailRegex).Error("invalid email format"),
			),
		),
	)
}

// normalizedEmail treats an empty email as absent.
func (r ClientRequest) normalizedEmail() *string {
	if r.Email == nil || *r.Email == "" {
		return nil
	}
	return r.Email
}

func (r ClientRequest) normalizedGroupName() *string {
	if r.GroupName == nil || *r.GroupName == "" {
		return nil
	}
	return r.GroupName
}

// List retrieves all clients, newest first.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx)
}

// Create validates the request, checks mobile number uniqueness and inserts
// the client.
func (s *ClientService) Create(ctx context.Context, req *ClientRequest) (*models.Client, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	inUse, err := s.clients.MobileNumberInUse(ctx, req.MobileNumber, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, &domain.ConflictError{
			Message:      "mobile number already in use",
			ResourceType: "client",
		}
	}

	client := &models.Client{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.normalizedEmail(),
		GroupName:    req.normalizedGroupName(),
		MobileNumber: req.MobileNumber,
		City:         req.City,
	}

	if err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.clients.Create(txCtx, client)
	}); err != nil {
		return nil, err
	}

	s.logger.Info("client created", "client_id", client.ID)
	return client, nil
}

// Get retrieves an active client by ID.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	return s.clients.GetActiveByID(ctx, id)
}

// Update validates the request, checks mobile number uniqueness against other
// clients and updates the row. IsActive defaults to true when omitted.
func (s *ClientService) Update(ctx context.Context, id int64, req *ClientRequest) (*models.Client, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	inUse, err := s.clients.MobileNumberInUse(ctx, req.MobileNumber, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, &domain.ConflictError{
			Message:      "mobile number already in use",
			ResourceType: "client",
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	client := &models.Client{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.normalizedEmail(),
		GroupName:    req.normalizedGroupName(),
		MobileNumber: req.MobileNumber,
		City:         req.City,
		IsActive:     isActive,
	}

	if err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.clients.Update(txCtx, client)
	}); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes a client row. Deleting an absent client succeeds, matching
// the historical API behavior.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.clients.Delete(txCtx, id)
	})
}
