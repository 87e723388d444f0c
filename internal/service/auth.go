package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"userfiles/internal/auth"
	"userfiles/internal/domain"
	"userfiles/internal/domain/models"
	"userfiles/internal/domain/repositories"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRegex = regexp.MustCompile(`^\d{10}$`)
)

// passwordSpecials are the special characters accepted in passwords.
const passwordSpecials = "@$!%*?&"

// AuthService handles registration, login and profile lookups.
type AuthService struct {
	users     repositories.UserRepository
	txManager repositories.TransactionManager
	tokens    *auth.TokenIssuer
	logger    *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	txManager repositories.TransactionManager,
	tokens *auth.TokenIssuer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		txManager: txManager,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the account's display name.
type LoginResponse struct {
	Token    string `json:"token"`
	FullName string `json:"fullName"`
}

// ProfileResponse is the caller's identity.
type ProfileResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (r RegisterRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Email,
			validation.Required,
			validation.Match(emailRegex).Error("invalid email"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.By(validatePasswordStrength),
		),
	)
}

// validatePasswordStrength enforces at least 8 characters with lower, upper,
// digit and one of the accepted specials, drawn only from those classes.
func validatePasswordStrength(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return errors.New("must be at least 8 characters")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		default:
			return fmt.Errorf("contains disallowed character %q", c)
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return errors.New("must contain lower case, upper case, digit and special characters")
	}

	return nil
}

// Register validates the request, hashes the password and inserts the user.
// A duplicate email surfaces as a conflict-class error.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) error {
	if err := req.validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		FullName:     strings.ToLower(req.FirstName) + " " + strings.ToLower(req.LastName),
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.users.Create(txCtx, user)
	}); err != nil {
		return err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, FullName: user.FullName}, nil
}

// Profile returns the caller's identity.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{FullName: user.FullName, Email: user.Email}, nil
}
