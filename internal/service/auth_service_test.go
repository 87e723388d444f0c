package service

import (
	"context"
	"errors"
	"testing"

	"userfiles/internal/auth"
	"userfiles/internal/domain"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := auth.NewTokenIssuer("test-secret-key")
	return NewAuthService(users, fakeTxManager{}, tokens, testLogger()), users
}

func validRegistration() *RegisterRequest {
	return &RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newTestAuthService(t)

	if err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored := users.users["jane@example.com"]
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.FullName != "jane doe" {
		t.Errorf("FullName = %q, want %q", stored.FullName, "jane doe")
	}
	if stored.PasswordHash == "Passw0rd!" {
		t.Error("password was stored in the clear")
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("Login() returned an empty token")
	}
	if resp.FullName != "jane doe" {
		t.Errorf("Login() FullName = %q, want %q", resp.FullName, "jane doe")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }},
		{"missing last name", func(r *RegisterRequest) { r.LastName = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"email with spaces", func(r *RegisterRequest) { r.Email = "a b@example.com" }},
		{"short password", func(r *RegisterRequest) { r.Password = "Pw0!"; r.ConfirmPassword = "Pw0!" }},
		{"no upper case", func(r *RegisterRequest) { r.Password = "passw0rd!"; r.ConfirmPassword = "passw0rd!" }},
		{"no digit", func(r *RegisterRequest) { r.Password = "Password!"; r.ConfirmPassword = "Password!" }},
		{"no special", func(r *RegisterRequest) { r.Password = "Passw0rdd"; r.ConfirmPassword = "Passw0rdd" }},
		{"disallowed special", func(r *RegisterRequest) { r.Password = "Passw0rd#"; r.ConfirmPassword = "Passw0rd#" }},
		{"mismatched confirmation", func(r *RegisterRequest) { r.ConfirmPassword = "Different1!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(req)
			err := svc.Register(context.Background(), req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := svc.Register(context.Background(), validRegistration())
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Register() error = %v, want ErrConflict", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "Passw0rd!"})
	_, wrongErr := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "Wrong0rd!"})

	if !errors.Is(unknownErr, domain.ErrUnauthorized) {
		t.Errorf("unknown email error = %v, want ErrUnauthorized", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestProfile(t *testing.T) {
	svc, users := newTestAuthService(t)

	if err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	id := users.users["jane@example.com"].ID

	profile, err := svc.Profile(context.Background(), id)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.FullName != "jane doe" || profile.Email != "jane@example.com" {
		t.Errorf("Profile() = %+v, want jane doe / jane@example.com", profile)
	}

	if _, err := svc.Profile(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Profile(unknown) error = %v, want ErrNotFound", err)
	}
}
