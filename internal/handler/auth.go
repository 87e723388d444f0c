package handler

import (
	"log/slog"
	"net/http"

	"userfiles/internal/config"
	"userfiles/internal/httputil"
	"userfiles/internal/service"
)

// AuthHandler handles registration, login and profile HTTP requests.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new user account
// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// Login verifies credentials and issues a bearer token
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := httputil.ParseJSON(w, r, &req, config.MaxJSONBodyBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Profile returns the caller's identity
// GET /api/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.authService.Profile(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
