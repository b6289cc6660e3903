// Package http provides the HTTP handlers and routing for the
// candidate service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitesse-hr/vitesse/internal/models"
	"github.com/vitesse-hr/vitesse/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account.
	Register(ctx context.Context, firstName, lastName, email, password string) error
	// Authenticate verifies credentials and issues a bearer token.
	Authenticate(ctx context.Context, email, password string) (models.AuthResponse, error)
}

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthRequest represents the JSON payload for authentication.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /user/register.
// It expects a JSON body with all four fields non-empty and responds
// with 201 on success, 409 for an already-registered email.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.AuthService.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if errors.Is(err, service.ErrUserExists) {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Authenticate handles POST /user/auth.
// On valid credentials it responds 200 with {token, isAdmin}; any
// credential failure is 401.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	auth, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(auth)
}
