// Package service provides the business logic of the candidate server,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitesse-hr/vitesse/internal/models"
	"github.com/vitesse-hr/vitesse/internal/repository"
)

var (
	// ErrUserExists is returned when registering an email that is
	// already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when email or password do not
	// match a registered account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// UserExists returns true if an account with the given email exists.
	UserExists(ctx context.Context, email string) (bool, error)
	// CreateUser creates a new account record.
	CreateUser(ctx context.Context, user models.User) error
	// UserByEmail loads the account for the given email.
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

// AuthService registers accounts, verifies credentials, and issues
// bearer tokens. Tokens live in memory for the server's lifetime, which
// is all the development server needs.
type AuthService struct {
	repo UserRepository

	// adminEmail, when non-empty, grants the matching account admin
	// rights at registration time.
	adminEmail string

	mu     sync.Mutex
	tokens map[string]models.User
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo UserRepository, adminEmail string) *AuthService {
	return &AuthService{
		repo:       repo,
		adminEmail: adminEmail,
		tokens:     make(map[string]models.User),
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) error {
	exists, err := s.repo.UserExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      s.adminEmail != "" && email == s.adminEmail,
	})
}

// Authenticate verifies the credentials and issues a fresh bearer token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.AuthResponse, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = user
	s.mu.Unlock()

	return models.AuthResponse{Token: token, IsAdmin: user.IsAdmin}, nil
}

// Validate resolves a bearer token to its session. ok is false for
// unknown tokens.
func (s *AuthService) Validate(token string) (isAdmin bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.tokens[token]
	return user.IsAdmin, ok
}
