package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vitesse-hr/vitesse/internal/models"
	"github.com/vitesse-hr/vitesse/internal/repository"
)

// fakeUserRepo keeps users in a map keyed by email.
type fakeUserRepo struct {
	users map[string]models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) UserExists(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return user, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "")

	if err := svc.Register(context.Background(), "John", "Doe", "john@x.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user := repo.users["john@x.com"]
	if user.ID == "" {
		t.Error("expected an assigned user id")
	}
	if user.IsAdmin {
		t.Error("expected non-admin without a configured admin email")
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("secret")) != nil {
		t.Error("stored hash must verify against the password")
	}

	auth, err := svc.Authenticate(context.Background(), "john@x.com", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if auth.Token == "" {
		t.Error("expected a token")
	}
	if isAdmin, ok := svc.Validate(auth.Token); !ok || isAdmin {
		t.Errorf("unexpected token validation: admin=%v ok=%v", isAdmin, ok)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "")

	if err := svc.Register(context.Background(), "John", "Doe", "john@x.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := svc.Register(context.Background(), "Jane", "Doe", "john@x.com", "other")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_AdminEmailGrantsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "boss@x.com")

	if err := svc.Register(context.Background(), "Big", "Boss", "boss@x.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !repo.users["boss@x.com"].IsAdmin {
		t.Error("configured admin email must get the admin flag")
	}

	auth, err := svc.Authenticate(context.Background(), "boss@x.com", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !auth.IsAdmin {
		t.Error("auth response must carry the admin flag")
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "")
	if err := svc.Register(context.Background(), "John", "Doe", "john@x.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "john@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@x.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidate_UnknownToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "")
	if _, ok := svc.Validate("made-up"); ok {
		t.Error("unknown token must not validate")
	}
}
