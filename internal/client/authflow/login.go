// Package authflow implements the login and registration state
// machines: validate form input, call the API, persist the session.
// Both flows move Idle → Validating → Submitting → (Succeeded | Failed).
package authflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vitesse-hr/vitesse/internal/client/api"
	"github.com/vitesse-hr/vitesse/internal/client/roster"
	"github.com/vitesse-hr/vitesse/internal/client/session"
	"github.com/vitesse-hr/vitesse/internal/models"
)

// State is the position of a flow in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInvalidForm is returned when client-side validation rejects the
// form; no request is sent.
var ErrInvalidForm = errors.New("invalid form")

// Authenticator is the slice of the API gateway the flows need.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.AuthResponse, error)
	Register(ctx context.Context, firstName, lastName, email, password string) error
}

// LoginFlow holds the login form and drives authentication.
type LoginFlow struct {
	api   Authenticator
	store session.Store

	mu       sync.Mutex
	email    string
	password string
	state    State
	errMsg   string
	loggedIn bool
	isAdmin  bool
}

// NewLoginFlow constructs an idle login flow.
func NewLoginFlow(a Authenticator, store session.Store) *LoginFlow {
	return &LoginFlow{api: a, store: store}
}

// SetEmail updates the email form field.
func (f *LoginFlow) SetEmail(email string) {
	f.mu.Lock()
	f.email = email
	f.mu.Unlock()
}

// SetPassword updates the password form field.
func (f *LoginFlow) SetPassword(password string) {
	f.mu.Lock()
	f.password = password
	f.mu.Unlock()
}

// State returns the flow's current lifecycle position.
func (f *LoginFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorMessage returns the user-facing message of the last failure.
func (f *LoginFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// IsLoggedIn reports whether authentication has completed successfully.
func (f *LoginFlow) IsLoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

// IsAdmin reports the admin flag of the established session.
func (f *LoginFlow) IsAdmin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isAdmin
}

func (f *LoginFlow) fail(msg string) {
	f.mu.Lock()
	f.state = StateFailed
	f.errMsg = msg
	f.mu.Unlock()
}

// Login validates the form, authenticates, and persists the resulting
// session. Each error kind keeps its own user-facing message; the
// presentation layer may still collapse them.
func (f *LoginFlow) Login(ctx context.Context) error {
	f.mu.Lock()
	f.state = StateValidating
	f.errMsg = ""
	email, password := f.email, f.password
	f.mu.Unlock()

	switch {
	case email == "" || password == "":
		f.fail("please fill in both email and password")
		return ErrInvalidForm
	case !roster.IsValidEmail(email):
		f.fail("please enter a valid email address")
		return ErrInvalidForm
	}

	f.mu.Lock()
	f.state = StateSubmitting
	f.mu.Unlock()

	auth, err := f.api.Authenticate(ctx, email, password)
	if err != nil {
		f.fail(loginMessage(err))
		return err
	}

	if err := f.store.Save(auth.Token, auth.IsAdmin); err != nil {
		f.fail(fmt.Sprintf("unable to save session: %v", err))
		return err
	}

	f.mu.Lock()
	f.state = StateSucceeded
	f.loggedIn = true
	f.isAdmin = auth.IsAdmin
	f.mu.Unlock()
	return nil
}

// loginMessage maps an authentication error to its user-facing wording.
func loginMessage(err error) string {
	var decodeErr *api.DecodeError
	switch {
	case errors.Is(err, api.ErrLoginFailed):
		return "invalid email or password, please check your credentials and try again"
	case errors.Is(err, api.ErrNotAuthorized):
		return "you are not authorized to access this application"
	case errors.Is(err, api.ErrInvalidResponse), errors.As(err, &decodeErr):
		return "the server returned an unexpected response, please try again later"
	default:
		return fmt.Sprintf("an error occurred: %v", err)
	}
}
