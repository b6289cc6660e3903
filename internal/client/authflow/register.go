package authflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vitesse-hr/vitesse/internal/client/api"
	"github.com/vitesse-hr/vitesse/internal/client/roster"
	"github.com/vitesse-hr/vitesse/internal/client/session"
)

// RegisterFlow holds the registration form and drives account creation
// followed by an automatic login with the same credentials.
type RegisterFlow struct {
	api   Authenticator
	store session.Store

	mu              sync.Mutex
	firstName       string
	lastName        string
	email           string
	password        string
	confirmPassword string
	state           State
	errMsg          string
	registered      bool
	loggedIn        bool
}

// NewRegisterFlow constructs an idle registration flow.
func NewRegisterFlow(a Authenticator, store session.Store) *RegisterFlow {
	return &RegisterFlow{api: a, store: store}
}

// SetFirstName updates the first-name form field.
func (f *RegisterFlow) SetFirstName(s string) {
	f.mu.Lock()
	f.firstName = s
	f.mu.Unlock()
}

// SetLastName updates the last-name form field.
func (f *RegisterFlow) SetLastName(s string) {
	f.mu.Lock()
	f.lastName = s
	f.mu.Unlock()
}

// SetEmail updates the email form field.
func (f *RegisterFlow) SetEmail(s string) {
	f.mu.Lock()
	f.email = s
	f.mu.Unlock()
}

// SetPassword updates the password form field.
func (f *RegisterFlow) SetPassword(s string) {
	f.mu.Lock()
	f.password = s
	f.mu.Unlock()
}

// SetConfirmPassword updates the password-confirmation form field.
func (f *RegisterFlow) SetConfirmPassword(s string) {
	f.mu.Lock()
	f.confirmPassword = s
	f.mu.Unlock()
}

// State returns the flow's current lifecycle position.
func (f *RegisterFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorMessage returns the user-facing message of the last failure.
func (f *RegisterFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// IsRegistered reports whether the account was created. It is
// independent of whether the automatic login afterwards succeeded.
func (f *RegisterFlow) IsRegistered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

// IsLoggedIn reports whether the automatic post-registration login
// established a session.
func (f *RegisterFlow) IsLoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *RegisterFlow) fail(msg string) {
	f.mu.Lock()
	f.state = StateFailed
	f.errMsg = msg
	f.mu.Unlock()
}

// Register validates the form, creates the account, and then logs in
// with the same credentials, persisting the session on success. A
// failed auto-login leaves the flow registered but logged out, with the
// login failure surfaced distinctly.
func (f *RegisterFlow) Register(ctx context.Context) error {
	f.mu.Lock()
	f.state = StateValidating
	f.errMsg = ""
	firstName, lastName := f.firstName, f.lastName
	email, password, confirm := f.email, f.password, f.confirmPassword
	f.mu.Unlock()

	switch {
	case firstName == "" || lastName == "" || email == "" || password == "" || confirm == "":
		f.fail("please fill in all fields")
		return ErrInvalidForm
	case !roster.IsValidEmail(email):
		f.fail("please enter a valid email address")
		return ErrInvalidForm
	case password != confirm:
		f.fail("passwords do not match")
		return ErrInvalidForm
	}

	f.mu.Lock()
	f.state = StateSubmitting
	f.mu.Unlock()

	if err := f.api.Register(ctx, firstName, lastName, email, password); err != nil {
		f.fail(registerMessage(err))
		return err
	}

	f.mu.Lock()
	f.registered = true
	f.mu.Unlock()

	// Log in automatically with the freshly registered credentials.
	auth, err := f.api.Authenticate(ctx, email, password)
	if err != nil {
		f.mu.Lock()
		f.state = StateSucceeded
		f.errMsg = "registered, but automatic login failed: " + loginMessage(err)
		f.mu.Unlock()
		return fmt.Errorf("auto login: %w", err)
	}

	if err := f.store.Save(auth.Token, auth.IsAdmin); err != nil {
		f.mu.Lock()
		f.state = StateSucceeded
		f.errMsg = fmt.Sprintf("registered, but unable to save session: %v", err)
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.state = StateSucceeded
	f.loggedIn = true
	f.mu.Unlock()
	return nil
}

// registerMessage maps a registration error to its user-facing wording.
func registerMessage(err error) string {
	var decodeErr *api.DecodeError
	switch {
	case errors.Is(err, api.ErrRegistrationFailed):
		return "registration failed, this email may already be registered"
	case errors.Is(err, api.ErrInvalidResponse), errors.As(err, &decodeErr):
		return "the server returned an unexpected response, please try again later"
	default:
		return fmt.Sprintf("an error occurred: %v", err)
	}
}
