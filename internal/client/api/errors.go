package api

import "errors"

// Sentinel errors for every failure kind the candidate API can produce.
// Callers classify with errors.Is and decide on user-facing wording.
var (
	// ErrNoToken is returned before any network call when no bearer
	// token is available for an authenticated endpoint.
	ErrNoToken = errors.New("no auth token found")

	// ErrLoginFailed covers any non-200 response from the auth endpoint.
	ErrLoginFailed = errors.New("login failed")

	// ErrRegistrationFailed covers any non-201 response from the
	// register endpoint.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrCandidateCreationFailed covers non-success responses from the
	// create endpoint.
	ErrCandidateCreationFailed = errors.New("candidate creation failed")

	// ErrCandidateUpdateFailed covers non-200 responses from the update
	// endpoint.
	ErrCandidateUpdateFailed = errors.New("candidate update failed")

	// ErrCandidateDeletionFailed covers non-200 responses from the
	// delete endpoint.
	ErrCandidateDeletionFailed = errors.New("candidate deletion failed")

	// ErrFavoriteToggleFailed covers non-200 responses from the
	// favorite endpoint.
	ErrFavoriteToggleFailed = errors.New("failed to toggle favorite status")

	// ErrNotAuthorized maps HTTP 401 on any authenticated call.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidResponse covers unexpected statuses where no more
	// specific kind applies.
	ErrInvalidResponse = errors.New("invalid server response")
)

// DecodeError marks a response body that could not be decoded into the
// expected shape. It is deliberately distinct from the status-based
// sentinels above so callers can tell a malformed body apart from a
// refused request.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "invalid response body: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
