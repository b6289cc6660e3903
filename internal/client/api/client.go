// Package api implements the HTTP gateway to the candidate service.
// It translates typed operations into requests against a single base
// URL, attaches bearer tokens, and maps statuses to typed errors.
// The gateway holds no roster state; reconciliation is the caller's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vitesse-hr/vitesse/internal/models"
)

// TokenSource supplies the bearer token for authenticated requests.
// The second return value reports whether a token is available at all.
type TokenSource interface {
	Token() (string, bool)
}

// Client issues requests to the candidate API. Construct it once and
// inject it wherever the API is needed.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to install
// a fake transport in tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger enables request logging on the given logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New constructs a Client for the given base URL. tokens may be nil for
// clients that only ever call the unauthenticated endpoints.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do builds and sends one request. A non-nil body is JSON-encoded.
// When withAuth is set, the bearer token is attached; a missing token
// fails with ErrNoToken before any network I/O.
func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		token, ok := c.tokens.Token()
		if !ok {
			return nil, ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// decode reads the body into v, wrapping failures in *DecodeError.
func decode(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// Authenticate exchanges credentials for a bearer token and admin flag.
// Only exactly HTTP 200 with a decodable body succeeds.
func (c *Client) Authenticate(ctx context.Context, email, password string) (models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/user/auth", body, false)
	if err != nil {
		return models.AuthResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AuthResponse{}, ErrLoginFailed
	}
	var auth models.AuthResponse
	if err := decode(resp, &auth); err != nil {
		return models.AuthResponse{}, err
	}
	return auth, nil
}

// Register creates a new account. Only exactly HTTP 201 succeeds; the
// response body, if any, is discarded.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) error {
	body := map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}
	resp, err := c.do(ctx, http.MethodPost, "/user/register", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return ErrRegistrationFailed
	}
	return nil
}

// ListCandidates fetches the full roster.
func (c *Client) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	resp, err := c.do(ctx, http.MethodGet, "/candidate", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrNotAuthorized
	case resp.StatusCode != http.StatusOK:
		return nil, ErrInvalidResponse
	}
	var candidates []models.Candidate
	if err := decode(resp, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetCandidate fetches a single candidate by id.
func (c *Client) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	resp, err := c.do(ctx, http.MethodGet, "/candidate/"+id, nil, true)
	if err != nil {
		return models.Candidate{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.Candidate{}, ErrNotAuthorized
	case resp.StatusCode != http.StatusOK:
		return models.Candidate{}, ErrInvalidResponse
	}
	var candidate models.Candidate
	if err := decode(resp, &candidate); err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

// CreateCandidate creates a candidate and returns the server's canonical
// record with its assigned id. Unset optional fields are omitted from
// the request body entirely. 200 and 201 both count as success.
func (c *Client) CreateCandidate(ctx context.Context, req models.CandidateRequest) (models.Candidate, error) {
	resp, err := c.do(ctx, http.MethodPost, "/candidate", req, true)
	if err != nil {
		return models.Candidate{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.Candidate{}, ErrNotAuthorized
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return models.Candidate{}, ErrCandidateCreationFailed
	}
	var candidate models.Candidate
	if err := decode(resp, &candidate); err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

// UpdateCandidate replaces the candidate record with the given fields
// and returns the server's authoritative result. Full replacement:
// required fields are always resent, unset optional fields are omitted.
func (c *Client) UpdateCandidate(ctx context.Context, id string, req models.CandidateRequest) (models.Candidate, error) {
	resp, err := c.do(ctx, http.MethodPut, "/candidate/"+id, req, true)
	if err != nil {
		return models.Candidate{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.Candidate{}, ErrNotAuthorized
	case resp.StatusCode != http.StatusOK:
		return models.Candidate{}, ErrCandidateUpdateFailed
	}
	var candidate models.Candidate
	if err := decode(resp, &candidate); err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

// DeleteCandidate removes a candidate. Only exactly HTTP 200 succeeds.
func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/candidate/"+id, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrNotAuthorized
	case resp.StatusCode != http.StatusOK:
		return ErrCandidateDeletionFailed
	}
	return nil
}

// ToggleFavorite asks the server to flip the candidate's favorite flag
// and returns the new authoritative record. The client never guesses
// the resulting value.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (models.Candidate, error) {
	resp, err := c.do(ctx, http.MethodPost, "/candidate/"+id+"/favorite", nil, true)
	if err != nil {
		return models.Candidate{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.Candidate{}, ErrNotAuthorized
	case resp.StatusCode != http.StatusOK:
		return models.Candidate{}, ErrFavoriteToggleFailed
	}
	var candidate models.Candidate
	if err := decode(resp, &candidate); err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}
