package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/vitesse-hr/vitesse/internal/models"
)

// roundTripperFunc lets tests fake the transport without a server.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripperFunc) *http.Client {
	return &http.Client{Transport: fn, Timeout: time.Second}
}

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestAuthenticate_Success(t *testing.T) {
	var gotBody map[string]string
	client := New("http://example.com", nil, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/user/auth" {
			t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return respond(200, `{"token":"tok-123","isAdmin":true}`), nil
	})))

	auth, err := client.Authenticate(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Token != "tok-123" || !auth.IsAdmin {
		t.Errorf("unexpected auth response: %+v", auth)
	}
	if gotBody["email"] != "a@b.com" || gotBody["password"] != "pw" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
}

func TestAuthenticate_StatusMapping(t *testing.T) {
	for _, status := range []int{401, 403, 500} {
		client := New("http://example.com", nil, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(status, ""), nil
		})))
		_, err := client.Authenticate(context.Background(), "a@b.com", "pw")
		if !errors.Is(err, ErrLoginFailed) {
			t.Errorf("status %d: expected ErrLoginFailed, got %v", status, err)
		}
	}
}

func TestAuthenticate_DecodeError(t *testing.T) {
	client := New("http://example.com", nil, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		return respond(200, "not-json"), nil
	})))
	_, err := client.Authenticate(context.Background(), "a@b.com", "pw")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected DecodeError, got %v", err)
	}
	if errors.Is(err, ErrLoginFailed) {
		t.Error("decode failure must stay distinct from ErrLoginFailed")
	}
}

func TestAuthenticate_NetworkError(t *testing.T) {
	client := New("http://example.com", nil, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("network down")
	})))
	_, err := client.Authenticate(context.Background(), "a@b.com", "pw")
	if err == nil || !strings.Contains(err.Error(), "network down") {
		t.Errorf("expected network failure, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "created", status: 201, wantErr: nil},
		{name: "conflict", status: 409, wantErr: ErrRegistrationFailed},
		{name: "ok is not created", status: 200, wantErr: ErrRegistrationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New("http://example.com", nil, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
				if req.URL.Path != "/user/register" {
					t.Errorf("unexpected path: %s", req.URL.Path)
				}
				return respond(tt.status, ""), nil
			})))
			err := client.Register(context.Background(), "John", "Doe", "j@d.com", "pw")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListCandidates_NoToken(t *testing.T) {
	client := New("http://example.com", staticTokens{}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request must be sent without a token")
		return nil, nil
	})))
	_, err := client.ListCandidates(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestListCandidates_BearerHeader(t *testing.T) {
	client := New("http://example.com", staticTokens{token: "tok-9", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Errorf("unexpected auth header: %q", got)
		}
		return respond(200, `[]`), nil
	})))
	if _, err := client.ListCandidates(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListCandidates_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: 401, wantErr: ErrNotAuthorized},
		{status: 500, wantErr: ErrInvalidResponse},
		{status: 404, wantErr: ErrInvalidResponse},
	}
	for _, tt := range tests {
		client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(tt.status, ""), nil
		})))
		_, err := client.ListCandidates(context.Background())
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.wantErr, err)
		}
	}
}

func TestListCandidates_Success(t *testing.T) {
	client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		return respond(200, `[{"id":"1","firstName":"John","lastName":"Doe","email":"john@x.com","phone":null,"note":null,"linkedinURL":null,"isFavorite":false}]`), nil
	})))
	candidates, err := client.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "1" || candidates[0].Phone != nil {
		t.Errorf("unexpected candidates: %+v", candidates)
	}
}

func TestCreateCandidate_OmitsUnsetOptionalFields(t *testing.T) {
	var raw map[string]json.RawMessage
	client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return respond(201, `{"id":"5","firstName":"John","lastName":"Doe","email":"j@d.com","isFavorite":false}`), nil
	})))

	phone := "+33600000000"
	created, err := client.CreateCandidate(context.Background(), models.CandidateRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "j@d.com",
		Phone:     &phone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "5" {
		t.Errorf("unexpected id: %q", created.ID)
	}
	if _, present := raw["note"]; present {
		t.Error("unset note must be omitted from the body, not sent as null")
	}
	if _, present := raw["linkedinURL"]; present {
		t.Error("unset linkedinURL must be omitted from the body")
	}
	if string(raw["phone"]) != `"+33600000000"` {
		t.Errorf("unexpected phone field: %s", raw["phone"])
	}
}

func TestCreateCandidate_AcceptsOKAndCreated(t *testing.T) {
	for _, status := range []int{200, 201} {
		client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(status, `{"id":"5","firstName":"a","lastName":"b","email":"a@b.c","isFavorite":false}`), nil
		})))
		if _, err := client.CreateCandidate(context.Background(), models.CandidateRequest{FirstName: "a", LastName: "b", Email: "a@b.c"}); err != nil {
			t.Errorf("status %d: unexpected error: %v", status, err)
		}
	}
}

func TestUpdateCandidate_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: 401, wantErr: ErrNotAuthorized},
		{status: 404, wantErr: ErrCandidateUpdateFailed},
		{status: 201, wantErr: ErrCandidateUpdateFailed},
	}
	for _, tt := range tests {
		client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodPut || req.URL.Path != "/candidate/7" {
				t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
			}
			return respond(tt.status, ""), nil
		})))
		_, err := client.UpdateCandidate(context.Background(), "7", models.CandidateRequest{FirstName: "a", LastName: "b", Email: "a@b.c"})
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.wantErr, err)
		}
	}
}

func TestDeleteCandidate(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: 200, wantErr: nil},
		{status: 401, wantErr: ErrNotAuthorized},
		{status: 404, wantErr: ErrCandidateDeletionFailed},
		{status: 204, wantErr: ErrCandidateDeletionFailed},
	}
	for _, tt := range tests {
		client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodDelete || req.URL.Path != "/candidate/7" {
				t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
			}
			return respond(tt.status, ""), nil
		})))
		err := client.DeleteCandidate(context.Background(), "7")
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.wantErr, err)
		}
	}
}

func TestToggleFavorite_ReturnsServerState(t *testing.T) {
	client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/candidate/2/favorite" {
			t.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		return respond(200, `{"id":"2","firstName":"Jane","lastName":"Smith","email":"jane@x.com","isFavorite":true}`), nil
	})))
	candidate, err := client.ToggleFavorite(context.Background(), "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !candidate.IsFavorite {
		t.Error("expected the server's flipped favorite state")
	}
}

func TestToggleFavorite_Failure(t *testing.T) {
	client := New("http://example.com", staticTokens{token: "t", ok: true}, WithHTTPClient(newTestClient(func(req *http.Request) (*http.Response, error) {
		return respond(403, ""), nil
	})))
	_, err := client.ToggleFavorite(context.Background(), "2")
	if !errors.Is(err, ErrFavoriteToggleFailed) {
		t.Errorf("expected ErrFavoriteToggleFailed, got %v", err)
	}
}
