package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeValidator struct {
	admin bool
	known string
}

func (f fakeValidator) Validate(token string) (bool, bool) {
	return f.admin, token == f.known
}

func runBearerAuth(t *testing.T, v TokenValidator, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var sawAdmin bool
	var reached bool
	handler := BearerAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		sawAdmin = IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/candidate", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if reached {
		return rec, sawAdmin
	}
	return rec, false
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	rec, _ := runBearerAuth(t, fakeValidator{known: "tok"}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"tok", "Basic tok", "Bearer "} {
		rec, _ := runBearerAuth(t, fakeValidator{known: "tok"}, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestBearerAuth_UnknownToken(t *testing.T) {
	rec, _ := runBearerAuth(t, fakeValidator{known: "tok"}, "Bearer other")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestBearerAuth_ValidTokenCarriesAdminFlag(t *testing.T) {
	rec, sawAdmin := runBearerAuth(t, fakeValidator{known: "tok", admin: true}, "Bearer tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !sawAdmin {
		t.Error("expected the admin flag in the request context")
	}
}

func TestIsAdminFromContext_DefaultsFalse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsAdminFromContext(req.Context()) {
		t.Error("expected false without the middleware")
	}
}
