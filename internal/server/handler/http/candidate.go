package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitesse-hr/vitesse/internal/middleware"
	"github.com/vitesse-hr/vitesse/internal/models"
	"github.com/vitesse-hr/vitesse/internal/repository"
)

// CandidateService defines the interface for candidate operations
// required by the HTTP handlers.
type CandidateService interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Get(ctx context.Context, id string) (models.Candidate, error)
	Create(ctx context.Context, req models.CandidateRequest) (models.Candidate, error)
	Update(ctx context.Context, id string, req models.CandidateRequest) (models.Candidate, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (models.Candidate, error)
}

// CandidateHandler handles HTTP requests for the candidate resource.
type CandidateHandler struct {
	CandidateService CandidateService
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeCandidateRequest reads and validates a create/update body.
func decodeCandidateRequest(r *http.Request) (models.CandidateRequest, bool) {
	var req models.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return req, false
	}
	return req, true
}

// List handles GET /candidate.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.CandidateService.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// Get handles GET /candidate/{id}.
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	candidate, err := h.CandidateService.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// Create handles POST /candidate. Responds 201 with the canonical
// record, including the assigned id.
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCandidateRequest(r)
	if !ok {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	candidate, err := h.CandidateService.Create(r.Context(), req)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

// Update handles PUT /candidate/{id}. Full replacement: optional fields
// absent from the body are cleared.
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCandidateRequest(r)
	if !ok {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	candidate, err := h.CandidateService.Update(r.Context(), id, req)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// Delete handles DELETE /candidate/{id}. Responds 200 on success.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.CandidateService.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ToggleFavorite handles POST /candidate/{id}/favorite. Admin only:
// non-admin sessions get 401. Responds 200 with the flipped record.
func (h *CandidateHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdminFromContext(r.Context()) {
		http.Error(w, "admin rights required", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	candidate, err := h.CandidateService.ToggleFavorite(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}
