package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vitesse-hr/vitesse/internal/models"
)

// CandidateRepository defines the persistence operations required by
// the candidate service.
type CandidateRepository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Get(ctx context.Context, id string) (models.Candidate, error)
	Create(ctx context.Context, c models.Candidate) error
	Update(ctx context.Context, c models.Candidate) error
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (models.Candidate, error)
}

// CandidateService implements candidate operations by delegating to a
// CandidateRepository.
type CandidateService struct {
	repo CandidateRepository
}

// NewCandidateService constructs a CandidateService using the provided
// repository.
func NewCandidateService(repo CandidateRepository) *CandidateService {
	return &CandidateService{repo: repo}
}

// List returns all candidates.
func (s *CandidateService) List(ctx context.Context) ([]models.Candidate, error) {
	return s.repo.List(ctx)
}

// Get returns one candidate by id.
func (s *CandidateService) Get(ctx context.Context, id string) (models.Candidate, error) {
	return s.repo.Get(ctx, id)
}

// Create assigns an id and stores the new candidate, returning the
// canonical record.
func (s *CandidateService) Create(ctx context.Context, req models.CandidateRequest) (models.Candidate, error) {
	c := models.Candidate{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Note:        req.Note,
		LinkedinURL: req.LinkedinURL,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return models.Candidate{}, err
	}
	return c, nil
}

// Update fully replaces the candidate's fields with the request and
// returns the stored record. An optional field absent from the request
// clears the stored value.
func (s *CandidateService) Update(ctx context.Context, id string, req models.CandidateRequest) (models.Candidate, error) {
	c := models.Candidate{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Note:        req.Note,
		LinkedinURL: req.LinkedinURL,
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return models.Candidate{}, err
	}
	// Re-read for the authoritative favorite flag, which Update leaves
	// alone.
	return s.repo.Get(ctx, id)
}

// Delete removes the candidate.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleFavorite flips the favorite flag and returns the new record.
func (s *CandidateService) ToggleFavorite(ctx context.Context, id string) (models.Candidate, error) {
	return s.repo.ToggleFavorite(ctx, id)
}
