// Package roster owns the in-memory candidate state: the loaded roster,
// the selected candidate, the multi-select set, and the derived filtered
// view. Every mutating operation calls the API gateway and reconciles
// local state with the server's authoritative response.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vitesse-hr/vitesse/internal/models"
)

// API is the slice of the gateway the repository needs.
type API interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (models.Candidate, error)
	CreateCandidate(ctx context.Context, req models.CandidateRequest) (models.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, req models.CandidateRequest) (models.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (models.Candidate, error)
}

// AdminChecker reports whether the current session may toggle favorites.
type AdminChecker interface {
	IsAdmin() bool
}

var (
	// ErrInFlight is returned when the same operation on the same
	// resource is already running. The overlapping call touches no
	// state.
	ErrInFlight = errors.New("operation already in flight")

	// ErrNotAdmin is returned by ToggleFavorite before any network
	// call when the session lacks admin rights.
	ErrNotAdmin = errors.New("admin rights required")
)

// Repository keeps the candidate roster consistent with the server.
// All state lives behind one mutex; methods block only at the network
// boundary, and concurrent calls are safe.
type Repository struct {
	api     API
	session AdminChecker

	mu            sync.Mutex
	candidates    []models.Candidate
	selected      *models.Candidate
	selectedIDs   map[string]struct{}
	multiSelect   bool
	searchText    string
	favoritesOnly bool
	loading       int
	lastError     string
	inflight      map[string]struct{}
	subscribers   []func()
}

// New constructs an empty repository over the given gateway and session.
func New(api API, session AdminChecker) *Repository {
	return &Repository{
		api:         api,
		session:     session,
		selectedIDs: make(map[string]struct{}),
		inflight:    make(map[string]struct{}),
	}
}

// Subscribe registers a callback invoked after every state change.
// Callbacks run outside the repository lock, on the mutating goroutine.
func (r *Repository) Subscribe(fn func()) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()
}

func (r *Repository) notify() {
	r.mu.Lock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// begin marks an operation as started: rejects an identical in-flight
// operation, raises the loading flag, and clears the last error.
func (r *Repository) begin(key string) error {
	r.mu.Lock()
	if _, busy := r.inflight[key]; busy {
		r.mu.Unlock()
		return ErrInFlight
	}
	r.inflight[key] = struct{}{}
	r.loading++
	r.lastError = ""
	r.mu.Unlock()
	r.notify()
	return nil
}

// end marks an operation as finished, recording its error message if any.
func (r *Repository) end(key, errMsg string) {
	r.mu.Lock()
	delete(r.inflight, key)
	r.loading--
	if errMsg != "" {
		r.lastError = errMsg
	}
	r.mu.Unlock()
	r.notify()
}

// Candidates returns a copy of the roster in its stable order.
func (r *Repository) Candidates() []models.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Selected returns the currently selected candidate, if any.
func (r *Repository) Selected() (models.Candidate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return models.Candidate{}, false
	}
	return *r.selected, true
}

// IsLoading reports whether any operation is currently in flight.
func (r *Repository) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading > 0
}

// LastError returns the most recent operation failure message, or ""
// if the latest operation started since has not failed.
func (r *Repository) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// SetSearchText updates the substring filter applied by Filtered.
func (r *Repository) SetSearchText(text string) {
	r.mu.Lock()
	r.searchText = text
	r.mu.Unlock()
	r.notify()
}

// SearchText returns the current substring filter.
func (r *Repository) SearchText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searchText
}

// SetFavoritesOnly toggles the favorites-only filter.
func (r *Repository) SetFavoritesOnly(on bool) {
	r.mu.Lock()
	r.favoritesOnly = on
	r.mu.Unlock()
	r.notify()
}

// FavoritesOnly reports whether the favorites-only filter is active.
func (r *Repository) FavoritesOnly() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favoritesOnly
}

// matches applies the filter predicate to one candidate. Callers hold mu.
func (r *Repository) matches(c models.Candidate) bool {
	if r.favoritesOnly && !c.IsFavorite {
		return false
	}
	if r.searchText == "" {
		return true
	}
	needle := strings.ToLower(r.searchText)
	return strings.Contains(strings.ToLower(c.FirstName), needle) ||
		strings.Contains(strings.ToLower(c.LastName), needle) ||
		strings.Contains(strings.ToLower(c.Email), needle)
}

// Filtered returns the candidates passing the search and favorites
// filters, in roster order. It is recomputed on every call so it always
// reflects the current roster and filter settings.
func (r *Repository) Filtered() []models.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Candidate
	for _, c := range r.candidates {
		if r.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// SetMultiSelect enters or leaves multi-select mode. Leaving the mode
// always clears the selection set.
func (r *Repository) SetMultiSelect(on bool) {
	r.mu.Lock()
	r.multiSelect = on
	if !on {
		r.selectedIDs = make(map[string]struct{})
	}
	r.mu.Unlock()
	r.notify()
}

// MultiSelect reports whether multi-select mode is active.
func (r *Repository) MultiSelect() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.multiSelect
}

// ToggleSelection adds the id to the selection set, or removes it if
// already present.
func (r *Repository) ToggleSelection(id string) {
	r.mu.Lock()
	if _, ok := r.selectedIDs[id]; ok {
		delete(r.selectedIDs, id)
	} else {
		r.selectedIDs[id] = struct{}{}
	}
	r.mu.Unlock()
	r.notify()
}

// IsSelected reports whether the id is selected. It is false whenever
// multi-select mode is inactive, regardless of the set's contents.
func (r *Repository) IsSelected(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.multiSelect {
		return false
	}
	_, ok := r.selectedIDs[id]
	return ok
}

// ClearSelection empties the selection set without leaving multi-select
// mode.
func (r *Repository) ClearSelection() {
	r.mu.Lock()
	r.selectedIDs = make(map[string]struct{})
	r.mu.Unlock()
	r.notify()
}

// SelectedIDs returns the current selection set.
func (r *Repository) SelectedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.selectedIDs))
	for id := range r.selectedIDs {
		out = append(out, id)
	}
	return out
}

// Load replaces the whole roster with the server's list. On failure the
// roster is left untouched.
func (r *Repository) Load(ctx context.Context) error {
	if err := r.begin("load"); err != nil {
		return err
	}
	candidates, err := r.api.ListCandidates(ctx)
	if err != nil {
		r.end("load", fmt.Sprintf("unable to load candidates: %v", err))
		return err
	}
	r.mu.Lock()
	r.candidates = candidates
	r.mu.Unlock()
	r.end("load", "")
	return nil
}

// LoadCandidate fetches one candidate and makes it the selected one.
// On failure the previous selection is left untouched.
func (r *Repository) LoadCandidate(ctx context.Context, id string) error {
	key := "get/" + id
	if err := r.begin(key); err != nil {
		return err
	}
	candidate, err := r.api.GetCandidate(ctx, id)
	if err != nil {
		r.end(key, fmt.Sprintf("unable to load candidate: %v", err))
		return err
	}
	r.mu.Lock()
	r.selected = &candidate
	r.mu.Unlock()
	r.end(key, "")
	return nil
}

// Create adds a new candidate and appends the server's canonical record
// to the roster.
func (r *Repository) Create(ctx context.Context, req models.CandidateRequest) error {
	if err := r.begin("create"); err != nil {
		return err
	}
	candidate, err := r.api.CreateCandidate(ctx, req)
	if err != nil {
		r.end("create", fmt.Sprintf("unable to create candidate: %v", err))
		return err
	}
	r.mu.Lock()
	r.candidates = append(r.candidates, candidate)
	r.mu.Unlock()
	r.end("create", "")
	return nil
}

// replaceLocked swaps the matching roster entry and the selection for
// the server's record. Callers hold mu.
func (r *Repository) replaceLocked(updated models.Candidate) {
	for i := range r.candidates {
		if r.candidates[i].ID == updated.ID {
			r.candidates[i] = updated
			break
		}
	}
	if r.selected != nil && r.selected.ID == updated.ID {
		r.selected = &updated
	}
}

// Update replaces the candidate record on the server and reconciles the
// roster and selection with the response.
func (r *Repository) Update(ctx context.Context, id string, req models.CandidateRequest) error {
	key := "update/" + id
	if err := r.begin(key); err != nil {
		return err
	}
	updated, err := r.api.UpdateCandidate(ctx, id, req)
	if err != nil {
		r.end(key, fmt.Sprintf("unable to update candidate: %v", err))
		return err
	}
	r.mu.Lock()
	r.replaceLocked(updated)
	r.mu.Unlock()
	r.end(key, "")
	return nil
}

// Delete removes the candidate on the server, then drops it from the
// roster and clears the selection if it pointed at the same id. On
// failure the record stays.
func (r *Repository) Delete(ctx context.Context, id string) error {
	key := "delete/" + id
	if err := r.begin(key); err != nil {
		return err
	}
	return r.deleteRemote(ctx, id, key)
}

// deleteRemote performs the network call and reconciliation of a
// delete whose begin has already run.
func (r *Repository) deleteRemote(ctx context.Context, id, key string) error {
	if err := r.api.DeleteCandidate(ctx, id); err != nil {
		r.end(key, fmt.Sprintf("unable to delete candidate: %v", err))
		return err
	}
	r.mu.Lock()
	kept := r.candidates[:0]
	for _, c := range r.candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.candidates = kept
	if r.selected != nil && r.selected.ID == id {
		r.selected = nil
	}
	r.mu.Unlock()
	r.end(key, "")
	return nil
}

// ToggleFavorite flips the favorite flag via the server. Admin rights
// are checked against the session first; a non-admin caller fails
// immediately and no request is sent.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) error {
	if !r.session.IsAdmin() {
		r.mu.Lock()
		r.lastError = "you need to be an admin to mark candidates as favorites"
		r.mu.Unlock()
		r.notify()
		return ErrNotAdmin
	}

	key := "favorite/" + id
	if err := r.begin(key); err != nil {
		return err
	}
	updated, err := r.api.ToggleFavorite(ctx, id)
	if err != nil {
		r.end(key, fmt.Sprintf("unable to toggle favorite status: %v", err))
		return err
	}
	r.mu.Lock()
	r.replaceLocked(updated)
	r.mu.Unlock()
	r.end(key, "")
	return nil
}

// DeleteSelected deletes every selected candidate. The selection set is
// snapshotted and reset up front, together with multi-select mode, so
// the UI recovers immediately. Deletes run concurrently and
// independently: a failing id leaves its record in the roster and
// records its error, without stopping the others. DeleteSelected
// returns once every delete has completed.
func (r *Repository) DeleteSelected(ctx context.Context) {
	r.mu.Lock()
	if len(r.selectedIDs) == 0 {
		r.mu.Unlock()
		return
	}
	ids := make([]string, 0, len(r.selectedIDs))
	for id := range r.selectedIDs {
		ids = append(ids, id)
	}
	r.selectedIDs = make(map[string]struct{})
	r.multiSelect = false
	r.mu.Unlock()
	r.notify()

	// All begins run before any network call so that one delete's
	// start cannot clear an error another delete just recorded.
	var wg sync.WaitGroup
	for _, id := range ids {
		key := "delete/" + id
		if err := r.begin(key); err != nil {
			continue
		}
		wg.Add(1)
		go func(id, key string) {
			defer wg.Done()
			_ = r.deleteRemote(ctx, id, key)
		}(id, key)
	}
	wg.Wait()
}
