package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/vitesse-hr/vitesse/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// candidate API.
//
// Routes:
//
//	POST   /user/auth               → authHandler.Authenticate
//	POST   /user/register           → authHandler.Register
//	GET    /candidate               → candidateHandler.List       (bearer)
//	POST   /candidate               → candidateHandler.Create     (bearer)
//	GET    /candidate/{id}          → candidateHandler.Get        (bearer)
//	PUT    /candidate/{id}          → candidateHandler.Update     (bearer)
//	DELETE /candidate/{id}          → candidateHandler.Delete     (bearer)
//	POST   /candidate/{id}/favorite → candidateHandler.ToggleFavorite (bearer, admin)
func NewRouter(
	authHandler *AuthHandler,
	candidateHandler *CandidateHandler,
	tokens middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/user", func(r chi.Router) {
		r.Post("/auth", authHandler.Authenticate)
		r.Post("/register", authHandler.Register)
	})

	r.Route("/candidate", func(r chi.Router) {
		// Every candidate endpoint requires a valid bearer token
		r.Use(middleware.BearerAuth(tokens))

		r.Get("/", candidateHandler.List)
		r.Post("/", candidateHandler.Create)
		r.Get("/{id}", candidateHandler.Get)
		r.Put("/{id}", candidateHandler.Update)
		r.Delete("/{id}", candidateHandler.Delete)
		r.Post("/{id}/favorite", candidateHandler.ToggleFavorite)
	})

	return r
}
