// Package main initializes and starts the candidate API server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/vitesse-hr/vitesse/internal/config"
	"github.com/vitesse-hr/vitesse/internal/db"
	"github.com/vitesse-hr/vitesse/internal/repository"
	"github.com/vitesse-hr/vitesse/internal/server/handler/http"
	"github.com/vitesse-hr/vitesse/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		logger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and candidates.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	candidateRepo := repository.NewPostgresCandidateRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, options.AdminEmail)
	candidateService := service.NewCandidateService(candidateRepo)

	// Create HTTP handlers for the auth and candidate endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	candidateHandler := &http.CandidateHandler{CandidateService: candidateService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, candidateHandler, authService, logger)

	logger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := nethttp.ListenAndServe(options.Addr, router); err != nil {
		logger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
