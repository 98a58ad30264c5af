// Package main initializes and starts the card collection HTTP server,
// setting up configuration, logging, the database connection, the card
// repository, services, and handlers.
package main

import (
	"cmp"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/cardvault/cardvault/internal/auth"
	"github.com/cardvault/cardvault/internal/config"
	"github.com/cardvault/cardvault/internal/db"
	"github.com/cardvault/cardvault/internal/logger"
	"github.com/cardvault/cardvault/internal/repository"
	"github.com/cardvault/cardvault/internal/server/handler/http"
	"github.com/cardvault/cardvault/internal/service"
	"go.uber.org/zap"
)

// sessionTTL bounds how long a login stays valid.
const sessionTTL = 12 * time.Hour

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
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.PasswordHash == "" {
		zapLogger.Fatal("no password hash configured")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the card document repository.
	cardRepo := repository.NewPostgresCardRepository(postgresDB)

	// Initialize business-logic services.
	cardService := service.NewCardService(cardRepo, options.Owners)
	deckService := service.NewDeckService(cardRepo)

	// The shared-password session store.
	sessions := auth.NewSessionStore(sessionTTL)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{PasswordHash: options.PasswordHash, Sessions: sessions}
	cardHandler := &http.CardHandler{CardService: cardService}
	loanHandler := &http.LoanHandler{LoanService: cardService}
	deckHandler := &http.DeckHandler{DeckService: deckService}
	exportHandler := &http.ExportHandler{SnapshotService: cardService, DeckService: deckService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, cardHandler, loanHandler, deckHandler, exportHandler, sessions, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
