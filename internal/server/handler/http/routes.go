package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cardvault/cardvault/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the card
// collection API. It applies JSON content-type enforcement, request
// logging, and the shared-password session gate, and mounts the catalog,
// loan, deck, and export endpoints under /api.
//
// Routes:
//
//	POST   /api/login                       → authHandler.Login
//	POST   /api/logout                      → authHandler.Logout
//	GET    /api/owners                      → cardHandler.Owners
//	GET    /api/cards                       → cardHandler.List
//	POST   /api/cards                       → cardHandler.Create
//	GET    /api/cards/suggest               → cardHandler.Suggest
//	PATCH  /api/cards/{id}                  → cardHandler.Edit
//	DELETE /api/cards/{id}                  → cardHandler.Delete
//	POST   /api/cards/{id}/loans            → loanHandler.Add
//	DELETE /api/cards/{id}/loans            → loanHandler.Clear
//	DELETE /api/cards/{id}/loans/{loanID}   → loanHandler.Remove
//	POST   /api/deck/check                  → deckHandler.Check
//	GET    /api/export/collection.csv       → exportHandler.Collection
//	POST   /api/export/deck.txt             → exportHandler.Deck
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. SessionAuth(sessions)                — enforces the password gate
func NewRouter(
	authHandler *AuthHandler,
	cardHandler *CardHandler,
	loanHandler *LoanHandler,
	deckHandler *DeckHandler,
	exportHandler *ExportHandler,
	sessions middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce the shared-password session gate
	r.Use(middleware.SessionAuth(sessions))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.Post("/login", authHandler.Login)

		// Protected group: requires a live session token
		r.Post("/logout", authHandler.Logout)

		r.Get("/owners", cardHandler.Owners)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.List)
			r.Post("/", cardHandler.Create)
			r.Get("/suggest", cardHandler.Suggest)

			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", cardHandler.Edit)
				r.Delete("/", cardHandler.Delete)

				r.Post("/loans", loanHandler.Add)
				r.Delete("/loans", loanHandler.Clear)
				r.Delete("/loans/{loanID}", loanHandler.Remove)
			})
		})

		r.Post("/deck/check", deckHandler.Check)

		r.Route("/export", func(r chi.Router) {
			r.Get("/collection.csv", exportHandler.Collection)
			r.Post("/deck.txt", exportHandler.Deck)
		})
	})

	return r
}
