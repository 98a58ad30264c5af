package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardvault/cardvault/internal/deck"
	"github.com/cardvault/cardvault/internal/export"
	"github.com/cardvault/cardvault/internal/models"
)

// SnapshotService provides the full collection for export.
type SnapshotService interface {
	// Snapshot returns every card, sorted by name.
	Snapshot(ctx context.Context) ([]models.Card, error)
}

// ExportHandler handles CSV and plain-text download endpoints.
type ExportHandler struct {
	SnapshotService SnapshotService
	DeckService     DeckService
}

// Collection handles GET /api/export/collection.csv requests.
func (h *ExportHandler) Collection(w http.ResponseWriter, r *http.Request) {
	cards, err := h.SnapshotService.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="collection.csv"`)
	if err := export.WriteCollectionCSV(w, cards); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Deck handles POST /api/export/deck.txt requests, rendering the deck
// check as downloadable plain text.
func (h *ExportHandler) Deck(w http.ResponseWriter, r *http.Request) {
	var req deckCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	reports, err := h.DeckService.Check(r.Context(), req.Text)
	switch {
	case errors.Is(err, deck.ErrEmptyDeck), errors.Is(err, deck.ErrEmptyCollection):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="deck-check.txt"`)
	if err := export.WriteDeckReport(w, reports); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
