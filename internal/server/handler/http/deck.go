package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardvault/cardvault/internal/deck"
)

// DeckService defines the deck-checking operation required by the
// DeckHandler.
type DeckService interface {
	// Check parses decklist text and reports per-line availability.
	Check(ctx context.Context, text string) ([]deck.Report, error)
}

// DeckHandler handles HTTP requests for decklist checking.
type DeckHandler struct {
	DeckService DeckService
}

// deckCheckRequest represents the JSON payload for a deck check.
type deckCheckRequest struct {
	// Text is the free-form decklist, one "quantity name" entry per line.
	Text string `json:"text"`
}

// deckReportRow is one deck line with its classification attached.
type deckReportRow struct {
	deck.Report
	Classification string `json:"classification"`
}

// Check handles POST /api/deck/check requests.
// An empty decklist or an empty collection is not an error condition for
// the client: the response carries no rows and a user-visible message.
func (h *DeckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req deckCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	reports, err := h.DeckService.Check(r.Context(), req.Text)
	switch {
	case errors.Is(err, deck.ErrEmptyDeck), errors.Is(err, deck.ErrEmptyCollection):
		writeJSON(w, map[string]any{"reports": []deckReportRow{}, "message": err.Error()})
		return
	case err != nil:
		writeError(w, err)
		return
	}

	rows := make([]deckReportRow, 0, len(reports))
	for _, rep := range reports {
		rows = append(rows, deckReportRow{Report: rep, Classification: rep.Classify()})
	}
	writeJSON(w, map[string]any{"reports": rows})
}
