package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
	"github.com/cardvault/cardvault/internal/query"
	"github.com/cardvault/cardvault/internal/service"
)

// suggestionLimit bounds the name suggestion list.
const suggestionLimit = 5

// CardService defines the catalog operations required by the CardHandler.
type CardService interface {
	// List returns a filtered, sorted collection view partitioned by
	// availability.
	List(ctx context.Context, opts service.ListOptions) (service.Listing, error)
	// Create stores a new card and returns it as re-fetched.
	Create(ctx context.Context, req service.CreateCardRequest) (models.Card, error)
	// Edit merge-patches a card and returns it as re-fetched.
	Edit(ctx context.Context, id string, req service.EditCardRequest) (models.Card, error)
	// Delete removes a card.
	Delete(ctx context.Context, id string) error
	// Suggest returns up to max card names matching q.
	Suggest(ctx context.Context, q string, max int) ([]string, error)
	// Owners returns the configured user roster.
	Owners() []string
}

// CardHandler handles HTTP requests for the card catalog.
type CardHandler struct {
	CardService CardService
}

// cardView decorates a card with the derived quantities the UI renders.
// Availability is clamped to zero here; the raw signed values stay
// internal.
type cardView struct {
	models.Card
	TotalCopies      int `json:"totalCopies"`
	AvailableFoil    int `json:"availableFoil"`
	AvailableNonFoil int `json:"availableNonFoil"`
	TotalLoaned      int `json:"totalLoaned"`
}

func newCardView(c models.Card) cardView {
	return cardView{
		Card:             c,
		TotalCopies:      len(c.Copies),
		AvailableFoil:    inventory.ClampZero(inventory.Available(c.Copies, c.Loans, true)),
		AvailableNonFoil: inventory.ClampZero(inventory.Available(c.Copies, c.Loans, false)),
		TotalLoaned:      inventory.TotalLoanedAll(c.Loans),
	}
}

func newCardViews(cards []models.Card) []cardView {
	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, newCardView(c))
	}
	return views
}

// List handles GET /api/cards?owner=&q=&sort= requests.
// It responds with the matching cards split into "available" and
// "committed" groups.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := service.ListOptions{
		Owner: r.URL.Query().Get("owner"),
		Query: r.URL.Query().Get("q"),
		Sort:  query.SortKey(r.URL.Query().Get("sort")),
	}

	listing, err := h.CardService.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"available": newCardViews(listing.Available),
		"committed": newCardViews(listing.Committed),
	})
}

// Create handles POST /api/cards requests.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	card, err := h.CardService.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newCardView(card))
}

// Edit handles PATCH /api/cards/{id} requests with merge-patch semantics.
func (h *CardHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req service.EditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	card, err := h.CardService.Edit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, newCardView(card))
}

// Delete handles DELETE /api/cards/{id} requests.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CardService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suggest handles GET /api/cards/suggest?q= requests, returning at most
// five distinct matching names.
func (h *CardHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	names, err := h.CardService.Suggest(r.Context(), r.URL.Query().Get("q"), suggestionLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, map[string][]string{"suggestions": names})
}

// Owners handles GET /api/owners requests, returning the roster the
// owner filter offers.
func (h *CardHandler) Owners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]string{"owners": h.CardService.Owners()})
}
