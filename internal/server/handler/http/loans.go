package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
)

// LoanService defines the ledger operations required by the LoanHandler.
type LoanService interface {
	// AddLoan appends a validated loan to the card and returns the
	// updated card.
	AddLoan(ctx context.Context, id string, req inventory.LoanRequest) (models.Card, error)
	// RemoveLoan removes the loan with the given stable id.
	RemoveLoan(ctx context.Context, id, loanID string) (models.Card, error)
	// ClearLoans removes every loan from the card.
	ClearLoans(ctx context.Context, id string) (models.Card, error)
}

// LoanHandler handles HTTP requests for a card's loan ledger.
type LoanHandler struct {
	LoanService LoanService
}

// loanRequest represents the JSON payload for recording a loan.
type loanRequest struct {
	To       string `json:"to"`
	Quantity int    `json:"quantity"`
	Foil     bool   `json:"foil"`
	Note     string `json:"note"`
}

// Add handles POST /api/cards/{id}/loans requests.
// Insufficient stock answers 409 with the variant and the available
// count; invalid input answers 400.
func (h *LoanHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	card, err := h.LoanService.AddLoan(r.Context(), chi.URLParam(r, "id"), inventory.LoanRequest{
		To:       req.To,
		Quantity: req.Quantity,
		Foil:     req.Foil,
		Note:     req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, newCardView(card))
}

// Remove handles DELETE /api/cards/{id}/loans/{loanID} requests.
func (h *LoanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	card, err := h.LoanService.RemoveLoan(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "loanID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, newCardView(card))
}

// Clear handles DELETE /api/cards/{id}/loans requests, removing every
// loan unconditionally.
func (h *LoanHandler) Clear(w http.ResponseWriter, r *http.Request) {
	card, err := h.LoanService.ClearLoans(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, newCardView(card))
}
