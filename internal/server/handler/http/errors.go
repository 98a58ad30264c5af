package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/repository"
)

// writeError maps core error types onto HTTP status codes: invalid input
// to 400, insufficient stock to 409 (with the variant and the actual
// available count in the payload), not-found to 404, anything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		invalid  *inventory.InvalidInputError
		stock    *inventory.InsufficientStockError
		notFound *inventory.NotFoundError
	)
	switch {
	case errors.As(err, &invalid):
		http.Error(w, invalid.Error(), http.StatusBadRequest)
	case errors.As(err, &stock):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":     stock.Error(),
			"foil":      stock.Foil,
			"available": stock.Available,
		})
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrCardNotFound):
		http.Error(w, "card not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
