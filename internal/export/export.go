// Package export renders collection and deck-check data as CSV and plain
// text for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardvault/cardvault/internal/deck"
	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
)

// collectionHeader is the column layout of the collection CSV.
var collectionHeader = []string{
	"Name", "Owner", "Edition", "Notes",
	"Foil Copies", "Non-Foil Copies",
	"Foil Available", "Non-Foil Available",
	"Loaned To", "Price EUR", "Price EUR Foil", "Estimated Value EUR",
}

// WriteCollectionCSV writes one row per card. Availability is clamped to
// zero for display; the estimated value prices each variant's copies at
// its latest known per-copy price.
func WriteCollectionCSV(w io.Writer, cards []models.Card) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(collectionHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, card := range cards {
		foil := inventory.CopyCount(card.Copies, true)
		nonFoil := inventory.CopyCount(card.Copies, false)
		availFoil := inventory.ClampZero(inventory.Available(card.Copies, card.Loans, true))
		availNonFoil := inventory.ClampZero(inventory.Available(card.Copies, card.Loans, false))

		value := card.PriceFor(false).Mul(decimal.NewFromInt(int64(nonFoil))).
			Add(card.PriceFor(true).Mul(decimal.NewFromInt(int64(foil))))

		row := []string{
			card.Name,
			card.Owner,
			card.Edition,
			card.Notes,
			strconv.Itoa(foil),
			strconv.Itoa(nonFoil),
			strconv.Itoa(availFoil),
			strconv.Itoa(availNonFoil),
			loanSummary(card.Loans),
			card.PriceEur,
			card.PriceEurFoil,
			value.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// loanSummary flattens a loan list into "2 non-foil to Marcello; 1 foil to Anna".
func loanSummary(loans []models.Loan) string {
	parts := make([]string, 0, len(loans))
	for _, l := range loans {
		variant := "non-foil"
		if l.Foil {
			variant = "foil"
		}
		parts = append(parts, fmt.Sprintf("%d %s to %s", l.Quantity, variant, l.To))
	}
	return strings.Join(parts, "; ")
}

// WriteDeckReport writes a plain-text deck check, one line per deck entry
// with a satisfiability marker and the owners holding available copies.
func WriteDeckReport(w io.Writer, reports []deck.Report) error {
	for _, r := range reports {
		marker := "MISSING"
		switch r.Classify() {
		case deck.Full:
			marker = "OK"
		case deck.Partial:
			marker = "PARTIAL"
		}

		line := fmt.Sprintf("%-7s %d %s (available %d)", marker, r.Quantity, r.Name, inventory.ClampZero(r.Available))
		if len(r.Owners) > 0 {
			line += " - " + strings.Join(r.Owners, ", ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write report line: %w", err)
		}
	}
	return nil
}
