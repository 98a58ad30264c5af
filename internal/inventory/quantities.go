// Package inventory implements copy-count accounting and the loan ledger
// for a single card: per-variant tallies, availability, and validated
// loan mutations.
package inventory

import "github.com/cardvault/cardvault/internal/models"

// CopyCount returns the number of copies of the given variant.
func CopyCount(copies models.Copies, foil bool) int {
	n := 0
	for _, c := range copies {
		if c.Foil == foil {
			n++
		}
	}
	return n
}

// TotalLoaned sums the loaned quantity of the given variant.
func TotalLoaned(loans []models.Loan, foil bool) int {
	total := 0
	for _, l := range loans {
		if l.Foil == foil {
			total += l.Quantity
		}
	}
	return total
}

// TotalLoanedAll sums the loaned quantity across both variants.
func TotalLoanedAll(loans []models.Loan) int {
	total := 0
	for _, l := range loans {
		total += l.Quantity
	}
	return total
}

// Available returns the copy count of a variant minus its loaned quantity.
// The result can be negative when copy counts were edited below the
// already-loaned quantity; callers clamp for display but internal checks
// rely on the raw signed value.
func Available(copies models.Copies, loans []models.Loan, foil bool) int {
	return CopyCount(copies, foil) - TotalLoaned(loans, foil)
}

// ClampZero maps negative availability to zero for presentation.
func ClampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
