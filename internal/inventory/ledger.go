package inventory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cardvault/cardvault/internal/models"
)

// LoanRequest carries the caller-supplied fields of a new loan.
type LoanRequest struct {
	// To is the borrower's name; leading/trailing whitespace is trimmed.
	To string
	// Quantity is the number of copies to loan out, must be positive.
	Quantity int
	// Foil selects the variant the loan draws from.
	Foil bool
	// Note holds optional free text, trimmed like To.
	Note string
}

// AddLoan validates the request against the card's availability and
// returns a copy of the card with one loan appended. Copies are never
// mutated. On failure the returned card is the input unchanged and the
// error is *InvalidInputError or *InsufficientStockError.
//
// The availability check and the append are not atomic with respect to
// other sessions editing the same card; two concurrent writers can both
// pass the check against stale state. That race is accepted.
func AddLoan(card models.Card, req LoanRequest) (models.Card, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return card, &InvalidInputError{Reason: "borrower name is empty"}
	}
	if req.Quantity <= 0 {
		return card, &InvalidInputError{Reason: "quantity must be positive"}
	}

	avail := Available(card.Copies, card.Loans, req.Foil)
	if req.Quantity > avail {
		return card, &InsufficientStockError{Foil: req.Foil, Available: avail}
	}

	loans := make([]models.Loan, len(card.Loans), len(card.Loans)+1)
	copy(loans, card.Loans)
	card.Loans = append(loans, models.Loan{
		ID:       uuid.NewString(),
		To:       to,
		Quantity: req.Quantity,
		Foil:     req.Foil,
		Note:     strings.TrimSpace(req.Note),
	})
	return card, nil
}

// RemoveLoanAt removes the loan at the given position in the card's
// current loan ordering. Returns *NotFoundError when the index is out of
// range.
func RemoveLoanAt(card models.Card, index int) (models.Card, error) {
	if index < 0 || index >= len(card.Loans) {
		return card, &NotFoundError{What: "loan"}
	}
	loans := make([]models.Loan, 0, len(card.Loans)-1)
	loans = append(loans, card.Loans[:index]...)
	loans = append(loans, card.Loans[index+1:]...)
	card.Loans = loans
	return card, nil
}

// RemoveLoanByID removes the loan with the given stable identifier.
// Unlike positional removal it is safe against two views holding
// independently fetched orderings of the same loan list.
func RemoveLoanByID(card models.Card, id string) (models.Card, error) {
	for i, l := range card.Loans {
		if l.ID != "" && l.ID == id {
			return RemoveLoanAt(card, i)
		}
	}
	return card, &NotFoundError{What: "loan"}
}

// ClearLoans returns the card with an empty loan list.
func ClearLoans(card models.Card) models.Card {
	card.Loans = []models.Loan{}
	return card
}
