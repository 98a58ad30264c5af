package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardvault/cardvault/internal/models"
)

func testCard() models.Card {
	return models.Card{
		ID:     "c1",
		Name:   "Lightning Bolt",
		Owner:  "Matteo",
		Copies: models.CopiesFromCounts(1, 3),
		Loans: []models.Loan{
			{ID: "l1", To: "Giacomo", Quantity: 1, Foil: false},
		},
	}
}

func TestAddLoan_Success(t *testing.T) {
	card := testCard()
	updated, err := AddLoan(card, LoanRequest{To: "  Marcello ", Quantity: 2, Foil: false, Note: " back by June "})
	require.NoError(t, err)

	require.Len(t, updated.Loans, 2)
	added := updated.Loans[1]
	assert.Equal(t, "Marcello", added.To)
	assert.Equal(t, 2, added.Quantity)
	assert.False(t, added.Foil)
	assert.Equal(t, "back by June", added.Note)
	assert.NotEmpty(t, added.ID)

	// Copies are untouched and the input card is not mutated.
	assert.Equal(t, card.Copies, updated.Copies)
	assert.Len(t, card.Loans, 1)
}

func TestAddLoan_InsufficientStock(t *testing.T) {
	card := testCard()

	// 3 non-foil copies, 1 already loaned: only 2 available.
	_, err := AddLoan(card, LoanRequest{To: "Marcello", Quantity: 3, Foil: false})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.False(t, stockErr.Foil)
	assert.Equal(t, 2, stockErr.Available)

	// 1 foil copy, none loaned.
	_, err = AddLoan(card, LoanRequest{To: "Marcello", Quantity: 2, Foil: true})
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Foil)
	assert.Equal(t, 1, stockErr.Available)

	assert.Len(t, card.Loans, 1, "failed add must not append")
}

func TestAddLoan_InvalidInput(t *testing.T) {
	card := testCard()
	var invalid *InvalidInputError

	_, err := AddLoan(card, LoanRequest{To: "   ", Quantity: 1})
	assert.ErrorAs(t, err, &invalid)

	_, err = AddLoan(card, LoanRequest{To: "Marcello", Quantity: 0})
	assert.ErrorAs(t, err, &invalid)

	_, err = AddLoan(card, LoanRequest{To: "Marcello", Quantity: -4})
	assert.ErrorAs(t, err, &invalid)
}

func TestAddLoan_NegativeAvailabilityRejectsAll(t *testing.T) {
	card := testCard()
	card.Copies = models.CopiesFromCounts(0, 0)

	_, err := AddLoan(card, LoanRequest{To: "Marcello", Quantity: 1, Foil: false})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, -1, stockErr.Available)
}

func TestLedgerInvariant(t *testing.T) {
	// After any sequence of successful ledger calls the loaned total per
	// variant never exceeds the copy count of that variant.
	card := models.Card{Copies: models.CopiesFromCounts(2, 2)}

	var err error
	card, err = AddLoan(card, LoanRequest{To: "Giacomo", Quantity: 2, Foil: true})
	require.NoError(t, err)
	card, err = AddLoan(card, LoanRequest{To: "Marcello", Quantity: 1, Foil: false})
	require.NoError(t, err)
	card, err = RemoveLoanAt(card, 0)
	require.NoError(t, err)
	card, err = AddLoan(card, LoanRequest{To: "Matteo", Quantity: 1, Foil: true})
	require.NoError(t, err)

	for _, foil := range []bool{true, false} {
		assert.LessOrEqual(t, TotalLoaned(card.Loans, foil), CopyCount(card.Copies, foil))
	}
}

func TestRemoveLoanAt(t *testing.T) {
	card := testCard()
	card.Loans = []models.Loan{
		{ID: "l1", To: "A", Quantity: 1},
		{ID: "l2", To: "B", Quantity: 1},
		{ID: "l3", To: "C", Quantity: 1},
	}

	updated, err := RemoveLoanAt(card, 1)
	require.NoError(t, err)
	require.Len(t, updated.Loans, 2)
	// Remaining loans keep their relative order.
	assert.Equal(t, "l1", updated.Loans[0].ID)
	assert.Equal(t, "l3", updated.Loans[1].ID)
	assert.Len(t, card.Loans, 3, "input card unchanged")
}

func TestRemoveLoanAt_OutOfRange(t *testing.T) {
	card := testCard()
	var notFound *NotFoundError

	_, err := RemoveLoanAt(card, -1)
	assert.ErrorAs(t, err, &notFound)

	_, err = RemoveLoanAt(card, len(card.Loans))
	assert.ErrorAs(t, err, &notFound)
}

func TestRemoveLoanByID(t *testing.T) {
	card := testCard()
	updated, err := RemoveLoanByID(card, "l1")
	require.NoError(t, err)
	assert.Empty(t, updated.Loans)

	_, err = RemoveLoanByID(card, "nope")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))

	// Loans without ids (legacy documents) never match by id.
	card.Loans = []models.Loan{{To: "A", Quantity: 1}}
	_, err = RemoveLoanByID(card, "")
	assert.ErrorAs(t, err, &notFound)
}

func TestClearLoans(t *testing.T) {
	card := testCard()
	updated := ClearLoans(card)
	assert.Empty(t, updated.Loans)
	assert.NotNil(t, updated.Loans)

	// Clearing an already-empty list is fine.
	assert.Empty(t, ClearLoans(updated).Loans)
}
