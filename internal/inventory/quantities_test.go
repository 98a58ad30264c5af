package inventory

import (
	"testing"

	"github.com/cardvault/cardvault/internal/models"
)

func TestCopyCount(t *testing.T) {
	copies := models.CopiesFromCounts(2, 3)

	if got := CopyCount(copies, true); got != 2 {
		t.Errorf("CopyCount(foil) = %d; want 2", got)
	}
	if got := CopyCount(copies, false); got != 3 {
		t.Errorf("CopyCount(non-foil) = %d; want 3", got)
	}
	if got := CopyCount(nil, false); got != 0 {
		t.Errorf("CopyCount(nil) = %d; want 0", got)
	}
}

func TestTotalLoaned(t *testing.T) {
	loans := []models.Loan{
		{To: "Marcello", Quantity: 2, Foil: false},
		{To: "Giacomo", Quantity: 1, Foil: true},
		{To: "Marcello", Quantity: 1, Foil: false},
	}

	if got := TotalLoaned(loans, false); got != 3 {
		t.Errorf("TotalLoaned(non-foil) = %d; want 3", got)
	}
	if got := TotalLoaned(loans, true); got != 1 {
		t.Errorf("TotalLoaned(foil) = %d; want 1", got)
	}
	if got := TotalLoanedAll(loans); got != 4 {
		t.Errorf("TotalLoanedAll = %d; want 4", got)
	}
	if got := TotalLoanedAll(nil); got != 0 {
		t.Errorf("TotalLoanedAll(nil) = %d; want 0", got)
	}
}

func TestAvailable(t *testing.T) {
	copies := models.CopiesFromCounts(1, 4)
	loans := []models.Loan{{To: "Giacomo", Quantity: 3, Foil: false}}

	if got := Available(copies, loans, false); got != 1 {
		t.Errorf("Available(non-foil) = %d; want 1", got)
	}
	if got := Available(copies, loans, true); got != 1 {
		t.Errorf("Available(foil) = %d; want 1", got)
	}
}

func TestAvailable_NegativeAfterShrink(t *testing.T) {
	// Copies edited down below the already-loaned quantity: the raw
	// signed value must be preserved, clamping is for display only.
	copies := models.CopiesFromCounts(0, 1)
	loans := []models.Loan{{To: "Marcello", Quantity: 3, Foil: false}}

	if got := Available(copies, loans, false); got != -2 {
		t.Errorf("Available = %d; want -2", got)
	}
	if got := ClampZero(-2); got != 0 {
		t.Errorf("ClampZero(-2) = %d; want 0", got)
	}
	if got := ClampZero(2); got != 2 {
		t.Errorf("ClampZero(2) = %d; want 2", got)
	}
}
