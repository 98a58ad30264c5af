// Package models defines the card collection document structures.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Copy is a single physical copy of a card. Copies have no identity of
// their own; only the per-variant tallies matter.
type Copy struct {
	// Foil marks the copy as the foil variant.
	Foil bool `json:"foil"`
}

// Copies is the ordered list of physical copies of a card.
//
// Older documents stored copies as a bare non-negative integer meaning
// "N non-foil copies". UnmarshalJSON accepts both shapes; marshalling
// always produces the list shape, so legacy documents migrate forward
// the first time they are written back.
type Copies []Copy

// UnmarshalJSON decodes either the list shape or the legacy integer shape.
func (c *Copies) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	if data[0] == '[' {
		var list []Copy
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("copies list: %w", err)
		}
		*c = list
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("copies count: %w", err)
	}
	if n < 0 {
		n = 0
	}
	// Legacy integer shape: all copies are non-foil.
	*c = make(Copies, n)
	return nil
}

// CopiesFromCounts builds a copies list from per-variant counts, foil
// entries first. Negative counts are treated as zero.
func CopiesFromCounts(foil, nonFoil int) Copies {
	if foil < 0 {
		foil = 0
	}
	if nonFoil < 0 {
		nonFoil = 0
	}
	copies := make(Copies, 0, foil+nonFoil)
	for i := 0; i < foil; i++ {
		copies = append(copies, Copy{Foil: true})
	}
	for i := 0; i < nonFoil; i++ {
		copies = append(copies, Copy{Foil: false})
	}
	return copies
}

// Loan records that a quantity of one variant of a card is currently held
// by a borrower. It does not change the card's owner of record.
type Loan struct {
	// ID is a stable identifier assigned when the loan is recorded.
	ID string `json:"id,omitempty"`
	// To is the borrower's name.
	To string `json:"to"`
	// Quantity is the number of copies loaned out.
	Quantity int `json:"quantity"`
	// Foil selects which variant the loan draws from.
	Foil bool `json:"foil"`
	// Note holds optional free text about the loan.
	Note string `json:"note,omitempty"`
}

// Card is a catalogued collection item.
type Card struct {
	// ID is assigned by the store on creation and stable afterwards.
	ID string `json:"id"`
	// Name is the display name, matched case-insensitively in search.
	Name string `json:"name"`
	// Owner is one of the configured roster of user names.
	Owner string `json:"owner"`
	// Edition holds optional free text naming the printing.
	Edition string `json:"edition,omitempty"`
	// Notes holds optional free text.
	Notes string `json:"notes,omitempty"`
	// Copies is the physical copy list, split by foil variant.
	Copies Copies `json:"copies"`
	// Loans are the outstanding partial loans against this card.
	Loans []Loan `json:"loans"`
	// PriceEur is the latest known per-copy market price of the
	// non-foil variant, as a decimal string.
	PriceEur string `json:"priceEur,omitempty"`
	// PriceEurFoil is the per-copy market price of the foil variant.
	PriceEurFoil string `json:"priceEurFoil,omitempty"`
	// ImageURL optionally references a card image.
	ImageURL string `json:"imageUrl,omitempty"`
}

// PriceFor returns the per-copy market price for a variant, or zero when
// the price is absent or unparseable.
func (c Card) PriceFor(foil bool) decimal.Decimal {
	if foil {
		return parsePrice(c.PriceEurFoil)
	}
	return parsePrice(c.PriceEur)
}

// Price returns the combined non-foil and foil per-copy prices, the key
// used for price sorting.
func (c Card) Price() decimal.Decimal {
	return parsePrice(c.PriceEur).Add(parsePrice(c.PriceEurFoil))
}

func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CardPatch describes a merge-patch edit of a card: only non-nil fields
// change, and Copies/Loans replace the previous value wholesale.
type CardPatch struct {
	Name         *string `json:"name,omitempty"`
	Owner        *string `json:"owner,omitempty"`
	Edition      *string `json:"edition,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Copies       *Copies `json:"copies,omitempty"`
	Loans        *[]Loan `json:"loans,omitempty"`
	PriceEur     *string `json:"priceEur,omitempty"`
	PriceEurFoil *string `json:"priceEurFoil,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// Apply returns a copy of card with the patch's set fields applied.
func (p CardPatch) Apply(card Card) Card {
	if p.Name != nil {
		card.Name = *p.Name
	}
	if p.Owner != nil {
		card.Owner = *p.Owner
	}
	if p.Edition != nil {
		card.Edition = *p.Edition
	}
	if p.Notes != nil {
		card.Notes = *p.Notes
	}
	if p.Copies != nil {
		card.Copies = *p.Copies
	}
	if p.Loans != nil {
		card.Loans = *p.Loans
	}
	if p.PriceEur != nil {
		card.PriceEur = *p.PriceEur
	}
	if p.PriceEurFoil != nil {
		card.PriceEurFoil = *p.PriceEurFoil
	}
	if p.ImageURL != nil {
		card.ImageURL = *p.ImageURL
	}
	return card
}
