package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopiesUnmarshal_ListShape(t *testing.T) {
	var c Copies
	err := json.Unmarshal([]byte(`[{"foil":true},{"foil":false},{"foil":false}]`), &c)
	require.NoError(t, err)
	require.Len(t, c, 3)
	assert.True(t, c[0].Foil)
	assert.False(t, c[1].Foil)
}

func TestCopiesUnmarshal_LegacyInteger(t *testing.T) {
	var c Copies
	err := json.Unmarshal([]byte(`4`), &c)
	require.NoError(t, err)
	require.Len(t, c, 4)
	for _, cp := range c {
		assert.False(t, cp.Foil, "legacy copies are all non-foil")
	}
}

func TestCopiesUnmarshal_NullAndNegative(t *testing.T) {
	var c Copies
	require.NoError(t, json.Unmarshal([]byte(`null`), &c))
	assert.Empty(t, c)

	require.NoError(t, json.Unmarshal([]byte(`-2`), &c))
	assert.Empty(t, c)
}

func TestCopiesUnmarshal_Invalid(t *testing.T) {
	var c Copies
	assert.Error(t, json.Unmarshal([]byte(`"three"`), &c))
}

func TestCardUnmarshal_LegacyDocument(t *testing.T) {
	doc := `{"name":"Lightning Bolt","owner":"Matteo","copies":2,"loans":[]}`
	var card Card
	require.NoError(t, json.Unmarshal([]byte(doc), &card))
	assert.Equal(t, "Lightning Bolt", card.Name)
	require.Len(t, card.Copies, 2)

	// Writing the card back produces the list shape.
	out, err := json.Marshal(card)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"copies":[{"foil":false},{"foil":false}]`)
}

func TestCopiesFromCounts(t *testing.T) {
	c := CopiesFromCounts(2, 3)
	require.Len(t, c, 5)
	assert.True(t, c[0].Foil)
	assert.True(t, c[1].Foil)
	assert.False(t, c[2].Foil)

	assert.Empty(t, CopiesFromCounts(-1, -5))
}

func TestCardPrice(t *testing.T) {
	card := Card{PriceEur: "1.50", PriceEurFoil: "12.30"}
	assert.True(t, card.Price().Equal(decimal.RequireFromString("13.80")))
	assert.True(t, card.PriceFor(true).Equal(decimal.RequireFromString("12.30")))
	assert.True(t, card.PriceFor(false).Equal(decimal.RequireFromString("1.50")))

	// Absent or unparseable prices count as zero.
	assert.True(t, Card{}.Price().IsZero())
	assert.True(t, Card{PriceEur: "n/a"}.Price().IsZero())
}

func TestCardPatchApply(t *testing.T) {
	card := Card{
		ID:      "c1",
		Name:    "Counterspell",
		Owner:   "Giacomo",
		Edition: "3ED",
		Copies:  CopiesFromCounts(0, 2),
		Loans:   []Loan{{To: "Marcello", Quantity: 1}},
	}

	name := "Counterspell (FBB)"
	copies := CopiesFromCounts(1, 1)
	patched := CardPatch{Name: &name, Copies: &copies}.Apply(card)

	assert.Equal(t, "Counterspell (FBB)", patched.Name)
	assert.Equal(t, copies, patched.Copies)
	// Untouched fields survive the patch.
	assert.Equal(t, "3ED", patched.Edition)
	assert.Equal(t, card.Loans, patched.Loans)
}
