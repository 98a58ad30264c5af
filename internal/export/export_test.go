package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardvault/cardvault/internal/deck"
	"github.com/cardvault/cardvault/internal/models"
)

func TestWriteCollectionCSV(t *testing.T) {
	cards := []models.Card{
		{
			Name:         "Lightning Bolt",
			Owner:        "Matteo",
			Edition:      "LEA",
			Copies:       models.CopiesFromCounts(1, 3),
			Loans:        []models.Loan{{To: "Marcello", Quantity: 2, Foil: false}},
			PriceEur:     "2.00",
			PriceEurFoil: "40.00",
		},
		{Name: "Pauper Junk", Owner: "Giacomo"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCollectionCSV(&buf, cards))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, collectionHeader, rows[0])

	bolt := rows[1]
	assert.Equal(t, "Lightning Bolt", bolt[0])
	assert.Equal(t, "1", bolt[4], "foil copies")
	assert.Equal(t, "3", bolt[5], "non-foil copies")
	assert.Equal(t, "1", bolt[6], "foil available")
	assert.Equal(t, "1", bolt[7], "non-foil available")
	assert.Equal(t, "2 non-foil to Marcello", bolt[8])
	// 3 non-foil at 2.00 plus 1 foil at 40.00.
	assert.Equal(t, "46.00", bolt[11])

	junk := rows[2]
	assert.Equal(t, "0.00", junk[11], "missing prices value as zero")
	assert.Equal(t, "", junk[8])
}

func TestWriteCollectionCSV_ClampsNegativeAvailability(t *testing.T) {
	cards := []models.Card{{
		Name:   "Shrunk",
		Owner:  "Matteo",
		Copies: models.CopiesFromCounts(0, 1),
		Loans:  []models.Loan{{To: "Giacomo", Quantity: 3, Foil: false}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCollectionCSV(&buf, cards))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "0", rows[1][7], "negative availability clamps to zero in export")
}

func TestWriteDeckReport(t *testing.T) {
	reports := []deck.Report{
		{Quantity: 2, Name: "Lightning Bolt", Available: 3, Owners: []string{"Matteo (3)"}},
		{Quantity: 4, Name: "Counterspell", Available: 1, Owners: []string{"Giacomo (1)"}},
		{Quantity: 1, Name: "Black Lotus", Available: -1, Owners: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDeckReport(&buf, reports))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "OK")
	assert.Contains(t, lines[0], "2 Lightning Bolt")
	assert.Contains(t, lines[0], "Matteo (3)")
	assert.Contains(t, lines[1], "PARTIAL")
	assert.Contains(t, lines[2], "MISSING")
	assert.Contains(t, lines[2], "available 0", "raw negative clamps in the report")
}
