// Package deck parses free-text decklists and checks required quantities
// against aggregate collection availability.
package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
)

// ErrEmptyDeck is returned when no parsable lines are found.
var ErrEmptyDeck = errors.New("deck list is empty")

// ErrEmptyCollection is returned when there is no collection snapshot to
// match against.
var ErrEmptyCollection = errors.New("collection is empty")

// lineRe matches a decklist line: a quantity, whitespace, then the name.
var lineRe = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// Line is one parsed decklist entry.
type Line struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// Report is the availability result for one decklist line.
type Report struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	// Available aggregates the raw signed per-variant availability of
	// every card with a matching name.
	Available int `json:"available"`
	// Owners lists "owner (n)" for each matching card with positive
	// availability.
	Owners []string `json:"owners"`
}

// Classification buckets for a report row.
const (
	Full    = "full"
	Partial = "partial"
	None    = "none"
)

// Classify reports whether a line is fully, partially, or not satisfiable.
func (r Report) Classify() string {
	switch {
	case r.Available >= r.Quantity:
		return Full
	case r.Available > 0:
		return Partial
	default:
		return None
	}
}

// ParseDeckText splits text into lines, trims them, and parses each as
// "quantity name". Blank and malformed lines are dropped; line order is
// preserved.
func ParseDeckText(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m := lineRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		lines = append(lines, Line{Quantity: qty, Name: strings.TrimSpace(m[2])})
	}
	return lines
}

// AnalyzeDeck cross-references each deck line against the collection.
// Names match exactly, case-insensitively; per matching card the foil and
// non-foil raw availabilities are summed, so a negative variant offsets a
// positive one.
func AnalyzeDeck(lines []Line, cards []models.Card) ([]Report, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyDeck
	}
	if len(cards) == 0 {
		return nil, ErrEmptyCollection
	}

	reports := make([]Report, 0, len(lines))
	for _, line := range lines {
		report := Report{Quantity: line.Quantity, Name: line.Name, Owners: []string{}}
		want := strings.ToLower(line.Name)
		for _, card := range cards {
			if strings.ToLower(card.Name) != want {
				continue
			}
			avail := inventory.Available(card.Copies, card.Loans, true) +
				inventory.Available(card.Copies, card.Loans, false)
			report.Available += avail
			if avail > 0 {
				report.Owners = append(report.Owners, fmt.Sprintf("%s (%d)", card.Owner, avail))
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}
