// Package query derives filtered, searched, and sorted views of a card
// collection snapshot without mutating it.
package query

import (
	"sort"
	"strings"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
)

// AllOwners is the owner filter sentinel matching every card.
const AllOwners = "Tutti"

// SortKey names a supported collection ordering.
type SortKey string

const (
	SortNameAsc   SortKey = "name"
	SortNameDesc  SortKey = "nameDesc"
	SortPriceAsc  SortKey = "price"
	SortPriceDesc SortKey = "priceDesc"
)

// FilterByOwner returns the cards belonging to owner, or all cards when
// owner is the AllOwners sentinel.
func FilterByOwner(cards []models.Card, owner string) []models.Card {
	if owner == AllOwners || owner == "" {
		return cards
	}
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out
}

// SearchByName returns the cards whose name contains q, case-insensitively.
// An empty query returns the input unchanged.
func SearchByName(cards []models.Card, q string) []models.Card {
	if q == "" {
		return cards
	}
	q = strings.ToLower(q)
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// Suggestions returns up to max distinct card names matching q, in the
// order they are first encountered.
func Suggestions(cards []models.Card, q string, max int) []string {
	if q == "" || max <= 0 {
		return nil
	}
	q = strings.ToLower(q)
	seen := make(map[string]bool)
	var names []string
	for _, c := range cards {
		key := strings.ToLower(c.Name)
		if seen[key] || !strings.Contains(key, q) {
			continue
		}
		seen[key] = true
		names = append(names, c.Name)
		if len(names) == max {
			break
		}
	}
	return names
}

// PartitionByAvailability splits cards into those with at least one
// available copy of either variant and those fully committed.
func PartitionByAvailability(cards []models.Card) (available, committed []models.Card) {
	for _, c := range cards {
		if inventory.Available(c.Copies, c.Loans, true) > 0 ||
			inventory.Available(c.Copies, c.Loans, false) > 0 {
			available = append(available, c)
		} else {
			committed = append(committed, c)
		}
	}
	return available, committed
}

// Sort returns a copy of cards ordered by key. The sort is stable, so
// cards with equal keys keep their snapshot order. Unknown keys fall back
// to name ascending.
func Sort(cards []models.Card, key SortKey) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)

	switch key {
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price().LessThan(out[j].Price())
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Price().LessThan(out[i].Price())
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}
