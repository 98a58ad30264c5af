// Package service provides deck-checking business logic over the card
// repository.
package service

import (
	"context"

	"github.com/cardvault/cardvault/internal/deck"
)

// DeckService checks decklists against a fresh collection snapshot.
type DeckService struct {
	repo CardRepository
}

// NewDeckService constructs a DeckService with the provided repository.
func NewDeckService(repo CardRepository) *DeckService {
	return &DeckService{repo: repo}
}

// Check parses the decklist text and reports per-line availability
// against the current collection. Returns deck.ErrEmptyDeck when no line
// parses and deck.ErrEmptyCollection when the collection has no cards.
func (s *DeckService) Check(ctx context.Context, text string) ([]deck.Report, error) {
	cards, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return deck.AnalyzeDeck(deck.ParseDeckText(text), cards)
}
