// Package service implements the collection business logic, delegating
// persistence to a card repository interface.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardvault/cardvault/internal/inventory"
	"github.com/cardvault/cardvault/internal/models"
	"github.com/cardvault/cardvault/internal/query"
)

// CardRepository defines the store contract the services depend on.
type CardRepository interface {
	// FetchAll returns the whole collection; there is no pagination.
	FetchAll(ctx context.Context) ([]models.Card, error)
	// Create stores a new card and returns the assigned id.
	Create(ctx context.Context, card models.Card) (string, error)
	// Update applies a merge-patch to the card with the given id.
	Update(ctx context.Context, id string, patch models.CardPatch) error
	// Delete removes the card with the given id.
	Delete(ctx context.Context, id string) error
}

// CardService implements card catalog and loan ledger operations over a
// CardRepository. After every mutation it re-fetches, so callers always
// see the store's current state.
type CardService struct {
	repo CardRepository
	// owners is the configured user roster; card owners are validated
	// against it.
	owners []string
}

// NewCardService constructs a CardService with the given repository and
// owner roster.
func NewCardService(repo CardRepository, owners []string) *CardService {
	return &CardService{repo: repo, owners: owners}
}

// CreateCardRequest carries the fields of a new card. Copies are built
// from the two per-variant counts.
type CreateCardRequest struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	Edition       string `json:"edition"`
	Notes         string `json:"notes"`
	FoilCopies    int    `json:"foilCopies"`
	NonFoilCopies int    `json:"nonFoilCopies"`
	PriceEur      string `json:"priceEur"`
	PriceEurFoil  string `json:"priceEurFoil"`
	ImageURL      string `json:"imageUrl"`
}

// Create validates and stores a new card with an empty loan list,
// returning the stored card.
func (s *CardService) Create(ctx context.Context, req CreateCardRequest) (models.Card, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Card{}, &inventory.InvalidInputError{Reason: "card name is empty"}
	}
	if req.FoilCopies < 0 || req.NonFoilCopies < 0 {
		return models.Card{}, &inventory.InvalidInputError{Reason: "copy counts must not be negative"}
	}
	if !s.knownOwner(req.Owner) {
		return models.Card{}, &inventory.InvalidInputError{Reason: "unknown owner " + req.Owner}
	}

	card := models.Card{
		Name:         name,
		Owner:        req.Owner,
		Edition:      strings.TrimSpace(req.Edition),
		Notes:        strings.TrimSpace(req.Notes),
		Copies:       models.CopiesFromCounts(req.FoilCopies, req.NonFoilCopies),
		Loans:        []models.Loan{},
		PriceEur:     strings.TrimSpace(req.PriceEur),
		PriceEurFoil: strings.TrimSpace(req.PriceEurFoil),
		ImageURL:     strings.TrimSpace(req.ImageURL),
	}

	id, err := s.repo.Create(ctx, card)
	if err != nil {
		return models.Card{}, fmt.Errorf("create card: %w", err)
	}
	return s.Get(ctx, id)
}

// EditCardRequest carries a merge-patch card edit. Copy counts travel as
// an optional pair so an edit can leave copies untouched.
type EditCardRequest struct {
	Name          *string `json:"name,omitempty"`
	Edition       *string `json:"edition,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	FoilCopies    *int    `json:"foilCopies,omitempty"`
	NonFoilCopies *int    `json:"nonFoilCopies,omitempty"`
	PriceEur      *string `json:"priceEur,omitempty"`
	PriceEurFoil  *string `json:"priceEurFoil,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// Edit applies the request to the card with the given id and returns the
// card as re-fetched from the store.
//
// Shrinking copy counts below the already-loaned quantity is not blocked;
// availability goes negative and is clamped at presentation time.
func (s *CardService) Edit(ctx context.Context, id string, req EditCardRequest) (models.Card, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.Card{}, &inventory.InvalidInputError{Reason: "card name is empty"}
	}
	if (req.FoilCopies != nil) != (req.NonFoilCopies != nil) {
		return models.Card{}, &inventory.InvalidInputError{Reason: "foil and non-foil counts must be edited together"}
	}

	patch := models.CardPatch{
		Name:         trimmed(req.Name),
		Edition:      trimmed(req.Edition),
		Notes:        trimmed(req.Notes),
		PriceEur:     trimmed(req.PriceEur),
		PriceEurFoil: trimmed(req.PriceEurFoil),
		ImageURL:     trimmed(req.ImageURL),
	}
	if req.FoilCopies != nil {
		if *req.FoilCopies < 0 || *req.NonFoilCopies < 0 {
			return models.Card{}, &inventory.InvalidInputError{Reason: "copy counts must not be negative"}
		}
		copies := models.CopiesFromCounts(*req.FoilCopies, *req.NonFoilCopies)
		patch.Copies = &copies
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return models.Card{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the card with the given id.
func (s *CardService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns the card with the given id from a fresh snapshot.
func (s *CardService) Get(ctx context.Context, id string) (models.Card, error) {
	cards, err := s.repo.FetchAll(ctx)
	if err != nil {
		return models.Card{}, err
	}
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Card{}, &inventory.NotFoundError{What: "card"}
}

// AddLoan records a loan against the card with the given id, enforcing
// the availability invariant, and returns the updated card.
func (s *CardService) AddLoan(ctx context.Context, id string, req inventory.LoanRequest) (models.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.Card{}, err
	}
	updated, err := inventory.AddLoan(card, req)
	if err != nil {
		return models.Card{}, err
	}
	if err := s.writeLoans(ctx, id, updated.Loans); err != nil {
		return models.Card{}, err
	}
	return s.Get(ctx, id)
}

// RemoveLoan removes the loan with the given stable id from the card and
// returns the updated card.
func (s *CardService) RemoveLoan(ctx context.Context, id, loanID string) (models.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.Card{}, err
	}
	updated, err := inventory.RemoveLoanByID(card, loanID)
	if err != nil {
		return models.Card{}, err
	}
	if err := s.writeLoans(ctx, id, updated.Loans); err != nil {
		return models.Card{}, err
	}
	return s.Get(ctx, id)
}

// ClearLoans removes every loan from the card and returns the updated
// card.
func (s *CardService) ClearLoans(ctx context.Context, id string) (models.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.Card{}, err
	}
	updated := inventory.ClearLoans(card)
	if err := s.writeLoans(ctx, id, updated.Loans); err != nil {
		return models.Card{}, err
	}
	return s.Get(ctx, id)
}

// ListOptions selects and orders a collection view.
type ListOptions struct {
	// Owner filters by owner; empty or query.AllOwners means everyone.
	Owner string
	// Query is a case-insensitive substring match on the name.
	Query string
	// Sort is the ordering key; defaults to name ascending.
	Sort query.SortKey
}

// Listing is a filtered collection view split by availability.
type Listing struct {
	Available []models.Card `json:"available"`
	Committed []models.Card `json:"committed"`
}

// List returns a fresh filtered/sorted snapshot partitioned into cards
// with at least one available copy and fully committed ones.
func (s *CardService) List(ctx context.Context, opts ListOptions) (Listing, error) {
	cards, err := s.repo.FetchAll(ctx)
	if err != nil {
		return Listing{}, err
	}
	cards = query.FilterByOwner(cards, opts.Owner)
	cards = query.SearchByName(cards, opts.Query)
	cards = query.Sort(cards, opts.Sort)
	available, committed := query.PartitionByAvailability(cards)
	return Listing{Available: available, Committed: committed}, nil
}

// Snapshot returns the whole collection sorted by name, the layout the
// exports use.
func (s *CardService) Snapshot(ctx context.Context) ([]models.Card, error) {
	cards, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Sort(cards, query.SortNameAsc), nil
}

// Suggest returns up to max card names matching q.
func (s *CardService) Suggest(ctx context.Context, q string, max int) ([]string, error) {
	cards, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Suggestions(cards, q, max), nil
}

// Owners returns the configured user roster.
func (s *CardService) Owners() []string {
	return s.owners
}

func (s *CardService) writeLoans(ctx context.Context, id string, loans []models.Loan) error {
	return s.repo.Update(ctx, id, models.CardPatch{Loans: &loans})
}

func (s *CardService) knownOwner(owner string) bool {
	for _, o := range s.owners {
		if o == owner {
			return true
		}
	}
	return false
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
