// Package repository persists card documents in a PostgreSQL database,
// one JSONB document per card.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardvault/cardvault/internal/models"
)

// ErrCardNotFound is returned when an update or delete targets an id
// that does not exist.
var ErrCardNotFound = errors.New("card not found")

// PostgresCardRepository implements the card store contract against a
// PostgreSQL database.
type PostgresCardRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresCardRepository creates a PostgresCardRepository using the
// provided *sql.DB.
func NewPostgresCardRepository(db *sql.DB) *PostgresCardRepository {
	return &PostgresCardRepository{DB: db}
}

// FetchAll returns every card in the collection. There is no pagination;
// the whole set is the working snapshot.
func (r *PostgresCardRepository) FetchAll(ctx context.Context) ([]models.Card, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, doc FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("FetchAll: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var card models.Card
		if err := json.Unmarshal(doc, &card); err != nil {
			return nil, fmt.Errorf("decode card %s: %w", id, err)
		}
		card.ID = id
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchAll rows: %w", err)
	}
	return cards, nil
}

// Create stores a new card and returns the id it assigned.
func (r *PostgresCardRepository) Create(ctx context.Context, card models.Card) (string, error) {
	card.ID = uuid.NewString()
	if card.Loans == nil {
		card.Loans = []models.Loan{}
	}
	doc, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("encode card: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO cards (id, owner, doc) VALUES ($1, $2, $3)
	`, card.ID, card.Owner, doc)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return card.ID, nil
}

// Update applies a merge-patch to the card with the given id: only the
// patch's set fields change. The read-modify-write runs in a transaction
// with the row locked.
func (r *PostgresCardRepository) Update(ctx context.Context, id string, patch models.CardPatch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM cards WHERE id = $1 FOR UPDATE`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return ErrCardNotFound
	}
	if err != nil {
		return fmt.Errorf("Update select: %w", err)
	}

	var card models.Card
	if err := json.Unmarshal(doc, &card); err != nil {
		return fmt.Errorf("decode card %s: %w", id, err)
	}
	card.ID = id
	card = patch.Apply(card)

	updated, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE cards SET owner = $2, doc = $3 WHERE id = $1
	`, id, card.Owner, updated); err != nil {
		return fmt.Errorf("Update exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes the card with the given id.
func (r *PostgresCardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCardNotFound
	}
	return nil
}
