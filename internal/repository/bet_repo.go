package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BetRepository handles all database operations for Bets and their
// selections. A bet and its selections are only ever written together.
type BetRepository struct {
	db *sqlx.DB
}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db}
}

// Insert writes a bet and all of its selection rows inside an existing
// transaction. Callers must pass at least one selection — the schema and the
// validation layer both forbid selection-less bets.
func (r *BetRepository) Insert(ctx context.Context, tx *sqlx.Tx, bet *domain.Bet, selections []domain.BetSelection) error {
	betQuery := `
		INSERT INTO bets (id, player_id, stake_amount, created_at)
		VALUES (:id, :player_id, :stake_amount, :created_at)`
	if _, err := tx.NamedExecContext(ctx, betQuery, bet); err != nil {
		return fmt.Errorf("bet_repo.Insert bet: %w", err)
	}

	selQuery := `
		INSERT INTO bet_selections (id, bet_id, selection_id, odds, ordinal, created_at)
		VALUES (:id, :bet_id, :selection_id, :odds, :ordinal, :created_at)`
	if _, err := tx.NamedExecContext(ctx, selQuery, selections); err != nil {
		return fmt.Errorf("bet_repo.Insert selections: %w", err)
	}
	return nil
}

// GetByID fetches a bet with its selections in submission order.
func (r *BetRepository) GetByID(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	var b domain.Bet
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bets WHERE id = $1`, betID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBetNotFound
		}
		return nil, fmt.Errorf("bet_repo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &b.Selections,
		`SELECT * FROM bet_selections WHERE bet_id = $1 ORDER BY ordinal ASC`,
		betID)
	if err != nil {
		return nil, fmt.Errorf("bet_repo.GetByID selections: %w", err)
	}
	return &b, nil
}

// ListByPlayer returns a player's bets, newest first, paginated, with each
// bet's selections attached.
func (r *BetRepository) ListByPlayer(ctx context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.SelectContext(ctx, &bets,
		`SELECT * FROM bets WHERE player_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bet_repo.ListByPlayer: %w", err)
	}
	if len(bets) == 0 {
		return bets, nil
	}

	ids := make([]uuid.UUID, 0, len(bets))
	byID := make(map[uuid.UUID]*domain.Bet, len(bets))
	for _, b := range bets {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}

	var selections []domain.BetSelection
	err = r.db.SelectContext(ctx, &selections,
		`SELECT * FROM bet_selections WHERE bet_id = ANY($1) ORDER BY ordinal ASC`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("bet_repo.ListByPlayer selections: %w", err)
	}
	for _, sel := range selections {
		if b, ok := byID[sel.BetID]; ok {
			b.Selections = append(b.Selections, sel)
		}
	}
	return bets, nil
}
