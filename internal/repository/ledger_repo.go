package repository

import (
	"context"
	"fmt"

	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LedgerRepository handles the append-only balance_transactions table.
// Entries are never updated or deleted.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append inserts a ledger entry inside an existing transaction.
func (r *LedgerRepository) Append(ctx context.Context, tx *sqlx.Tx, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO balance_transactions
			(id, player_id, amount, amount_before, created_at)
		VALUES
			(:id, :player_id, :amount, :amount_before, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("ledger_repo.Append: %w", err)
	}
	return nil
}

// ListByPlayer returns a player's entries, newest first, paginated.
func (r *LedgerRepository) ListByPlayer(ctx context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM balance_transactions
		 WHERE player_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ledger_repo.ListByPlayer: %w", err)
	}
	return entries, nil
}

// SumByPlayer returns the sum of all entry amounts for a player. Because
// players start at zero, this replays to the current balance.
func (r *LedgerRepository) SumByPlayer(ctx context.Context, playerID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0) FROM balance_transactions WHERE player_id = $1`,
		playerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger_repo.SumByPlayer: %w", err)
	}
	return sum, nil
}
