package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// PlayerRepository handles all database operations for Players.
type PlayerRepository struct {
	db *sqlx.DB
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Ensure creates the player with a zero balance when absent. The conflict
// clause makes it safe under concurrent first requests for the same id:
// exactly one row ever exists.
func (r *PlayerRepository) Ensure(ctx context.Context, playerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (id, balance, created_at, updated_at)
		 VALUES ($1, 0, now(), now())
		 ON CONFLICT (id) DO NOTHING`,
		playerID)
	if err != nil {
		return fmt.Errorf("player_repo.Ensure: %w", err)
	}
	return nil
}

// GetByID fetches a player by primary key.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (*domain.Player, error) {
	var p domain.Player
	err := r.db.GetContext(ctx, &p, `SELECT * FROM players WHERE id = $1`, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("player_repo.GetByID: %w", err)
	}
	return &p, nil
}

// BalanceForUpdate locks the player's row and returns the balance. The lock
// is held until the surrounding transaction commits or rolls back, so
// concurrent debits for the same player serialize here.
func (r *PlayerRepository) BalanceForUpdate(ctx context.Context, tx *sqlx.Tx, playerID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance,
		`SELECT balance FROM players WHERE id = $1 FOR UPDATE`,
		playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrPlayerNotFound
		}
		return decimal.Zero, fmt.Errorf("player_repo.BalanceForUpdate: %w", err)
	}
	return balance, nil
}

// SetBalance writes the player's stored balance inside a transaction.
func (r *PlayerRepository) SetBalance(ctx context.Context, tx *sqlx.Tx, playerID int64, balance decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE players SET balance = $1, updated_at = now() WHERE id = $2`,
		balance, playerID)
	if err != nil {
		return fmt.Errorf("player_repo.SetBalance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
