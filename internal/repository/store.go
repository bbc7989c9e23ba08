package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/hazelbet/sportsbook/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store
// ──────────────────────────────────────────────────────────────────────────────

// Store is the Postgres implementation of service.Store. It composes the
// per-table repositories behind the capability interfaces the services expect.
type Store struct {
	db      *sqlx.DB
	players *PlayerRepository
	bets    *BetRepository
	ledger  *LedgerRepository
}

// NewStore creates a Store over a connected database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:      db,
		players: NewPlayerRepository(db),
		bets:    NewBetRepository(db),
		ledger:  NewLedgerRepository(db),
	}
}

// EnsurePlayer creates the player with a zero balance when absent.
func (s *Store) EnsurePlayer(ctx context.Context, playerID int64) error {
	return s.players.Ensure(ctx, playerID)
}

// GetPlayer returns the player or domain.ErrPlayerNotFound.
func (s *Store) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	return s.players.GetByID(ctx, playerID)
}

// GetBet returns the bet with its selections, or domain.ErrBetNotFound.
func (s *Store) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	return s.bets.GetByID(ctx, betID)
}

// PlayerBets returns a player's bets, newest first, paginated.
func (s *Store) PlayerBets(ctx context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error) {
	return s.bets.ListByPlayer(ctx, playerID, limit, offset)
}

// PlayerLedger returns a player's ledger entries, newest first, paginated.
func (s *Store) PlayerLedger(ctx context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	return s.ledger.ListByPlayer(ctx, playerID, limit, offset)
}

// LedgerSum returns the sum of all entry amounts for a player.
func (s *Store) LedgerSum(ctx context.Context, playerID int64) (decimal.Decimal, error) {
	return s.ledger.SumByPlayer(ctx, playerID)
}

// Begin opens a placement transaction.
func (s *Store) Begin(ctx context.Context) (service.PlacementTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store.Begin: %w", err)
	}
	return &placementTx{tx: tx, store: s}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// placementTx
// ──────────────────────────────────────────────────────────────────────────────

// placementTx scopes the repositories to one *sqlx.Tx. Every operation maps
// Postgres concurrency failures to domain.ErrPlacementConflict so callers can
// treat the whole unit as retryable.
type placementTx struct {
	tx    *sqlx.Tx
	store *Store
}

func (t *placementTx) BalanceForUpdate(ctx context.Context, playerID int64) (decimal.Decimal, error) {
	balance, err := t.store.players.BalanceForUpdate(ctx, t.tx, playerID)
	if err != nil {
		return decimal.Zero, translatePlacementErr(err)
	}
	return balance, nil
}

func (t *placementTx) SetBalance(ctx context.Context, playerID int64, balance decimal.Decimal) error {
	if err := t.store.players.SetBalance(ctx, t.tx, playerID, balance); err != nil {
		return translatePlacementErr(err)
	}
	return nil
}

func (t *placementTx) AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := t.store.ledger.Append(ctx, t.tx, entry); err != nil {
		return translatePlacementErr(err)
	}
	return nil
}

func (t *placementTx) InsertBet(ctx context.Context, bet *domain.Bet, selections []domain.BetSelection) error {
	if err := t.store.bets.Insert(ctx, t.tx, bet, selections); err != nil {
		return translatePlacementErr(err)
	}
	return nil
}

func (t *placementTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return translatePlacementErr(fmt.Errorf("store.Commit: %w", err))
	}
	return nil
}

func (t *placementTx) Rollback() error {
	return t.tx.Rollback()
}

// translatePlacementErr maps Postgres serialization and lock failures to
// domain.ErrPlacementConflict. 40001 is serialization_failure, 40P01 is
// deadlock_detected, 55P03 is lock_not_available.
func translatePlacementErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %v", domain.ErrPlacementConflict, err)
		}
	}
	return err
}
