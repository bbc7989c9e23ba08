package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Persistence capabilities consumed by the services
// ──────────────────────────────────────────────────────────────────────────────
//
// The services never talk to the database directly; they depend on these
// narrow seams so the Postgres store and the in-memory test store are
// interchangeable.

// PlayerStore resolves and creates player accounts.
type PlayerStore interface {
	// EnsurePlayer creates the player with a zero balance when absent.
	// Idempotent under concurrency: two racing calls for the same unknown id
	// must not create two rows.
	EnsurePlayer(ctx context.Context, playerID int64) error

	// GetPlayer returns the player or domain.ErrPlayerNotFound.
	GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error)
}

// BetStore reads persisted bets.
type BetStore interface {
	// GetBet returns the bet with its selections, or domain.ErrBetNotFound.
	GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error)

	// PlayerBets returns a player's bets, newest first, paginated.
	PlayerBets(ctx context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error)
}

// LedgerStore reads the append-only balance ledger.
type LedgerStore interface {
	// PlayerLedger returns a player's ledger entries, newest first, paginated.
	PlayerLedger(ctx context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error)

	// LedgerSum returns the sum of all entry amounts for a player.
	LedgerSum(ctx context.Context, playerID int64) (decimal.Decimal, error)
}

// PlacementTx is a single all-or-nothing unit scoped to one player's balance.
// BalanceForUpdate takes an exclusive lock on the player's balance that is
// held until Commit or Rollback, serializing concurrent read-modify-write
// sequences for the same player.
type PlacementTx interface {
	BalanceForUpdate(ctx context.Context, playerID int64) (decimal.Decimal, error)
	SetBalance(ctx context.Context, playerID int64, balance decimal.Decimal) error
	AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
	InsertBet(ctx context.Context, bet *domain.Bet, selections []domain.BetSelection) error
	Commit() error
	Rollback() error
}

// TxBeginner opens placement transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (PlacementTx, error)
}

// Store bundles every capability the services need.
type Store interface {
	PlayerStore
	BetStore
	LedgerStore
	TxBeginner
}
