package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// WalletService
// ──────────────────────────────────────────────────────────────────────────────

// WalletService serves balance reads, credits, and ledger queries. Credits use
// the same locked transaction pattern as debits so the ledger stays a faithful
// replay of every balance change.
type WalletService struct {
	store Store
}

// NewWalletService creates a WalletService.
func NewWalletService(store Store) *WalletService {
	return &WalletService{store: store}
}

// Deposit credits amount to the player's balance, creating the player lazily
// on first reference. The balance update and the ledger entry commit together
// or not at all.
func (s *WalletService) Deposit(ctx context.Context, playerID int64, amount decimal.Decimal) (entry *domain.LedgerEntry, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if err = s.store.EnsurePlayer(ctx, playerID); err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: ensure player: %w", err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	balance, err := tx.BalanceForUpdate(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: lock balance: %w", err)
	}

	entry = &domain.LedgerEntry{
		ID:           uuid.New(),
		PlayerID:     playerID,
		Amount:       amount,
		AmountBefore: balance,
		CreatedAt:    time.Now().UTC(),
	}
	if err = tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: append ledger entry: %w", err)
	}
	if err = tx.SetBalance(ctx, playerID, balance.Add(amount)); err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: set balance: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("wallet_service.Deposit: commit: %w", err)
	}

	return entry, nil
}

// GetBalance returns the player's current balance.
func (s *WalletService) GetBalance(ctx context.Context, playerID int64) (*domain.Player, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("wallet_service.GetBalance: %w", err)
	}
	return player, nil
}

// Ledger returns a player's balance-transaction history, paginated.
func (s *WalletService) Ledger(ctx context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	entries, err := s.store.PlayerLedger(ctx, playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("wallet_service.Ledger: %w", err)
	}
	return entries, nil
}

// LedgerAudit is the result of replaying a player's ledger against the stored
// balance. Players start at zero, so the entry amounts must sum to the
// current balance exactly.
type LedgerAudit struct {
	PlayerID   int64           `json:"player_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Consistent bool            `json:"consistent"`
}

// VerifyLedger recomputes the player's balance from the ledger and reports
// whether it matches the stored value.
func (s *WalletService) VerifyLedger(ctx context.Context, playerID int64) (*LedgerAudit, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("wallet_service.VerifyLedger: get player: %w", err)
	}
	sum, err := s.store.LedgerSum(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("wallet_service.VerifyLedger: ledger sum: %w", err)
	}
	return &LedgerAudit{
		PlayerID:   playerID,
		Balance:    player.Balance,
		LedgerSum:  sum,
		Consistent: player.Balance.Equal(sum),
	}, nil
}
