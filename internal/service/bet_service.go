package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// BetService
// ──────────────────────────────────────────────────────────────────────────────

// BetService orchestrates betslip placement: resolve the player, validate,
// then debit the stake, append the ledger entry, and persist the bet with its
// selections inside one storage transaction.
type BetService struct {
	store Store
}

// NewBetService creates a BetService.
func NewBetService(store Store) *BetService {
	return &BetService{store: store}
}

// Place runs one placement request through the full pipeline.
//
// A rule violation is returned as *domain.ValidationError carrying the
// complete finding set; nothing is mutated in that case. The lazy
// player-creation in step 1 is an idempotent upsert, so a rejected betslip
// can still leave behind a zero-balance player row — that row is not
// placement state.
//
// The atomic unit re-reads the balance under the player's row lock and
// re-checks sufficiency there: the balance may have moved between validation
// and commit, and the debit must never push it below zero. A storage-level
// serialization failure surfaces as domain.ErrPlacementConflict; the whole
// call is safe to retry because nothing was committed.
func (s *BetService) Place(ctx context.Context, slip domain.Betslip) (bet *domain.Bet, err error) {
	// ── 1. Resolve the player (find-or-create) ───────────────────────────────
	var player domain.Player
	if slip.PlayerID > 0 {
		if err = s.store.EnsurePlayer(ctx, slip.PlayerID); err != nil {
			return nil, fmt.Errorf("bet_service.Place: ensure player: %w", err)
		}
		p, getErr := s.store.GetPlayer(ctx, slip.PlayerID)
		if getErr != nil {
			return nil, fmt.Errorf("bet_service.Place: get player: %w", getErr)
		}
		player = *p
	}

	// ── 2. Validate — pure, no state touched ─────────────────────────────────
	globals, selections := domain.Validate(slip, player)
	if len(globals) > 0 || len(selections) > 0 {
		return nil, &domain.ValidationError{Globals: globals, Selections: selections}
	}

	stake := slip.Stake()

	// ── 3. Atomic unit ───────────────────────────────────────────────────────
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bet_service.Place: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Re-read under the lock; the validation-time balance may be stale.
	balance, err := tx.BalanceForUpdate(ctx, slip.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("bet_service.Place: lock balance: %w", err)
	}
	if balance.LessThan(stake) {
		err = &domain.ValidationError{
			Globals:    []domain.Finding{domain.NewFinding(domain.CodeInsufficientBalance)},
			Selections: []domain.SelectionFinding{},
		}
		return nil, err
	}

	newBalance := balance.Sub(stake)
	now := time.Now().UTC()

	entry := &domain.LedgerEntry{
		ID:           uuid.New(),
		PlayerID:     slip.PlayerID,
		Amount:       newBalance.Sub(balance), // signed delta, here -stake
		AmountBefore: balance,
		CreatedAt:    now,
	}
	if err = tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("bet_service.Place: append ledger entry: %w", err)
	}

	bet = &domain.Bet{
		ID:          uuid.New(),
		PlayerID:    slip.PlayerID,
		StakeAmount: stake,
		CreatedAt:   now,
	}
	rows := make([]domain.BetSelection, 0, len(slip.Selections))
	for i, sel := range slip.Selections {
		rows = append(rows, domain.BetSelection{
			ID:          uuid.New(),
			BetID:       bet.ID,
			SelectionID: sel.ID,
			Odds:        sel.Odds,
			Ordinal:     i,
			CreatedAt:   now,
		})
	}
	if err = tx.InsertBet(ctx, bet, rows); err != nil {
		return nil, fmt.Errorf("bet_service.Place: insert bet: %w", err)
	}

	if err = tx.SetBalance(ctx, slip.PlayerID, newBalance); err != nil {
		return nil, fmt.Errorf("bet_service.Place: set balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("bet_service.Place: commit: %w", err)
	}

	bet.Selections = rows
	return bet, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Query helpers
// ──────────────────────────────────────────────────────────────────────────────

// GetBet returns a single bet with its selections.
func (s *BetService) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.store.GetBet(ctx, betID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("bet_service.GetBet: %w", err)
	}
	return bet, nil
}

// PlayerBets returns a player's bet history, paginated.
func (s *BetService) PlayerBets(ctx context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error) {
	bets, err := s.store.PlayerBets(ctx, playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bet_service.PlayerBets: %w", err)
	}
	return bets, nil
}
