package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/hazelbet/sportsbook/internal/service"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory implementation of service.Store used by the
// service tests. Begin takes the store mutex and holds it until Commit or
// Rollback, which models the exclusive row lock the Postgres store takes
// with SELECT ... FOR UPDATE: concurrent placement transactions serialize,
// and each one observes the balance left by the previous commit.
type memStore struct {
	mu      sync.Mutex
	players map[int64]*domain.Player
	bets    map[uuid.UUID]*domain.Bet
	betSeq  []uuid.UUID // insertion order
	ledger  map[int64][]*domain.LedgerEntry

	failInsertBet bool // fault injection for rollback tests
}

func newMemStore() *memStore {
	return &memStore{
		players: make(map[int64]*domain.Player),
		bets:    make(map[uuid.UUID]*domain.Bet),
		ledger:  make(map[int64][]*domain.LedgerEntry),
	}
}

func (m *memStore) EnsurePlayer(_ context.Context, playerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[playerID]; !ok {
		m.players[playerID] = &domain.Player{ID: playerID, Balance: decimal.Zero}
	}
	return nil
}

func (m *memStore) GetPlayer(_ context.Context, playerID int64) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) GetBet(_ context.Context, betID uuid.UUID) (*domain.Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bets[betID]
	if !ok {
		return nil, domain.ErrBetNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) PlayerBets(_ context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Bet
	for i := len(m.betSeq) - 1; i >= 0; i-- { // newest first
		b := m.bets[m.betSeq[i]]
		if b.PlayerID == playerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (m *memStore) PlayerLedger(_ context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.ledger[playerID]
	out := make([]*domain.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- { // newest first
		cp := *entries[i]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (m *memStore) LedgerSum(_ context.Context, playerID int64) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, e := range m.ledger[playerID] {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (m *memStore) Begin(_ context.Context) (service.PlacementTx, error) {
	m.mu.Lock() // held until Commit/Rollback
	return &memTx{store: m}, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── memTx ─────────────────────────────────────────────────────────────────────

// memTx stages writes and applies them on Commit only.
type memTx struct {
	store  *memStore
	staged []func()
	done   bool
}

func (t *memTx) BalanceForUpdate(_ context.Context, playerID int64) (decimal.Decimal, error) {
	p, ok := t.store.players[playerID]
	if !ok {
		return decimal.Zero, domain.ErrPlayerNotFound
	}
	return p.Balance, nil
}

func (t *memTx) SetBalance(_ context.Context, playerID int64, balance decimal.Decimal) error {
	t.staged = append(t.staged, func() {
		t.store.players[playerID].Balance = balance
	})
	return nil
}

func (t *memTx) AppendLedgerEntry(_ context.Context, entry *domain.LedgerEntry) error {
	cp := *entry
	t.staged = append(t.staged, func() {
		t.store.ledger[cp.PlayerID] = append(t.store.ledger[cp.PlayerID], &cp)
	})
	return nil
}

func (t *memTx) InsertBet(_ context.Context, bet *domain.Bet, selections []domain.BetSelection) error {
	if t.store.failInsertBet {
		return errors.New("memstore: simulated insert failure")
	}
	cp := *bet
	cp.Selections = append([]domain.BetSelection(nil), selections...) // submission order preserved
	t.staged = append(t.staged, func() {
		t.store.bets[cp.ID] = &cp
		t.store.betSeq = append(t.store.betSeq, cp.ID)
	})
	return nil
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.New("memstore: tx already finished")
	}
	for _, apply := range t.staged {
		apply()
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.staged = nil
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// seedBalance force-sets a balance without ledgering it. Tests that check the
// ledger invariant must fund players through WalletService.Deposit instead.
func (m *memStore) seedBalance(playerID int64, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[playerID] = &domain.Player{ID: playerID, Balance: balance}
}
