package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable record of one balance change. Entries are
// append-only: for any player, replaying all entries in creation order and
// summing Amount reconstructs the current balance exactly.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"            db:"id"`
	PlayerID     int64           `json:"player_id"     db:"player_id"`
	Amount       decimal.Decimal `json:"amount"        db:"amount"`        // signed delta applied
	AmountBefore decimal.Decimal `json:"amount_before" db:"amount_before"` // balance snapshot before the change
	CreatedAt    time.Time       `json:"created_at"    db:"created_at"`
}

// AmountAfter returns the balance immediately after this entry was applied.
func (e *LedgerEntry) AmountAfter() decimal.Decimal {
	return e.AmountBefore.Add(e.Amount)
}
