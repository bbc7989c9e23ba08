package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Betslip (request)
// ──────────────────────────────────────────────────────────────────────────────

// Selection is one leg of a submitted betslip. The identifier references an
// external market outcome not modelled here; the odds are whatever the caller
// submitted at the time of placement.
type Selection struct {
	ID   int64           `json:"id"`
	Odds decimal.Decimal `json:"odds"`
}

// Betslip carries one placement request. It is transient — it exists only for
// the duration of a single Place call and is never persisted as-is.
//
// Optionality matters for the structure check: a stake that was absent from
// the request has StakeAmount.Valid == false, and an absent selections field
// is a nil slice (distinct from a present-but-empty list).
type Betslip struct {
	PlayerID    int64
	StakeAmount decimal.NullDecimal
	Selections  []Selection
}

// Stake returns the submitted stake, or zero when the field was absent.
func (b *Betslip) Stake() decimal.Decimal {
	if !b.StakeAmount.Valid {
		return decimal.Zero
	}
	return b.StakeAmount.Decimal
}

// MaxWinAmount returns stake × product of every selection's odds — the
// potential parlay payout, computed with exact decimal arithmetic.
func (b *Betslip) MaxWinAmount() decimal.Decimal {
	total := b.Stake()
	for _, sel := range b.Selections {
		total = total.Mul(sel.Odds)
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Bet
// ──────────────────────────────────────────────────────────────────────────────

// Bet is an accepted wager. Its selections are written together with it in the
// same transaction; a bet with zero selections never exists.
type Bet struct {
	ID          uuid.UUID       `json:"id"           db:"id"`
	PlayerID    int64           `json:"player_id"    db:"player_id"`
	StakeAmount decimal.Decimal `json:"stake_amount" db:"stake_amount"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`

	// Selections is populated by the store on reads; it is not a column.
	Selections []BetSelection `json:"selections" db:"-"`
}

// BetSelection is one persisted leg of a bet. Odds are a point-in-time
// snapshot of what the caller submitted, not a live reference to any feed.
type BetSelection struct {
	ID          uuid.UUID       `json:"-"            db:"id"`
	BetID       uuid.UUID       `json:"-"            db:"bet_id"`
	SelectionID int64           `json:"selection_id" db:"selection_id"`
	Odds        decimal.Decimal `json:"odds"         db:"odds"`
	Ordinal     int             `json:"-"            db:"ordinal"` // position within the betslip
	CreatedAt   time.Time       `json:"-"            db:"created_at"`
}
