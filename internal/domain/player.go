package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player is the account a betslip debits. The identifier is supplied by the
// caller (it references an account in an upstream system); rows are created
// lazily on first reference with a zero balance.
//
// Balance is only ever mutated through the atomic debit/credit transactions
// in the service layer — never during validation.
type Player struct {
	ID        int64           `json:"id"         db:"id"`
	Balance   decimal.Decimal `json:"balance"    db:"balance"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CanAfford returns true when the player's balance covers the given stake.
func (p *Player) CanAfford(stake decimal.Decimal) bool {
	return p.Balance.GreaterThanOrEqual(stake)
}

// BalanceResponse is the API-safe view of a player's balance.
type BalanceResponse struct {
	PlayerID int64           `json:"player_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToBalanceResponse converts a Player to its balance view.
func (p *Player) ToBalanceResponse() BalanceResponse {
	return BalanceResponse{PlayerID: p.ID, Balance: p.Balance}
}
