package domain

import "errors"

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

var (
	// ErrPlayerNotFound is returned when no player matches the given id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrBetNotFound is returned when no bet matches the given id.
	ErrBetNotFound = errors.New("bet not found")

	// ErrInsufficientBalance is returned when a debit would take a player's
	// balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrPlacementConflict is returned when the storage layer could not
	// serialize a placement against a concurrent one for the same player.
	// The whole Place call is safe to retry.
	ErrPlacementConflict = errors.New("a previous action for this player is still in progress")

	// ErrInvalidAmount is returned when a deposit amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// IsNotFound returns true when err (or any error in its chain) is one of the
// "entity not found" sentinels. Used at the HTTP boundary to map to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrBetNotFound)
}
