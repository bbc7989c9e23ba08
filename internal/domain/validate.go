package domain

import "github.com/shopspring/decimal"

// ──────────────────────────────────────────────────────────────────────────────
// Betslip rule set
// ──────────────────────────────────────────────────────────────────────────────

// Betting limits. The boundary comparisons are strict, so the boundary values
// themselves are accepted (a stake of exactly 0.3 or 10000 passes).
var (
	MinStake     = decimal.NewFromFloat(0.3)
	MaxStake     = decimal.NewFromInt(10000)
	MinOdds      = decimal.NewFromInt(1)
	MaxOdds      = decimal.NewFromInt(10000)
	MaxWinAmount = decimal.NewFromInt(20000)
)

// Selection count limits per betslip.
const (
	MinSelections = 1
	MaxSelections = 20
)

// Validate evaluates a betslip against the full rule set. Pure and
// deterministic: no I/O, no side effects, identical findings for identical
// input.
//
// The structural precondition (player id, stake, and selections all present)
// is checked first and short-circuits to a single code-1 finding. Every other
// rule is evaluated and accumulated even when several fail at once, so the
// caller always sees the complete violation set. Per-selection findings are
// produced in submission order; duplicate detection is order-sensitive — the
// first occurrence of an id never raises a finding, every later one does.
func Validate(slip Betslip, player Player) ([]Finding, []SelectionFinding) {
	if slip.PlayerID <= 0 || !slip.StakeAmount.Valid || slip.Selections == nil {
		return []Finding{NewFinding(CodeStructureMismatch)}, []SelectionFinding{}
	}

	var globals []Finding
	stake := slip.Stake()

	if stake.LessThan(MinStake) {
		globals = append(globals, NewFinding(CodeMinStake))
	}
	if stake.GreaterThan(MaxStake) {
		globals = append(globals, NewFinding(CodeMaxStake))
	}

	// A present-but-empty selection list is a count violation, not a
	// structural one.
	if len(slip.Selections) < MinSelections {
		globals = append(globals, NewFinding(CodeMinSelections))
	}
	if len(slip.Selections) > MaxSelections {
		globals = append(globals, NewFinding(CodeMaxSelections))
	}

	if slip.MaxWinAmount().GreaterThan(MaxWinAmount) {
		globals = append(globals, NewFinding(CodeMaxWinAmount))
	}

	if !player.CanAfford(stake) {
		globals = append(globals, NewFinding(CodeInsufficientBalance))
	}

	var selections []SelectionFinding
	seen := make(map[int64]struct{}, len(slip.Selections))
	for _, sel := range slip.Selections {
		if sel.Odds.LessThan(MinOdds) {
			selections = append(selections, NewSelectionFinding(CodeMinOdds, sel.ID))
		}
		if sel.Odds.GreaterThan(MaxOdds) {
			selections = append(selections, NewSelectionFinding(CodeMaxOdds, sel.ID))
		}
		if _, dup := seen[sel.ID]; dup {
			selections = append(selections, NewSelectionFinding(CodeDuplicateSelection, sel.ID))
		}
		seen[sel.ID] = struct{}{}
	}

	return globals, selections
}
