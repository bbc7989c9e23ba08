package domain

// ──────────────────────────────────────────────────────────────────────────────
// Finding codes
// ──────────────────────────────────────────────────────────────────────────────

// Code is the stable numeric identifier of a validation finding. The values
// and messages form a wire contract with legacy clients and must not change.
type Code int

const (
	CodeUnknown             Code = 0  // any unmapped code normalizes here
	CodeStructureMismatch   Code = 1  // request missing player id, stake, or selections
	CodeMinStake            Code = 2  // stake < 0.3
	CodeMaxStake            Code = 3  // stake > 10000
	CodeMinSelections       Code = 4  // fewer than 1 selection
	CodeMaxSelections       Code = 5  // more than 20 selections
	CodeMinOdds             Code = 6  // selection odds < 1
	CodeMaxOdds             Code = 7  // selection odds > 10000
	CodeDuplicateSelection  Code = 8  // selection id repeated within the betslip
	CodeMaxWinAmount        Code = 9  // stake × odds product > 20000
	CodeActionNotFinished   Code = 10 // concurrent placement conflict
	CodeInsufficientBalance Code = 11 // balance < stake
)

var messages = map[Code]string{
	CodeUnknown:             "Unknown error",
	CodeStructureMismatch:   "Betslip structure mismatch",
	CodeMinStake:            "Minimum stake amount is 0.3",
	CodeMaxStake:            "Maximum stake amount is 10000",
	CodeMinSelections:       "Minimum number of selections is 1",
	CodeMaxSelections:       "Maximum number of selections is 20",
	CodeMinOdds:             "Minimum odds are 1",
	CodeMaxOdds:             "Maximum odds are 10000",
	CodeDuplicateSelection:  "Duplicate selection found",
	CodeMaxWinAmount:        "Maximum win amount is 20000",
	CodeActionNotFinished:   "Your previous action is not finished yet",
	CodeInsufficientBalance: "Insufficient balance",
}

// ──────────────────────────────────────────────────────────────────────────────
// Findings
// ──────────────────────────────────────────────────────────────────────────────

// Finding is one validation rule violation.
type Finding struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// SelectionFinding is a violation scoped to a single selection, tagged with
// that selection's identifier. The wire shape mirrors the legacy response:
// {"id": <selection id>, "errors": {"code": .., "message": ..}}.
type SelectionFinding struct {
	SelectionID int64   `json:"id"`
	Errors      Finding `json:"errors"`
}

// NewFinding builds a Finding for the given code. Unmapped codes resolve to
// CodeUnknown so the wire never carries a code without a message.
func NewFinding(code Code) Finding {
	msg, ok := messages[code]
	if !ok {
		return Finding{Code: CodeUnknown, Message: messages[CodeUnknown]}
	}
	return Finding{Code: code, Message: msg}
}

// NewSelectionFinding builds a per-selection Finding for the given code.
func NewSelectionFinding(code Code, selectionID int64) SelectionFinding {
	return SelectionFinding{SelectionID: selectionID, Errors: NewFinding(code)}
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidationError
// ──────────────────────────────────────────────────────────────────────────────

// ValidationError carries the complete set of findings for a rejected betslip
// — never just the first violation. It is fully recoverable: when it is
// returned, no state was mutated.
type ValidationError struct {
	Globals    []Finding
	Selections []SelectionFinding
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Globals) > 0 {
		return "betslip rejected: " + e.Globals[0].Message
	}
	if len(e.Selections) > 0 {
		return "betslip rejected: " + e.Selections[0].Errors.Message
	}
	return "betslip rejected"
}

// HasCode reports whether any global finding carries the given code.
func (e *ValidationError) HasCode(code Code) bool {
	for _, f := range e.Globals {
		if f.Code == code {
			return true
		}
	}
	return false
}
