package domain_test

import (
	"testing"

	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func stake(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func richPlayer() domain.Player {
	return domain.Player{ID: 1, Balance: dec("1000000")}
}

// validSlip returns a betslip that passes every rule against richPlayer.
func validSlip() domain.Betslip {
	return domain.Betslip{
		PlayerID:    1,
		StakeAmount: stake("10"),
		Selections:  []domain.Selection{{ID: 1, Odds: dec("2")}},
	}
}

func globalCodes(fs []domain.Finding) []domain.Code {
	codes := make([]domain.Code, 0, len(fs))
	for _, f := range fs {
		codes = append(codes, f.Code)
	}
	return codes
}

// ── Structure check ───────────────────────────────────────────────────────────

func TestValidate_StructureMismatch(t *testing.T) {
	cases := map[string]domain.Betslip{
		"missing player id": {
			StakeAmount: stake("10"),
			Selections:  []domain.Selection{{ID: 1, Odds: dec("2")}},
		},
		"missing stake": {
			PlayerID:   1,
			Selections: []domain.Selection{{ID: 1, Odds: dec("2")}},
		},
		"missing selections": {
			PlayerID:    1,
			StakeAmount: stake("10"),
			Selections:  nil,
		},
		"everything missing": {},
	}

	for name, slip := range cases {
		t.Run(name, func(t *testing.T) {
			globals, selections := domain.Validate(slip, richPlayer())
			require.Len(t, globals, 1, "structure check must short-circuit to one finding")
			assert.Equal(t, domain.CodeStructureMismatch, globals[0].Code)
			assert.Equal(t, "Betslip structure mismatch", globals[0].Message)
			assert.Empty(t, selections)
		})
	}
}

func TestValidate_EmptyButPresentSelectionsIsNotStructural(t *testing.T) {
	slip := validSlip()
	slip.Selections = []domain.Selection{} // present, just empty

	globals, _ := domain.Validate(slip, richPlayer())
	assert.Contains(t, globalCodes(globals), domain.CodeMinSelections)
	assert.NotContains(t, globalCodes(globals), domain.CodeStructureMismatch)
}

// ── Stake bounds ──────────────────────────────────────────────────────────────

func TestValidate_StakeBounds(t *testing.T) {
	cases := []struct {
		stake string
		want  []domain.Code
	}{
		{"0", []domain.Code{domain.CodeMinStake}},
		{"0.29", []domain.Code{domain.CodeMinStake}},
		{"0.3", nil}, // boundary accepted
		{"10", nil},
		{"10000", nil}, // boundary accepted
		{"10000.01", []domain.Code{domain.CodeMaxStake}},
	}

	for _, tc := range cases {
		t.Run("stake="+tc.stake, func(t *testing.T) {
			slip := validSlip()
			slip.StakeAmount = stake(tc.stake)

			globals, _ := domain.Validate(slip, richPlayer())
			codes := globalCodes(globals)
			for _, want := range tc.want {
				assert.Contains(t, codes, want)
			}
			if tc.want == nil {
				assert.NotContains(t, codes, domain.CodeMinStake)
				assert.NotContains(t, codes, domain.CodeMaxStake)
			}
		})
	}
}

// ── Selection count bounds ────────────────────────────────────────────────────

func TestValidate_SelectionCountBounds(t *testing.T) {
	build := func(n int) []domain.Selection {
		sels := make([]domain.Selection, 0, n)
		for i := 0; i < n; i++ {
			sels = append(sels, domain.Selection{ID: int64(i + 1), Odds: dec("1.01")})
		}
		return sels
	}

	t.Run("zero selections", func(t *testing.T) {
		slip := validSlip()
		slip.Selections = build(0)
		globals, _ := domain.Validate(slip, richPlayer())
		assert.Contains(t, globalCodes(globals), domain.CodeMinSelections)
	})

	t.Run("twenty selections accepted", func(t *testing.T) {
		slip := validSlip()
		slip.Selections = build(20)
		globals, _ := domain.Validate(slip, richPlayer())
		assert.NotContains(t, globalCodes(globals), domain.CodeMaxSelections)
		assert.NotContains(t, globalCodes(globals), domain.CodeMinSelections)
	})

	t.Run("twenty-one selections rejected", func(t *testing.T) {
		slip := validSlip()
		slip.Selections = build(21)
		globals, _ := domain.Validate(slip, richPlayer())
		assert.Contains(t, globalCodes(globals), domain.CodeMaxSelections)
	})
}

// ── Max win amount ────────────────────────────────────────────────────────────

func TestValidate_MaxWinAmount(t *testing.T) {
	// stake 10 × odds product 2500 = 25000 > 20000
	slip := validSlip()
	slip.StakeAmount = stake("10")
	slip.Selections = []domain.Selection{
		{ID: 1, Odds: dec("50")},
		{ID: 2, Odds: dec("50")},
	}

	globals, selections := domain.Validate(slip, richPlayer())
	assert.Contains(t, globalCodes(globals), domain.CodeMaxWinAmount)
	assert.Empty(t, selections)
}

func TestValidate_MaxWinAmountBoundaryAccepted(t *testing.T) {
	// stake 10 × 2000 = exactly 20000 → accepted
	slip := validSlip()
	slip.Selections = []domain.Selection{{ID: 1, Odds: dec("2000")}}

	globals, _ := domain.Validate(slip, richPlayer())
	assert.NotContains(t, globalCodes(globals), domain.CodeMaxWinAmount)
}

// ── Balance ───────────────────────────────────────────────────────────────────

func TestValidate_InsufficientBalance(t *testing.T) {
	slip := validSlip()
	slip.StakeAmount = stake("50")

	globals, _ := domain.Validate(slip, domain.Player{ID: 1, Balance: dec("49.99")})
	assert.Contains(t, globalCodes(globals), domain.CodeInsufficientBalance)
}

func TestValidate_ExactBalanceAccepted(t *testing.T) {
	slip := validSlip()
	slip.StakeAmount = stake("0.3")

	globals, _ := domain.Validate(slip, domain.Player{ID: 1, Balance: dec("0.3")})
	assert.NotContains(t, globalCodes(globals), domain.CodeInsufficientBalance)
}

// ── Per-selection rules ───────────────────────────────────────────────────────

func TestValidate_OddsBounds(t *testing.T) {
	cases := []struct {
		odds string
		want []domain.Code
	}{
		{"0.99", []domain.Code{domain.CodeMinOdds}},
		{"1", nil},     // boundary accepted
		{"10000", nil}, // boundary accepted (the big payout trips code 9, which is global)
		{"2.5", nil},
		{"10000.01", []domain.Code{domain.CodeMaxOdds}},
	}

	for _, tc := range cases {
		t.Run("odds="+tc.odds, func(t *testing.T) {
			slip := validSlip()
			slip.Selections = []domain.Selection{{ID: 7, Odds: dec(tc.odds)}}

			_, selections := domain.Validate(slip, richPlayer())
			var codes []domain.Code
			for _, sf := range selections {
				assert.Equal(t, int64(7), sf.SelectionID)
				codes = append(codes, sf.Errors.Code)
			}
			for _, want := range tc.want {
				assert.Contains(t, codes, want)
			}
			if tc.want == nil {
				assert.Empty(t, codes)
			}
		})
	}
}

func TestValidate_DuplicateSelections(t *testing.T) {
	slip := validSlip()
	slip.Selections = []domain.Selection{
		{ID: 5, Odds: dec("3")},
		{ID: 5, Odds: dec("4")},
	}

	_, selections := domain.Validate(slip, richPlayer())
	require.Len(t, selections, 1, "only the second occurrence raises a finding")
	assert.Equal(t, int64(5), selections[0].SelectionID)
	assert.Equal(t, domain.CodeDuplicateSelection, selections[0].Errors.Code)
}

func TestValidate_DuplicateSelections_KOccurrences(t *testing.T) {
	// id 9 appears 4 times → exactly 3 duplicate findings
	slip := validSlip()
	slip.Selections = []domain.Selection{
		{ID: 9, Odds: dec("1.5")},
		{ID: 9, Odds: dec("1.5")},
		{ID: 2, Odds: dec("1.5")},
		{ID: 9, Odds: dec("1.5")},
		{ID: 9, Odds: dec("1.5")},
	}

	_, selections := domain.Validate(slip, richPlayer())
	dupes := 0
	for _, sf := range selections {
		if sf.Errors.Code == domain.CodeDuplicateSelection {
			dupes++
			assert.Equal(t, int64(9), sf.SelectionID)
		}
	}
	assert.Equal(t, 3, dupes)
}

// ── Accumulation & determinism ────────────────────────────────────────────────

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	// Tiny stake AND insufficient balance AND bad odds AND a duplicate,
	// all reported at once.
	slip := domain.Betslip{
		PlayerID:    1,
		StakeAmount: stake("0.1"),
		Selections: []domain.Selection{
			{ID: 1, Odds: dec("0.5")},
			{ID: 1, Odds: dec("2")},
		},
	}
	player := domain.Player{ID: 1, Balance: dec("0.05")}

	globals, selections := domain.Validate(slip, player)
	codes := globalCodes(globals)
	assert.Contains(t, codes, domain.CodeMinStake)
	assert.Contains(t, codes, domain.CodeInsufficientBalance)

	var selCodes []domain.Code
	for _, sf := range selections {
		selCodes = append(selCodes, sf.Errors.Code)
	}
	assert.Contains(t, selCodes, domain.CodeMinOdds)
	assert.Contains(t, selCodes, domain.CodeDuplicateSelection)
}

func TestValidate_CleanSlipHasNoFindings(t *testing.T) {
	globals, selections := domain.Validate(validSlip(), richPlayer())
	assert.Empty(t, globals)
	assert.Empty(t, selections)
}

func TestValidate_Idempotent(t *testing.T) {
	slip := domain.Betslip{
		PlayerID:    1,
		StakeAmount: stake("0.1"),
		Selections: []domain.Selection{
			{ID: 1, Odds: dec("0.5")},
			{ID: 1, Odds: dec("2")},
		},
	}
	player := domain.Player{ID: 1, Balance: dec("0.05")}

	g1, s1 := domain.Validate(slip, player)
	g2, s2 := domain.Validate(slip, player)
	assert.Equal(t, g1, g2)
	assert.Equal(t, s1, s2)
}
