package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/shopspring/decimal"
)

// BetPlacer is the slice of the bet service the HTTP layer needs. Router tests
// substitute a fake.
type BetPlacer interface {
	Place(ctx context.Context, slip domain.Betslip) (*domain.Bet, error)
	GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error)
	PlayerBets(ctx context.Context, playerID int64, limit, offset int) ([]*domain.Bet, error)
}

// BetHandler serves betslip placement and bet read endpoints.
type BetHandler struct {
	betSvc BetPlacer
}

// NewBetHandler creates a BetHandler.
func NewBetHandler(betSvc BetPlacer) *BetHandler {
	return &BetHandler{betSvc: betSvc}
}

// betslipRequest is the wire shape of a placement request. Pointer fields
// distinguish absent from zero: a request without a stake must trip the
// structure check, not the minimum-stake rule.
type betslipRequest struct {
	PlayerID    *int64             `json:"player_id"`
	StakeAmount *decimal.Decimal   `json:"stake_amount"`
	Selections  []selectionRequest `json:"selections"`
}

type selectionRequest struct {
	ID   int64           `json:"id"`
	Odds decimal.Decimal `json:"odds"`
}

func (r *betslipRequest) toBetslip() domain.Betslip {
	slip := domain.Betslip{}
	if r.PlayerID != nil {
		slip.PlayerID = *r.PlayerID
	}
	if r.StakeAmount != nil {
		slip.StakeAmount = decimal.NewNullDecimal(*r.StakeAmount)
	}
	if r.Selections != nil {
		sels := make([]domain.Selection, 0, len(r.Selections))
		for _, s := range r.Selections {
			sels = append(sels, domain.Selection{ID: s.ID, Odds: s.Odds})
		}
		slip.Selections = sels
	}
	return slip
}

// PlaceBet godoc
// POST /api/bets
// Body: {"player_id":1,"stake_amount":"50","selections":[{"id":11,"odds":"2.0"}]}
func (h *BetHandler) PlaceBet(c *gin.Context) {
	var body betslipRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		// Unparseable bodies get the same code-1 envelope a structurally
		// broken betslip gets; legacy clients only look at the code.
		respondFindings(c, http.StatusBadRequest,
			[]domain.Finding{domain.NewFinding(domain.CodeStructureMismatch)}, nil)
		return
	}

	bet, err := h.betSvc.Place(c.Request.Context(), body.toBetslip())
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondFindings(c, http.StatusBadRequest, vErr.Globals, vErr.Selections)
		case errors.Is(err, domain.ErrPlacementConflict):
			respondFindings(c, http.StatusConflict,
				[]domain.Finding{domain.NewFinding(domain.CodeActionNotFinished)}, nil)
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not place bet")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"bet_id":  bet.ID,
	})
}

// GetBetByID godoc
// GET /api/bets/:id
func (h *BetHandler) GetBetByID(c *gin.Context) {
	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_BET_ID", "invalid bet id")
		return
	}

	bet, err := h.betSvc.GetBet(c.Request.Context(), betID)
	if err != nil {
		if errors.Is(err, domain.ErrBetNotFound) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "bet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch bet")
		return
	}
	respondSuccess(c, http.StatusOK, bet)
}

// GetPlayerBets godoc
// GET /api/players/:id/bets?page=1&limit=20
func (h *BetHandler) GetPlayerBets(c *gin.Context) {
	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	bets, err := h.betSvc.PlayerBets(c.Request.Context(), playerID, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch bets")
		return
	}
	respondList(c, bets, len(bets), page, limit)
}
