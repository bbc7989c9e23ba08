package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelbet/sportsbook/internal/domain"
	"github.com/hazelbet/sportsbook/internal/service"
	"github.com/shopspring/decimal"
)

// Wallet is the slice of the wallet service the HTTP layer needs. Router tests
// substitute a fake.
type Wallet interface {
	Deposit(ctx context.Context, playerID int64, amount decimal.Decimal) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, playerID int64) (*domain.Player, error)
	Ledger(ctx context.Context, playerID int64, limit, offset int) ([]*domain.LedgerEntry, error)
	VerifyLedger(ctx context.Context, playerID int64) (*service.LedgerAudit, error)
}

// WalletHandler serves balance, deposit, and ledger endpoints.
type WalletHandler struct {
	walletSvc Wallet
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(walletSvc Wallet) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetBalance godoc
// GET /api/players/:id/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}

	player, err := h.walletSvc.GetBalance(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "player not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch balance")
		return
	}
	respondSuccess(c, http.StatusOK, player.ToBalanceResponse())
}

// Deposit godoc
// POST /api/players/:id/deposit
// Body: {"amount":"100.00"}
func (h *WalletHandler) Deposit(c *gin.Context) {
	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}

	var body struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", "amount must be a decimal string")
		return
	}

	entry, err := h.walletSvc.Deposit(c.Request.Context(), playerID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", "amount must be positive")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not credit balance")
		return
	}
	respondSuccess(c, http.StatusCreated, entry)
}

// GetTransactions godoc
// GET /api/players/:id/transactions?page=1&limit=20
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	entries, err := h.walletSvc.Ledger(c.Request.Context(), playerID, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch transactions")
		return
	}
	respondList(c, entries, len(entries), page, limit)
}

// GetReconciliation godoc
// GET /api/players/:id/reconciliation
func (h *WalletHandler) GetReconciliation(c *gin.Context) {
	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}

	audit, err := h.walletSvc.VerifyLedger(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "player not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not verify ledger")
		return
	}
	respondSuccess(c, http.StatusOK, audit)
}
