package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hazelbet/sportsbook/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Standard response helpers
// ──────────────────────────────────────────────────────────────────────────────

// respondSuccess writes {"success": true, "data": data} with the given status.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes {"success": false, "error": msg, "code": code}.
func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}

// respondList writes {"success": true, "data": items, "meta": {...}}.
func respondList(c *gin.Context, items interface{}, total, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// respondFindings writes the betslip rejection envelope the legacy clients
// consume: {"errors": [...global findings...], "selections": [...per-selection
// findings...]}. Both arrays are always present, never null.
func respondFindings(c *gin.Context, status int, globals []domain.Finding, selections []domain.SelectionFinding) {
	if globals == nil {
		globals = []domain.Finding{}
	}
	if selections == nil {
		selections = []domain.SelectionFinding{}
	}
	c.AbortWithStatusJSON(status, gin.H{
		"errors":     globals,
		"selections": selections,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared parsing helpers
// ──────────────────────────────────────────────────────────────────────────────

// parsePagination reads ?page= and ?limit= with sane defaults and caps.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return
}

// parsePlayerID reads the :id path parameter as a positive int64.
func parsePlayerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_PLAYER_ID", "player id must be a positive integer")
		return 0, false
	}
	return id, true
}
