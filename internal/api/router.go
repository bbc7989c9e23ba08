package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hazelbet/sportsbook/internal/api/handler"
	"github.com/hazelbet/sportsbook/internal/api/middleware"
	"github.com/hazelbet/sportsbook/internal/config"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	BetSvc    handler.BetPlacer
	WalletSvc handler.Wallet
	Cfg       *config.Config
}

// SetupRouter creates and configures the main Gin engine with all routes,
// middleware, CORS, and rate limiting rules.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Health check ─────────────────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	betH := handler.NewBetHandler(deps.BetSvc)
	walletH := handler.NewWalletHandler(deps.WalletSvc)

	// ── Rate limiters ─────────────────────────────────────────────────────────
	betRL := middleware.RateLimitMiddleware(deps.Cfg.RateLimit.Bets)
	walletRL := middleware.RateLimitMiddleware(deps.Cfg.RateLimit.Wallet)
	queryRL := middleware.RateLimitMiddleware(deps.Cfg.RateLimit.Queries)

	api := r.Group("/api")
	{
		// ── Bets ─────────────────────────────────────────────────────────────
		bets := api.Group("/bets")
		{
			bets.POST("", betRL, betH.PlaceBet)
			bets.GET("/:id", queryRL, betH.GetBetByID)
		}

		// ── Players ──────────────────────────────────────────────────────────
		players := api.Group("/players")
		{
			players.POST("/:id/deposit", walletRL, walletH.Deposit)
			players.GET("/:id/balance", queryRL, walletH.GetBalance)
			players.GET("/:id/bets", queryRL, betH.GetPlayerBets)
			players.GET("/:id/transactions", queryRL, walletH.GetTransactions)
			players.GET("/:id/reconciliation", queryRL, walletH.GetReconciliation)
		}
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware returns a gin middleware that sets appropriate CORS headers.
// In development all origins are allowed; in production only configured origins.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			// Development: allow any origin
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			allowed := map[string]bool{
				"https://hazelbet.com":     true,
				"https://www.hazelbet.com": true,
			}
			if allowed[origin] {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
