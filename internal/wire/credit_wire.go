package wire

import (
	"fitbook/internal/adaptor"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCredit(
	r chi.Router,
	creditHandler *adaptor.CreditHandler,
	accounts middleware.AccountEnsurer,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))

		// GET /api/credits/balance - Current usable balance
		r.Get("/api/credits/balance", creditHandler.GetBalance)

		// GET /api/credits/breakdown - Balance by acquisition source
		r.Get("/api/credits/breakdown", creditHandler.GetBreakdown)

		// GET /api/credits/history - Paginated audit trail
		r.Get("/api/credits/history", creditHandler.GetHistory)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/credits - Grant credits to an account
		r.Post("/api/admin/credits", creditHandler.AddCredits)

		// GET /api/admin/accounts/{id}/reconcile - Replay the ledger
		r.Get("/api/admin/accounts/{id}/reconcile", creditHandler.Reconcile)
	})
}
