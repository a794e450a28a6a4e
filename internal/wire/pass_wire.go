package wire

import (
	"fitbook/internal/adaptor"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePass(
	r chi.Router,
	passHandler *adaptor.PassHandler,
	accounts middleware.AccountEnsurer,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))

		// GET /api/passes/active - Current tourist pass, if any
		r.Get("/api/passes/active", passHandler.GetActivePass)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/passes - Grant a tourist pass
		r.Post("/api/admin/passes", passHandler.GrantPass)
	})
}
