package wire

import (
	"fitbook/internal/adaptor"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	accounts middleware.AccountEnsurer,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))

		// GET /api/account - Account state including frozen flag
		r.Get("/api/account", accountHandler.GetAccount)

		// POST /api/account/freeze - Pause the membership
		r.Post("/api/account/freeze", accountHandler.Freeze)

		// POST /api/account/unfreeze - Resume the membership
		r.Post("/api/account/unfreeze", accountHandler.Unfreeze)
	})
}
