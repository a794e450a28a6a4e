package wire

import (
	"fitbook/internal/adaptor"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireClass(
	r chi.Router,
	classHandler *adaptor.ClassHandler,
	accounts middleware.AccountEnsurer,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/classes - Browse the schedule (public)
	r.Get("/api/classes", classHandler.ListClasses)

	// GET /api/classes/{id} - Class details (public)
	r.Get("/api/classes/{id}", classHandler.GetClass)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/classes - Publish a class session
		r.Post("/api/admin/classes", classHandler.CreateClass)
	})
}
