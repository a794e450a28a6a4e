package wire

import (
	"fitbook/internal/adaptor"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	accounts middleware.AccountEnsurer,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))

		// POST /api/bookings - Book a spot in a class
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - View own booking history
		r.Get("/api/bookings", bookingHandler.GetAccountBookings)

		// POST /api/bookings/{id}/cancel - Cancel a confirmed booking
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, accounts, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/bookings/{id}/complete - Mark attendance
		r.Post("/api/admin/bookings/{id}/complete", bookingHandler.CompleteBooking)
	})
}
