package wire

import (
	"net/http"

	"fitbook/internal/adaptor"
	"fitbook/internal/usecase"
	"fitbook/pkg/middleware"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles the router: global middleware first, then each
// domain's routes.
func Wiring(service *usecase.Service, config *utils.Config, log *zap.Logger) *App {
	handler := adaptor.NewHandler(service, log)

	r := chi.NewRouter()

	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})

	wireCredit(r, handler.Credit, service.Account, config, log)
	wireBooking(r, handler.Booking, service.Account, config, log)
	wireAccount(r, handler.Account, service.Account, config, log)
	wirePass(r, handler.Pass, service.Account, config, log)
	wireClass(r, handler.Class, service.Account, config, log)

	return &App{Router: r}
}
