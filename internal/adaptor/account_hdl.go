package adaptor

import (
	"net/http"

	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"go.uber.org/zap"
)

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With(zap.String("handler", "account")),
	}
}

// GetAccount handles GET /api/account (protected)
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		handleServiceError(h.log, w, err, "get account")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// Freeze handles POST /api/account/freeze (protected)
func (h *AccountHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Freeze(r.Context(), accountID); err != nil {
		handleServiceError(h.log, w, err, "freeze account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Unfreeze handles POST /api/account/unfreeze (protected)
func (h *AccountHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Unfreeze(r.Context(), accountID); err != nil {
		handleServiceError(h.log, w, err, "unfreeze account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
