package adaptor

import (
	"encoding/json"
	"net/http"

	"fitbook/internal/dto/request"
	"fitbook/internal/dto/response"
	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreditHandler struct {
	service usecase.CreditService
	log     *zap.Logger
}

func NewCreditHandler(service usecase.CreditService, log *zap.Logger) *CreditHandler {
	return &CreditHandler{
		service: service,
		log:     log.With(zap.String("handler", "credit")),
	}
}

// GetBalance handles GET /api/credits/balance (protected)
func (h *CreditHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	credits, err := h.service.GetActiveCredits(r.Context(), accountID)
	if err != nil {
		handleServiceError(h.log, w, err, "get balance")
		return
	}

	utils.ResponseSuccess(w, "success", response.BalanceResponse{
		AccountID: accountID.String(),
		Credits:   credits,
	})
}

// GetBreakdown handles GET /api/credits/breakdown (protected)
func (h *CreditHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	breakdown, err := h.service.GetBreakdown(r.Context(), accountID)
	if err != nil {
		handleServiceError(h.log, w, err, "get breakdown")
		return
	}

	utils.ResponseSuccess(w, "success", breakdown)
}

// GetHistory handles GET /api/credits/history (protected)
func (h *CreditHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	history, err := h.service.GetHistory(r.Context(), accountID, req)
	if err != nil {
		handleServiceError(h.log, w, err, "get credit history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// ==================== ADMIN METHODS ====================

// AddCredits handles POST /api/admin/credits (admin only)
func (h *CreditHandler) AddCredits(w http.ResponseWriter, r *http.Request) {
	var req request.AddCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	source := req.Source
	if source == "" {
		source = "purchased"
	}

	newBalance, err := h.service.AddCredits(r.Context(), accountID, req.Amount, source, req.PaymentReference)
	if err != nil {
		handleServiceError(h.log, w, err, "add credits")
		return
	}

	utils.ResponseSuccess(w, "success", response.BalanceResponse{
		AccountID: accountID.String(),
		Credits:   newBalance,
	})
}

// Reconcile handles GET /api/admin/accounts/{id}/reconcile (admin only)
func (h *CreditHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	result, err := h.service.Reconcile(r.Context(), accountID)
	if err != nil {
		handleServiceError(h.log, w, err, "reconcile account")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
