package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"fitbook/internal/dto/request"
	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassHandler struct {
	service usecase.PassService
	log     *zap.Logger
}

func NewPassHandler(service usecase.PassService, log *zap.Logger) *PassHandler {
	return &PassHandler{
		service: service,
		log:     log.With(zap.String("handler", "pass")),
	}
}

// GetActivePass handles GET /api/passes/active (protected)
func (h *PassHandler) GetActivePass(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	pass, err := h.service.GetActivePass(r.Context(), accountID)
	if err != nil {
		handleServiceError(h.log, w, err, "get active pass")
		return
	}
	if pass == nil {
		utils.ResponseNotFound(w, "No active pass")
		return
	}

	utils.ResponseSuccess(w, "success", pass)
}

// ==================== ADMIN METHODS ====================

// GrantPass handles POST /api/admin/passes (admin only)
func (h *PassHandler) GrantPass(w http.ResponseWriter, r *http.Request) {
	var req request.GrantPassRequest
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

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid starts_at, expected RFC3339", nil)
		return
	}

	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ends_at, expected RFC3339", nil)
		return
	}

	pass, err := h.service.GrantPass(r.Context(), accountID, req.ClassesTotal, startsAt, endsAt)
	if err != nil {
		handleServiceError(h.log, w, err, "grant pass")
		return
	}

	utils.ResponseCreated(w, "success", pass)
}
