package adaptor

import (
	"encoding/json"
	"net/http"

	"fitbook/internal/dto/request"
	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassHandler struct {
	service usecase.ClassService
	log     *zap.Logger
}

func NewClassHandler(service usecase.ClassService, log *zap.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log.With(zap.String("handler", "class")),
	}
}

// ListClasses handles GET /api/classes (public)
func (h *ClassHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	classes, err := h.service.ListClasses(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list classes")
		return
	}

	utils.ResponseSuccess(w, "success", classes)
}

// GetClass handles GET /api/classes/{id} (public)
func (h *ClassHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	classID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid class ID", nil)
		return
	}

	class, err := h.service.GetClass(r.Context(), classID)
	if err != nil {
		handleServiceError(h.log, w, err, "get class")
		return
	}

	utils.ResponseSuccess(w, "success", class)
}

// ==================== ADMIN METHODS ====================

// CreateClass handles POST /api/admin/classes (admin only)
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	class, err := h.service.CreateClass(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create class")
		return
	}

	utils.ResponseCreated(w, "success", class)
}
