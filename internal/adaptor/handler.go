package adaptor

import (
	"errors"
	"net/http"

	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Credit  *CreditHandler
	Booking *BookingHandler
	Account *AccountHandler
	Pass    *PassHandler
	Class   *ClassHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Credit:  NewCreditHandler(service.Credit, log),
		Booking: NewBookingHandler(service.Booking, log),
		Account: NewAccountHandler(service.Account, log),
		Pass:    NewPassHandler(service.Pass, log),
		Class:   NewClassHandler(service.Class, log),
	}
}

// handleServiceError maps usecase sentinel errors onto HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInsufficientCredits):
		log.Warn(operation+" failed - insufficient credits",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrClassFull):
		log.Warn(operation+" failed - class full",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrAccountFrozen):
		log.Warn(operation+" failed - account frozen",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrPassExhausted):
		log.Warn(operation+" failed - pass exhausted",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrAlreadyInState):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
