package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/glowbeauty/salon-booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceIDs = "serviceIds query parameter is required"
	msgInvalidServiceIDs = "serviceIds must be a comma-separated list of positive integers"
	msgMissingDate       = "date query parameter is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgServiceNotFound   = "service not found"
	msgInvalidInput      = "invalid input data"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/availability
// Query params: serviceIds (required, "1,2"), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDsParam := r.URL.Query().Get("serviceIds")
	if serviceIDsParam == "" {
		h.logger.Warn("GET /public/availability - Missing serviceIds")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /public/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDs, err := parseServiceIDs(serviceIDsParam)
	if err != nil {
		h.logger.Warn("GET /public/availability - Invalid serviceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceIDs, dateStr)
	if err != nil {
		h.logger.Warn("GET /public/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /public/availability - Service not found: services=%v", useCaseReq.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /public/availability - Failed to get slots: services=%v, date=%s, error=%v",
				useCaseReq.ServiceIDs, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /public/availability - Slots retrieved: services=%v, date=%s, slots_count=%d",
		useCaseReq.ServiceIDs, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
