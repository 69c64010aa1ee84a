package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	"github.com/glowbeauty/salon-booking-service/internal/domain"
	bookingsService "github.com/glowbeauty/salon-booking-service/internal/service/bookings"
	"github.com/glowbeauty/salon-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidFromDate  = "invalid from date format, expected YYYY-MM-DD"
	msgInvalidToDate    = "invalid to date format, expected YYYY-MM-DD"
	msgInvalidTimeRange = "to date must not be before from date"
	msgInvalidStatus    = "invalid status filter"
	msgFeatureDisabled  = "online booking is currently disabled"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salon/bookings
// Query params: from, to (YYYY-MM-DD), status, includeInactive — все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	query := r.URL.Query()

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /salon/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.FromDate = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /salon/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		req.ToDate = &to
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrFeatureDisabled):
			h.logger.Warn("GET /salon/bookings - Booking calendar disabled")
			handlers.RespondForbidden(w, handlers.CodeFeatureDisabled, msgFeatureDisabled)

		case errors.Is(err, bookingsService.ErrInvalidTimeRange):
			h.logger.Warn("GET /salon/bookings - Invalid time range")
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /salon/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /salon/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salon/bookings - Retrieved %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
