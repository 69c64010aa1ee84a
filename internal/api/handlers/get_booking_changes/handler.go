package get_booking_changes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	bookingsService "github.com/glowbeauty/salon-booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking ID"
	msgBookingNotFound  = "booking not found"
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

// Handle GET /api/v1/salon/bookings/{bookingId}/changes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salon/bookings/{id}/changes - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetChanges(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /salon/bookings/{id}/changes - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrFeatureDisabled):
			h.logger.Warn("GET /salon/bookings/{id}/changes - Booking calendar disabled")
			handlers.RespondForbidden(w, handlers.CodeFeatureDisabled, msgFeatureDisabled)

		default:
			h.logger.Error("GET /salon/bookings/{id}/changes - Failed to get change log: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salon/bookings/{id}/changes - Change log retrieved: booking_id=%d, entries=%d",
		bookingID, len(result.Changes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
