package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	"github.com/glowbeauty/salon-booking-service/internal/api/middleware"
	rescheduleBooking "github.com/glowbeauty/salon-booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format"
	msgBookingNotFound    = "booking not found"
	msgFeatureDisabled    = "online booking is currently disabled"
	msgTerminalState      = "booking is in a terminal state and cannot be rescheduled"
	msgSlotNotAvailable   = "requested time slot is not available"
	msgSalonClosed        = "salon is closed on the requested date"
	msgInvalidInput       = "invalid input data"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/salon/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actor)
	if err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrFeatureDisabled):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Booking calendar disabled")
			handlers.RespondForbidden(w, handlers.CodeFeatureDisabled, msgFeatureDisabled)

		case errors.Is(err, rescheduleBooking.ErrTerminalState):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Terminal state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTerminalState, msgTerminalState)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Slot not available: booking_id=%d, date=%s, time=%s",
				bookingID, req.NewDate, req.NewStartTime)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeSlotUnavailable, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrSalonClosed):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Salon closed: date=%s", req.NewDate)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate),
			errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot),
			errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /salon/bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salon/bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, date=%s, time=%s, actor=%s",
		bookingID, req.NewDate, req.NewStartTime, actor)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
