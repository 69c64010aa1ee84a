package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	"github.com/glowbeauty/salon-booking-service/internal/api/middleware"
	updateBookingStatus "github.com/glowbeauty/salon-booking-service/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgFeatureDisabled    = "online booking is currently disabled"
	msgTerminalState      = "booking is in a terminal state and cannot be changed"
	msgInvalidTransition  = "status transition is not allowed"
	msgInvalidStaff       = "staff member not found or inactive"
	msgInvalidInput       = "invalid input data"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/salon/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBookingStatus.ErrFeatureDisabled):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Booking calendar disabled")
			handlers.RespondForbidden(w, handlers.CodeFeatureDisabled, msgFeatureDisabled)

		case errors.Is(err, updateBookingStatus.ErrTerminalState):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Terminal state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTerminalState, msgTerminalState)

		case errors.Is(err, updateBookingStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid transition: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeInvalidState, msgInvalidTransition)

		case errors.Is(err, updateBookingStatus.ErrInvalidStaff):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid staff: booking_id=%d, staff_id=%v",
				bookingID, req.StaffID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidStaff, msgInvalidStaff)

		case errors.Is(err, updateBookingStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /salon/bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salon/bookings/{id}/status - Status updated: booking_id=%d, status=%s, actor=%s",
		bookingID, result.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
