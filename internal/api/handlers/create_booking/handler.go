package create_booking

import (
	"errors"
	"net/http"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
	createBooking "github.com/glowbeauty/salon-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid start time format, expected HH:MM"
	msgFeatureDisabled    = "online booking is currently disabled"
	msgSlotNotAvailable   = "the selected time slot is no longer available"
	msgServiceNotFound    = "service not found"
	msgSalonClosed        = "the salon is closed on the selected date"
	msgInvalidBookingDate = "invalid booking date"
	msgInvalidTimeSlot    = "invalid time slot"
	msgInvalidInput       = "invalid input data"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /public/bookings - Failed to parse request: %v", err)
		if req.BookingDate != "" && len(req.BookingDate) == 10 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrFeatureDisabled):
			h.logger.Warn("POST /public/bookings - Booking calendar disabled")
			handlers.RespondForbidden(w, handlers.CodeFeatureDisabled, msgFeatureDisabled)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/bookings - Slot not available: date=%s, time=%s",
				req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeSlotUnavailable, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /public/bookings - Service not found: services=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /public/bookings - Salon closed: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /public/bookings - Invalid booking date: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /public/bookings - Invalid time slot: date=%s, time=%s",
				req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /public/bookings - Booking created: booking_id=%d, date=%s, time=%s",
		result.ID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
