package get_booking_changes

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetChanges(ctx context.Context, bookingID int64) (*models.BookingChangeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
