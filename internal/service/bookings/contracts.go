package bookings

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ChangeRepository интерфейс репозитория журнала изменений
type ChangeRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.BookingChange, error)
}

// FeatureFlagRepository интерфейс репозитория фиче-флагов
type FeatureFlagRepository interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
