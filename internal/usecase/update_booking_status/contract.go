package update_booking_status

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, staffID *int64, staffName *string) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// ChangeRepository интерфейс репозитория журнала изменений
type ChangeRepository interface {
	Create(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error)
}

// FeatureFlagRepository интерфейс репозитория фиче-флагов
type FeatureFlagRepository interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
}

// ContentServiceClient интерфейс клиента контент-сервиса
type ContentServiceClient interface {
	GetActiveStaff(ctx context.Context) ([]contentservice.Staff, error)
}

// WhatsAppLinkBuilder интерфейс построителя wa.me ссылок
type WhatsAppLinkBuilder interface {
	BookingConfirmed(phone, clientName, serviceNames, date, startTime string) string
	BookingCancelled(phone, clientName, serviceNames, date, startTime string) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
