package create_booking

import (
	"context"
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// FeatureFlagRepository интерфейс репозитория фиче-флагов
type FeatureFlagRepository interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
}

// ContentServiceClient интерфейс клиента контент-сервиса
type ContentServiceClient interface {
	GetSalon(ctx context.Context) (*contentservice.SalonProfile, error)
	GetService(ctx context.Context, serviceID int64) (*contentservice.Service, error)
	GetActiveStaffWithGracefulDegradation(ctx context.Context) ([]contentservice.Staff, error)
}

// WhatsAppLinkBuilder интерфейс построителя wa.me ссылок
type WhatsAppLinkBuilder interface {
	BookingCreated(phone, clientName, serviceNames, date, startTime string) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
