package reschedule_booking

import (
	"context"
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
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
	GetSalon(ctx context.Context) (*contentservice.SalonProfile, error)
	GetActiveStaffWithGracefulDegradation(ctx context.Context) ([]contentservice.Staff, error)
}

// WhatsAppLinkBuilder интерфейс построителя wa.me ссылок
type WhatsAppLinkBuilder interface {
	BookingRescheduled(phone, clientName, serviceNames, date, startTime string) string
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
