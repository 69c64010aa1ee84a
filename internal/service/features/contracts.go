package features

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
)

// FeatureFlagRepository интерфейс репозитория фиче-флагов
type FeatureFlagRepository interface {
	GetAll(ctx context.Context) ([]*domain.FeatureFlag, error)
	Upsert(ctx context.Context, name string, enabled bool, updatedBy *string) (*domain.FeatureFlag, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
