package list_feature_flags

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/service/features/models"
)

type FeaturesService interface {
	GetAll(ctx context.Context) (*models.FlagListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
