package get_features

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/service/features/models"
)

type FeaturesService interface {
	GetPublic(ctx context.Context) (*models.PublicFlagsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
