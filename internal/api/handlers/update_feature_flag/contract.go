package update_feature_flag

import (
	"context"

	"github.com/glowbeauty/salon-booking-service/internal/service/features/models"
)

type FeaturesService interface {
	Update(ctx context.Context, req *models.UpdateFlagRequest) (*models.FlagResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
