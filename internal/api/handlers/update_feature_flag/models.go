package update_feature_flag

import "github.com/glowbeauty/salon-booking-service/internal/service/features/models"

// UpdateFeatureFlagRequest HTTP request model
type UpdateFeatureFlagRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateFeatureFlagRequest) ToServiceRequest(actor string) *models.UpdateFlagRequest {
	return &models.UpdateFlagRequest{
		Name:    r.Name,
		Enabled: r.Enabled,
		Actor:   actor,
	}
}
