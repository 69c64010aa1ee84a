package models

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
)

// UpdateFlagRequest запрос на переключение флага
type UpdateFlagRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Actor   string `json:"-"` // Логин администратора из токена
}

// PublicFlagsResponse публичное представление флагов: имя → состояние.
// Витрина читает только состояние, без служебных полей.
type PublicFlagsResponse struct {
	Features map[string]bool `json:"features"`
}

// FlagResponse полное представление флага для админки
type FlagResponse struct {
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FlagListResponse список флагов для админки
type FlagListResponse struct {
	Features []FlagResponse `json:"features"`
}

// FromDomainFlag конвертирует domain модель в DTO
func FromDomainFlag(f *domain.FeatureFlag) *FlagResponse {
	if f == nil {
		return nil
	}

	return &FlagResponse{
		Name:      f.Name,
		Enabled:   f.Enabled,
		UpdatedBy: f.UpdatedBy,
		UpdatedAt: f.UpdatedAt,
	}
}

// FromDomainFlagList конвертирует список domain моделей в DTO
func FromDomainFlagList(flags []*domain.FeatureFlag) *FlagListResponse {
	resp := &FlagListResponse{
		Features: make([]FlagResponse, 0, len(flags)),
	}

	for _, f := range flags {
		resp.Features = append(resp.Features, *FromDomainFlag(f))
	}

	return resp
}

// ToPublicResponse сводит флаги к публичной карте имя → состояние.
// Отсутствующие в БД известные флаги считаются выключенными.
func ToPublicResponse(flags []*domain.FeatureFlag) *PublicFlagsResponse {
	features := map[string]bool{
		domain.FlagBookingCalendarEnabled: false,
	}

	for _, f := range flags {
		features[f.Name] = f.Enabled
	}

	return &PublicFlagsResponse{Features: features}
}
