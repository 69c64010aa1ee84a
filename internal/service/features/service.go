package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/service/features/models"
)

// knownFlags флаги, которыми можно управлять через админку
var knownFlags = map[string]struct{}{
	domain.FlagBookingCalendarEnabled: {},
}

// Service сервис управления фиче-флагами
type Service struct {
	flagRepo FeatureFlagRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса фиче-флагов
func NewService(flagRepo FeatureFlagRepository, logger Logger) *Service {
	return &Service{
		flagRepo: flagRepo,
		logger:   logger,
	}
}

// GetPublic возвращает публичную карту флагов для витрины
func (s *Service) GetPublic(ctx context.Context) (*models.PublicFlagsResponse, error) {
	flags, err := s.flagRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetPublic: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	return models.ToPublicResponse(flags), nil
}

// GetAll возвращает полный список флагов для админки
func (s *Service) GetAll(ctx context.Context) (*models.FlagListResponse, error) {
	flags, err := s.flagRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFlagList(flags), nil
}

// Update переключает флаг.
// Состояние применяется сразу: все операции читают флаг из БД на каждый запрос.
func (s *Service) Update(ctx context.Context, req *models.UpdateFlagRequest) (*models.FlagResponse, error) {
	s.logger.Info("Update: flag=%s, enabled=%v, actor=%s", req.Name, req.Enabled, req.Actor)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: flag name is required", ErrInvalidInput)
	}

	if _, ok := knownFlags[req.Name]; !ok {
		s.logger.Warn("Update: unknown flag %q", req.Name)
		return nil, ErrUnknownFlag
	}

	var updatedBy *string
	if strings.TrimSpace(req.Actor) != "" {
		updatedBy = &req.Actor
	}

	flag, err := s.flagRepo.Upsert(ctx, req.Name, req.Enabled, updatedBy)
	if err != nil {
		s.logger.Error("Update: repository error for flag=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: flag=%s set to enabled=%v", flag.Name, flag.Enabled)
	return models.FromDomainFlag(flag), nil
}
