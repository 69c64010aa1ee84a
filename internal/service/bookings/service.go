package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/booking"
	"github.com/glowbeauty/salon-booking-service/internal/service/bookings/models"
)

// Service сервис чтения записей для панели салона
type Service struct {
	bookingRepo BookingRepository
	changeRepo  ChangeRepository
	flagRepo    FeatureFlagRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	changeRepo ChangeRepository,
	flagRepo FeatureFlagRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		changeRepo:  changeRepo,
		flagRepo:    flagRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if err := s.checkFeatureEnabled(ctx); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает записи салона с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: List(ctx, &ListBookingsRequest{})
// - Записи на дату: FromDate и ToDate указывают на одну дату
// - Записи за период: FromDate и ToDate указывают на разные даты
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, from=%v, to=%v, status=%v, includeInactive=%v",
		req.FromDate, req.ToDate, req.Status, req.IncludeInactive)

	if err := s.checkFeatureEnabled(ctx); err != nil {
		return nil, err
	}

	if req.FromDate != nil && req.ToDate != nil && req.ToDate.Before(*req.FromDate) {
		s.logger.Warn("List: invalid time range, to is before from")
		return nil, ErrInvalidTimeRange
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status=%v", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetChanges получает журнал изменений записи в хронологическом порядке
func (s *Service) GetChanges(ctx context.Context, bookingID int64) (*models.BookingChangeListResponse, error) {
	s.logger.Info("GetChanges: fetching change log for booking id=%d", bookingID)

	if err := s.checkFeatureEnabled(ctx); err != nil {
		return nil, err
	}

	// Проверяем, что запись существует
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetChanges: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetChanges: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetChanges - repository error: %v", ErrInternal, err)
	}

	changes, err := s.changeRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetChanges: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetChanges - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetChanges: fetched %d change log entries for booking id=%d", len(changes), bookingID)
	return models.FromDomainChangeList(changes), nil
}

// checkFeatureEnabled проверяет фиче-флаг календаря записи.
// Панель салона при выключенном календаре получает явную ошибку,
// в отличие от публичной витрины, которой отдаётся пустой список слотов.
func (s *Service) checkFeatureEnabled(ctx context.Context) error {
	enabled, err := s.flagRepo.IsEnabled(ctx, domain.FlagBookingCalendarEnabled)
	if err != nil {
		s.logger.Error("checkFeatureEnabled: failed to check feature flag: %v", err)
		return fmt.Errorf("%w: failed to check feature flag: %v", ErrInternal, err)
	}
	if !enabled {
		s.logger.Warn("checkFeatureEnabled: booking calendar disabled")
		return ErrFeatureDisabled
	}
	return nil
}
