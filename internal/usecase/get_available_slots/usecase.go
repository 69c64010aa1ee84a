package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	bookingRepo      BookingRepository
	flagRepo         FeatureFlagRepository
	contentClient    ContentServiceClient
	timeProvider     TimeProvider
	fallbackCapacity int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	flagRepo FeatureFlagRepository,
	contentClient ContentServiceClient,
	fallbackCapacity int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		flagRepo:         flagRepo,
		contentClient:    contentClient,
		timeProvider:     &RealTimeProvider{},
		fallbackCapacity: fallbackCapacity,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: services=%v, date=%s",
		req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем выбранные услуги и суммируем длительность визита
	totalDuration := 0
	for _, id := range req.ServiceIDs {
		service, err := uc.contentClient.GetService(ctx, id)
		if err != nil {
			if errors.Is(err, contentservice.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", id)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.Active {
			uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", id)
			return nil, ErrServiceNotFound
		}

		totalDuration += service.DurationMinutes
	}

	if totalDuration <= 0 {
		uc.logger.Warn("GetAvailableSlots: total duration is non-positive")
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 3. Проверяем фиче-флаг: при выключенном календаре отдаём пустой список,
	// а не ошибку — витрина показывает "запись недоступна" без деталей.
	// Форма ответа та же, что и на обычном пути, включая длительность
	enabled, err := uc.flagRepo.IsEnabled(ctx, domain.FlagBookingCalendarEnabled)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check feature flag: %v", err)
		return nil, fmt.Errorf("%w: failed to check feature flag: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Info("GetAvailableSlots: booking calendar disabled, returning empty slots")
		return uc.emptyResponse(req, totalDuration), nil
	}

	// 4. Получаем текущее время
	now := uc.timeProvider.Now()

	// 5. Получаем профиль салона с рабочими часами
	salon, err := uc.contentClient.GetSalon(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get salon profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon profile: %v", ErrInternal, err)
	}

	// 6. Рабочие часы на указанную дату
	workingHours := salon.WorkingHours.ForDate(req.Date)
	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, totalDuration), nil
	}

	// 7. Вместимость: число активных мастеров, при деградации контент-сервиса —
	// резервная вместимость из конфигурации
	capacity := uc.resolveCapacity(ctx)

	// 8. Генерируем кандидатов слотов с фиксированным шагом
	candidates, err := generateTimeSlots(workingHours, totalDuration, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Получаем все активные записи на эту дату
	filter := domain.BookingsFilter{
		FromDate:        &req.Date,
		ToDate:          &req.Date,
		IncludeInactive: false, // Только активные записи занимают вместимость
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Вычисляем доступность для каждого слота
	slots, err := calculateAvailableSlots(candidates, totalDuration, bookings, capacity)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate availability: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for services=%v, date=%s, capacity=%d",
		len(slots), req.ServiceIDs, req.Date.Format(domain.DateFormat), capacity)

	return &Response{
		Date:            req.Date,
		ServiceIDs:      req.ServiceIDs,
		DurationMinutes: totalDuration,
		Slots:           slots,
	}, nil
}

// resolveCapacity определяет вместимость слота на текущий момент
func (uc *UseCase) resolveCapacity(ctx context.Context) int {
	staff, err := uc.contentClient.GetActiveStaffWithGracefulDegradation(ctx)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: staff lookup degraded, using fallback capacity=%d: %v",
			uc.fallbackCapacity, err)
		return domain.Capacity(0, uc.fallbackCapacity)
	}

	return domain.Capacity(len(staff), uc.fallbackCapacity)
}

func (uc *UseCase) emptyResponse(req *Request, totalDuration int) *Response {
	return &Response{
		Date:            req.Date,
		ServiceIDs:      req.ServiceIDs,
		DurationMinutes: totalDuration,
		Slots:           []Slot{},
	}
}
