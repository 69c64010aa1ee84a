package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	bookingRepo      BookingRepository
	flagRepo         FeatureFlagRepository
	contentClient    ContentServiceClient
	waLinks          WhatsAppLinkBuilder
	txManager        TransactionManager
	timeProvider     TimeProvider
	fallbackCapacity int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	flagRepo FeatureFlagRepository,
	contentClient ContentServiceClient,
	waLinks WhatsAppLinkBuilder,
	txManager TransactionManager,
	fallbackCapacity int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		flagRepo:         flagRepo,
		contentClient:    contentClient,
		waLinks:          waLinks,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		fallbackCapacity: fallbackCapacity,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка занятости слота и вставка записи выполняются атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: services=%v, date=%s, time=%s, client=%s",
		req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime, req.ClientName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем фиче-флаг — при выключенном календаре запись невозможна
	enabled, err := uc.flagRepo.IsEnabled(ctx, domain.FlagBookingCalendarEnabled)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check feature flag: %v", err)
		return nil, fmt.Errorf("%w: failed to check feature flag: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Warn("CreateBooking: booking calendar disabled, rejecting request")
		return nil, ErrFeatureDisabled
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем выбранные услуги и агрегируем длительность, цену и названия
	services, err := uc.fetchServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	totalPrice := 0.0
	names := make([]string, 0, len(services))
	for _, s := range services {
		totalDuration += s.DurationMinutes
		totalPrice += s.Price
		names = append(names, s.Name)
	}
	serviceNames := strings.Join(names, ", ")

	if totalDuration <= 0 {
		uc.logger.Warn("CreateBooking: total duration is non-positive")
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 5. Получаем профиль салона
	salon, err := uc.contentClient.GetSalon(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get salon profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon profile: %v", ErrInternal, err)
	}

	// 6. Валидация даты и времени относительно рабочих часов
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	workingHours := salon.WorkingHours.ForDate(req.Date)
	if !workingHours.IsOpen {
		uc.logger.Warn("CreateBooking: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	if err := validateWithinWorkingHours(req.StartTime, totalDuration, workingHours); err != nil {
		uc.logger.Warn("CreateBooking: working hours validation failed: %v", err)
		return nil, err
	}

	if err := validateNotInPast(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	// 7. Вместимость: число активных мастеров, при деградации — резервная
	capacity := uc.resolveCapacity(ctx)

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем все активные записи на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			FromDate:        &req.Date,
			ToDate:          &req.Date,
			IncludeInactive: false, // Только активные записи занимают вместимость
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Проверяем занятость слота уже под блокировкой
		overlappingCount, err := countOverlappingBookings(req.StartTime, totalDuration, bookings, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		// При capacity = 2 допустимо overlappingCount = 0, 1
		// При overlappingCount >= 2 слот недоступен
		if overlappingCount >= capacity {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d spots taken",
				overlappingCount, capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", overlappingCount, capacity)

		// 8.3. Создаем запись с денормализацией данных услуг
		booking := &domain.Booking{
			ServiceIDs:      req.ServiceIDs,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totalDuration,
			Status:          domain.StatusPending,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ServiceNames:    serviceNames,
			TotalPrice:      totalPrice,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 9. Готовим wa.me ссылку для уведомления клиента
	waURL := uc.waLinks.BookingCreated(
		result.ClientPhone,
		result.ClientName,
		result.ServiceNames,
		result.BookingDate.Format(domain.DateFormat),
		result.StartTime.String(),
	)

	return &Response{
		ID:              result.ID,
		ServiceIDs:      result.ServiceIDs,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		ServiceNames:    result.ServiceNames,
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		WhatsAppURL:     waURL,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// fetchServices получает все выбранные услуги и проверяет, что они активны
func (uc *UseCase) fetchServices(ctx context.Context, serviceIDs []int64) ([]*contentservice.Service, error) {
	services := make([]*contentservice.Service, 0, len(serviceIDs))

	for _, id := range serviceIDs {
		service, err := uc.contentClient.GetService(ctx, id)
		if err != nil {
			if errors.Is(err, contentservice.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", id)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.Active {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", id)
			return nil, ErrServiceNotFound
		}

		services = append(services, service)
	}

	return services, nil
}

// resolveCapacity определяет вместимость слота на текущий момент
func (uc *UseCase) resolveCapacity(ctx context.Context) int {
	staff, err := uc.contentClient.GetActiveStaffWithGracefulDegradation(ctx)
	if err != nil {
		uc.logger.Warn("CreateBooking: staff lookup degraded, using fallback capacity=%d: %v",
			uc.fallbackCapacity, err)
		return domain.Capacity(0, uc.fallbackCapacity)
	}

	return domain.Capacity(len(staff), uc.fallbackCapacity)
}
