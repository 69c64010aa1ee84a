package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/booking"
)

// UseCase use case для переноса записи на новые дату и время.
// Статус записи при переносе сохраняется, в журнал пишется строка
// reschedule с прежним и новым интервалом.
type UseCase struct {
	bookingRepo      BookingRepository
	changeRepo       ChangeRepository
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
	changeRepo ChangeRepository,
	flagRepo FeatureFlagRepository,
	contentClient ContentServiceClient,
	waLinks WhatsAppLinkBuilder,
	txManager TransactionManager,
	fallbackCapacity int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		changeRepo:       changeRepo,
		flagRepo:         flagRepo,
		contentClient:    contentClient,
		waLinks:          waLinks,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		fallbackCapacity: fallbackCapacity,
		logger:           logger,
	}
}

// Execute выполняет use case переноса записи
// Проверка занятости нового слота и обновление выполняются в одной
// сериализуемой транзакции; собственный интервал записи при подсчёте
// пересечений исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, newDate=%s, newTime=%s, actor=%s",
		req.BookingID, req.NewDate.Format(domain.DateFormat), req.NewStartTime, req.Actor)

	// 1. Валидация входных данных — при пустой причине запрос отклоняется
	// до каких-либо обращений к БД: запись и журнал остаются нетронутыми
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем фиче-флаг
	enabled, err := uc.flagRepo.IsEnabled(ctx, domain.FlagBookingCalendarEnabled)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to check feature flag: %v", err)
		return nil, fmt.Errorf("%w: failed to check feature flag: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Warn("RescheduleBooking: booking calendar disabled, rejecting request")
		return nil, ErrFeatureDisabled
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Валидация новой даты
	if err := validateDate(req.NewDate, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем профиль салона и рабочие часы на новую дату
	salon, err := uc.contentClient.GetSalon(ctx)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get salon profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon profile: %v", ErrInternal, err)
	}

	workingHours := salon.WorkingHours.ForDate(req.NewDate)
	if !workingHours.IsOpen {
		uc.logger.Warn("RescheduleBooking: salon is closed on %s", req.NewDate.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	// 6. Вместимость: число активных мастеров, при деградации — резервная
	capacity := uc.resolveCapacity(ctx)

	var result *domain.Booking

	// 7. Выполняем перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем запись с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 7.2. Переносить можно только активные записи
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d is in terminal state %s",
				booking.ID, booking.Status)
			return ErrTerminalState
		}

		// 7.3. Новый интервал должен укладываться в рабочие часы
		if err := validateWithinWorkingHours(req.NewStartTime, booking.DurationMinutes, workingHours); err != nil {
			uc.logger.Warn("RescheduleBooking: working hours validation failed: %v", err)
			return err
		}

		if err := validateNotInPast(req.NewDate, req.NewStartTime, now); err != nil {
			uc.logger.Warn("RescheduleBooking: start time validation failed: %v", err)
			return err
		}

		// 7.4. Получаем активные записи на новую дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			FromDate:        &req.NewDate,
			ToDate:          &req.NewDate,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.5. Проверяем занятость нового слота, исключая саму переносимую
		// запись — перенос внутри собственного интервала всегда допустим
		overlappingCount, err := countOverlappingBookings(
			req.NewStartTime, booking.DurationMinutes, bookings, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlappingCount >= capacity {
			uc.logger.Warn("RescheduleBooking: slot not available, %d/%d spots taken",
				overlappingCount, capacity)
			return ErrSlotNotAvailable
		}

		previousDate := booking.BookingDate
		previousTime := booking.StartTime

		// 7.6. Обновляем интервал записи
		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.NewDate, req.NewStartTime); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update schedule for booking id=%d: %v",
				booking.ID, err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		// 7.7. Пишем строку журнала в той же транзакции
		reason := req.Reason
		change := &domain.BookingChange{
			BookingID:    booking.ID,
			ChangeType:   domain.ChangeTypeReschedule,
			PreviousDate: &previousDate,
			PreviousTime: &previousTime,
			NewDate:      &req.NewDate,
			NewTime:      &req.NewStartTime,
			Reason:       &reason,
			Actor:        req.Actor,
		}

		if _, err := uc.changeRepo.Create(txCtx, change); err != nil {
			uc.logger.Error("RescheduleBooking: failed to write change log for booking id=%d: %v",
				booking.ID, err)
			return fmt.Errorf("%w: failed to write change log: %v", ErrInternal, err)
		}

		// 7.8. Перечитываем запись после изменения
		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to reload booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	// 8. Готовим wa.me ссылку с новым интервалом для уведомления клиента
	waURL := uc.waLinks.BookingRescheduled(
		result.ClientPhone,
		result.ClientName,
		result.ServiceNames,
		result.BookingDate.Format(domain.DateFormat),
		result.StartTime.String(),
	)

	return &Response{
		ID:              result.ID,
		ServiceIDs:      result.ServiceIDs,
		StaffID:         result.StaffID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		ServiceNames:    result.ServiceNames,
		TotalPrice:      result.TotalPrice,
		StaffName:       result.StaffName,
		Notes:           result.Notes,
		WhatsAppURL:     waURL,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveCapacity определяет вместимость слота на текущий момент
func (uc *UseCase) resolveCapacity(ctx context.Context) int {
	staff, err := uc.contentClient.GetActiveStaffWithGracefulDegradation(ctx)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: staff lookup degraded, using fallback capacity=%d: %v",
			uc.fallbackCapacity, err)
		return domain.Capacity(0, uc.fallbackCapacity)
	}

	return domain.Capacity(len(staff), uc.fallbackCapacity)
}
