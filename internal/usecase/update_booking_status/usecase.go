package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/booking"
)

// UseCase use case для перевода записи в новый статус.
// Покрывает подтверждение, завершение, неявку, отмену и переназначение
// мастера (переход confirmed → confirmed со сменой staffId).
type UseCase struct {
	bookingRepo   BookingRepository
	changeRepo    ChangeRepository
	flagRepo      FeatureFlagRepository
	contentClient ContentServiceClient
	waLinks       WhatsAppLinkBuilder
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	changeRepo ChangeRepository,
	flagRepo FeatureFlagRepository,
	contentClient ContentServiceClient,
	waLinks WhatsAppLinkBuilder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		changeRepo:    changeRepo,
		flagRepo:      flagRepo,
		contentClient: contentClient,
		waLinks:       waLinks,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case смены статуса
// Чтение записи, проверка перехода, обновление и строка журнала
// выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, newStatus=%s, actor=%s",
		req.BookingID, req.NewStatus, req.Actor)

	// 1. Валидация входных данных
	newStatus, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем фиче-флаг
	enabled, err := uc.flagRepo.IsEnabled(ctx, domain.FlagBookingCalendarEnabled)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to check feature flag: %v", err)
		return nil, fmt.Errorf("%w: failed to check feature flag: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Warn("UpdateBookingStatus: booking calendar disabled, rejecting request")
		return nil, ErrFeatureDisabled
	}

	// 3. Валидация мастера, если указан: должен быть среди активных
	var staffName *string
	if req.StaffID != nil {
		name, err := uc.resolveStaffName(ctx, *req.StaffID)
		if err != nil {
			return nil, err
		}
		staffName = name
	}

	var result *domain.Booking

	// 4. Выполняем смену статуса в транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Читаем запись с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 4.2. Проверяем допустимость перехода
		if booking.IsTerminal() {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d is in terminal state %s",
				booking.ID, booking.Status)
			return ErrTerminalState
		}

		if !domain.CanTransition(booking.Status, newStatus) {
			uc.logger.Warn("UpdateBookingStatus: transition %s → %s is not allowed for booking id=%d",
				booking.Status, newStatus, booking.ID)
			return ErrInvalidTransition
		}

		previousStatus := booking.Status
		previousStaffID := booking.StaffID

		// 4.3. Применяем изменение
		if newStatus == domain.StatusCancelled {
			if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to cancel booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
			}
		} else {
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus, req.StaffID, staffName); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
		}

		// 4.4. Пишем строку журнала в той же транзакции
		change := &domain.BookingChange{
			BookingID:       booking.ID,
			ChangeType:      domain.ChangeTypeStatus,
			PreviousStatus:  &previousStatus,
			NewStatus:       &newStatus,
			PreviousStaffID: previousStaffID,
			NewStaffID:      req.StaffID,
			Reason:          req.Reason,
			Actor:           req.Actor,
		}
		if req.StaffID == nil {
			// Мастер не менялся — фиксируем текущее значение
			change.NewStaffID = previousStaffID
		}

		if _, err := uc.changeRepo.Create(txCtx, change); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to write change log for booking id=%d: %v",
				booking.ID, err)
			return fmt.Errorf("%w: failed to write change log: %v", ErrInternal, err)
		}

		// 4.5. Перечитываем запись после изменения
		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to reload booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved to status=%s", result.ID, result.Status)

	// 5. Для подтверждения и отмены готовим wa.me ссылку для уведомления
	// клиента. Отправка best-effort и остаётся на стороне клиента
	var waURL *string
	switch result.Status {
	case domain.StatusConfirmed:
		u := uc.waLinks.BookingConfirmed(
			result.ClientPhone,
			result.ClientName,
			result.ServiceNames,
			result.BookingDate.Format(domain.DateFormat),
			result.StartTime.String(),
		)
		waURL = &u
	case domain.StatusCancelled:
		u := uc.waLinks.BookingCancelled(
			result.ClientPhone,
			result.ClientName,
			result.ServiceNames,
			result.BookingDate.Format(domain.DateFormat),
			result.StartTime.String(),
		)
		waURL = &u
	}

	return toResponse(result, waURL), nil
}

// validateRequest валидирует входные данные и парсит целевой статус
func (uc *UseCase) validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	newStatus, ok := domain.ParseBookingStatus(req.NewStatus)
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}

	// Возврат в pending через этот эндпоинт не предусмотрен
	if newStatus == domain.StatusPending {
		return "", fmt.Errorf("%w: cannot move booking back to pending", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return "", fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	// Назначение мастера имеет смысл только при подтверждении
	if req.StaffID != nil && newStatus != domain.StatusConfirmed {
		return "", fmt.Errorf("%w: staff can only be assigned on confirmation", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Actor) == "" {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	return newStatus, nil
}

// resolveStaffName проверяет, что мастер активен, и возвращает его имя
func (uc *UseCase) resolveStaffName(ctx context.Context, staffID int64) (*string, error) {
	staff, err := uc.contentClient.GetActiveStaff(ctx)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get active staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get active staff: %v", ErrInternal, err)
	}

	for _, s := range staff {
		if s.ID == staffID {
			name := s.Name
			return &name, nil
		}
	}

	uc.logger.Warn("UpdateBookingStatus: staff id=%d is not an active staff member", staffID)
	return nil, ErrInvalidStaff
}

func toResponse(b *domain.Booking, waURL *string) *Response {
	return &Response{
		ID:                 b.ID,
		ServiceIDs:         b.ServiceIDs,
		StaffID:            b.StaffID,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		ServiceNames:       b.ServiceNames,
		TotalPrice:         b.TotalPrice,
		StaffName:          b.StaffName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		WhatsAppURL:        waURL,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
