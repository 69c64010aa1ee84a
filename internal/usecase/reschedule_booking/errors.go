package reschedule_booking

import "errors"

var (
	// ErrFeatureDisabled возвращается, когда календарь записи выключен фиче-флагом
	ErrFeatureDisabled = errors.New("reschedule_booking: booking calendar is disabled")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrTerminalState возвращается при попытке перенести запись в финальном статусе
	ErrTerminalState = errors.New("reschedule_booking: booking is in terminal state")

	// ErrSalonClosed возвращается, когда салон закрыт в новую дату
	ErrSalonClosed = errors.New("reschedule_booking: salon is closed on this date")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда новое время вне рабочих часов
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен (все места заняты)
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
