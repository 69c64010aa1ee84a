package update_booking_status

import "errors"

var (
	// ErrFeatureDisabled возвращается, когда календарь записи выключен фиче-флагом
	ErrFeatureDisabled = errors.New("update_booking_status: booking calendar is disabled")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrTerminalState возвращается при попытке изменить запись в финальном статусе
	ErrTerminalState = errors.New("update_booking_status: booking is in terminal state")

	// ErrInvalidTransition возвращается, когда переход статуса запрещён
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrInvalidStaff возвращается, когда указанный мастер не существует или неактивен
	ErrInvalidStaff = errors.New("update_booking_status: invalid staff member")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
