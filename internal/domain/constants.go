package domain

// Scheduling constants
const (
	// SlotStepMinutes is the fixed granularity of slot starts
	SlotStepMinutes = 30

	// DefaultFallbackCapacity applies when no staff records exist
	DefaultFallbackCapacity = 1
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxReasonLength       = 500
	MaxClientNameLength   = 120
	MaxServicesPerBooking = 10
)

// Feature flag names
const (
	FlagBookingCalendarEnabled = "booking_calendar_enabled"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих ёмкость салона.
// Используется при подсчёте пересечений для доступности слотов.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, не занимающих ёмкость
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
}
