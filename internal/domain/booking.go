package domain

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking represents a client appointment at the salon.
// A booking may combine several services into one visit; its duration is
// the sum of the service durations, fixed at creation time.
type Booking struct {
	ID              int64
	ServiceIDs      []int64
	StaffID         *int64 // nil until a staff member is assigned at confirmation
	ClientName      string
	ClientPhone     string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for dashboard history
	ServiceNames string
	TotalPrice   float64
	StaffName    *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive returns true if the booking holds capacity
// (only pending and confirmed bookings occupy a slot)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are permitted
func (b *Booking) IsTerminal() bool {
	return IsTerminalStatus(b.Status)
}

// CanBeRescheduled returns true if the booking interval may still change
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminalStatus returns true for statuses that permit no further transitions
func IsTerminalStatus(s BookingStatus) bool {
	return s == StatusCompleted || s == StatusNoShow || s == StatusCancelled
}

// CanTransition reports whether the state machine permits from → to.
// confirmed → confirmed is a degenerate transition used purely to change
// the staff assignment.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusConfirmed || to == StatusCompleted || to == StatusNoShow || to == StatusCancelled
	default:
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований салона
type BookingsFilter struct {
	FromDate        *time.Time     // Начало периода (опционально)
	ToDate          *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые/отменённые бронирования
}
