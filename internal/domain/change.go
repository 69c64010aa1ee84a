package domain

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// ChangeType classifies audit log entries
type ChangeType string

const (
	ChangeTypeStatus     ChangeType = "status_change"
	ChangeTypeReschedule ChangeType = "reschedule"
)

// BookingChange is an append-only audit record written as a side effect of
// every booking mutation. Records are never edited or deleted.
type BookingChange struct {
	ID         int64
	BookingID  int64
	ChangeType ChangeType

	PreviousStatus *BookingStatus
	NewStatus      *BookingStatus

	PreviousStaffID *int64
	NewStaffID      *int64

	PreviousDate *time.Time
	PreviousTime *types.TimeString
	NewDate      *time.Time
	NewTime      *types.TimeString

	// Reason is required for reschedules, optional otherwise
	Reason *string
	Actor  string

	CreatedAt time.Time
}
