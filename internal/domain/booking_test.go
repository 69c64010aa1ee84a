package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to no_show", StatusPending, StatusNoShow, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"confirmed to confirmed (staff reassign)", StatusConfirmed, StatusConfirmed, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusConfirmed))
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusNoShow))
	assert.True(t, IsTerminalStatus(StatusCancelled))
}

func TestBooking_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		active bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusNoShow, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			// Переносить можно ровно те записи, что занимают вместимость
			assert.Equal(t, tt.active, b.CanBeRescheduled())
		})
	}
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 90,
	}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:30"), end)
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "no_show", "cancelled"} {
		parsed, ok := ParseBookingStatus(s)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(s), parsed)
	}

	_, ok := ParseBookingStatus("archived")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		name             string
		activeStaffCount int
		fallback         int
		want             int
	}{
		{"staff count wins", 3, 1, 3},
		{"single staff member", 1, 5, 1},
		{"no staff uses fallback", 0, 2, 2},
		{"no staff and no fallback uses default", 0, 0, DefaultFallbackCapacity},
		{"negative fallback uses default", 0, -1, DefaultFallbackCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Capacity(tt.activeStaffCount, tt.fallback))
		})
	}
}
