package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
	"github.com/glowbeauty/salon-booking-service/pkg/ptr"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeFlagRepo struct {
	enabled bool
	err     error
}

func (f *fakeFlagRepo) IsEnabled(_ context.Context, _ string) (bool, error) {
	return f.enabled, f.err
}

type fakeContentClient struct {
	salon    *contentservice.SalonProfile
	services map[int64]*contentservice.Service
	staff    []contentservice.Staff
	staffErr error
}

func (f *fakeContentClient) GetSalon(_ context.Context) (*contentservice.SalonProfile, error) {
	return f.salon, nil
}

func (f *fakeContentClient) GetService(_ context.Context, id int64) (*contentservice.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, contentservice.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeContentClient) GetActiveStaffWithGracefulDegradation(_ context.Context) ([]contentservice.Staff, error) {
	return f.staff, f.staffErr
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

func openDaily(open, close string) contentservice.WeekSchedule {
	day := contentservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
	return contentservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day,
		Thursday: day, Friday: day, Saturday: day, Sunday: day,
	}
}

func testSalon(open, close string) *contentservice.SalonProfile {
	return &contentservice.SalonProfile{
		ID:           1,
		Name:         "Glow Beauty",
		WorkingHours: openDaily(open, close),
	}
}

func activeBooking(id int64, start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeBookingRepo, flags *fakeFlagRepo, content *fakeContentClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, flags, content, 1, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- тесты ---

func TestExecute_ExcludesOverlappingSlots(t *testing.T) {
	// Салон 10:00-20:00, услуга 60 минут, одна запись 14:00-15:00
	// при вместимости 1. Слоты 13:30, 14:00 и 14:30 пересекаются с записью,
	// слоты 10:00 и 15:00 свободны, последний слот дня - 19:00.
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		activeBooking(1, "14:00", 60),
	}}
	content := &fakeContentClient{
		salon: testSalon("10:00", "20:00"),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, Name: "Стрижка", DurationMinutes: 60, Active: true},
		},
		staff: []contentservice.Staff{{ID: 1, Name: "Анна", Active: true}},
	}

	uc := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, content, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)

	starts := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		starts[s.StartTime] = s
	}

	assert.Contains(t, starts, types.TimeString("10:00"))
	assert.Contains(t, starts, types.TimeString("13:00")) // заканчивается ровно в 14:00 - не пересечение
	assert.Contains(t, starts, types.TimeString("15:00")) // начинается ровно в 15:00 - не пересечение
	assert.Contains(t, starts, types.TimeString("19:00")) // последний слот, конец 20:00

	assert.NotContains(t, starts, types.TimeString("13:30"))
	assert.NotContains(t, starts, types.TimeString("14:00"))
	assert.NotContains(t, starts, types.TimeString("14:30"))
	assert.NotContains(t, starts, types.TimeString("19:30")) // конец 20:30 - позже закрытия

	slot := starts[types.TimeString("10:00")]
	assert.Equal(t, types.TimeString("11:00"), slot.EndTime)
	assert.Equal(t, 1, slot.AvailableSpots)
	assert.Equal(t, 1, slot.TotalSpots)
}

func TestExecute_SumsDurationAcrossServices(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	content := &fakeContentClient{
		salon: testSalon("10:00", "12:00"),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
			11: {ID: 11, DurationMinutes: 30, Active: true},
		},
		staff: []contentservice.Staff{{ID: 1, Active: true}},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10, 11}, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)

	// Визит 90 минут в окно 10:00-12:00: помещаются только 10:00 и 10:30
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[1].StartTime)
}

func TestExecute_CapacityFromStaffCount(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	// Две записи на 10:00 при трёх мастерах: остаётся одно место
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		activeBooking(1, "10:00", 60),
		activeBooking(2, "10:00", 60),
	}}
	content := &fakeContentClient{
		salon: testSalon("10:00", "12:00"),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
		},
		staff: []contentservice.Staff{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	uc := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, content, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	first := resp.Slots[0]
	assert.Equal(t, types.TimeString("10:00"), first.StartTime)
	assert.Equal(t, 1, first.AvailableSpots)
	assert.Equal(t, 3, first.TotalSpots)
}

func TestExecute_StaffLookupDegradedUsesFallback(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	content := &fakeContentClient{
		salon: testSalon("10:00", "12:00"),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
		},
		staffErr: contentservice.ErrServiceDegraded,
	}

	uc := NewUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, 2, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, 2, resp.Slots[0].TotalSpots)
}

func TestExecute_FeatureDisabledReturnsEmptySlots(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	content := &fakeContentClient{
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
		},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: false}, content, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Форма ответа совпадает с обычным путём: длительность заполнена
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	// Воскресенье закрыто
	date := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC) // Sunday
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	salon := testSalon("10:00", "20:00")
	salon.WorkingHours.Sunday = contentservice.DaySchedule{IsOpen: false}

	content := &fakeContentClient{
		salon: salon,
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
		},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	now := time.Date(2025, 10, 15, 17, 45, 0, 0, time.UTC)
	date := now

	content := &fakeContentClient{
		salon: testSalon("10:00", "20:00"),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, DurationMinutes: 60, Active: true},
		},
		staff: []contentservice.Staff{{ID: 1}},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
	require.NoError(t, err)

	// В 17:45 остались только 18:00, 18:30 и 19:00
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("19:00"), resp.Slots[2].StartTime)
}

func TestExecute_ServiceErrors(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	t.Run("unknown service", func(t *testing.T) {
		content := &fakeContentClient{
			salon:    testSalon("10:00", "20:00"),
			services: map[int64]*contentservice.Service{},
		}
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, now)

		_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{99}, Date: date})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		content := &fakeContentClient{
			salon: testSalon("10:00", "20:00"),
			services: map[int64]*contentservice.Service{
				10: {ID: 10, DurationMinutes: 60, Active: false},
			},
		}
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, content, now)

		_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []int64{10}, Date: date})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFlagRepo{enabled: true}, &fakeContentClient{}, time.Now())
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{"no services", &Request{ServiceIDs: nil, Date: date}},
		{"non-positive service id", &Request{ServiceIDs: []int64{0}, Date: date}},
		{"too many services", &Request{ServiceIDs: make([]int64, domain.MaxServicesPerBooking+1), Date: date}},
		{"zero date", &Request{ServiceIDs: []int64{10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerateTimeSlots_PastDateReturnsEmpty(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	past := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(contentservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("20:00"),
	}, 60, past, now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}
