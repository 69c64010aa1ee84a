package create_booking

import (
	"context"
	"fmt"
	"strings"
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
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeFlagRepo struct {
	enabled bool
}

func (f *fakeFlagRepo) IsEnabled(_ context.Context, _ string) (bool, error) {
	return f.enabled, nil
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

type fakeWhatsAppLinks struct {
	lastPhone string
}

func (f *fakeWhatsAppLinks) BookingCreated(phone, clientName, serviceNames, date, startTime string) string {
	f.lastPhone = phone
	return fmt.Sprintf("https://wa.me/%s?text=created", phone)
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

func testSalon() *contentservice.SalonProfile {
	day := contentservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("20:00"),
	}
	return &contentservice.SalonProfile{
		ID:   1,
		Name: "Glow Beauty",
		WorkingHours: contentservice.WeekSchedule{
			Monday: day, Tuesday: day, Wednesday: day,
			Thursday: day, Friday: day, Saturday: day, Sunday: day,
		},
	}
}

func testContentClient(staffCount int) *fakeContentClient {
	staff := make([]contentservice.Staff, 0, staffCount)
	for i := 0; i < staffCount; i++ {
		staff = append(staff, contentservice.Staff{ID: int64(i + 1), Active: true})
	}
	return &fakeContentClient{
		salon: testSalon(),
		services: map[int64]*contentservice.Service{
			10: {ID: 10, Name: "Стрижка", DurationMinutes: 60, Price: 1500, Active: true},
			11: {ID: 11, Name: "Укладка", DurationMinutes: 30, Price: 800, Active: true},
		},
		staff: staff,
	}
}

func activeBooking(id int64, start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusPending,
	}
}

func validRequest() *Request {
	return &Request{
		ServiceIDs:  []int64{10},
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("14:00"),
		ClientName:  "Мария",
		ClientPhone: "+7 (900) 123-45-67",
	}
}

func newTestUseCase(repo *fakeBookingRepo, flags *fakeFlagRepo, content *fakeContentClient, fallback int) (*UseCase, *fakeTxManager, *fakeWhatsAppLinks) {
	tx := &fakeTxManager{}
	wa := &fakeWhatsAppLinks{}
	uc := NewUseCase(repo, flags, content, wa, tx, fallback, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc, tx, wa
}

// --- тесты ---

func TestExecute_CreatesPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 42}
	uc, tx, _ := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	req := validRequest()
	req.ServiceIDs = []int64{10, 11}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "Стрижка, Укладка", resp.ServiceNames)
	assert.Equal(t, 2300.0, resp.TotalPrice)
	assert.Equal(t, 1, tx.calls)

	// Проверка занятости и вставка прошли под одной транзакцией
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Nil(t, repo.created.StaffID)
}

func TestExecute_ReturnsWhatsAppLink(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 1}
	uc, _, wa := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/"))
	assert.Equal(t, "+7 (900) 123-45-67", wa.lastPhone)
}

func TestExecute_SlotFullReturnsSlotNotAvailable(t *testing.T) {
	// Вместимость 2, на 14:00 уже две активные записи
	repo := &fakeBookingRepo{
		nextID: 1,
		bookings: []*domain.Booking{
			activeBooking(1, "14:00", 60),
			activeBooking(2, "13:30", 60),
		},
	}
	uc, _, _ := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, testContentClient(2), 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_SecondBookingFitsWithinCapacity(t *testing.T) {
	// Вместимость 2, на 14:00 одна запись - вторая проходит
	repo := &fakeBookingRepo{
		nextID: 2,
		bookings: []*domain.Booking{
			activeBooking(1, "14:00", 60),
		},
	}
	uc, _, _ := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, testContentClient(2), 1)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestExecute_CancelledBookingDoesNotHoldCapacity(t *testing.T) {
	cancelled := activeBooking(1, "14:00", 60)
	cancelled.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{nextID: 2, bookings: []*domain.Booking{cancelled}}
	uc, _, _ := newTestUseCase(repo, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_FeatureDisabled(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 1}
	uc, tx, _ := newTestUseCase(repo, &fakeFlagRepo{enabled: false}, testContentClient(1), 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFeatureDisabled)
	assert.Zero(t, tx.calls)
}

func TestExecute_UnknownServiceReturnsNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{nextID: 1}, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	req := validRequest()
	req.ServiceIDs = []int64{99}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ClosedDayReturnsSalonClosed(t *testing.T) {
	content := testContentClient(1)
	content.salon.WorkingHours.Wednesday = contentservice.DaySchedule{IsOpen: false}

	uc, _, _ := newTestUseCase(&fakeBookingRepo{nextID: 1}, &fakeFlagRepo{enabled: true}, content, 1)

	req := validRequest() // 2025-10-15 - среда
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{nextID: 1}, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	t.Run("before opening", func(t *testing.T) {
		req := validRequest()
		req.StartTime = types.TimeString("09:00")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("ends after closing", func(t *testing.T) {
		req := validRequest()
		req.StartTime = types.TimeString("19:30") // услуга 60 минут, конец 20:30
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})
}

func TestExecute_PastDateAndTime(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{nextID: 1}, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("past time today", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC) // сегодня для фейкового времени
		req.StartTime = types.TimeString("11:00")                 // сейчас 12:00
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})
}

func TestExecute_Validation(t *testing.T) {
	uc, tx, _ := newTestUseCase(&fakeBookingRepo{nextID: 1}, &fakeFlagRepo{enabled: true}, testContentClient(1), 1)

	longNotes := strings.Repeat("a", domain.MaxNotesLength+1)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"empty client name", func(r *Request) { r.ClientName = "  " }},
		{"client name too long", func(r *Request) { r.ClientName = strings.Repeat("x", domain.MaxClientNameLength+1) }},
		{"empty phone", func(r *Request) { r.ClientPhone = "" }},
		{"zero start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time format", func(r *Request) { r.StartTime = "9am" }},
		{"notes too long", func(r *Request) { r.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Zero(t, tx.calls)
}

func TestCountOverlappingBookings_BoundariesDoNotOverlap(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(1, "11:00", 30), // заканчивается ровно в начале слота
		activeBooking(2, "12:00", 30), // начинается ровно в конце слота
		activeBooking(3, "11:20", 20), // пересекает начало слота
	}

	count, err := countOverlappingBookings(types.TimeString("11:30"), 30, bookings, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountOverlappingBookings_ExcludeID(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(7, "11:30", 30),
	}

	count, err := countOverlappingBookings(types.TimeString("11:30"), 30, bookings, ptr.Ptr(int64(7)))
	require.NoError(t, err)
	assert.Zero(t, count)
}
