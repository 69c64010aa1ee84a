package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	bookingRepo "github.com/glowbeauty/salon-booking-service/internal/infra/storage/booking"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
	"github.com/glowbeauty/salon-booking-service/pkg/ptr"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking

	getByIDCalls int
	filterCalls  int
	scheduleDate *time.Time
	scheduleTime *types.TimeString
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.getByIDCalls++
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filterCalls++
	return f.bookings, nil
}

func (f *fakeBookingRepo) UpdateSchedule(_ context.Context, _ int64, date time.Time, startTime types.TimeString) error {
	f.scheduleDate = &date
	f.scheduleTime = &startTime
	f.booking.BookingDate = date
	f.booking.StartTime = startTime
	return nil
}

type fakeChangeRepo struct {
	changes []*domain.BookingChange
}

func (f *fakeChangeRepo) Create(_ context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	f.changes = append(f.changes, change)
	return change, nil
}

type fakeFlagRepo struct {
	enabled  bool
	askCount int
}

func (f *fakeFlagRepo) IsEnabled(_ context.Context, _ string) (bool, error) {
	f.askCount++
	return f.enabled, nil
}

type fakeContentClient struct {
	salon *contentservice.SalonProfile
	staff []contentservice.Staff
}

func (f *fakeContentClient) GetSalon(_ context.Context) (*contentservice.SalonProfile, error) {
	return f.salon, nil
}

func (f *fakeContentClient) GetActiveStaffWithGracefulDegradation(_ context.Context) ([]contentservice.Staff, error) {
	return f.staff, nil
}

type fakeWhatsAppLinks struct {
	calls     int
	lastPhone string
	lastDate  string
	lastTime  string
}

func (f *fakeWhatsAppLinks) BookingRescheduled(phone, _, _, date, startTime string) string {
	f.calls++
	f.lastPhone = phone
	f.lastDate = date
	f.lastTime = startTime
	return "https://wa.me/rescheduled"
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

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              5,
		ServiceIDs:      []int64{10},
		ClientName:      "Мария",
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func validRequest() *Request {
	return &Request{
		BookingID:    5,
		NewDate:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("16:00"),
		Reason:       "клиент попросил перенести",
		Actor:        "owner@glow",
	}
}

func newTestUseCase(repo *fakeBookingRepo, changes *fakeChangeRepo, flags *fakeFlagRepo, staffCount int) (*UseCase, *fakeTxManager) {
	staff := make([]contentservice.Staff, 0, staffCount)
	for i := 0; i < staffCount; i++ {
		staff = append(staff, contentservice.Staff{ID: int64(i + 1), Active: true})
	}
	tx := &fakeTxManager{}
	uc := NewUseCase(repo, changes, flags, &fakeContentClient{salon: testSalon(), staff: staff}, &fakeWhatsAppLinks{}, tx, 1, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)}
	return uc, tx
}

// --- тесты ---

func TestExecute_ReschedulesKeepingStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	changes := &fakeChangeRepo{}
	uc, tx := newTestUseCase(repo, changes, &fakeFlagRepo{enabled: true}, 1)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Статус при переносе не меняется
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), resp.BookingDate)
	assert.Equal(t, types.TimeString("16:00"), resp.StartTime)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, changes.changes, 1)
	change := changes.changes[0]
	assert.Equal(t, domain.ChangeTypeReschedule, change.ChangeType)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), *change.PreviousDate)
	assert.Equal(t, types.TimeString("14:00"), *change.PreviousTime)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), *change.NewDate)
	assert.Equal(t, types.TimeString("16:00"), *change.NewTime)
	assert.Equal(t, "клиент попросил перенести", *change.Reason)
	assert.Nil(t, change.PreviousStatus)
	assert.Nil(t, change.NewStatus)
}

func TestExecute_NotificationLinkUsesNewInterval(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc, _ := newTestUseCase(repo, &fakeChangeRepo{}, &fakeFlagRepo{enabled: true}, 1)
	wa := &fakeWhatsAppLinks{}
	uc.waLinks = wa

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Ответ несёт wa.me ссылку с новым интервалом записи
	assert.Equal(t, "https://wa.me/rescheduled", resp.WhatsAppURL)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, "2025-10-16", wa.lastDate)
	assert.Equal(t, "16:00", wa.lastTime)
}

func TestExecute_OwnIntervalDoesNotBlockReschedule(t *testing.T) {
	// Перенос на полчаса вперёд внутри собственного интервала:
	// единственная запись в окне - сама переносимая
	booking := confirmedBooking()
	repo := &fakeBookingRepo{
		booking:  booking,
		bookings: []*domain.Booking{booking},
	}
	uc, _ := newTestUseCase(repo, &fakeChangeRepo{}, &fakeFlagRepo{enabled: true}, 1)

	req := validRequest()
	req.NewDate = booking.BookingDate
	req.NewStartTime = types.TimeString("14:30")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:30"), resp.StartTime)
}

func TestExecute_ConflictingBookingBlocksReschedule(t *testing.T) {
	booking := confirmedBooking()
	other := &domain.Booking{
		ID:              6,
		StartTime:       types.TimeString("16:30"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}
	repo := &fakeBookingRepo{
		booking:  booking,
		bookings: []*domain.Booking{booking, other},
	}
	changes := &fakeChangeRepo{}
	uc, _ := newTestUseCase(repo, changes, &fakeFlagRepo{enabled: true}, 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.scheduleDate)
	assert.Empty(t, changes.changes)
}

func TestExecute_EmptyReasonRejectedBeforeAnyAccess(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	changes := &fakeChangeRepo{}
	flags := &fakeFlagRepo{enabled: true}
	uc, tx := newTestUseCase(repo, changes, flags, 1)

	req := validRequest()
	req.Reason = "   "

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Запрос отклонён до каких-либо обращений к хранилищу
	assert.Zero(t, flags.askCount)
	assert.Zero(t, repo.getByIDCalls)
	assert.Zero(t, tx.calls)
	assert.Empty(t, changes.changes)
}

func TestExecute_TerminalStateRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted

	repo := &fakeBookingRepo{booking: booking}
	changes := &fakeChangeRepo{}
	uc, _ := newTestUseCase(repo, changes, &fakeFlagRepo{enabled: true}, 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTerminalState)
	assert.Empty(t, changes.changes)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{}, &fakeChangeRepo{}, &fakeFlagRepo{enabled: true}, 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_FeatureDisabled(t *testing.T) {
	uc, tx := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeChangeRepo{}, &fakeFlagRepo{enabled: false}, 1)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFeatureDisabled)
	assert.Zero(t, tx.calls)
}

func TestExecute_NewIntervalOutsideWorkingHours(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeChangeRepo{}, &fakeFlagRepo{enabled: true}, 1)

	req := validRequest()
	req.NewStartTime = types.TimeString("19:30") // запись 60 минут, конец 20:30

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc, _ := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeChangeRepo{}, &fakeFlagRepo{enabled: true}, 1)

	req := validRequest()
	req.NewDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
