package models

import (
	"errors"
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение записей за период
type ListBookingsRequest struct {
	FromDate        *time.Time `json:"fromDate,omitempty"`        // Начало периода (опционально)
	ToDate          *time.Time `json:"toDate,omitempty"`          // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		FromDate:        r.FromDate,
		ToDate:          r.ToDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceIDs      []int64 `json:"serviceIds"`
	StaffID         *int64  `json:"staffId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`     // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`

	// Денормализованные данные
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	ServiceNames string  `json:"serviceNames"`
	TotalPrice   float64 `json:"totalPrice"`
	StaffName    *string `json:"staffName,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingChangeResponse строка журнала изменений записи
type BookingChangeResponse struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"bookingId"`
	ChangeType string `json:"changeType"`

	PreviousStatus *string `json:"previousStatus,omitempty"`
	NewStatus      *string `json:"newStatus,omitempty"`

	PreviousStaffID *int64 `json:"previousStaffId,omitempty"`
	NewStaffID      *int64 `json:"newStaffId,omitempty"`

	PreviousDate *string `json:"previousDate,omitempty"` // "2025-10-15"
	NewDate      *string `json:"newDate,omitempty"`
	PreviousTime *string `json:"previousTime,omitempty"` // "10:00"
	NewTime      *string `json:"newTime,omitempty"`

	Reason *string `json:"reason,omitempty"`
	Actor  string  `json:"actor"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingChangeListResponse журнал изменений записи
type BookingChangeListResponse struct {
	Changes []BookingChangeResponse `json:"changes"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ServiceIDs:         b.ServiceIDs,
		StaffID:            b.StaffID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		ServiceNames:       b.ServiceNames,
		TotalPrice:         b.TotalPrice,
		StaffName:          b.StaffName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// FromDomainChange конвертирует строку журнала в DTO
func FromDomainChange(c *domain.BookingChange) *BookingChangeResponse {
	if c == nil {
		return nil
	}

	resp := &BookingChangeResponse{
		ID:              c.ID,
		BookingID:       c.BookingID,
		ChangeType:      string(c.ChangeType),
		PreviousStaffID: c.PreviousStaffID,
		NewStaffID:      c.NewStaffID,
		Reason:          c.Reason,
		Actor:           c.Actor,
		CreatedAt:       c.CreatedAt,
	}

	if c.PreviousStatus != nil {
		s := string(*c.PreviousStatus)
		resp.PreviousStatus = &s
	}
	if c.NewStatus != nil {
		s := string(*c.NewStatus)
		resp.NewStatus = &s
	}
	if c.PreviousDate != nil {
		d := c.PreviousDate.Format(domain.DateFormat)
		resp.PreviousDate = &d
	}
	if c.NewDate != nil {
		d := c.NewDate.Format(domain.DateFormat)
		resp.NewDate = &d
	}
	if c.PreviousTime != nil {
		t := c.PreviousTime.String()
		resp.PreviousTime = &t
	}
	if c.NewTime != nil {
		t := c.NewTime.String()
		resp.NewTime = &t
	}

	return resp
}

// FromDomainChangeList конвертирует журнал изменений в DTO
func FromDomainChangeList(changes []*domain.BookingChange) *BookingChangeListResponse {
	resp := &BookingChangeListResponse{
		Changes: make([]BookingChangeResponse, 0, len(changes)),
	}

	for _, c := range changes {
		resp.Changes = append(resp.Changes, *FromDomainChange(c))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в доменный статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ParseBookingStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
