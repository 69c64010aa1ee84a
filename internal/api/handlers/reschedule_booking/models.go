package reschedule_booking

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	rescheduleBooking "github.com/glowbeauty/salon-booking-service/internal/usecase/reschedule_booking"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDate      string `json:"newDate"`      // "2025-10-15"
	NewStartTime string `json:"newStartTime"` // "10:00"
	Reason       string `json:"reason"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceIDs      []int64 `json:"serviceIds"`
	StaffID         *int64  `json:"staffId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	ServiceNames    string  `json:"serviceNames"`
	TotalPrice      float64 `json:"totalPrice"`
	StaffName       *string `json:"staffName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	WhatsAppURL     string  `json:"whatsappUrl"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID int64, actor string) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		NewDate:      newDate,
		NewStartTime: newStartTime,
		Reason:       r.Reason,
		Actor:        actor,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceIDs:      resp.ServiceIDs,
		StaffID:         resp.StaffID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		ClientPhone:     resp.ClientPhone,
		ServiceNames:    resp.ServiceNames,
		TotalPrice:      resp.TotalPrice,
		StaffName:       resp.StaffName,
		Notes:           resp.Notes,
		WhatsAppURL:     resp.WhatsAppURL,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
