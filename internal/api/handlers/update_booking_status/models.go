package update_booking_status

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	updateBookingStatus "github.com/glowbeauty/salon-booking-service/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status  string  `json:"status"`
	StaffID *int64  `json:"staffId,omitempty"`
	Reason  *string `json:"reason,omitempty"`
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

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	WhatsAppURL *string `json:"whatsappUrl,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID int64, actor string) *updateBookingStatus.Request {
	return &updateBookingStatus.Request{
		BookingID: bookingID,
		NewStatus: r.Status,
		StaffID:   r.StaffID,
		Reason:    r.Reason,
		Actor:     actor,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBookingStatus.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                 resp.ID,
		ServiceIDs:         resp.ServiceIDs,
		StaffID:            resp.StaffID,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		ClientName:         resp.ClientName,
		ClientPhone:        resp.ClientPhone,
		ServiceNames:       resp.ServiceNames,
		TotalPrice:         resp.TotalPrice,
		StaffName:          resp.StaffName,
		Notes:              resp.Notes,
		CancellationReason: resp.CancellationReason,
		WhatsAppURL:        resp.WhatsAppURL,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.CancelledAt != nil {
		cancelled := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelled
	}

	return out
}
