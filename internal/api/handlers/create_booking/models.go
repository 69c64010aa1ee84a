package create_booking

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	createBooking "github.com/glowbeauty/salon-booking-service/internal/usecase/create_booking"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceIDs  []int64 `json:"serviceIds"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
// Запись и wa.me ссылка отдаются вместе: витрина сразу открывает
// ссылку для клиента
type CreateBookingResponse struct {
	Booking     BookingResponse `json:"booking"`
	WhatsAppURL string          `json:"whatsappUrl"`
}

// BookingResponse модель созданной записи
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceIDs      []int64 `json:"serviceIds"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	ServiceNames    string  `json:"serviceNames"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceIDs:  r.ServiceIDs,
		Date:        bookingDate,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: BookingResponse{
			ID:              resp.ID,
			ServiceIDs:      resp.ServiceIDs,
			BookingDate:     resp.BookingDate.Format(domain.DateFormat),
			StartTime:       resp.StartTime.String(),
			DurationMinutes: resp.DurationMinutes,
			Status:          resp.Status,
			ClientName:      resp.ClientName,
			ClientPhone:     resp.ClientPhone,
			ServiceNames:    resp.ServiceNames,
			TotalPrice:      resp.TotalPrice,
			Notes:           resp.Notes,
			CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
			UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
		},
		WhatsAppURL: resp.WhatsAppURL,
	}
}
