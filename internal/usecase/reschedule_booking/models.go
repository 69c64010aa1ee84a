package reschedule_booking

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	BookingID    int64            // ID записи
	NewDate      time.Time        // Новая дата (без времени)
	NewStartTime types.TimeString // Новое время начала
	Reason       string           // Причина переноса (обязательна)
	Actor        string           // Кто выполняет перенос (логин из токена)
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64
	ServiceIDs      []int64
	StaffID         *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string // Статус при переносе не меняется

	ClientName   string
	ClientPhone  string
	ServiceNames string
	TotalPrice   float64
	StaffName    *string
	Notes        *string

	// Ссылка wa.me с текстом о переносе для уведомления клиента
	WhatsAppURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
