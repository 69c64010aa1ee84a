package update_booking_status

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса на смену статуса записи
type Request struct {
	BookingID int64   // ID записи
	NewStatus string  // Целевой статус
	StaffID   *int64  // Назначаемый мастер (опционально, при подтверждении или переназначении)
	Reason    *string // Причина (используется при отмене)
	Actor     string  // Кто выполняет изменение (логин из токена)
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID              int64
	ServiceIDs      []int64
	StaffID         *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ClientName   string
	ClientPhone  string
	ServiceNames string
	TotalPrice   float64
	StaffName    *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Ссылка wa.me для уведомления клиента. Заполняется только при
	// подтверждении и отмене — для completed и no_show уведомление не нужно
	WhatsAppURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
