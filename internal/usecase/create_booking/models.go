package create_booking

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceIDs  []int64          // ID выбранных услуг (минимум одна)
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	Notes       *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ServiceIDs      []int64          // ID услуг
	BookingDate     time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Суммарная длительность в минутах
	Status          string           // Статус записи (всегда pending при создании)

	// Денормализованные данные
	ClientName   string  // Имя клиента
	ClientPhone  string  // Телефон клиента
	ServiceNames string  // Названия услуг через запятую
	TotalPrice   float64 // Суммарная стоимость
	Notes        *string // Пожелания

	// Ссылка wa.me для уведомления клиента (готовится сервисом,
	// отправка остаётся на стороне витрины)
	WhatsAppURL string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
