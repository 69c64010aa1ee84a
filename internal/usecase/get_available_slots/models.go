package get_available_slots

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceIDs []int64   // ID выбранных услуг (минимум одна)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceIDs      []int64   // ID услуг
	DurationMinutes int       // Суммарная длительность визита в минутах
	Slots           []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность слота в минутах
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Общее количество мест (вместимость салона)
}
