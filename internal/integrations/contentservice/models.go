package contentservice

import "time"

// SalonProfile модель профиля салона из контент-сервиса.
// Ядро бронирований читает отсюда рабочие часы и номер WhatsApp.
type SalonProfile struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	WhatsAppNumber string       `json:"whatsappNumber"`
	WorkingHours   WeekSchedule `json:"workingHours"`
}

// WeekSchedule расписание работы салона по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание одного дня
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "10:00"
	CloseTime *string `json:"closeTime,omitempty"` // "20:00"
}

// ForDate возвращает расписание на день недели указанной даты
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Service модель услуги салона
type Service struct {
	ID              int64   `json:"id"`
	CategoryID      int64   `json:"categoryId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMins"`
	Price           float64 `json:"priceStartingAt"`
	Active          bool    `json:"active"`
}

// Staff модель мастера салона.
// Один активный мастер = один параллельный слот записи.
type Staff struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Active          bool     `json:"active"`
	Specializations []string `json:"specializations,omitempty"`
}

// ErrorResponse модель ошибки контент-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
