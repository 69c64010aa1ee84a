package get_available_slots

import (
	"time"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/integrations/contentservice"
	"github.com/glowbeauty/salon-booking-service/pkg/types"
)

// generateTimeSlots генерирует список кандидатов слотов на день.
// Начала слотов идут с фиксированным шагом domain.SlotStepMinutes от времени
// открытия; кандидат отбрасывается, если его конец выходит за время закрытия.
// Длительность слота равна длительности услуги и от шага не зависит.
func generateTimeSlots(
	workingHours contentservice.DaySchedule,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	// Дата в прошлом — слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: все кандидаты от открытия до закрытия
	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		// Услуга должна закончиться не позже закрытия
		if slotEnd.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: если дата не сегодня - возвращаем всех кандидатов
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: для сегодняшней даты отбрасываем слоты, начало которых уже прошло
	currentTime := types.NewTimeString(now)
	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if slot.IsAfter(currentTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSlots вычисляет количество свободных мест для каждого слота.
// В ответ попадают только слоты, у которых остались свободные места.
func calculateAvailableSlots(
	slots []types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
	capacity int,
) ([]Slot, error) {
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		overlappingCount := countOverlappingBookings(slotStart, slotEnd, bookings)

		availableSpots := capacity - overlappingCount
		if availableSpots <= 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: durationMinutes,
			AvailableSpots:  availableSpots,
			TotalSpots:      capacity,
		})
	}

	return result, nil
}

// countOverlappingBookings подсчитывает количество записей, пересекающихся с указанным слотом
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если одна запись заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func countOverlappingBookings(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) int {
	count := 0

	for _, booking := range bookings {
		// Пропускаем неактивные записи — они не занимают вместимость
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		// Используем строгие неравенства (IsBefore, IsAfter),
		// чтобы граничные случаи не считались пересечением
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
