package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// generateSlots строит сетку кандидатов на указанную календарную дату.
//
// Открытие и закрытие - время стены в поясе салона. Сетка шагает по минутам
// стены от открытия, пока слот целиком помещается до закрытия, а каждый старт
// материализуется в абсолютный момент через time.Date в поясе салона. Поэтому
// перевод часов в эту дату не меняет ни количество слотов, ни их выравнивание
// относительно времени стены.
//
// Закрытый день, отсутствующее расписание или окно короче длительности дают
// пустую сетку - это не ошибка.
func generateSlots(
	schedule domain.DaySchedule,
	date time.Time,
	loc *time.Location,
	durationMinutes int,
	granularityMinutes int,
) ([]domain.TimeSlot, error) {
	if !schedule.IsWorkable() {
		return []domain.TimeSlot{}, nil
	}

	openMin, err := schedule.OpenTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := schedule.CloseTime.Minutes()
	if err != nil {
		return nil, err
	}

	if closeMin-openMin < durationMinutes {
		return []domain.TimeSlot{}, nil
	}

	year, month, day := date.Date()

	slots := make([]domain.TimeSlot, 0, (closeMin-openMin)/granularityMinutes+1)
	for start := openMin; start+durationMinutes <= closeMin; start += granularityMinutes {
		slots = append(slots, domain.TimeSlot{
			StartsAt: time.Date(year, month, day, 0, start, 0, 0, loc).UTC(),
			EndsAt:   time.Date(year, month, day, 0, start+durationMinutes, 0, 0, loc).UTC(),
		})
	}

	return slots, nil
}

// dayWindow возвращает границы локальных суток даты как абсолютные моменты.
// Выборка записей по этому окну ловит и записи, перешедшие через полночь
// из предыдущих локальных суток.
func dayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := date.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, loc)
	to := time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	return from.UTC(), to.UTC()
}

// countOverlapping подсчитывает записи, реально пересекающиеся со слотом.
//
// Интервалы полуоткрытые: пересечение есть, только если начало записи СТРОГО
// раньше конца слота И конец записи СТРОГО позже начала слота. Граничащие
// интервалы (запись закончилась ровно к началу слота) пересечением не считаются.
// Отменённые и вырожденные (нулевой длины) записи пропускаются.
func countOverlapping(slot domain.TimeSlot, appointments []*domain.Appointment) int {
	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.IsDegenerate() {
			continue
		}

		if appt.StartsAt.Before(slot.EndsAt) && appt.EndsAt.After(slot.StartsAt) {
			count++
		}
	}

	return count
}

// applyCapacity аннотирует каждый слот доступностью и остатком мест.
//
// Вместимость nil - без ограничения: слот доступен при любом количестве
// пересечений, остаток не сообщается. Вместимость 0 - салон всегда полностью
// занят. Эти два случая никогда не смешиваются.
func applyCapacity(slots []domain.TimeSlot, appointments []*domain.Appointment, capacity *int) []domain.TimeSlot {
	for i := range slots {
		overlapping := countOverlapping(slots[i], appointments)

		if capacity == nil {
			slots[i].Available = true
			slots[i].RemainingCapacity = nil
			continue
		}

		remaining := *capacity - overlapping
		if remaining < 0 {
			remaining = 0
		}

		slots[i].Available = overlapping < *capacity
		slots[i].RemainingCapacity = &remaining
	}

	return slots
}
