package domain

import "time"

// TimeSlot represents a candidate bookable window on a given day.
// Слоты вычисляются на каждый запрос и нигде не сохраняются.
type TimeSlot struct {
	StartsAt time.Time // Абсолютный момент начала (UTC)
	EndsAt   time.Time // Абсолютный момент конца (UTC)

	Available bool

	// Количество оставшихся мест. nil = вместимость салона не ограничена.
	RemainingCapacity *int
}

// IsUnbounded returns true if the slot belongs to a salon without a capacity limit
func (s *TimeSlot) IsUnbounded() bool {
	return s.RemainingCapacity == nil
}

// Duration returns the slot length
func (s *TimeSlot) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}
