package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Salon represents a tenant: a single salon with its own configuration
type Salon struct {
	ID   int64
	Name string
	Slug string // Уникальный URL-идентификатор тенанта

	// IANA идентификатор часового пояса (например, "Europe/Moscow").
	// Рабочие часы задаются временем стены в этом поясе.
	Timezone string

	// Максимальное количество одновременных записей.
	// nil = без ограничения, 0 = салон полностью занят всегда.
	// Эти два случая никогда не смешиваются.
	Capacity *int

	// Шаг сетки слотов по умолчанию (может переопределяться в запросе)
	SlotGranularityMinutes int

	IsActive bool
	Hours    WeekSchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the salon's time zone location
func (s *Salon) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// HasUnboundedCapacity returns true if the salon has no concurrent booking limit
func (s *Salon) HasUnboundedCapacity() bool {
	return s.Capacity == nil
}

// ScheduleFor returns the salon's schedule for the given weekday
func (s *Salon) ScheduleFor(weekday time.Weekday) DaySchedule {
	return s.Hours.ScheduleFor(weekday)
}

// DaySchedule represents salon working hours for a single weekday.
// Times are wall-clock values in the salon's time zone.
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// IsWorkable returns true if the day is open and both bounds are defined.
// Отсутствующее расписание трактуется как выходной, а не как ошибка.
func (d DaySchedule) IsWorkable() bool {
	return d.IsOpen && d.OpenTime != nil && d.CloseTime != nil
}

// WeekSchedule represents the weekly schedule of a salon
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ScheduleFor returns the day schedule for the given weekday
func (w WeekSchedule) ScheduleFor(weekday time.Weekday) DaySchedule {
	switch weekday {
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
