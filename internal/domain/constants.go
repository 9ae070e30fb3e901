package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240

	// Ограничение длительности услуги, зеркалит лимит каталога.
	// Не даёт поиску слотов работать по неограниченному интервалу.
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 часов

	MinSalonCapacity = 0
	MaxSalonCapacity = 100

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSlugLength               = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих вместимость салона.
// Используется при подсчёте занятости слотов.
var ActiveStatuses = []AppointmentStatus{
	StatusBooked,
	StatusCompleted,
}
