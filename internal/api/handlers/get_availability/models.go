package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID   int64  `json:"salonId"`
	SalonName string `json:"salonName"`
	SalonSlug string `json:"salonSlug"`
	Timezone  string `json:"timezone"`
	Capacity  *int   `json:"capacity,omitempty"`

	Date               string `json:"date"`
	DurationMinutes    int    `json:"durationMinutes"`
	GranularityMinutes int    `json:"granularityMinutes"`

	Slots []AvailabilitySlot `json:"slots"`
}

// AvailabilitySlot модель временного слота
type AvailabilitySlot struct {
	StartsAt  string `json:"startsAt"`  // RFC3339, UTC
	EndsAt    string `json:"endsAt"`    // RFC3339, UTC
	StartTime string `json:"startTime"` // HH:MM в поясе салона
	Available bool   `json:"available"`

	// Отсутствует, если вместимость салона не ограничена
	RemainingCapacity *int `json:"remainingCapacity,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response, loc *time.Location) *AvailabilityResponse {
	slots := make([]AvailabilitySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailabilitySlot{
			StartsAt:          slot.StartsAt.Format(time.RFC3339),
			EndsAt:            slot.EndsAt.Format(time.RFC3339),
			StartTime:         slot.StartsAt.In(loc).Format(domain.TimeFormat),
			Available:         slot.Available,
			RemainingCapacity: slot.RemainingCapacity,
		}
	}

	return &AvailabilityResponse{
		SalonID:            resp.SalonID,
		SalonName:          resp.SalonName,
		SalonSlug:          resp.SalonSlug,
		Timezone:           resp.Timezone,
		Capacity:           resp.Capacity,
		Date:               resp.Date.Format(domain.DateFormat),
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(salonSlug, dateStr string, durationMinutes int, granularityMinutes *int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		SalonSlug:          salonSlug,
		Date:               date,
		DurationMinutes:    durationMinutes,
		GranularityMinutes: granularityMinutes,
	}, nil
}
