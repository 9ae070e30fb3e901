package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента (из заголовка аутентификации)
	SalonSlug string           // Slug салона
	Date      time.Time        // Календарная дата в поясе салона
	StartTime types.TimeString // Время начала, время стены в поясе салона
	ServiceIDs []int64         // Услуги каталога, минимум одна
	Notes     *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID       int64
	SalonID  int64
	ClientID int64

	StartsAt time.Time // Абсолютный момент начала (UTC)
	EndsAt   time.Time // Абсолютный момент конца (UTC)

	// Локальное представление в поясе салона
	Date      string
	StartTime string

	Status          string
	DurationMinutes int
	TotalPriceMinor int64
	LineItems       []LineItem
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem позиция услуги в ответе
type LineItem struct {
	ID              int64
	ServiceID       *int64
	ServiceName     string
	PriceMinor      int64
	DurationMinutes int
	Position        int
}

// fromDomain конвертирует доменную запись в ответ use case
func fromDomain(appt *domain.Appointment, loc *time.Location, durationMinutes int) *Response {
	items := make([]LineItem, len(appt.LineItems))
	for i, item := range appt.LineItems {
		items[i] = LineItem{
			ID:              item.ID,
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			PriceMinor:      item.PriceMinor,
			DurationMinutes: item.DurationMinutes,
			Position:        item.Position,
		}
	}

	localStart := appt.StartsAt.In(loc)

	return &Response{
		ID:              appt.ID,
		SalonID:         appt.SalonID,
		ClientID:        appt.ClientID,
		StartsAt:        appt.StartsAt,
		EndsAt:          appt.EndsAt,
		Date:            localStart.Format(domain.DateFormat),
		StartTime:       localStart.Format(domain.TimeFormat),
		Status:          string(appt.Status),
		DurationMinutes: durationMinutes,
		TotalPriceMinor: appt.TotalPriceMinor(),
		LineItems:       items,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
