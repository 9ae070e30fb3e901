package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonSlug  string  `json:"salonSlug"`
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM в поясе салона
	ServiceIDs []int64 `json:"serviceIds"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID       int64 `json:"id"`
	SalonID  int64 `json:"salonId"`
	ClientID int64 `json:"clientId"`

	StartsAt string `json:"startsAt"` // RFC3339, UTC
	EndsAt   string `json:"endsAt"`   // RFC3339, UTC

	Date      string `json:"date"`
	StartTime string `json:"startTime"`

	Status          string     `json:"status"`
	DurationMinutes int        `json:"durationMinutes"`
	TotalPriceMinor int64      `json:"totalPriceMinor"`
	LineItems       []LineItem `json:"lineItems"`
	Notes           *string    `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LineItem позиция услуги в записи
type LineItem struct {
	ID              int64  `json:"id"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	ServiceName     string `json:"serviceName"`
	PriceMinor      int64  `json:"priceMinor"`
	DurationMinutes int    `json:"durationMinutes"`
	Position        int    `json:"position"`
}

// ToUseCaseRequest создает запрос use case из HTTP запроса
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:   clientID,
		SalonSlug:  r.SalonSlug,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	items := make([]LineItem, len(resp.LineItems))
	for i, item := range resp.LineItems {
		items[i] = LineItem{
			ID:              item.ID,
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			PriceMinor:      item.PriceMinor,
			DurationMinutes: item.DurationMinutes,
			Position:        item.Position,
		}
	}

	return &AppointmentResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		ClientID:        resp.ClientID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		Date:            resp.Date,
		StartTime:       resp.StartTime,
		Status:          resp.Status,
		DurationMinutes: resp.DurationMinutes,
		TotalPriceMinor: resp.TotalPriceMinor,
		LineItems:       items,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
