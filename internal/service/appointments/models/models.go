package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	ClientID           int64  `json:"clientId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetSalonAppointmentsRequest запрос на получение записей салона
type GetSalonAppointmentsRequest struct {
	SalonSlug       string     `json:"salonSlug"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeCanceled bool       `json:"includeCanceled,omitempty"` // Включить отменённые записи
}

// Response модели

// AppointmentResponse запись для отдачи наружу
type AppointmentResponse struct {
	ID       int64 `json:"id"`
	SalonID  int64 `json:"salonId"`
	ClientID int64 `json:"clientId"`

	StartsAt string `json:"startsAt"` // RFC3339, UTC
	EndsAt   string `json:"endsAt"`   // RFC3339, UTC

	// Локальное представление в поясе салона
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM

	Status          string             `json:"status"`
	DurationMinutes int                `json:"durationMinutes"`
	TotalPriceMinor int64              `json:"totalPriceMinor"`
	LineItems       []LineItemResponse `json:"lineItems"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CanceledAt         *string `json:"canceledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LineItemResponse позиция услуги в записи
type LineItemResponse struct {
	ID              int64  `json:"id"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	ServiceName     string `json:"serviceName"`
	PriceMinor      int64  `json:"priceMinor"`
	DurationMinutes int    `json:"durationMinutes"`
	Position        int    `json:"position"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в response.
// loc - часовой пояс салона для локального представления времени.
func FromDomainAppointment(appt *domain.Appointment, loc *time.Location) AppointmentResponse {
	items := make([]LineItemResponse, len(appt.LineItems))
	duration := 0
	for i, item := range appt.LineItems {
		items[i] = LineItemResponse{
			ID:              item.ID,
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			PriceMinor:      item.PriceMinor,
			DurationMinutes: item.DurationMinutes,
			Position:        item.Position,
		}
		duration += item.DurationMinutes
	}

	localStart := appt.StartsAt.In(loc)

	var canceledAt *string
	if appt.CanceledAt != nil {
		formatted := appt.CanceledAt.UTC().Format(time.RFC3339)
		canceledAt = &formatted
	}

	return AppointmentResponse{
		ID:                 appt.ID,
		SalonID:            appt.SalonID,
		ClientID:           appt.ClientID,
		StartsAt:           appt.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:             appt.EndsAt.UTC().Format(time.RFC3339),
		Date:               localStart.Format(domain.DateFormat),
		StartTime:          localStart.Format(domain.TimeFormat),
		Status:             string(appt.Status),
		DurationMinutes:    duration,
		TotalPriceMinor:    appt.TotalPriceMinor(),
		LineItems:          items,
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CanceledAt:         canceledAt,
		CreatedAt:          appt.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          appt.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainAppointments конвертирует список доменных записей в response
func FromDomainAppointments(appointments []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	result := make([]AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		result[i] = FromDomainAppointment(appt, loc)
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// ToDomainAppointmentStatus конвертирует строку в доменный статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusBooked, domain.StatusCanceled, domain.StatusCompleted:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
