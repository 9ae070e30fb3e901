package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked interval in a salon
type Appointment struct {
	ID       int64
	SalonID  int64
	ClientID int64

	// Абсолютные моменты времени (UTC). Локальное представление в поясе
	// салона вычисляется при отображении, в БД не хранится.
	StartsAt time.Time
	EndsAt   time.Time

	Status AppointmentStatus

	// Снапшоты услуг, принадлежат записи (не каталогу)
	LineItems []AppointmentLineItem

	Notes              *string
	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still consumes salon capacity.
// Отменённые записи вместимость не занимают.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// CanBeCanceled returns true if the appointment can be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusBooked
}

// Duration returns the appointment length
func (a *Appointment) Duration() time.Duration {
	return a.EndsAt.Sub(a.StartsAt)
}

// IsDegenerate returns true for zero or negative length intervals.
// Такие записи - некорректные данные: они терпимы, но не участвуют
// в подсчёте занятости.
func (a *Appointment) IsDegenerate() bool {
	return !a.EndsAt.After(a.StartsAt)
}

// TotalPriceMinor returns the total price of all line items in minor currency units
func (a *Appointment) TotalPriceMinor() int64 {
	var total int64
	for _, item := range a.LineItems {
		total += item.PriceMinor
	}
	return total
}

// AppointmentLineItem represents a service performed within an appointment.
// Name, price and duration are snapshots taken at booking time.
type AppointmentLineItem struct {
	ID            int64
	AppointmentID int64

	// Ссылка на живую услугу каталога. nil, если услуга была удалена -
	// снапшот при этом остаётся валидным.
	ServiceID *int64

	ServiceName     string
	PriceMinor      int64 // Цена в минорных единицах валюты (копейки)
	DurationMinutes int
	Position        int
}

// SalonAppointmentsFilter фильтр для выборки записей салона
type SalonAppointmentsFilter struct {
	SalonID         int64              // Обязательный параметр
	From            *time.Time         // Начало периода, UTC (опционально)
	To              *time.Time         // Конец периода, UTC (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCanceled bool               // Включать ли отменённые записи
}
