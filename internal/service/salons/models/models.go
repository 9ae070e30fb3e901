package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ErrScheduleIncomplete у открытого дня не заданы часы работы
var ErrScheduleIncomplete = errors.New("open day requires open_time and close_time")

// DaySchedule расписание салона на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// WeekSchedule недельное расписание салона
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// SalonResponse публичный профиль салона
type SalonResponse struct {
	ID                     int64        `json:"id"`
	Name                   string       `json:"name"`
	Slug                   string       `json:"slug"`
	Timezone               string       `json:"timezone"`
	Capacity               *int         `json:"capacity,omitempty"`
	SlotGranularityMinutes int          `json:"slotGranularityMinutes"`
	Hours                  WeekSchedule `json:"hours"`
}

// UpdateSalonSettingsRequest запрос на обновление настроек салона.
// Настройки заменяются целиком: capacity = null означает неограниченную вместимость.
type UpdateSalonSettingsRequest struct {
	SalonSlug              string       `json:"-"`
	Name                   string       `json:"name"`
	Timezone               string       `json:"timezone"`
	Capacity               *int         `json:"capacity"`
	SlotGranularityMinutes int          `json:"slotGranularityMinutes"`
	Hours                  WeekSchedule `json:"hours"`
}

// ServiceResponse услуга салона
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PriceMinor      int64  `json:"priceMinor"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServiceListResponse список услуг салона
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

// FromDomainSalon конвертирует доменный салон в публичный профиль
func FromDomainSalon(salon *domain.Salon) *SalonResponse {
	return &SalonResponse{
		ID:                     salon.ID,
		Name:                   salon.Name,
		Slug:                   salon.Slug,
		Timezone:               salon.Timezone,
		Capacity:               salon.Capacity,
		SlotGranularityMinutes: salon.SlotGranularityMinutes,
		Hours:                  fromDomainWeekSchedule(salon.Hours),
	}
}

// FromDomainServices конвертирует список доменных услуг
func FromDomainServices(services []*domain.SalonService) *ServiceListResponse {
	result := make([]ServiceResponse, len(services))
	for i, svc := range services {
		result[i] = ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			PriceMinor:      svc.PriceMinor,
			DurationMinutes: svc.DurationMinutes,
		}
	}
	return &ServiceListResponse{Services: result, Total: len(result)}
}

// ToDomainWeekSchedule конвертирует недельное расписание в доменный формат
func (w WeekSchedule) ToDomainWeekSchedule() (domain.WeekSchedule, error) {
	var result domain.WeekSchedule
	days := []struct {
		weekday time.Weekday
		src     DaySchedule
	}{
		{time.Sunday, w.Sunday},
		{time.Monday, w.Monday},
		{time.Tuesday, w.Tuesday},
		{time.Wednesday, w.Wednesday},
		{time.Thursday, w.Thursday},
		{time.Friday, w.Friday},
		{time.Saturday, w.Saturday},
	}

	for _, day := range days {
		schedule, err := day.src.toDomainDaySchedule()
		if err != nil {
			return domain.WeekSchedule{}, err
		}
		setScheduleFor(&result, day.weekday, schedule)
	}

	return result, nil
}

func (d DaySchedule) toDomainDaySchedule() (domain.DaySchedule, error) {
	schedule := domain.DaySchedule{IsOpen: d.IsOpen}
	if !d.IsOpen {
		return schedule, nil
	}

	if d.OpenTime == nil || d.CloseTime == nil {
		return domain.DaySchedule{}, ErrScheduleIncomplete
	}

	openTime, err := types.NewTimeStringFromString(*d.OpenTime)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	closeTime, err := types.NewTimeStringFromString(*d.CloseTime)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	schedule.OpenTime = &openTime
	schedule.CloseTime = &closeTime
	return schedule, nil
}

func fromDomainWeekSchedule(hours domain.WeekSchedule) WeekSchedule {
	return WeekSchedule{
		Monday:    fromDomainDaySchedule(hours.Monday),
		Tuesday:   fromDomainDaySchedule(hours.Tuesday),
		Wednesday: fromDomainDaySchedule(hours.Wednesday),
		Thursday:  fromDomainDaySchedule(hours.Thursday),
		Friday:    fromDomainDaySchedule(hours.Friday),
		Saturday:  fromDomainDaySchedule(hours.Saturday),
		Sunday:    fromDomainDaySchedule(hours.Sunday),
	}
}

func fromDomainDaySchedule(schedule domain.DaySchedule) DaySchedule {
	result := DaySchedule{IsOpen: schedule.IsOpen}
	if schedule.OpenTime != nil {
		open := schedule.OpenTime.String()
		result.OpenTime = &open
	}
	if schedule.CloseTime != nil {
		closeTime := schedule.CloseTime.String()
		result.CloseTime = &closeTime
	}
	return result
}

func setScheduleFor(hours *domain.WeekSchedule, weekday time.Weekday, schedule domain.DaySchedule) {
	switch weekday {
	case time.Sunday:
		hours.Sunday = schedule
	case time.Monday:
		hours.Monday = schedule
	case time.Tuesday:
		hours.Tuesday = schedule
	case time.Wednesday:
		hours.Wednesday = schedule
	case time.Thursday:
		hours.Thursday = schedule
	case time.Friday:
		hours.Friday = schedule
	case time.Saturday:
		hours.Saturday = schedule
	}
}
