package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SalonSlug == "" {
		return fmt.Errorf("%w: salonSlug is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateWithinWorkingHours проверяет, что интервал записи целиком помещается
// в рабочие часы салона в выбранную дату
func validateWithinWorkingHours(schedule domain.DaySchedule, startMinutes, durationMinutes int) error {
	if !schedule.IsWorkable() {
		return ErrSalonClosed
	}

	openMin, err := schedule.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMin, err := schedule.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if startMinutes < openMin || startMinutes+durationMinutes > closeMin {
		return ErrOutsideWorkingHours
	}

	return nil
}

// countOverlappingInterval подсчитывает активные записи, пересекающиеся с [from, to).
// Та же полуоткрытая семантика, что и при расчёте доступности: граничащие
// интервалы пересечением не считаются, вырожденные записи пропускаются.
func countOverlappingInterval(from, to time.Time, appointments []*domain.Appointment) int {
	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.IsDegenerate() {
			continue
		}

		if appt.StartsAt.Before(to) && appt.EndsAt.After(from) {
			count++
		}
	}

	return count
}
