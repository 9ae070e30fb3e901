package get_salon_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(salonSlug, fromStr, toStr, statusStr, includeCanceledStr string) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		SalonSlug: salonSlug,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCanceledStr != "" {
		includeCanceled, err := strconv.ParseBool(includeCanceledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCanceled = includeCanceled
	}

	return req, nil
}
