package cancel_appointment

import (
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest создает запрос сервиса из HTTP запроса
func (r *CancelAppointmentRequest) ToServiceRequest(clientID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		ClientID:           clientID,
		CancellationReason: r.CancellationReason,
	}
}
