package get_salon_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgSalonNotFound = "салон не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonSlug}/appointments
// Query params: from, to (YYYY-MM-DD), status, includeCanceled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{slug}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(
		salonSlug,
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("includeCanceled"),
	)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/appointments - Invalid parameters: slug=%s, error=%v", salonSlug, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetSalonAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{slug}/appointments - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /salons/{slug}/appointments - Invalid parameters: slug=%s, error=%v", salonSlug, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{slug}/appointments - Failed to get appointments: slug=%s, error=%v",
				salonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{slug}/appointments - Appointments retrieved successfully: slug=%s, user_id=%d, count=%d",
		salonSlug, userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
