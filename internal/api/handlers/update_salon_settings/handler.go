package update_salon_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/salons"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgMissingUserID = "отсутствует ID пользователя"
	msgSalonNotFound = "салон не найден"
	msgInvalidInput  = "некорректные настройки салона"
)

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonSlug}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{slug}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSalonSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{slug}/settings - Invalid request body: slug=%s, error=%v", salonSlug, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.SalonSlug = salonSlug

	salon, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{slug}/settings - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{slug}/settings - Invalid settings: slug=%s, error=%v", salonSlug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /salons/{slug}/settings - Failed to update settings: slug=%s, error=%v",
				salonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{slug}/settings - Settings updated successfully: slug=%s, user_id=%d",
		salonSlug, userID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}
