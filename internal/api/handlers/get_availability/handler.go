package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability"
)

const (
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration    = "длительность услуги обязательна"
	msgInvalidDuration    = "некорректная длительность услуги"
	msgInvalidGranularity = "некорректный шаг сетки слотов"
	msgSalonNotFound      = "салон не найден"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonSlug}/availability
// Query params: date (required, YYYY-MM-DD), duration (required, minutes),
// granularity (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	query := r.URL.Query()

	// Извлекаем date из query параметров
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{slug}/availability - Missing date: slug=%s", salonSlug)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем duration из query параметров
	durationStr := query.Get("duration")
	if durationStr == "" {
		h.logger.Warn("GET /salons/{slug}/availability - Missing duration: slug=%s", salonSlug)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid duration: slug=%s, error=%v", salonSlug, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Извлекаем granularity из query параметров (опционально)
	var granularityMinutes *int
	if granularityStr := query.Get("granularity"); granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil {
			h.logger.Warn("GET /salons/{slug}/availability - Invalid granularity: slug=%s, error=%v", salonSlug, err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		granularityMinutes = &granularity
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(salonSlug, dateStr, durationMinutes, granularityMinutes)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid date format: slug=%s, error=%v", salonSlug, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{slug}/availability - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{slug}/availability - Invalid input: slug=%s, error=%v", salonSlug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /salons/{slug}/availability - Failed to compute availability: slug=%s, error=%v",
				salonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Часовой пояс салона для локального представления слотов
	loc, err := time.LoadLocation(result.Timezone)
	if err != nil {
		h.logger.Error("GET /salons/{slug}/availability - Invalid salon timezone: slug=%s, tz=%s, error=%v",
			salonSlug, result.Timezone, err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result, loc)

	h.logger.Info("GET /salons/{slug}/availability - Availability computed: slug=%s, date=%s, slots_count=%d",
		salonSlug, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
