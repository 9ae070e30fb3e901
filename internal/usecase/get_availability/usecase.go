package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
)

// UseCase use case расчёта доступных слотов на день.
// Чистый read-путь: состояние не изменяется, блокировки не берутся.
// Параллельные запросы по одному салону безопасны - каждый работает
// со своим снимком записей.
type UseCase struct {
	salonRepo       SalonRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case расчёта доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: salon=%s, date=%s, duration=%d",
		req.SalonSlug, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим тенанта до любых вычислений
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailability: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailability: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.IsActive {
		uc.logger.Warn("GetAvailability: salon slug=%s is inactive", req.SalonSlug)
		return nil, ErrSalonNotFound
	}

	// 3. Часовой пояс салона
	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("GetAvailability: invalid timezone %q for salon id=%d: %v",
			salon.Timezone, salon.ID, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	// 4. Шаг сетки: переопределение из запроса либо настройка салона
	granularity := salon.SlotGranularityMinutes
	if req.GranularityMinutes != nil {
		granularity = *req.GranularityMinutes
	}
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	response := &Response{
		SalonID:            salon.ID,
		SalonName:          salon.Name,
		SalonSlug:          salon.Slug,
		Timezone:           salon.Timezone,
		Capacity:           salon.Capacity,
		Date:               req.Date,
		DurationMinutes:    req.DurationMinutes,
		GranularityMinutes: granularity,
		Slots:              []domain.TimeSlot{},
	}

	// 5. Генерируем сетку кандидатов по расписанию дня недели
	schedule := salon.ScheduleFor(req.Date.Weekday())
	slots, err := generateSlots(schedule, req.Date, loc, req.DurationMinutes, granularity)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots for salon id=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// Закрытый день или окно короче длительности - пустой список, не ошибка
	if len(slots) == 0 {
		uc.logger.Info("GetAvailability: no candidate slots for salon=%s on %s",
			req.SalonSlug, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 6. Записи, пересекающиеся с локальными сутками даты
	from, to := dayWindow(req.Date, loc)
	appointments, err := uc.appointmentRepo.ListOverlapping(ctx, salon.ID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for salon id=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Аннотируем слоты занятостью
	response.Slots = applyCapacity(slots, appointments, salon.Capacity)

	uc.logger.Info("GetAvailability: computed %d slots for salon=%s, date=%s",
		len(response.Slots), req.SalonSlug, req.Date.Format(domain.DateFormat))

	return response, nil
}
