package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
)

// UseCase use case создания записи.
// Доступность слота на момент запроса - только ориентир: между расчётом
// доступности и созданием записи другая запись могла занять место. Поэтому
// вместимость перепроверяется здесь, в сериализуемой транзакции с блокировкой
// пересекающихся записей.
type UseCase struct {
	salonRepo       SalonRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, salon=%s, date=%s, time=%s, services=%v",
		req.ClientID, req.SalonSlug, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Резолвим тенанта
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.IsActive {
		uc.logger.Warn("CreateAppointment: salon slug=%s is inactive", req.SalonSlug)
		return nil, ErrSalonNotFound
	}

	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid timezone %q for salon id=%d: %v",
			salon.Timezone, salon.ID, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	// 4. Получаем услуги каталога и считаем суммарную длительность
	services, err := uc.catalogRepo.GetByIDs(ctx, salon.ID, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: services %v not found in salon id=%d", req.ServiceIDs, salon.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMinutes
	}
	if totalDuration < domain.MinServiceDurationMinutes {
		return nil, fmt.Errorf("%w: total duration must be positive", ErrInvalidInput)
	}
	if totalDuration > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: total duration must not exceed %d minutes",
			ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	// 5. Переводим время стены в абсолютные моменты в поясе салона
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	year, month, day := req.Date.Date()
	startsAt := time.Date(year, month, day, 0, startMinutes, 0, 0, loc)
	endsAt := time.Date(year, month, day, 0, startMinutes+totalDuration, 0, 0, loc)

	if startsAt.Before(now) {
		uc.logger.Warn("CreateAppointment: start %s is in the past", startsAt.Format(time.RFC3339))
		return nil, ErrDateInPast
	}

	// 6. Интервал должен помещаться в рабочие часы дня
	schedule := salon.ScheduleFor(req.Date.Weekday())
	if err := validateWithinWorkingHours(schedule, startMinutes, totalDuration); err != nil {
		uc.logger.Warn("CreateAppointment: working hours check failed for salon=%s: %v", req.SalonSlug, err)
		return nil, err
	}

	// 7. Собираем снапшоты услуг - они принадлежат записи, не каталогу
	lineItems := make([]domain.AppointmentLineItem, len(services))
	for i, svc := range services {
		serviceID := svc.ID
		lineItems[i] = domain.AppointmentLineItem{
			ServiceID:       &serviceID,
			ServiceName:     svc.Name,
			PriceMinor:      svc.PriceMinor,
			DurationMinutes: svc.DurationMinutes,
			Position:        i,
		}
	}

	var result *domain.Appointment

	// 8. Перепроверка вместимости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Пересекающиеся записи с блокировкой (FOR UPDATE)
		overlapping, err := uc.appointmentRepo.ListOverlapping(txCtx, salon.ID, startsAt, endsAt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to get overlapping appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверка вместимости: nil - без ограничения, 0 - всегда занято
		if salon.Capacity != nil {
			count := countOverlappingInterval(startsAt, endsAt, overlapping)
			if count >= *salon.Capacity {
				uc.logger.Warn("CreateAppointment: no capacity, %d/%d spots taken", count, *salon.Capacity)
				return ErrSlotNotAvailable
			}
			uc.logger.Info("CreateAppointment: capacity ok, %d/%d spots taken", count, *salon.Capacity)
		}

		// 8.3. Создаем запись вместе с позициями услуг
		appt := &domain.Appointment{
			SalonID:   salon.ID,
			ClientID:  req.ClientID,
			StartsAt:  startsAt.UTC(),
			EndsAt:    endsAt.UTC(),
			Status:    domain.StatusBooked,
			LineItems: lineItems,
			Notes:     req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return fromDomain(result, loc, totalDuration), nil
}
