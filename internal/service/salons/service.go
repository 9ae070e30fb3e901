package salons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
)

// Service сервис для работы с профилями салонов
type Service struct {
	salonRepo   SalonRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetBySlug возвращает публичный профиль салона с расписанием
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.SalonResponse, error) {
	s.logger.Info("GetBySlug: fetching salon slug=%s", slug)

	salon, err := s.activeSalon(ctx, slug)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSalon(salon), nil
}

// ListServices возвращает активные услуги салона
func (s *Service) ListServices(ctx context.Context, slug string) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for salon slug=%s", slug)

	salon, err := s.activeSalon(ctx, slug)
	if err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListBySalon(ctx, salon.ID)
	if err != nil {
		s.logger.Error("ListServices: repository error for salon id=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServices(services), nil
}

// UpdateSettings заменяет настройки и расписание салона.
// Настройки и расписание обновляются в одной транзакции.
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSalonSettingsRequest) (*models.SalonResponse, error) {
	s.logger.Info("UpdateSettings: updating salon slug=%s", req.SalonSlug)

	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for salon slug=%s: %v", req.SalonSlug, err)
		return nil, err
	}

	hours, err := req.Hours.ToDomainWeekSchedule()
	if err != nil {
		s.logger.Warn("UpdateSettings: invalid hours for salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateHours(hours); err != nil {
		s.logger.Warn("UpdateSettings: invalid hours for salon slug=%s: %v", req.SalonSlug, err)
		return nil, err
	}

	salon, err := s.activeSalon(ctx, req.SalonSlug)
	if err != nil {
		return nil, err
	}

	salon.Name = req.Name
	salon.Timezone = req.Timezone
	salon.Capacity = req.Capacity
	salon.SlotGranularityMinutes = req.SlotGranularityMinutes
	salon.Hours = hours

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.salonRepo.UpdateSettings(ctx, salon.ID, salon); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		if err := s.salonRepo.ReplaceHours(ctx, salon.ID, hours); err != nil {
			return fmt.Errorf("replace hours: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSettings: transaction failed for salon id=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated salon id=%d", salon.ID)
	return models.FromDomainSalon(salon), nil
}

// activeSalon загружает салон по slug, скрывая неактивные
func (s *Service) activeSalon(ctx context.Context, slug string) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("activeSalon: salon slug=%s not found", slug)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("activeSalon: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// Неактивный салон наружу не отдаем
	if !salon.IsActive {
		s.logger.Warn("activeSalon: salon slug=%s is inactive", slug)
		return nil, ErrSalonNotFound
	}

	return salon, nil
}

func validateSettings(req *models.UpdateSalonSettingsRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	if req.Capacity != nil {
		if *req.Capacity < domain.MinSalonCapacity || *req.Capacity > domain.MaxSalonCapacity {
			return fmt.Errorf("%w: capacity must be between %d and %d",
				ErrInvalidInput, domain.MinSalonCapacity, domain.MaxSalonCapacity)
		}
	}

	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot granularity must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	return nil
}

func validateHours(hours domain.WeekSchedule) error {
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := hours.ScheduleFor(weekday)
		if !day.IsOpen {
			continue
		}
		if !day.OpenTime.IsBefore(*day.CloseTime) {
			return fmt.Errorf("%w: %s open time must be before close time",
				ErrInvalidInput, weekday)
		}
	}
	return nil
}
