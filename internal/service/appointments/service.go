package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Клиент может видеть только собственные записи.
func (s *Service) GetByID(ctx context.Context, id int64, clientID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for client=%d", id, clientID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.ClientID != clientID {
		s.logger.Warn("GetByID: access denied for client=%d to appointment id=%d", clientID, id)
		return nil, ErrAccessDenied
	}

	loc, err := s.salonLocation(ctx, appt.SalonID)
	if err != nil {
		return nil, err
	}

	response := models.FromDomainAppointment(appt, loc)
	return &response, nil
}

// Cancel отменяет запись клиента.
// Отменить можно только собственную запись в статусе booked.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: canceling appointment id=%d by client=%d", id, req.ClientID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.ClientID != req.ClientID {
		s.logger.Warn("Cancel: access denied for client=%d to appointment id=%d", req.ClientID, id)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeCanceled() {
		s.logger.Warn("Cancel: appointment id=%d in status %s cannot be canceled", id, appt.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	canceled, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	loc, err := s.salonLocation(ctx, canceled.SalonID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully canceled appointment id=%d", id)
	response := models.FromDomainAppointment(canceled, loc)
	return &response, nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.ListByClient(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	// Записи клиента могут относиться к разным салонам - кэшируем пояса
	locations := make(map[int64]*time.Location)
	result := make([]models.AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		loc, ok := locations[appt.SalonID]
		if !ok {
			loc, err = s.salonLocation(ctx, appt.SalonID)
			if err != nil {
				return nil, err
			}
			locations[appt.SalonID] = loc
		}
		result[i] = models.FromDomainAppointment(appt, loc)
	}

	return &models.AppointmentListResponse{Appointments: result, Total: len(result)}, nil
}

// GetSalonAppointments получает записи салона с фильтрацией по периоду и статусу.
// Границы периода - календарные даты в поясе салона.
func (s *Service) GetSalonAppointments(ctx context.Context, req *models.GetSalonAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetSalonAppointments: fetching appointments for salon=%s", req.SalonSlug)

	salon, err := s.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetSalonAppointments: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetSalonAppointments: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: GetSalonAppointments - repository error: %v", ErrInternal, err)
	}

	loc, err := salon.Location()
	if err != nil {
		s.logger.Error("GetSalonAppointments: invalid timezone %q for salon id=%d: %v",
			salon.Timezone, salon.ID, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	filter := domain.SalonAppointmentsFilter{
		SalonID:         salon.ID,
		IncludeCanceled: req.IncludeCanceled,
	}

	// Календарные даты переводим в абсолютные границы в поясе салона
	if req.From != nil {
		from := localDayStart(*req.From, loc)
		filter.From = &from
	}
	if req.To != nil {
		// Верхняя граница эксклюзивная: начало следующих суток
		to := localDayStart(*req.To, loc).AddDate(0, 0, 1)
		filter.To = &to
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetSalonAppointments: invalid status=%s for salon=%s", *req.Status, req.SalonSlug)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.ListBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonAppointments: repository error for salon=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: GetSalonAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(appointments, loc), nil
}

// salonLocation загружает часовой пояс салона по ID
func (s *Service) salonLocation(ctx context.Context, salonID int64) (*time.Location, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		s.logger.Error("salonLocation: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	loc, err := salon.Location()
	if err != nil {
		s.logger.Error("salonLocation: invalid timezone %q for salon id=%d: %v", salon.Timezone, salonID, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	return loc, nil
}

// localDayStart возвращает начало локальных суток даты в указанном поясе
func localDayStart(date time.Time, loc *time.Location) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
