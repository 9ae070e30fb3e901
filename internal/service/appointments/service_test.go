package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment
	err          error

	canceled       bool
	canceledReason string
	gotFilter      domain.SalonAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) ListBySalonWithFilter(_ context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.canceled = true
	f.canceledReason = reason
	if f.appointment != nil {
		f.appointment.Status = domain.StatusCanceled
		f.appointment.CancellationReason = &reason
		now := time.Now()
		f.appointment.CanceledAt = &now
	}
	return nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (f *fakeSalonRepo) GetBySlug(_ context.Context, _ string) (*domain.Salon, error) {
	return f.salon, f.err
}

func (f *fakeSalonRepo) GetByID(_ context.Context, _ int64) (*domain.Salon, error) {
	return f.salon, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSalon() *domain.Salon {
	return &domain.Salon{
		ID:       1,
		Name:     "Тестовый салон",
		Slug:     "test-salon",
		Timezone: "Europe/Moscow",
		IsActive: true,
	}
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:       42,
		SalonID:  1,
		ClientID: 100,
		StartsAt: time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC), // 10:00 МСК
		EndsAt:   time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
		Status:   domain.StatusBooked,
		LineItems: []domain.AppointmentLineItem{{
			ID:              1,
			ServiceName:     "Стрижка",
			PriceMinor:      150000,
			DurationMinutes: 60,
		}},
	}
}

func TestGetByID_LocalizesToSalonTimezone(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{appointment: testAppointment()},
		&fakeSalonRepo{salon: testSalon()},
		nopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 42, 100)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2026-09-14T07:00:00Z", resp.StartsAt)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, int64(150000), resp.TotalPriceMinor)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{appointment: testAppointment()},
		&fakeSalonRepo{salon: testSalon()},
		nopLogger{},
	)

	_, err := svc.GetByID(context.Background(), 42, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{err: apptRepo.ErrAppointmentNotFound},
		&fakeSalonRepo{salon: testSalon()},
		nopLogger{},
	)

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := NewService(repo, &fakeSalonRepo{salon: testSalon()}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
		ClientID:           100,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	assert.True(t, repo.canceled)
	assert.Equal(t, "передумал", repo.canceledReason)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "передумал", *resp.CancellationReason)
}

func TestCancel_OnlyBookedCanBeCanceled(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCanceled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := testAppointment()
			appt.Status = status

			repo := &fakeAppointmentRepo{appointment: appt}
			svc := NewService(repo, &fakeSalonRepo{salon: testSalon()}, nopLogger{})

			_, err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{ClientID: 100})
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.False(t, repo.canceled)
		})
	}
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	svc := NewService(repo, &fakeSalonRepo{salon: testSalon()}, nopLogger{})

	_, err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{ClientID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.canceled)
}

func TestGetSalonAppointments_DateBoundsInSalonTimezone(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewService(repo, &fakeSalonRepo{salon: testSalon()}, nopLogger{})

	from := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		SalonSlug: "test-salon",
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)

	// Границы - начала локальных суток в поясе салона (МСК = UTC+3)
	require.NotNil(t, repo.gotFilter.From)
	require.NotNil(t, repo.gotFilter.To)
	assert.Equal(t, time.Date(2026, 9, 13, 21, 0, 0, 0, time.UTC), repo.gotFilter.From.UTC())
	// Верхняя граница эксклюзивная: начало суток после 15-го
	assert.Equal(t, time.Date(2026, 9, 15, 21, 0, 0, 0, time.UTC), repo.gotFilter.To.UTC())
	assert.Equal(t, int64(1), repo.gotFilter.SalonID)
}

func TestGetSalonAppointments_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeSalonRepo{salon: testSalon()}, nopLogger{})

	_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		SalonSlug: "test-salon",
		Status:    ptr.Ptr("rescheduled"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
