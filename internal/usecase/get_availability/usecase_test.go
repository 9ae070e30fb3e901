package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (f *fakeSalonRepo) GetBySlug(_ context.Context, _ string) (*domain.Salon, error) {
	return f.salon, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (f *fakeAppointmentRepo) ListOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	f.calls++
	return f.appointments, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSalon(t *testing.T, capacity *int) *domain.Salon {
	t.Helper()

	day := schedule(t, "09:00", "17:00")
	return &domain.Salon{
		ID:                     1,
		Name:                   "Тестовый салон",
		Slug:                   "test-salon",
		Timezone:               "UTC",
		Capacity:               capacity,
		SlotGranularityMinutes: 30,
		IsActive:               true,
		Hours: domain.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
		},
	}
}

func TestExecute_SalonNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSalonRepo{err: salonRepo.ErrSalonNotFound},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		SalonSlug:       "unknown",
		Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_InactiveSalonLooksLikeMissing(t *testing.T) {
	salon := testSalon(t, nil)
	salon.IsActive = false

	uc := NewUseCase(&fakeSalonRepo{salon: salon}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SalonSlug:       "test-salon",
		Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	// Неактивный салон неотличим от несуществующего
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon(t, nil)}, &fakeAppointmentRepo{}, nopLogger{})
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{"пустой slug", &Request{Date: date, DurationMinutes: 60}},
		{"нулевая дата", &Request{SalonSlug: "test-salon", DurationMinutes: 60}},
		{"нулевая длительность", &Request{SalonSlug: "test-salon", Date: date}},
		{"отрицательная длительность", &Request{SalonSlug: "test-salon", Date: date, DurationMinutes: -30}},
		{"длительность больше максимума", &Request{SalonSlug: "test-salon", Date: date, DurationMinutes: 481}},
		{
			"шаг сетки меньше минимума",
			&Request{SalonSlug: "test-salon", Date: date, DurationMinutes: 60, GranularityMinutes: ptr.Ptr(4)},
		},
		{
			"шаг сетки больше максимума",
			&Request{SalonSlug: "test-salon", Date: date, DurationMinutes: 60, GranularityMinutes: ptr.Ptr(241)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon(t, nil)}, appts, nopLogger{})

	// 13 сентября 2026 - воскресенье, салон закрыт
	resp, err := uc.Execute(context.Background(), &Request{
		SalonSlug:       "test-salon",
		Date:            time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Записи не запрашиваются, если сетка пуста
	assert.Equal(t, 0, appts.calls)
}

func TestExecute_GranularityOverride(t *testing.T) {
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon(t, nil)}, &fakeAppointmentRepo{}, nopLogger{})

	req := &Request{
		SalonSlug:          "test-salon",
		Date:               time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes:    60,
		GranularityMinutes: ptr.Ptr(60),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.GranularityMinutes)
	// Старты 09:00..16:00 с шагом 60
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_Idempotent(t *testing.T) {
	one := 1
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{{
		SalonID:  1,
		StartsAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
		Status:   domain.StatusBooked,
	}}}
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon(t, &one)}, appts, nopLogger{})

	req := &Request{
		SalonSlug:       "test-salon",
		Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повторный запрос при неизменном состоянии дает тот же результат
	assert.Equal(t, first, second)
}

func TestExecute_AppointmentRepoFailure(t *testing.T) {
	appts := &fakeAppointmentRepo{err: errors.New("connection refused")}
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon(t, nil)}, appts, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SalonSlug:       "test-salon",
		Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrInternal)
}
