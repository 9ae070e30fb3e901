package salons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/salons/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error

	settingsUpdated bool
	hoursReplaced   bool
}

func (f *fakeSalonRepo) GetBySlug(_ context.Context, _ string) (*domain.Salon, error) {
	return f.salon, f.err
}

func (f *fakeSalonRepo) UpdateSettings(_ context.Context, _ int64, _ *domain.Salon) error {
	f.settingsUpdated = true
	return nil
}

func (f *fakeSalonRepo) ReplaceHours(_ context.Context, _ int64, _ domain.WeekSchedule) error {
	f.hoursReplaced = true
	return nil
}

type fakeCatalogRepo struct {
	services []*domain.SalonService
}

func (f *fakeCatalogRepo) ListBySalon(_ context.Context, _ int64) ([]*domain.SalonService, error) {
	return f.services, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSalon() *domain.Salon {
	open, _ := types.NewTimeStringFromString("09:00")
	closeTime, _ := types.NewTimeStringFromString("17:00")
	day := domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime}

	return &domain.Salon{
		ID:                     1,
		Name:                   "Тестовый салон",
		Slug:                   "test-salon",
		Timezone:               "Europe/Moscow",
		Capacity:               ptr.Ptr(3),
		SlotGranularityMinutes: 30,
		IsActive:               true,
		Hours:                  domain.WeekSchedule{Monday: day},
	}
}

func validSettings() *models.UpdateSalonSettingsRequest {
	return &models.UpdateSalonSettingsRequest{
		SalonSlug:              "test-salon",
		Name:                   "Новое имя",
		Timezone:               "Europe/Moscow",
		Capacity:               ptr.Ptr(5),
		SlotGranularityMinutes: 15,
		Hours: models.WeekSchedule{
			Monday: models.DaySchedule{
				IsOpen:    true,
				OpenTime:  ptr.Ptr("10:00"),
				CloseTime: ptr.Ptr("18:00"),
			},
		},
	}
}

func TestGetBySlug_InactiveSalonHidden(t *testing.T) {
	salon := testSalon()
	salon.IsActive = false

	svc := NewService(&fakeSalonRepo{salon: salon}, &fakeCatalogRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetBySlug(context.Background(), "test-salon")
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewService(&fakeSalonRepo{err: salonRepo.ErrSalonNotFound}, &fakeCatalogRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestGetBySlug_ReturnsProfileWithHours(t *testing.T) {
	svc := NewService(&fakeSalonRepo{salon: testSalon()}, &fakeCatalogRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetBySlug(context.Background(), "test-salon")
	require.NoError(t, err)

	assert.Equal(t, "test-salon", resp.Slug)
	require.NotNil(t, resp.Capacity)
	assert.Equal(t, 3, *resp.Capacity)
	assert.True(t, resp.Hours.Monday.IsOpen)
	require.NotNil(t, resp.Hours.Monday.OpenTime)
	assert.Equal(t, "09:00", *resp.Hours.Monday.OpenTime)
	assert.False(t, resp.Hours.Sunday.IsOpen)
}

func TestUpdateSettings_Success(t *testing.T) {
	repo := &fakeSalonRepo{salon: testSalon()}
	tx := &fakeTxManager{}
	svc := NewService(repo, &fakeCatalogRepo{}, tx, nopLogger{})

	resp, err := svc.UpdateSettings(context.Background(), validSettings())
	require.NoError(t, err)

	// Настройки и расписание заменяются в одной транзакции
	assert.Equal(t, 1, tx.calls)
	assert.True(t, repo.settingsUpdated)
	assert.True(t, repo.hoursReplaced)

	assert.Equal(t, "Новое имя", resp.Name)
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	require.NotNil(t, resp.Hours.Monday.OpenTime)
	assert.Equal(t, "10:00", *resp.Hours.Monday.OpenTime)
}

func TestUpdateSettings_UnboundedCapacity(t *testing.T) {
	repo := &fakeSalonRepo{salon: testSalon()}
	svc := NewService(repo, &fakeCatalogRepo{}, &fakeTxManager{}, nopLogger{})

	req := validSettings()
	req.Capacity = nil

	resp, err := svc.UpdateSettings(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Capacity)
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := NewService(&fakeSalonRepo{salon: testSalon()}, &fakeCatalogRepo{}, &fakeTxManager{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*models.UpdateSalonSettingsRequest)
	}{
		{"пустое имя", func(r *models.UpdateSalonSettingsRequest) { r.Name = "" }},
		{"пустой часовой пояс", func(r *models.UpdateSalonSettingsRequest) { r.Timezone = "" }},
		{"неизвестный часовой пояс", func(r *models.UpdateSalonSettingsRequest) { r.Timezone = "Mars/Olympus" }},
		{"отрицательная вместимость", func(r *models.UpdateSalonSettingsRequest) { r.Capacity = ptr.Ptr(-1) }},
		{"вместимость больше максимума", func(r *models.UpdateSalonSettingsRequest) { r.Capacity = ptr.Ptr(101) }},
		{"шаг сетки меньше минимума", func(r *models.UpdateSalonSettingsRequest) { r.SlotGranularityMinutes = 4 }},
		{"шаг сетки больше максимума", func(r *models.UpdateSalonSettingsRequest) { r.SlotGranularityMinutes = 241 }},
		{
			"открытый день без часов",
			func(r *models.UpdateSalonSettingsRequest) { r.Hours.Monday.OpenTime = nil },
		},
		{
			"открытие позже закрытия",
			func(r *models.UpdateSalonSettingsRequest) {
				r.Hours.Monday.OpenTime = ptr.Ptr("18:00")
				r.Hours.Monday.CloseTime = ptr.Ptr("10:00")
			},
		},
		{
			"кривой формат времени",
			func(r *models.UpdateSalonSettingsRequest) { r.Hours.Monday.OpenTime = ptr.Ptr("10am") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSettings()
			tt.mutate(req)

			_, err := svc.UpdateSettings(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
