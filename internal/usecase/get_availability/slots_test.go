package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func schedule(t *testing.T, open, close string) domain.DaySchedule {
	t.Helper()

	openTime, err := types.NewTimeStringFromString(open)
	require.NoError(t, err)
	closeTime, err := types.NewTimeStringFromString(close)
	require.NoError(t, err)

	return domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  &openTime,
		CloseTime: &closeTime,
	}
}

func appointment(start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		SalonID:  1,
		ClientID: 100,
		StartsAt: start,
		EndsAt:   end,
		Status:   status,
	}
}

func TestGenerateSlots_Grid(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник

	slots, err := generateSlots(schedule(t, "09:00", "17:00"), date, time.UTC, 60, 30)
	require.NoError(t, err)

	// Старты 09:00, 09:30, ..., 16:00 - последний слот целиком влезает до закрытия
	require.Len(t, slots, 15)
	assert.Equal(t, time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC), slots[0].StartsAt)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), slots[0].EndsAt)
	assert.Equal(t, time.Date(2026, 9, 14, 16, 0, 0, 0, time.UTC), slots[len(slots)-1].StartsAt)
	assert.Equal(t, time.Date(2026, 9, 14, 17, 0, 0, 0, time.UTC), slots[len(slots)-1].EndsAt)

	// Слоты строго возрастают без дубликатов
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartsAt.Before(slots[i].StartsAt))
	}
}

func TestGenerateSlots_LastSlotMustFitEntirely(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	// Окно 09:00-10:30, длительность 60, шаг 30: только 09:00 и 09:30.
	// Слот 10:00-11:00 вылезает за закрытие и не попадает в сетку.
	slots, err := generateSlots(schedule(t, "09:00", "10:30"), date, time.UTC, 60, 30)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC), slots[1].StartsAt)
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(domain.DaySchedule{IsOpen: false}, date, time.UTC, 60, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_MissingScheduleBounds(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	// Открытый день без заданных часов трактуется как выходной
	slots, err := generateSlots(domain.DaySchedule{IsOpen: true}, date, time.UTC, 60, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_WindowShorterThanDuration(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(schedule(t, "09:00", "09:45"), date, time.UTC, 60, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 8 марта 2026 - переход на летнее время, локальные сутки длятся 23 часа
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)

	slots, err := generateSlots(schedule(t, "09:00", "17:00"), date, loc, 60, 30)
	require.NoError(t, err)

	// Сетка шагает по времени стены: количество слотов такое же, как в обычный день
	require.Len(t, slots, 15)

	// Каждый слот выровнен по времени стены салона
	assert.Equal(t, "09:00", slots[0].StartsAt.In(loc).Format("15:04"))
	assert.Equal(t, "16:00", slots[len(slots)-1].StartsAt.In(loc).Format("15:04"))

	// После перехода на EDT 09:00 стены = 13:00 UTC
	assert.Equal(t, time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC), slots[0].StartsAt)
}

func TestDayWindow_CoversMidnightSpanners(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	from, to := dayWindow(date, loc)

	// Запись с 23:00 предыдущих суток до 01:00 этих суток попадает в окно
	spanner := appointment(
		time.Date(2026, 9, 13, 20, 0, 0, 0, time.UTC), // 23:00 МСК 13-го
		time.Date(2026, 9, 13, 22, 0, 0, 0, time.UTC), // 01:00 МСК 14-го
		domain.StatusBooked,
	)
	assert.True(t, spanner.StartsAt.Before(to) && spanner.EndsAt.After(from))

	// Окно - ровно локальные сутки
	assert.Equal(t, time.Date(2026, 9, 13, 21, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 9, 14, 21, 0, 0, 0, time.UTC), to)
}

func TestCountOverlapping_StrictHalfOpenIntervals(t *testing.T) {
	slot := domain.TimeSlot{
		StartsAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		appts []*domain.Appointment
		want  int
	}{
		{
			name: "запись внутри слота",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 10, 15, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 10, 45, 0, 0, time.UTC),
				domain.StatusBooked,
			)},
			want: 1,
		},
		{
			name: "запись закончилась ровно к началу слота",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
				domain.StatusBooked,
			)},
			want: 0,
		},
		{
			name: "запись начинается ровно в конец слота",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
				domain.StatusBooked,
			)},
			want: 0,
		},
		{
			name: "отменённая запись не занимает место",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
				domain.StatusCanceled,
			)},
			want: 0,
		},
		{
			name: "завершённая запись занимает место",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
				domain.StatusCompleted,
			)},
			want: 1,
		},
		{
			name: "вырожденная запись нулевой длины пропускается",
			appts: []*domain.Appointment{appointment(
				time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
				time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
				domain.StatusBooked,
			)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countOverlapping(slot, tt.appts))
		})
	}
}

func TestApplyCapacity_Unbounded(t *testing.T) {
	slots := []domain.TimeSlot{{
		StartsAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}}
	appts := []*domain.Appointment{
		appointment(
			time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
			domain.StatusBooked,
		),
		appointment(
			time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
			domain.StatusBooked,
		),
	}

	result := applyCapacity(slots, appts, nil)

	// Без ограничения слот доступен при любом числе пересечений
	assert.True(t, result[0].Available)
	assert.Nil(t, result[0].RemainingCapacity)
}

func TestApplyCapacity_ZeroCapacity(t *testing.T) {
	slots := []domain.TimeSlot{{
		StartsAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}}

	zero := 0
	result := applyCapacity(slots, nil, &zero)

	// Вместимость 0 - всегда занято, даже без записей
	assert.False(t, result[0].Available)
	require.NotNil(t, result[0].RemainingCapacity)
	assert.Equal(t, 0, *result[0].RemainingCapacity)
}

func TestApplyCapacity_BlocksOverlappedSlots(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	slots, err := generateSlots(schedule(t, "09:00", "12:00"), date, time.UTC, 60, 30)
	require.NoError(t, err)
	require.Len(t, slots, 5) // 09:00, 09:30, 10:00, 10:30, 11:00

	appts := []*domain.Appointment{appointment(
		time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
		domain.StatusBooked,
	)}

	one := 1
	result := applyCapacity(slots, appts, &one)

	// Запись 10:00-11:00 блокирует слоты, пересекающиеся с ней строго
	assert.True(t, result[0].Available)  // 09:00-10:00, граничит
	assert.False(t, result[1].Available) // 09:30-10:30
	assert.False(t, result[2].Available) // 10:00-11:00
	assert.False(t, result[3].Available) // 10:30-11:30
	assert.True(t, result[4].Available)  // 11:00-12:00, граничит

	for _, slot := range result {
		require.NotNil(t, slot.RemainingCapacity)
		if slot.Available {
			assert.Equal(t, 1, *slot.RemainingCapacity)
		} else {
			assert.Equal(t, 0, *slot.RemainingCapacity)
		}
	}
}

func TestApplyCapacity_RemainingNeverNegative(t *testing.T) {
	slots := []domain.TimeSlot{{
		StartsAt: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}}

	var appts []*domain.Appointment
	for i := 0; i < 3; i++ {
		appts = append(appts, appointment(
			time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
			domain.StatusBooked,
		))
	}

	one := 1
	result := applyCapacity(slots, appts, &one)

	assert.False(t, result[0].Available)
	require.NotNil(t, result[0].RemainingCapacity)
	assert.Equal(t, 0, *result[0].RemainingCapacity)
}
