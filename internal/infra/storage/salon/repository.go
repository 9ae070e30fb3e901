package salon

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Repository репозиторий для работы с салонами и их расписанием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var salonColumns = []string{
	"id",
	"name",
	"slug",
	"timezone",
	"capacity",
	"slot_granularity_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// GetBySlug получает салон по slug вместе с недельным расписанием.
// Используется как резолвер тенанта: неизвестный slug -> ErrSalonNotFound.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	salon, err := r.scanSalon(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}

	hours, err := r.getHours(ctx, salon.ID)
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	salon.Hours = hours

	return salon, nil
}

// GetByID получает салон по ID вместе с недельным расписанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	salon, err := r.scanSalon(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	hours, err := r.getHours(ctx, salon.ID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	salon.Hours = hours

	return salon, nil
}

// UpdateSettings обновляет настройки салона (вместимость, часовой пояс, шаг сетки слотов)
func (r *Repository) UpdateSettings(ctx context.Context, id int64, salon *domain.Salon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("name", salon.Name).
		Set("timezone", salon.Timezone).
		Set("capacity", capacityValue(salon.Capacity)).
		Set("slot_granularity_minutes", salon.SlotGranularityMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

// ReplaceHours заменяет недельное расписание салона.
// Вызывается внутри транзакции вместе с UpdateSettings.
func (r *Repository) ReplaceHours(ctx context.Context, salonID int64, hours domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salon_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("salon_hours").
		Columns("salon_id", "weekday", "is_open", "open_time", "close_time")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := scheduleFor(hours, weekday)
		insertBuilder = insertBuilder.Values(
			salonID,
			int(weekday),
			day.IsOpen,
			timeStringValue(day.OpenTime),
			timeStringValue(day.CloseTime),
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// getHours загружает недельное расписание салона.
// День без строки в salon_hours считается выходным.
func (r *Repository) getHours(ctx context.Context, salonID int64) (domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var hours domain.WeekSchedule

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From("salon_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return hours, fmt.Errorf("%w: getHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return hours, fmt.Errorf("%w: getHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			weekday   int
			isOpen    bool
			openTime  types.TimeString
			closeTime types.TimeString
		)

		if err := rows.Scan(&weekday, &isOpen, &openTime, &closeTime); err != nil {
			return hours, fmt.Errorf("%w: getHours - scan row: %v", ErrScanRow, err)
		}

		day := domain.DaySchedule{
			IsOpen:    isOpen,
			OpenTime:  timeStringPtr(openTime),
			CloseTime: timeStringPtr(closeTime),
		}
		setScheduleFor(&hours, time.Weekday(weekday), day)
	}

	if err := rows.Err(); err != nil {
		return hours, fmt.Errorf("%w: getHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// scanSalon сканирует строку салона
func (r *Repository) scanSalon(row *sql.Row) (*domain.Salon, error) {
	var (
		salon       domain.Salon
		capacity    sql.NullInt64
		granularity sql.NullInt64
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&salon.ID,
		&salon.Name,
		&salon.Slug,
		&salon.Timezone,
		&capacity,
		&granularity,
		&salon.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSalon: %v", ErrScanRow, err)
	}

	if capacity.Valid {
		value := int(capacity.Int64)
		salon.Capacity = &value
	}
	if granularity.Valid && granularity.Int64 > 0 {
		salon.SlotGranularityMinutes = int(granularity.Int64)
	} else {
		salon.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return &salon, nil
}

func capacityValue(capacity *int) interface{} {
	if capacity == nil {
		return nil
	}
	return *capacity
}

func timeStringValue(t *types.TimeString) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func timeStringPtr(t types.TimeString) *types.TimeString {
	if t.IsZero() {
		return nil
	}
	return &t
}

func scheduleFor(hours domain.WeekSchedule, weekday time.Weekday) domain.DaySchedule {
	switch weekday {
	case time.Monday:
		return hours.Monday
	case time.Tuesday:
		return hours.Tuesday
	case time.Wednesday:
		return hours.Wednesday
	case time.Thursday:
		return hours.Thursday
	case time.Friday:
		return hours.Friday
	case time.Saturday:
		return hours.Saturday
	default:
		return hours.Sunday
	}
}

func setScheduleFor(hours *domain.WeekSchedule, weekday time.Weekday, day domain.DaySchedule) {
	switch weekday {
	case time.Monday:
		hours.Monday = day
	case time.Tuesday:
		hours.Tuesday = day
	case time.Wednesday:
		hours.Wednesday = day
	case time.Thursday:
		hours.Thursday = day
	case time.Friday:
		hours.Friday = day
	case time.Saturday:
		hours.Saturday = day
	case time.Sunday:
		hours.Sunday = day
	}
}
