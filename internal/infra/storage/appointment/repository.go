package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями и их позициями услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var appointmentColumns = []string{
	"id",
	"salon_id",
	"client_id",
	"starts_at",
	"ends_at",
	"status",
	"notes",
	"cancellation_reason",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Create создает запись вместе с позициями услуг.
// Для предотвращения гонки при проверке вместимости вызывается внутри
// сериализуемой транзакции (executor приходит через контекст).
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"salon_id",
			"client_id",
			"starts_at",
			"ends_at",
			"status",
			"notes",
		).
		Values(
			appt.SalonID,
			appt.ClientID,
			appt.StartsAt.UTC(),
			appt.EndsAt.UTC(),
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if len(appt.LineItems) > 0 {
		if err := r.createLineItems(ctx, executor, appt); err != nil {
			return nil, err
		}
	}

	return appt, nil
}

// createLineItems сохраняет снапшоты услуг записи одним multi-values insert
func (r *Repository) createLineItems(ctx context.Context, executor DBExecutor, appt *domain.Appointment) error {
	insertBuilder := psqlbuilder.Insert("appointment_line_items").
		Columns("appointment_id", "service_id", "service_name", "price_minor", "duration_minutes", "position")

	for i := range appt.LineItems {
		item := &appt.LineItems[i]
		item.AppointmentID = appt.ID
		insertBuilder = insertBuilder.Values(
			appt.ID,
			item.ServiceID,
			item.ServiceName,
			item.PriceMinor,
			item.DurationMinutes,
			item.Position,
		)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: createLineItems - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: createLineItems - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING возвращает строки в порядке вставки
	idx := 0
	for rows.Next() {
		if idx >= len(appt.LineItems) {
			break
		}
		if err := rows.Scan(&appt.LineItems[idx].ID); err != nil {
			return fmt.Errorf("%w: createLineItems - scan id: %v", ErrScanRow, err)
		}
		idx++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: createLineItems - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetByID получает запись по ID вместе с позициями услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := r.loadLineItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments[0], nil
}

// ListOverlapping получает неотменённые записи салона, пересекающиеся с интервалом
// [from, to). Границы - абсолютные моменты (UTC), поэтому записи, начавшиеся в
// предыдущих локальных сутках и перешедшие через полночь, тоже попадают в выборку.
// Внутри транзакции добавляет FOR UPDATE - для проверки вместимости при создании записи.
func (r *Repository) ListOverlapping(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Lt{"starts_at": to.UTC()}).
		Where(squirrel.Gt{"ends_at": from.UTC()}).
		Where(squirrel.NotEq{"status": string(domain.StatusCanceled)}).
		OrderBy("starts_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListBySalonWithFilter получает записи салона с гибкой фильтрацией по периоду и статусу
func (r *Repository) ListBySalonWithFilter(ctx context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"starts_at": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"starts_at": filter.To.UTC()})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCanceled)})
	}

	// Для периода сортируем по началу записи
	selectBuilder = selectBuilder.OrderBy("starts_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadLineItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// ListByClient получает записи клиента, опционально фильтруя по статусу
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("starts_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadLineItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("canceled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var (
			appt      domain.Appointment
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)

		err := rows.Scan(
			&appt.ID,
			&appt.SalonID,
			&appt.ClientID,
			&appt.StartsAt,
			&appt.EndsAt,
			&appt.Status,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CanceledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		// timestamptz приходит с локальным смещением соединения - нормализуем к UTC
		appt.StartsAt = appt.StartsAt.UTC()
		appt.EndsAt = appt.EndsAt.UTC()
		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// loadLineItems загружает позиции услуг для набора записей одним запросом
func (r *Repository) loadLineItems(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for i, appt := range appointments {
		ids[i] = appt.ID
		byID[appt.ID] = appt
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"service_name",
		"price_minor",
		"duration_minutes",
		"position",
	).
		From("appointment_line_items").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("appointment_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadLineItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadLineItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      domain.AppointmentLineItem
			serviceID sql.NullInt64
		)

		err := rows.Scan(
			&item.ID,
			&item.AppointmentID,
			&serviceID,
			&item.ServiceName,
			&item.PriceMinor,
			&item.DurationMinutes,
			&item.Position,
		)

		if err != nil {
			return fmt.Errorf("%w: loadLineItems - scan row: %v", ErrScanRow, err)
		}

		if serviceID.Valid {
			item.ServiceID = &serviceID.Int64
		}

		if appt, ok := byID[item.AppointmentID]; ok {
			appt.LineItems = append(appt.LineItems, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadLineItems - rows error: %v", ErrScanRow, err)
	}

	return nil
}
