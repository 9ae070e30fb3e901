package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с каталогом услуг салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var serviceColumns = []string{
	"id",
	"salon_id",
	"name",
	"price_minor",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// ListBySalon получает активные услуги салона, упорядоченные по имени
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.SalonService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanServices(rows)
}

// GetByIDs получает услуги салона по списку идентификаторов.
// Если хотя бы одна услуга не найдена или неактивна - ErrServiceNotFound:
// снапшоты в записи строятся только по живым услугам каталога.
func (r *Repository) GetByIDs(ctx context.Context, salonID int64, ids []int64) ([]*domain.SalonService, error) {
	if len(ids) == 0 {
		return []*domain.SalonService{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID, "id": ids, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]bool, len(services))
	for _, svc := range services {
		found[svc.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, ErrServiceNotFound
		}
	}

	return services, nil
}

// scanServices сканирует результаты запроса в слайс услуг
func (r *Repository) scanServices(rows *sql.Rows) ([]*domain.SalonService, error) {
	services := make([]*domain.SalonService, 0)

	for rows.Next() {
		var (
			svc       domain.SalonService
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)

		err := rows.Scan(
			&svc.ID,
			&svc.SalonID,
			&svc.Name,
			&svc.PriceMinor,
			&svc.DurationMinutes,
			&svc.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time

		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
