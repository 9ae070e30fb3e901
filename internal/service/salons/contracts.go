package salons

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SalonRepository соединение с таблицами salons и salon_hours
type SalonRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Salon, error)
	UpdateSettings(ctx context.Context, id int64, salon *domain.Salon) error
	ReplaceHours(ctx context.Context, salonID int64, hours domain.WeekSchedule) error
}

// CatalogRepository соединение с таблицей services
type CatalogRepository interface {
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.SalonService, error)
}

// TransactionManager управление транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
