package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на расчёт доступных слотов
type Request struct {
	SalonSlug       string    // Slug салона (тенанта)
	Date            time.Time // Календарная дата в поясе салона (время игнорируется)
	DurationMinutes int       // Запрошенная длительность услуги

	// Переопределение шага сетки слотов. nil = настройка салона.
	GranularityMinutes *int
}

// Response модель ответа со списком слотов и метаданными салона
type Response struct {
	SalonID   int64
	SalonName string
	SalonSlug string
	Timezone  string
	Capacity  *int // nil = без ограничения

	Date               time.Time
	DurationMinutes    int
	GranularityMinutes int

	// Слоты в порядке возрастания времени начала, без дубликатов
	Slots []domain.TimeSlot
}
