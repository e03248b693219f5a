package detect_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/conflicts"
)

// Request запрос на поиск конфликтов за период
type Request struct {
	UserID    int64  // ID пользователя (для логирования)
	StartDate string // YYYY-MM-DD, включительно
	EndDate   string // YYYY-MM-DD, включительно
	Fresh     bool   // пересчитать, не заглядывая в кеш (после применения решения)
}

// BookingRequest запрос конфликтов конкретного бронирования
type BookingRequest struct {
	UserID    int64
	BookingID int64
}

// Response найденные конфликты и агрегаты по ним
type Response struct {
	StartDate   string
	EndDate     string
	Conflicts   []conflicts.ConflictDetails
	Summary     conflicts.Summary
	GeneratedAt time.Time
	FromCache   bool
}

// snapshot данные, загруженные в одной транзакции
type snapshot struct {
	context conflicts.ConflictContext
}
