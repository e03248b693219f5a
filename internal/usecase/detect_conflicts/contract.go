package detect_conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	conflictsCache "github.com/m04kA/SMC-ConflictService/internal/infra/cache/conflicts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CrewRepository интерфейс репозитория сотрудников
type CrewRepository interface {
	GetAll(ctx context.Context) ([]*domain.CrewMember, error)
}

// TimeEntryRepository интерфейс репозитория отметок времени
type TimeEntryRepository interface {
	GetOpenBefore(ctx context.Context, before time.Time) ([]*domain.TimeEntry, error)
}

// AssignmentRepository интерфейс репозитория назначений
type AssignmentRepository interface {
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) ([]domain.CrewAssignment, error)
}

// TravelRepository интерфейс репозитория матрицы времени в пути
type TravelRepository interface {
	GetMatrix(ctx context.Context, limit uint64) (map[string]float64, error)
}

// TxManager выполняет чтение снимка в одной транзакции
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReportCache кеш отчетов за период
type ReportCache interface {
	Get(ctx context.Context, startDate, endDate string) (*conflictsCache.Report, bool, error)
	Set(ctx context.Context, report *conflictsCache.Report) error
}

// MetricsRecorder метрики детектора
type MetricsRecorder interface {
	ObserveDetection(scope string, duration time.Duration, counts map[[2]string]int)
	ObserveCache(hit bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
