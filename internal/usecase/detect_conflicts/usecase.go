package detect_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/conflicts"
	"github.com/m04kA/SMC-ConflictService/internal/domain"
	conflictsCache "github.com/m04kA/SMC-ConflictService/internal/infra/cache/conflicts"
	bookingRepo "github.com/m04kA/SMC-ConflictService/internal/infra/storage/booking"
)

// Области наблюдения для метрик
const (
	scopeRange   = "range"
	scopeBooking = "booking"
)

// Repositories источники данных снимка
type Repositories struct {
	Bookings    BookingRepository
	Crew        CrewRepository
	TimeEntries TimeEntryRepository
	Assignments AssignmentRepository
	Travel      TravelRepository
}

// Settings параметры из секции detection конфига
type Settings struct {
	MaxRangeDays      int
	TravelMatrixLimit uint64
}

// Option дополнительная зависимость use case
type Option func(*UseCase)

// WithCache включает кеш отчетов за период
func WithCache(cache ReportCache) Option {
	return func(uc *UseCase) {
		uc.cache = cache
	}
}

// WithMetrics включает метрики детектора
func WithMetrics(m MetricsRecorder) Option {
	return func(uc *UseCase) {
		uc.metrics = m
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(p TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = p
	}
}

// UseCase use case поиска конфликтов расписания
// Собирает снимок из БД, запускает детектор и считает агрегаты
type UseCase struct {
	repos        Repositories
	txManager    TxManager
	settings     Settings
	cache        ReportCache
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repos Repositories,
	txManager TxManager,
	settings Settings,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repos:        repos,
		txManager:    txManager,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute ищет конфликты среди бронирований за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DetectConflicts: user=%d, startDate=%s, endDate=%s", req.UserID, req.StartDate, req.EndDate)

	start, end, err := uc.validateRange(req)
	if err != nil {
		uc.logger.Warn("DetectConflicts: validation failed: %v", err)
		return nil, err
	}
	startDate := start.Format(domain.DateFormat)
	endDate := end.Format(domain.DateFormat)

	if req.Fresh {
		uc.logger.Info("DetectConflicts: cache bypassed for %s..%s", startDate, endDate)
	} else if cached := uc.fromCache(ctx, startDate, endDate); cached != nil {
		return cached, nil
	}

	var snap *snapshot
	err = uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var loadErr error
		// Предыдущий день нужен для бронирований, которые переходят через полночь
		snap, loadErr = uc.loadSnapshot(ctx, start.AddDate(0, 0, -1), end)
		return loadErr
	})
	if err != nil {
		uc.logger.Error("DetectConflicts: failed to load snapshot %s..%s: %v", startDate, endDate, err)
		return nil, fmt.Errorf("%w: load snapshot: %v", ErrInternal, err)
	}

	started := time.Now()
	detector := conflicts.NewDetector(snap.context)
	list := touchingRange(detector.DetectAll(), snap.context.Bookings, start, end)
	uc.observe(scopeRange, time.Since(started), list)
	uc.warnMalformed(detector)

	resp := &Response{
		StartDate:   startDate,
		EndDate:     endDate,
		Conflicts:   list,
		Summary:     conflicts.Summarize(list),
		GeneratedAt: uc.timeProvider.Now(),
	}

	uc.storeInCache(ctx, resp)

	uc.logger.Info("DetectConflicts: found %d conflicts for %s..%s (bookings=%d)",
		resp.Summary.Total, startDate, endDate, len(snap.context.Bookings))

	return resp, nil
}

// ExecuteForBooking ищет пересечения и двойные назначения для одного бронирования
// Неизвестное бронирование дает пустой список, а не ошибку
func (uc *UseCase) ExecuteForBooking(ctx context.Context, req *BookingRequest) (*Response, error) {
	uc.logger.Info("DetectBookingConflicts: user=%d, booking=%d", req.UserID, req.BookingID)

	if req.BookingID <= 0 {
		err := fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
		uc.logger.Warn("DetectBookingConflicts: validation failed: %v", err)
		return nil, err
	}

	var (
		snap  *snapshot
		found bool
		date  time.Time
	)
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		booking, err := uc.repos.Bookings.GetByID(ctx, req.BookingID)
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if booking.ScheduledDate.IsZero() {
			return nil
		}

		// Соседние дни: бронирования поздно вечером переходят через полночь
		found, date = true, booking.ScheduledDate
		snap, err = uc.loadSnapshot(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
		return err
	})
	if err != nil {
		uc.logger.Error("DetectBookingConflicts: failed to load snapshot for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: load snapshot: %v", ErrInternal, err)
	}

	if !found {
		uc.logger.Warn("DetectBookingConflicts: booking id=%d not found or has no date", req.BookingID)
		empty := make([]conflicts.ConflictDetails, 0)
		return &Response{
			Conflicts:   empty,
			Summary:     conflicts.Summarize(empty),
			GeneratedAt: uc.timeProvider.Now(),
		}, nil
	}

	started := time.Now()
	detector := conflicts.NewDetector(snap.context)
	list := detector.DetectBookingConflicts(req.BookingID)
	uc.observe(scopeBooking, time.Since(started), list)

	resp := &Response{
		StartDate:   date.AddDate(0, 0, -1).Format(domain.DateFormat),
		EndDate:     date.AddDate(0, 0, 1).Format(domain.DateFormat),
		Conflicts:   list,
		Summary:     conflicts.Summarize(list),
		GeneratedAt: uc.timeProvider.Now(),
	}

	uc.logger.Info("DetectBookingConflicts: found %d conflicts for booking=%d", resp.Summary.Total, req.BookingID)

	return resp, nil
}

// validateRange разбирает даты и проверяет длину периода
func (uc *UseCase) validateRange(req *Request) (time.Time, time.Time, error) {
	start, end, err := conflicts.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if uc.settings.MaxRangeDays > 0 && days > uc.settings.MaxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d",
			ErrRangeTooWide, days, uc.settings.MaxRangeDays)
	}

	return start, end, nil
}

// loadSnapshot читает все данные детектора; вызывается внутри DoReadOnly
func (uc *UseCase) loadSnapshot(ctx context.Context, start, end time.Time) (*snapshot, error) {
	bookings, err := uc.repos.Bookings.GetByFilter(ctx, domain.BookingsFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	crew, err := uc.repos.Crew.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get crew: %w", err)
	}

	entries, err := uc.repos.TimeEntries.GetOpenBefore(ctx, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get time entries: %w", err)
	}

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	assignments, err := uc.repos.Assignments.GetByBookingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}

	matrix, err := uc.repos.Travel.GetMatrix(ctx, uc.settings.TravelMatrixLimit)
	if err != nil {
		return nil, fmt.Errorf("get travel matrix: %w", err)
	}

	return &snapshot{
		context: conflicts.ConflictContext{
			Bookings:    bookings,
			CrewMembers: crew,
			TimeEntries: entries,
			Assignments: assignments,
			TravelTimes: matrix,
		},
	}, nil
}

func (uc *UseCase) fromCache(ctx context.Context, startDate, endDate string) *Response {
	if uc.cache == nil {
		return nil
	}

	report, found, err := uc.cache.Get(ctx, startDate, endDate)
	if err != nil {
		uc.logger.Warn("DetectConflicts: cache read failed for %s..%s: %v", startDate, endDate, err)
		return nil
	}
	if uc.metrics != nil {
		uc.metrics.ObserveCache(found)
	}
	if !found {
		return nil
	}

	return &Response{
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		Conflicts:   report.Conflicts,
		Summary:     report.Summary,
		GeneratedAt: report.GeneratedAt,
		FromCache:   true,
	}
}

func (uc *UseCase) storeInCache(ctx context.Context, resp *Response) {
	if uc.cache == nil {
		return
	}

	err := uc.cache.Set(ctx, &conflictsCache.Report{
		StartDate:   resp.StartDate,
		EndDate:     resp.EndDate,
		Conflicts:   resp.Conflicts,
		Summary:     resp.Summary,
		GeneratedAt: resp.GeneratedAt,
	})
	if err != nil {
		uc.logger.Warn("DetectConflicts: cache write failed for %s..%s: %v", resp.StartDate, resp.EndDate, err)
	}
}

func (uc *UseCase) observe(scope string, duration time.Duration, list []conflicts.ConflictDetails) {
	if uc.metrics == nil {
		return
	}

	counts := make(map[[2]string]int)
	for _, c := range list {
		counts[[2]string{string(c.Type), string(c.Severity)}]++
	}
	uc.metrics.ObserveDetection(scope, duration, counts)
}

func (uc *UseCase) warnMalformed(detector *conflicts.Detector) {
	if ids := detector.MalformedBookings(); len(ids) > 0 {
		uc.logger.Warn("DetectConflicts: skipped %d malformed bookings: %v", len(ids), ids)
	}
}

// touchingRange оставляет конфликты, в которых есть хотя бы одно бронирование с датой из [start, end]
func touchingRange(list []conflicts.ConflictDetails, bookings []*domain.Booking, start, end time.Time) []conflicts.ConflictDetails {
	inRange := make(map[int64]bool, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		d := dayOf(b.ScheduledDate)
		inRange[b.ID] = !d.Before(dayOf(start)) && !d.After(dayOf(end))
	}

	result := make([]conflicts.ConflictDetails, 0, len(list))
	for _, c := range list {
		for _, id := range c.AffectedBookings {
			if inRange[id] {
				result = append(result, c)
				break
			}
		}
	}
	return result
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
