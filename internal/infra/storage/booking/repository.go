package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ConflictService/pkg/types"
)

// columns порядок колонок должен совпадать со scanBooking
var columns = []string{
	"id",
	"customer_name",
	"scheduled_date",
	"scheduled_time",
	"duration_minutes",
	"address",
	"city",
	"zip_code",
	"status",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для чтения бронирований
// Сервис конфликтов бронирования не изменяет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования за период [StartDate, EndDate]
// По умолчанию завершенные и отмененные бронирования исключаются
//
// Пример: все активные бронирования за март
//
//	filter := domain.BookingsFilter{
//	    StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
//	    EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
//	}
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.GtOrEq{"scheduled_date": filter.StartDate}).
		Where(squirrel.LtOrEq{"scheduled_date": filter.EndDate})

	if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	query, args, err := selectBuilder.
		OrderBy("scheduled_date ASC", "scheduled_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// scanBooking читает строку, допуская NULL и битое время в любой колонке кроме id
// Такое бронирование детектор пропустит как некорректное, остальные строки не теряются
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var customerName, scheduledTime, address, city, zipCode, status sql.NullString
	var scheduledDate sql.NullTime
	var duration sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&customerName,
		&scheduledDate,
		&scheduledTime,
		&duration,
		&address,
		&city,
		&zipCode,
		&status,
	)
	if err != nil {
		return nil, err
	}

	booking.CustomerName = customerName.String
	booking.ScheduledDate = scheduledDate.Time
	booking.ScheduledTime = parseScheduledTime(scheduledTime.String)
	booking.DurationMinutes = int(duration.Int64)
	booking.Address = address.String
	booking.City = city.String
	booking.ZipCode = zipCode.String
	booking.Status = domain.BookingStatus(status.String)

	return &booking, nil
}

// parseScheduledTime приводит TIME к HH:MM; нераспознанное значение сохраняется как есть
func parseScheduledTime(raw string) types.TimeString {
	if ts, err := types.NewTimeStringFromString(raw); err == nil {
		return ts
	}
	return types.TimeString(raw)
}
