package timeentry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий отметок рабочего времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отметок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOpenBefore получает незакрытые отметки, начатые до момента before
// Закрытые отметки детектору не нужны
func (r *Repository) GetOpenBefore(ctx context.Context, before time.Time) ([]*domain.TimeEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"crew_member_id",
		"booking_id",
		"clock_in_time",
		"clock_out_time",
		"status",
	).
		From("time_entries").
		Where(squirrel.Eq{"status": string(domain.TimeEntryActive)}).
		Where(squirrel.Eq{"clock_out_time": nil}).
		Where(squirrel.Lt{"clock_in_time": before}).
		OrderBy("crew_member_id ASC", "clock_in_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		var entry domain.TimeEntry
		var bookingID sql.NullInt64
		var clockOut sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.CrewMemberID,
			&bookingID,
			&entry.ClockInTime,
			&clockOut,
			&entry.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOpenBefore - scan time entry: %v", ErrScanRow, err)
		}

		if bookingID.Valid {
			entry.BookingID = &bookingID.Int64
		}
		if clockOut.Valid {
			entry.ClockOutTime = &clockOut.Time
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOpenBefore - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
