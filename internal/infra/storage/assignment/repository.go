package assignment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий назначений сотрудников на бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBookingIDs получает назначения для списка бронирований
// Пустой список id не ходит в БД
func (r *Repository) GetByBookingIDs(ctx context.Context, bookingIDs []int64) ([]domain.CrewAssignment, error) {
	assignments := make([]domain.CrewAssignment, 0)
	if len(bookingIDs) == 0 {
		return assignments, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id", "crew_member_id").
		From("booking_crew_assignments").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id ASC", "crew_member_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.CrewAssignment
		if err := rows.Scan(&a.BookingID, &a.CrewMemberID); err != nil {
			return nil, fmt.Errorf("%w: GetByBookingIDs - scan assignment: %v", ErrScanRow, err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return assignments, nil
}
