package crew

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников бригад
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает всех сотрудников
// Детектору нужен полный список: кандидаты на замену ищутся среди всех
func (r *Repository) GetAll(ctx context.Context) ([]*domain.CrewMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"status",
		"certifications",
		"hire_date",
	).
		From("crew_members").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.CrewMember, 0)
	for rows.Next() {
		var member domain.CrewMember
		var lastName sql.NullString
		var hireDate sql.NullTime
		var certifications pq.StringArray

		err := rows.Scan(
			&member.ID,
			&member.FirstName,
			&lastName,
			&member.Status,
			&certifications,
			&hireDate,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan crew member: %v", ErrScanRow, err)
		}

		member.LastName = lastName.String
		member.Certifications = []string(certifications)
		if hireDate.Valid {
			member.HireDate = &hireDate.Time
		}

		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}
