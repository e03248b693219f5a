package travel

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий предрассчитанной матрицы времени в пути
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория матрицы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetMatrix загружает матрицу в виде "{from}_{to}" -> минуты
// limit ограничивает число строк (0 - без ограничения)
func (r *Repository) GetMatrix(ctx context.Context, limit uint64) (map[string]float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("from_address", "to_address", "travel_minutes").
		From("travel_times").
		OrderBy("from_address ASC", "to_address ASC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatrix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatrix - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	matrix := make(map[string]float64)
	for rows.Next() {
		var tt domain.TravelTime
		if err := rows.Scan(&tt.FromAddress, &tt.ToAddress, &tt.Minutes); err != nil {
			return nil, fmt.Errorf("%w: GetMatrix - scan travel time: %v", ErrScanRow, err)
		}
		matrix[domain.TravelKey(tt.FromAddress, tt.ToAddress)] = tt.Minutes
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMatrix - rows error: %v", ErrScanRow, err)
	}

	return matrix, nil
}
