package get_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/conflicts"
	"github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
)

// ConflictsResponse тело ответа со списком конфликтов
type ConflictsResponse struct {
	Conflicts   []conflicts.ConflictDetails `json:"conflicts"`
	Summary     conflicts.Summary           `json:"summary"`
	StartDate   string                      `json:"startDate"`
	EndDate     string                      `json:"endDate"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Cached      bool                        `json:"cached"`
}

// FromUseCaseResponse конвертирует ответ use case в модель API
func FromUseCaseResponse(resp *detect_conflicts.Response) *ConflictsResponse {
	return &ConflictsResponse{
		Conflicts:   resp.Conflicts,
		Summary:     resp.Summary,
		StartDate:   resp.StartDate,
		EndDate:     resp.EndDate,
		GeneratedAt: resp.GeneratedAt,
		Cached:      resp.FromCache,
	}
}
