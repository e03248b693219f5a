package conflicts

import (
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/conflicts"
)

// Report закешированный результат поиска конфликтов за период
type Report struct {
	StartDate   string                      `json:"startDate"`
	EndDate     string                      `json:"endDate"`
	Conflicts   []conflicts.ConflictDetails `json:"conflicts"`
	Summary     conflicts.Summary           `json:"summary"`
	GeneratedAt time.Time                   `json:"generatedAt"`
}
