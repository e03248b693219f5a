package conflicts

// ConflictType тип конфликта расписания
type ConflictType string

const (
	TypeTimeOverlap         ConflictType = "time_overlap"
	TypeCrewDoubleBooking   ConflictType = "crew_double_booking"
	TypeResourceUnavailable ConflictType = "resource_unavailable"
	TypeTravelTime          ConflictType = "travel_time"
	TypeCrewUnavailable     ConflictType = "crew_unavailable"
)

// Severity серьезность конфликта: critical > high > medium > low
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ResolutionType тип предлагаемого решения
type ResolutionType string

const (
	ResolutionReschedule   ResolutionType = "reschedule"
	ResolutionReassignCrew ResolutionType = "reassign_crew"
	ResolutionSplitBooking ResolutionType = "split_booking"
	ResolutionExtendTime   ResolutionType = "extend_time"
	ResolutionAddCrew      ResolutionType = "add_crew"
)

// Impact насколько болезненно применение решения
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// ConflictDetails найденный конфликт вместе с вариантами решения
// ID детерминирован: тип + отсортированные id сущностей
type ConflictDetails struct {
	ID                   string                 `json:"id"`
	Type                 ConflictType           `json:"type"`
	Severity             Severity               `json:"severity"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	AffectedBookings     []int64                `json:"affectedBookings"`
	AffectedCrewMembers  []int64                `json:"affectedCrewMembers,omitempty"`
	SuggestedResolutions []ResolutionSuggestion `json:"suggestedResolutions"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
}

// References проверяет, что конфликт затрагивает бронирование
func (c *ConflictDetails) References(bookingID int64) bool {
	for _, id := range c.AffectedBookings {
		if id == bookingID {
			return true
		}
	}
	return false
}

// ResolutionSuggestion вариант решения конфликта
// Parameters содержит все, что нужно вызывающему слою для применения
type ResolutionSuggestion struct {
	ID              string                 `json:"id"`
	Type            ResolutionType         `json:"type"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Impact          Impact                 `json:"impact"`
	EstimatedEffort string                 `json:"estimatedEffort"`
	AutoApplicable  bool                   `json:"autoApplicable"`
	Parameters      map[string]interface{} `json:"parameters"`
}

// Summary агрегаты по списку конфликтов для ответа API
type Summary struct {
	Total                     int                  `json:"total"`
	BySeverity                map[Severity]int     `json:"bySeverity"`
	ByType                    map[ConflictType]int `json:"byType"`
	AutoApplicableResolutions int                  `json:"autoApplicableResolutions"`
}
