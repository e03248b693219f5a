package conflicts

import "sort"

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Пороги серьезности пересечения бронирований, в минутах
const (
	overlapCriticalMinutes = 60
	overlapHighMinutes     = 30
	overlapMediumMinutes   = 15
)

// overlapSeverity серьезность пересечения по его длительности
func overlapSeverity(minutes int) Severity {
	switch {
	case minutes >= overlapCriticalMinutes:
		return SeverityCritical
	case minutes >= overlapHighMinutes:
		return SeverityHigh
	case minutes >= overlapMediumMinutes:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// sortBySeverity стабильная сортировка: critical первыми, внутри серьезности - порядок обнаружения
func sortBySeverity(list []ConflictDetails) {
	sort.SliceStable(list, func(i, j int) bool {
		return rank(list[i].Severity) < rank(list[j].Severity)
	})
}

func rank(s Severity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Summarize считает агрегаты по списку конфликтов
func Summarize(list []ConflictDetails) Summary {
	summary := Summary{
		Total: len(list),
		BySeverity: map[Severity]int{
			SeverityCritical: 0,
			SeverityHigh:     0,
			SeverityMedium:   0,
			SeverityLow:      0,
		},
		ByType: make(map[ConflictType]int),
	}

	for _, c := range list {
		summary.BySeverity[c.Severity]++
		summary.ByType[c.Type]++
		for _, r := range c.SuggestedResolutions {
			if r.AutoApplicable {
				summary.AutoApplicableResolutions++
			}
		}
	}

	return summary
}
