package conflicts

import "fmt"

// detectTimeOverlaps находит пересекающиеся по времени активные бронирования
// Каждая неупорядоченная пара попадает в результат не более одного раза
func (d *Detector) detectTimeOverlaps() []ConflictDetails {
	result := make([]ConflictDetails, 0)

	for i := range d.active {
		a := d.active[i]
		for j := i + 1; j < len(d.active); j++ {
			b := d.active[j]
			// active отсортирован по началу: дальше пересечений с a нет
			if !b.start.Before(a.end) {
				break
			}
			minutes, ok := overlapMinutes(a, b)
			if !ok {
				continue
			}
			result = append(result, d.timeOverlapConflict(a, b, minutes))
		}
	}

	return result
}

func (d *Detector) timeOverlapConflict(a, b scheduled, minutes int) ConflictDetails {
	lo, hi := orderedIDs(a.id(), b.id())
	id := fmt.Sprintf("%s_%d_%d", TypeTimeOverlap, lo, hi)

	return ConflictDetails{
		ID:       id,
		Type:     TypeTimeOverlap,
		Severity: overlapSeverity(minutes),
		Title:    "Bookings overlap in time",
		Description: fmt.Sprintf("Booking #%d (%s) and booking #%d (%s) overlap by %d minutes",
			a.id(), timeWindow(a), b.id(), timeWindow(b), minutes),
		AffectedBookings:     []int64{a.id(), b.id()},
		SuggestedResolutions: overlapResolutions(id, a, b, minutes),
		Metadata: map[string]interface{}{
			"overlapMinutes": minutes,
			"bookings":       []string{bookingSummary(a), bookingSummary(b)},
		},
	}
}
