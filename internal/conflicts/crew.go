package conflicts

import (
	"fmt"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

// Причины недоступности сотрудника
const (
	reasonStatus    = "status"
	reasonClockedIn = "clocked_in"
)

// detectCrewDoubleBookings сотрудник назначен на два пересекающихся бронирования
// Серьезность всегда critical: сотрудник не может быть в двух местах сразу
func (d *Detector) detectCrewDoubleBookings() []ConflictDetails {
	result := make([]ConflictDetails, 0)

	for _, crewID := range d.crewIDs {
		list := d.bookByCrew[crewID]
		for i := range list {
			a := list[i]
			for j := i + 1; j < len(list); j++ {
				b := list[j]
				if !b.start.Before(a.end) {
					break
				}
				minutes, ok := overlapMinutes(a, b)
				if !ok {
					continue
				}
				result = append(result, d.doubleBookingConflict(crewID, a, b, minutes))
			}
		}
	}

	return result
}

func (d *Detector) doubleBookingConflict(crewID int64, a, b scheduled, minutes int) ConflictDetails {
	lo, hi := orderedIDs(a.id(), b.id())
	id := fmt.Sprintf("%s_%d_%d_%d", TypeCrewDoubleBooking, crewID, lo, hi)
	name := d.crewName(crewID)

	return ConflictDetails{
		ID:       id,
		Type:     TypeCrewDoubleBooking,
		Severity: SeverityCritical,
		Title:    "Crew member double-booked",
		Description: fmt.Sprintf("%s is assigned to booking #%d (%s) and booking #%d (%s) at the same time",
			name, a.id(), timeWindow(a), b.id(), timeWindow(b)),
		AffectedBookings:     []int64{a.id(), b.id()},
		AffectedCrewMembers:  []int64{crewID},
		SuggestedResolutions: d.doubleBookingResolutions(id, crewID, a, b),
		Metadata: map[string]interface{}{
			"overlapMinutes": minutes,
			"crewMemberName": name,
			"bookings":       []string{bookingSummary(a), bookingSummary(b)},
		},
	}
}

// detectCrewAvailability назначенный сотрудник не выйдет на бронирование:
// статус off_duty/unavailable или незакрытая отметка по другой работе
func (d *Detector) detectCrewAvailability() []ConflictDetails {
	result := make([]ConflictDetails, 0)

	for _, s := range d.active {
		for _, crewID := range d.crewByBook[s.id()] {
			member := d.crew[crewID]
			reason, entry := d.unavailability(member, s)
			if reason == "" {
				continue
			}
			result = append(result, d.crewUnavailableConflict(member, s, reason, entry))
		}
	}

	return result
}

// unavailability возвращает причину недоступности сотрудника для бронирования
func (d *Detector) unavailability(member *domain.CrewMember, s scheduled) (string, *domain.TimeEntry) {
	if member.IsOffDuty() {
		return reasonStatus, nil
	}
	if entry := d.blockingEntry(member.ID, s); entry != nil {
		return reasonClockedIn, entry
	}
	return "", nil
}

// blockingEntry открытая отметка, начатая до конца бронирования и не относящаяся к нему
func (d *Detector) blockingEntry(crewID int64, s scheduled) *domain.TimeEntry {
	for _, e := range d.openEntries[crewID] {
		if e.IsFor(s.id()) {
			continue
		}
		if e.ClockInTime.Before(s.end) {
			return e
		}
	}
	return nil
}

func (d *Detector) crewUnavailableConflict(member *domain.CrewMember, s scheduled, reason string, entry *domain.TimeEntry) ConflictDetails {
	id := fmt.Sprintf("%s_%d_%d", TypeCrewUnavailable, s.id(), member.ID)
	name := d.crewName(member.ID)

	metadata := map[string]interface{}{
		"reason":     reason,
		"crewStatus": string(member.Status),
		"booking":    bookingSummary(s),
	}

	var description string
	if reason == reasonStatus {
		description = fmt.Sprintf("%s is %s and cannot work booking #%d (%s)",
			name, member.Status, s.id(), timeWindow(s))
	} else {
		description = fmt.Sprintf("%s has been clocked in since %s and is still busy during booking #%d (%s)",
			name, entry.ClockInTime.Format("2006-01-02 15:04"), s.id(), timeWindow(s))
		metadata["timeEntryId"] = entry.ID
		metadata["clockInTime"] = entry.ClockInTime
	}

	return ConflictDetails{
		ID:                   id,
		Type:                 TypeCrewUnavailable,
		Severity:             SeverityHigh,
		Title:                "Assigned crew member unavailable",
		Description:          description,
		AffectedBookings:     []int64{s.id()},
		AffectedCrewMembers:  []int64{member.ID},
		SuggestedResolutions: d.unavailableResolutions(id, member.ID, s),
		Metadata:             metadata,
	}
}

// availableCrewFor сотрудники, которые могут взять бронирование:
// статус available/break, не назначены на него, свободны по другим назначениям и отметкам
func (d *Detector) availableCrewFor(s scheduled, exclude ...int64) []int64 {
	result := make([]int64, 0)

	for _, crewID := range d.crewIDs {
		if contains(exclude, crewID) || contains(d.crewByBook[s.id()], crewID) {
			continue
		}
		if !d.crew[crewID].IsTentativelyEligible() {
			continue
		}
		if d.busyDuring(crewID, s) || d.blockingEntry(crewID, s) != nil {
			continue
		}
		result = append(result, crewID)
	}

	return result
}

func (d *Detector) busyDuring(crewID int64, s scheduled) bool {
	for _, other := range d.bookByCrew[crewID] {
		if other.id() == s.id() {
			continue
		}
		if _, ok := overlapMinutes(other, s); ok {
			return true
		}
	}
	return false
}

func (d *Detector) crewName(crewID int64) string {
	if m, ok := d.crew[crewID]; ok && m.FullName() != "" {
		return m.FullName()
	}
	return fmt.Sprintf("Crew member #%d", crewID)
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
