package conflicts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

// Параметры предлагаемых решений, в минутах
const (
	rescheduleExtraMinutes = 30 // запас сверх пересечения при переносе
	maxBufferOverlap       = 30 // буфер предлагается только для коротких пересечений
	travelSlackMinutes     = 15 // запас сверх нехватки времени на дорогу
)

func overlapResolutions(conflictID string, earlier, later scheduled, overlap int) []ResolutionSuggestion {
	offset := overlap + rescheduleExtraMinutes

	result := []ResolutionSuggestion{
		{
			ID:              conflictID + "_reschedule_later",
			Type:            ResolutionReschedule,
			Title:           fmt.Sprintf("Reschedule booking #%d", later.id()),
			Description:     fmt.Sprintf("Move booking #%d %d minutes later", later.id(), offset),
			Impact:          ImpactMedium,
			EstimatedEffort: "5-10 minutes (customer confirmation required)",
			AutoApplicable:  false,
			Parameters:      shiftParameters(later, offset),
		},
		{
			ID:              conflictID + "_reschedule_earlier",
			Type:            ResolutionReschedule,
			Title:           fmt.Sprintf("Reschedule booking #%d", earlier.id()),
			Description:     fmt.Sprintf("Move booking #%d %d minutes earlier", earlier.id(), offset),
			Impact:          ImpactMedium,
			EstimatedEffort: "5-10 minutes (customer confirmation required)",
			AutoApplicable:  false,
			Parameters:      shiftParameters(earlier, -offset),
		},
	}

	if overlap <= maxBufferOverlap {
		result = append(result, ResolutionSuggestion{
			ID:              conflictID + "_extend_buffer",
			Type:            ResolutionExtendTime,
			Title:           "Insert buffer between bookings",
			Description:     fmt.Sprintf("Shift booking #%d by %d minutes so it starts when booking #%d ends", later.id(), overlap, earlier.id()),
			Impact:          ImpactLow,
			EstimatedEffort: "1-2 minutes",
			AutoApplicable:  true,
			Parameters: map[string]interface{}{
				"bookingId":    later.id(),
				"delayMinutes": overlap,
			},
		})
	}

	return result
}

func (d *Detector) doubleBookingResolutions(conflictID string, crewID int64, a, b scheduled) []ResolutionSuggestion {
	candidatesA := d.availableCrewFor(a, crewID)
	candidatesB := d.availableCrewFor(b, crewID)

	return []ResolutionSuggestion{
		reassignSuggestion(fmt.Sprintf("%s_reassign_%d", conflictID, a.id()), crewID, a, candidatesA),
		reassignSuggestion(fmt.Sprintf("%s_reassign_%d", conflictID, b.id()), crewID, b, candidatesB),
		{
			ID:              conflictID + "_add_crew",
			Type:            ResolutionAddCrew,
			Title:           "Add another crew member",
			Description:     fmt.Sprintf("Bring in a second crew member so bookings #%d and #%d are both covered", a.id(), b.id()),
			Impact:          ImpactHigh,
			EstimatedEffort: "15-30 minutes (staffing decision)",
			AutoApplicable:  false,
			Parameters: map[string]interface{}{
				"bookingIds":             []int64{a.id(), b.id()},
				"crewMemberId":           crewID,
				"candidateCrewMemberIds": intersect(candidatesA, candidatesB),
			},
		},
	}
}

func (d *Detector) unavailableResolutions(conflictID string, crewID int64, s scheduled) []ResolutionSuggestion {
	result := make([]ResolutionSuggestion, 0, 2)

	if candidates := d.availableCrewFor(s, crewID); len(candidates) > 0 {
		result = append(result, ResolutionSuggestion{
			ID:              conflictID + "_auto_reassign",
			Type:            ResolutionReassignCrew,
			Title:           "Reassign to an available crew member",
			Description:     fmt.Sprintf("Assign %s to booking #%d instead", d.crewName(candidates[0]), s.id()),
			Impact:          ImpactLow,
			EstimatedEffort: "1-2 minutes",
			AutoApplicable:  true,
			Parameters: map[string]interface{}{
				"bookingId":              s.id(),
				"fromCrewMemberId":       crewID,
				"toCrewMemberId":         candidates[0],
				"candidateCrewMemberIds": candidates,
			},
		})
	}

	result = append(result, ResolutionSuggestion{
		ID:              conflictID + "_reschedule",
		Type:            ResolutionReschedule,
		Title:           fmt.Sprintf("Reschedule booking #%d", s.id()),
		Description:     fmt.Sprintf("Move booking #%d to a time when %s is available", s.id(), d.crewName(crewID)),
		Impact:          ImpactMedium,
		EstimatedEffort: "10-15 minutes (customer confirmation required)",
		AutoApplicable:  false,
		Parameters: map[string]interface{}{
			"bookingId":    s.id(),
			"crewMemberId": crewID,
		},
	})

	return result
}

func (d *Detector) travelConflict(crewID int64, prev, next scheduled, required, available float64) ConflictDetails {
	lo, hi := orderedIDs(prev.id(), next.id())
	id := fmt.Sprintf("%s_%d_%d_%d", TypeTravelTime, crewID, lo, hi)
	shortfall := required - available
	delay := int(math.Ceil(shortfall)) + travelSlackMinutes
	name := d.crewName(crewID)

	return ConflictDetails{
		ID:       id,
		Type:     TypeTravelTime,
		Severity: SeverityMedium,
		Title:    "Not enough travel time between bookings",
		Description: fmt.Sprintf("%s needs about %.0f minutes to get from booking #%d to booking #%d but has only %.0f",
			name, required, prev.id(), next.id(), available),
		AffectedBookings:    []int64{prev.id(), next.id()},
		AffectedCrewMembers: []int64{crewID},
		SuggestedResolutions: []ResolutionSuggestion{
			{
				ID:              id + "_delay",
				Type:            ResolutionReschedule,
				Title:           fmt.Sprintf("Push booking #%d later", next.id()),
				Description:     fmt.Sprintf("Start booking #%d %d minutes later to allow for travel", next.id(), delay),
				Impact:          ImpactLow,
				EstimatedEffort: "1-2 minutes",
				AutoApplicable:  true,
				Parameters: map[string]interface{}{
					"bookingId":    next.id(),
					"delayMinutes": delay,
				},
			},
			reassignSuggestion(id+"_reassign", crewID, next, d.availableCrewFor(next, crewID)),
		},
		Metadata: map[string]interface{}{
			"requiredMinutes":  required,
			"availableMinutes": available,
			"shortfall":        shortfall,
			"crewMemberName":   name,
			"fromAddress":      prev.booking.Address,
			"toAddress":        next.booking.Address,
		},
	}
}

// reassignSuggestion ручная замена сотрудника: выбор кандидата остается за диспетчером
func reassignSuggestion(id string, crewID int64, s scheduled, candidates []int64) ResolutionSuggestion {
	return ResolutionSuggestion{
		ID:              id,
		Type:            ResolutionReassignCrew,
		Title:           fmt.Sprintf("Reassign crew for booking #%d", s.id()),
		Description:     fmt.Sprintf("Assign a different crew member to booking #%d", s.id()),
		Impact:          ImpactMedium,
		EstimatedEffort: "5-10 minutes",
		AutoApplicable:  false,
		Parameters: map[string]interface{}{
			"bookingId":              s.id(),
			"fromCrewMemberId":       crewID,
			"candidateCrewMemberIds": candidates,
		},
	}
}

func shiftParameters(s scheduled, offset int) map[string]interface{} {
	newStart := s.start.Add(time.Duration(offset) * time.Minute)
	return map[string]interface{}{
		"bookingId":     s.id(),
		"offsetMinutes": offset,
		"newDate":       newStart.Format(domain.DateFormat),
		"newTime":       newStart.Format(domain.TimeFormat),
	}
}

func timeWindow(s scheduled) string {
	return s.start.Format(domain.DateFormat+" "+domain.TimeFormat) + "-" + s.end.Format(domain.TimeFormat)
}

// bookingSummary строка для metadata: "#12 Jane Doe 2025-03-01 09:00-11:00 @ 1 Main St, Springfield"
func bookingSummary(s scheduled) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d", s.id())
	if s.booking.CustomerName != "" {
		sb.WriteString(" " + s.booking.CustomerName)
	}
	sb.WriteString(" " + timeWindow(s))
	if s.booking.Address != "" {
		sb.WriteString(" @ " + s.booking.Address)
		if s.booking.City != "" {
			sb.WriteString(", " + s.booking.City)
		}
	}
	return sb.String()
}

func intersect(a, b []int64) []int64 {
	result := make([]int64, 0)
	for _, id := range a {
		if contains(b, id) {
			result = append(result, id)
		}
	}
	return result
}
