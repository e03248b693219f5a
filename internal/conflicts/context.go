package conflicts

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

// ConflictContext неизменяемый снимок данных для детектора
// Вызывающий код не должен менять его во время вызова детектора
type ConflictContext struct {
	Bookings    []*domain.Booking
	CrewMembers []*domain.CrewMember
	TimeEntries []*domain.TimeEntry
	// Assignments назначения бригады на бронирования
	// Без них правила по сотрудникам ничего не находят
	Assignments []domain.CrewAssignment
	// TravelTimes предрассчитанная матрица "{address1}_{address2}" -> минуты
	TravelTimes map[string]float64
}

// FilterByDateRange оставляет бронирования с датой в [start, end] включительно
// Сотрудники, отметки и назначения не фильтруются
func (cc ConflictContext) FilterByDateRange(start, end time.Time) ConflictContext {
	from := dateOnly(start)
	to := dateOnly(end)

	filtered := make([]*domain.Booking, 0, len(cc.Bookings))
	for _, b := range cc.Bookings {
		if b == nil || b.ScheduledDate.IsZero() {
			continue
		}
		d := dateOnly(b.ScheduledDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		filtered = append(filtered, b)
	}

	cc.Bookings = filtered
	return cc
}

// ParseDateRange разбирает пару ISO дат (YYYY-MM-DD)
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateFormat, strings.TrimSpace(startDate))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate %q: %v", ErrInvalidDateRange, startDate, err)
	}

	end, err := time.Parse(domain.DateFormat, strings.TrimSpace(endDate))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %q: %v", ErrInvalidDateRange, endDate, err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %s is before startDate %s",
			ErrInvalidDateRange, endDate, startDate)
	}

	return start, end, nil
}

// DetectInDateRange сужает снимок до диапазона дат и запускает все правила
func DetectInDateRange(cc ConflictContext, startDate, endDate string, opts ...Option) ([]ConflictDetails, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return NewDetector(cc.FilterByDateRange(start, end), opts...).DetectAll(), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
