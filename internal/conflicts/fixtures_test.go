package conflicts

import (
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
	"github.com/m04kA/SMC-ConflictService/pkg/types"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type bookingOpt func(*domain.Booking)

func withStatus(s domain.BookingStatus) bookingOpt {
	return func(b *domain.Booking) { b.Status = s }
}

func withAddress(address, city, zip string) bookingOpt {
	return func(b *domain.Booking) {
		b.Address = address
		b.City = city
		b.ZipCode = zip
	}
}

func onDate(date time.Time) bookingOpt {
	return func(b *domain.Booking) { b.ScheduledDate = date }
}

func newBooking(id int64, clock string, duration int, opts ...bookingOpt) *domain.Booking {
	b := &domain.Booking{
		ID:              id,
		CustomerName:    "Customer",
		ScheduledDate:   testDay,
		ScheduledTime:   types.TimeString(clock),
		DurationMinutes: duration,
		Address:         "1 Main St",
		City:            "Springfield",
		ZipCode:         "10000",
		Status:          domain.StatusConfirmed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func newCrew(id int64, status domain.CrewStatus) *domain.CrewMember {
	return &domain.CrewMember{ID: id, FirstName: "Crew", LastName: "Member", Status: status}
}

func assign(bookingID, crewID int64) domain.CrewAssignment {
	return domain.CrewAssignment{BookingID: bookingID, CrewMemberID: crewID}
}

func openEntry(id, crewID int64, clockIn time.Time, bookingID *int64) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:           id,
		CrewMemberID: crewID,
		BookingID:    bookingID,
		ClockInTime:  clockIn,
		Status:       domain.TimeEntryActive,
	}
}

func at(clock string) time.Time {
	t, err := types.TimeString(clock).OnDate(testDay)
	if err != nil {
		panic(err)
	}
	return t
}

func ofType(list []ConflictDetails, t ConflictType) []ConflictDetails {
	out := make([]ConflictDetails, 0)
	for _, c := range list {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func ids(list []ConflictDetails) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func resolutionByID(c ConflictDetails, suffix string) *ResolutionSuggestion {
	for i := range c.SuggestedResolutions {
		if c.SuggestedResolutions[i].ID == c.ID+suffix {
			return &c.SuggestedResolutions[i]
		}
	}
	return nil
}
