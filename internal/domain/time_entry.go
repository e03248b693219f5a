package domain

import "time"

// TimeEntryStatus статус отметки рабочего времени
type TimeEntryStatus string

const (
	TimeEntryActive    TimeEntryStatus = "active"
	TimeEntryCompleted TimeEntryStatus = "completed"
)

// TimeEntry отметка прихода/ухода сотрудника
type TimeEntry struct {
	ID           int64
	CrewMemberID int64
	BookingID    *int64 // бронирование, по которому отмечен сотрудник (может отсутствовать)
	ClockInTime  time.Time
	ClockOutTime *time.Time
	Status       TimeEntryStatus
}

// IsOpen сотрудник отметился и еще не ушел
func (e *TimeEntry) IsOpen() bool {
	return e.Status == TimeEntryActive && e.ClockOutTime == nil && !e.ClockInTime.IsZero()
}

// IsFor проверяет, что отметка сделана по указанному бронированию
func (e *TimeEntry) IsFor(bookingID int64) bool {
	return e.BookingID != nil && *e.BookingID == bookingID
}
