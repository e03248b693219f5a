package get_booking_conflicts

import "github.com/m04kA/SMC-ConflictService/internal/conflicts"

// BookingConflictsResponse конфликты одного бронирования
type BookingConflictsResponse struct {
	BookingID int64                       `json:"bookingId"`
	Conflicts []conflicts.ConflictDetails `json:"conflicts"`
	Summary   conflicts.Summary           `json:"summary"`
}
