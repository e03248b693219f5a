package get_booking_conflicts

import (
	"context"

	"github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
)

type UseCase interface {
	ExecuteForBooking(ctx context.Context, req *detect_conflicts.BookingRequest) (*detect_conflicts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
