package get_booking_conflicts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConflictService/internal/api/handlers"
	"github.com/m04kA/SMC-ConflictService/internal/api/middleware"
	"github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/conflicts
// Для несуществующего бронирования возвращается пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id}/conflicts - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.ExecuteForBooking(r.Context(), &detect_conflicts.BookingRequest{
		UserID:    userID,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, detect_conflicts.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/conflicts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/{id}/conflicts - Failed to detect conflicts: request_id=%s, booking_id=%d, error=%v",
				middleware.GetRequestID(r.Context()), bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/conflicts - Conflicts detected: booking_id=%d, total=%d",
		bookingID, result.Summary.Total)
	handlers.RespondJSON(w, http.StatusOK, &BookingConflictsResponse{
		BookingID: bookingID,
		Conflicts: result.Conflicts,
		Summary:   result.Summary,
	})
}
