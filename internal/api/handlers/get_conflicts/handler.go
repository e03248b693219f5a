package get_conflicts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ConflictService/internal/api/handlers"
	"github.com/m04kA/SMC-ConflictService/internal/api/middleware"
	"github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgMissingDates  = "параметры startDate и endDate обязательны"
	msgInvalidDates  = "некорректный период, ожидается формат YYYY-MM-DD"
	msgRangeTooWide  = "слишком длинный период"
	msgInvalidFresh  = "параметр fresh должен быть true или false"
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

// Handle GET /api/v1/conflicts?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD[&fresh=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /conflicts - Missing dates: startDate=%q, endDate=%q", startDate, endDate)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	fresh := false
	if raw := r.URL.Query().Get("fresh"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /conflicts - Invalid fresh flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidFresh)
			return
		}
		fresh = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &detect_conflicts.Request{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Fresh:     fresh,
	})
	if err != nil {
		switch {
		case errors.Is(err, detect_conflicts.ErrInvalidInput):
			h.logger.Warn("GET /conflicts - Invalid dates: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, detect_conflicts.ErrRangeTooWide):
			h.logger.Warn("GET /conflicts - Range too wide: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		default:
			h.logger.Error("GET /conflicts - Failed to detect conflicts: request_id=%s, startDate=%s, endDate=%s, error=%v",
				middleware.GetRequestID(r.Context()), startDate, endDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /conflicts - Conflicts detected: startDate=%s, endDate=%s, total=%d, cached=%t",
		result.StartDate, result.EndDate, result.Summary.Total, result.FromCache)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
