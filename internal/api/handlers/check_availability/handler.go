package check_availability

import (
	"errors"
	"net/http"

	"github.com/studio609/Studio-BookingService/internal/api/handlers"
	checkAvailability "github.com/studio609/Studio-BookingService/internal/usecase/check_availability"
)

const (
	msgMissingRange        = "параметры from и to обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange        = "начало диапазона позже его конца"
	msgRangeTooLarge       = "диапазон дат слишком широкий"
	msgCalendarUnavailable = "календарный сервер недоступен"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?from=YYYY-MM-DD&to=YYYY-MM-DD&debug=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /availability - Missing range parameters: from=%q, to=%q", from, to)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	debug := q.Get("debug") == "1" || q.Get("debug") == "true"

	useCaseReq, err := ToUseCaseRequest(from, to, debug)
	if err != nil {
		h.logger.Warn("GET /availability - Failed to parse range: from=%q, to=%q, error=%v", from, to, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidRange):
			h.logger.Warn("GET /availability - Invalid range: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, checkAvailability.ErrRangeTooLarge):
			h.logger.Warn("GET /availability - Range too large: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, checkAvailability.ErrCalendarUnavailable):
			h.logger.Error("GET /availability - Calendar unavailable: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to check availability: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
