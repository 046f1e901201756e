package create_booking

import (
	"errors"
	"net/http"

	"github.com/studio609/Studio-BookingService/internal/api/handlers"
	createBooking "github.com/studio609/Studio-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные бронирования"
	msgDateInPast          = "дата бронирования уже прошла"
	msgDayNotAvailable     = "выбранный день недоступен для бронирования"
	msgCalendarUnavailable = "календарный сервер недоступен"
	msgPaymentUnavailable  = "платёжный сервис недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: date=%q, error=%v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDayNotAvailable):
			h.logger.Warn("POST /bookings - Day not available: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDayNotAvailable)

		case errors.Is(err, createBooking.ErrCalendarUnavailable):
			h.logger.Error("POST /bookings - Calendar unavailable: date=%s, error=%v", req.Date, err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		case errors.Is(err, createBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /bookings - Payment unavailable: date=%s, error=%v", req.Date, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: ref=%s, date=%s", result.BookingRef, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
