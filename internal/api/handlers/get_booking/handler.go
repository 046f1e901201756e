package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studio609/Studio-BookingService/internal/api/handlers"
	"github.com/studio609/Studio-BookingService/internal/service/bookings"
)

const (
	msgMissingRef      = "параметр bookingRef обязателен"
	msgBookingNotFound = "бронирование не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["bookingRef"]
	if ref == "" {
		h.logger.Warn("GET /bookings/{bookingRef} - Missing booking ref")
		handlers.RespondBadRequest(w, msgMissingRef)
		return
	}

	result, err := h.service.GetByRef(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{bookingRef} - Booking not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{bookingRef} - Failed to fetch booking: ref=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
