package get_booking

import (
	"context"

	"github.com/studio609/Studio-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByRef(ctx context.Context, ref string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
