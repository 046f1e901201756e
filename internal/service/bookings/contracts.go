package bookings

import (
	"context"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория записей бронирования
type BookingRepository interface {
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
