package confirm_payment

import (
	"context"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

// EventFeed интерфейс загрузки календарных коллекций
type EventFeed interface {
	Load(ctx context.Context, from, to domain.Day) (*calendarfeed.Window, error)
}

// CalendarClient интерфейс снятия событий с календарного сервера
type CalendarClient interface {
	DeleteEvent(ctx context.Context, href string) error
}

// BookingRepository интерфейс репозитория записей бронирования
type BookingRepository interface {
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) error
	SetPaymentIntent(ctx context.Context, ref, paymentIntentID string, status domain.BookingStatus) error
}

// PaymentClient интерфейс платёжного клиента
type PaymentClient interface {
	Refund(ctx context.Context, paymentIntentID, reason string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
