package create_booking

import (
	"context"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/integrations/stripepay"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

// EventFeed интерфейс загрузки календарных коллекций
type EventFeed interface {
	Load(ctx context.Context, from, to domain.Day) (*calendarfeed.Window, error)
}

// CalendarClient интерфейс записи в календарный сервер
type CalendarClient interface {
	PutEvent(ctx context.Context, calendarPath, uid, icsBody string) (string, error)
	DeleteEvent(ctx context.Context, href string) error
}

// BookingRepository интерфейс репозитория записей бронирования
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// PaymentClient интерфейс платёжного клиента
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, in stripepay.CheckoutInput) (*stripepay.CheckoutSession, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
