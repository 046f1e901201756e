package check_availability

import (
	"context"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

// EventFeed интерфейс загрузки календарных коллекций
type EventFeed interface {
	Load(ctx context.Context, from, to domain.Day) (*calendarfeed.Window, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
