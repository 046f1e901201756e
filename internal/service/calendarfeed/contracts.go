package calendarfeed

import (
	"context"
	"time"

	"github.com/studio609/Studio-BookingService/internal/integrations/caldav"
)

// CalendarClient интерфейс CalDAV-клиента, используемый фидом
type CalendarClient interface {
	FetchEvents(ctx context.Context, calendarPath string, start, end time.Time) ([]caldav.Object, error)
	FetchObject(ctx context.Context, href string) (caldav.Object, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
