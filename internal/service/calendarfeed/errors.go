package calendarfeed

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда хотя бы одна из коллекций
	// недоступна. Оценка доступности никогда не запускается на частичных
	// данных.
	ErrCalendarUnavailable = errors.New("calendar collaborator unavailable")
)
