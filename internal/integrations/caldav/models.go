package caldav

import "encoding/xml"

// Object is one calendar object as returned by the collaborator. Data holds
// the serialized iCalendar payload; it may be empty when the server returned
// a stub without inline calendar-data, in which case the caller hydrates it
// with FetchObject.
type Object struct {
	Href string
	ETag string
	Data string
}

// multistatus models the WebDAV 207 response body of a REPORT.
type multistatus struct {
	XMLName   xml.Name     `xml:"DAV: multistatus"`
	Responses []msResponse `xml:"response"`
}

type msResponse struct {
	Href      string       `xml:"href"`
	Propstats []msPropstat `xml:"propstat"`
}

type msPropstat struct {
	Status string `xml:"status"`
	Prop   msProp `xml:"prop"`
}

type msProp struct {
	ETag         string `xml:"getetag"`
	CalendarData string `xml:"calendar-data"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает факт обращения к внешнему сервису (для метрик)
type Observer interface {
	ObserveExternal(target, operation string, err error)
}
