package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// BuildAllDayEvent serializes the reserving VEVENT for a booking: a single
// all-day event covering day, end-exclusive per the iCalendar convention.
func BuildAllDayEvent(uid string, day domain.Day, loc *time.Location, summary, description string) string {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetProductId("-//Studio609//Booking Service//EN")

	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetAllDayStartAt(day.Start(loc))
	ev.SetAllDayEndAt(day.Next().Start(loc))
	ev.SetSummary(summary)
	if description != "" {
		ev.SetDescription(description)
	}

	return cal.Serialize()
}
