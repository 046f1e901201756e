// Package availability computes day-level availability verdicts from
// already-normalized calendar events. Everything here is pure: no I/O,
// no clock, no ambient configuration. Callers fetch and normalize the two
// event collections first, then evaluate.
package availability

import (
	"regexp"
	"strconv"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// shortSessionRe matches booking labels that declare a session length,
// e.g. "Recording Session (3h)". Case-insensitive, one or more digits.
// Only booking events are scanned; blackout labels never match by policy.
var shortSessionRe = regexp.MustCompile(`(?i)recording session\s*\((\d+)h\)`)

// Overlaps reports whether an event overlaps the calendar day in loc,
// using the half-open interval intersection test:
//
//	event.Start < day.End && event.End > day.Start
//
// The single test is correct for both timed events and all-day events,
// because the normalizer makes all-day ends exclusive.
func Overlaps(e domain.CanonicalEvent, day domain.Day, loc *time.Location) bool {
	return e.Start.Before(day.End(loc)) && e.End.After(day.Start(loc))
}

// EvaluateDay aggregates the overlapping facts for one day and applies the
// fixed business rule.
//
// bookedCount counts distinct source entries, not embedded sub-events: a
// calendar object holding several overlapping VEVENTs is still one booking.
func EvaluateDay(bookings, blackouts []domain.CanonicalEvent, day domain.Day, loc *time.Location) domain.DayVerdict {
	bookedRefs := make(map[string]struct{})
	bookedCount := 0
	hasShortSession := false

	for _, e := range bookings {
		if !Overlaps(e, day, loc) {
			continue
		}
		if e.SourceRef == "" {
			bookedCount++
		} else if _, seen := bookedRefs[e.SourceRef]; !seen {
			bookedRefs[e.SourceRef] = struct{}{}
			bookedCount++
		}
		if isShortSession(e.Label) {
			hasShortSession = true
		}
	}

	isBlackout := false
	for _, e := range blackouts {
		if Overlaps(e, day, loc) {
			isBlackout = true
			break
		}
	}

	return domain.DayVerdict{
		Date:            day,
		Available:       domain.Decide(isBlackout, bookedCount, hasShortSession),
		IsBlackout:      isBlackout,
		BookedCount:     bookedCount,
		HasShortSession: hasShortSession,
	}
}

// EvaluateRange walks the inclusive day range in ascending calendar order,
// evaluating each day against the full event lists. Events are re-scanned
// per day rather than pre-bucketed; per-request event counts are tiny for a
// single venue.
//
// An inverted range (from after to) yields an empty list, not an error.
func EvaluateRange(bookings, blackouts []domain.CanonicalEvent, from, to domain.Day, loc *time.Location) []domain.DayVerdict {
	if from.After(to) {
		return []domain.DayVerdict{}
	}

	verdicts := make([]domain.DayVerdict, 0)
	for day := from; !day.After(to); day = day.Next() {
		verdicts = append(verdicts, EvaluateDay(bookings, blackouts, day, loc))
	}
	return verdicts
}

// isShortSession reports whether a booking label declares a session shorter
// than the closing threshold (strictly below ShortSessionHours).
func isShortSession(label string) bool {
	m := shortSessionRe.FindStringSubmatch(label)
	if m == nil {
		return false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	return hours < domain.ShortSessionHours
}
