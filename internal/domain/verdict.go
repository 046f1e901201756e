package domain

// DayVerdict is the computed availability result for a single day together
// with the facts that produced it. Computed fresh per request, never stored.
type DayVerdict struct {
	Date            Day
	Available       bool
	IsBlackout      bool
	BookedCount     int
	HasShortSession bool
}

// Decide applies the fixed business rule:
//
//	available = !blackout && bookedCount <= 1 && !shortSession
//
// The venue takes at most two concurrent bookings per day, but any blackout
// or any sub-4h recording session closes the whole day. This is a hard
// invariant of the venue, not a tunable.
func Decide(isBlackout bool, bookedCount int, hasShortSession bool) bool {
	return !isBlackout && bookedCount <= MaxBookingsPerDay && !hasShortSession
}
