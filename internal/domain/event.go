package domain

import "time"

// CanonicalEvent is the normalized in-memory form of one calendar event,
// produced once per raw upstream entry and immutable afterwards.
//
// Invariant: End > Start. All-day events are end-exclusive (next local
// midnight); the normalizer corrects degenerate or missing ends.
type CanonicalEvent struct {
	// SourceRef identifies the raw upstream entry this event came from
	// (CalDAV object href, or UID when no href is known). A single entry
	// counts as a single booking per day no matter how many sub-events it
	// contains.
	SourceRef string

	Start  time.Time
	End    time.Time
	AllDay bool

	// Label is the event summary, truncated to MaxEventLabelLength.
	Label string
}
