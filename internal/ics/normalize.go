package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// Skip reason codes recorded for entries that contributed no events.
const (
	SkipNoICS       = "no-ics"       // payload is empty even after hydration
	SkipNoVEvent    = "no-vevent"    // payload parsed but contains no event blocks
	SkipBadRange    = "bad-range"    // event block has no usable start instant
	SkipParseFailed = "parse-failed" // neither structured nor fallback extraction worked
	SkipNoOverlap   = "no-overlap"   // event parsed but touches no day in the window
)

// Skip records why a raw entry (or one of its embedded events) was dropped.
// Only surfaced in debug mode; normal processing just moves on.
type Skip struct {
	Ref    string `json:"ref"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// Normalizer converts raw calendar payloads into canonical events.
// It tries the structured iCalendar parser first and falls back to a
// permissive text-pattern extractor when the parser rejects the payload.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer that interprets date-only (all-day)
// values in loc, the venue's reference time zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Normalize extracts all events embedded in one raw payload.
//
// A malformed embedded event never aborts its siblings: it is skipped and
// recorded. An empty result with skips is a valid outcome — the caller
// treats the entry as contributing zero events.
func (n *Normalizer) Normalize(ref, data string) ([]domain.CanonicalEvent, []Skip) {
	if strings.TrimSpace(data) == "" {
		return nil, []Skip{{Ref: ref, Code: SkipNoICS}}
	}

	cal, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		// Структурный парсер отклонил payload - пробуем текстовый экстрактор
		return n.extractFallback(ref, data, err)
	}

	vevents := cal.Events()
	if len(vevents) == 0 {
		return nil, []Skip{{Ref: ref, Code: SkipNoVEvent}}
	}

	events := make([]domain.CanonicalEvent, 0, len(vevents))
	var skips []Skip

	for _, ve := range vevents {
		ev, skip := n.normalizeVEvent(ref, ve)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		events = append(events, ev)
	}

	return events, skips
}

// normalizeVEvent converts a single parsed VEVENT into a canonical event.
func (n *Normalizer) normalizeVEvent(ref string, ve *ical.VEvent) (domain.CanonicalEvent, *Skip) {
	allDay, rawStart, rawEnd := inspectDtProps(ve)

	var start, end time.Time
	if allDay {
		// For date-only values we parse the property text directly: the
		// library helpers interpret DATE values in UTC, while the
		// reference-zone day boundary is what availability needs.
		var err error
		start, err = parseDateOnly(rawStart, n.loc)
		if err != nil {
			return domain.CanonicalEvent{}, &Skip{Ref: ref, Code: SkipBadRange, Detail: "unparsable DTSTART: " + rawStart}
		}
		if rawEnd != "" {
			end, _ = parseDateOnly(rawEnd, n.loc)
		}
	} else {
		var err error
		start, err = ve.GetStartAt()
		if err != nil || start.IsZero() {
			return domain.CanonicalEvent{}, &Skip{Ref: ref, Code: SkipBadRange, Detail: "missing DTSTART"}
		}
		end, _ = ve.GetEndAt()
	}

	start, end = normalizeRange(start, end, allDay)

	label := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		label = truncateLabel(p.Value)
	}

	sourceRef := ref
	if sourceRef == "" {
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			sourceRef = p.Value
		}
	}

	return domain.CanonicalEvent{
		SourceRef: sourceRef,
		Start:     start,
		End:       end,
		AllDay:    allDay,
		Label:     label,
	}, nil
}

// inspectDtProps reads the raw DTSTART/DTEND properties and detects the
// all-day form: VALUE=DATE parameter, or a value without a time component.
func inspectDtProps(ve *ical.VEvent) (allDay bool, rawStart, rawEnd string) {
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		rawStart = p.Value
		if params := p.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				allDay = true
			}
		}
		if rawStart != "" && !strings.Contains(rawStart, "T") {
			allDay = true
		}
	}
	if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
		rawEnd = p.Value
	}
	return allDay, rawStart, rawEnd
}

// normalizeRange enforces End > Start.
//
// All-day ends are end-exclusive per the iCalendar convention; a missing end
// means same-day, and an end not after start (a known upstream inconsistency)
// is coerced the same way. Timed events with a degenerate end get one hour.
func normalizeRange(start, end time.Time, allDay bool) (time.Time, time.Time) {
	if allDay {
		if end.IsZero() || !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
		return start, end
	}
	if end.IsZero() || !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}

// parseDateOnly parses a YYYYMMDD property value as local midnight in loc.
func parseDateOnly(v string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("20060102", strings.TrimSpace(v), loc)
}

func truncateLabel(s string) string {
	if len(s) > domain.MaxEventLabelLength {
		return s[:domain.MaxEventLabelLength]
	}
	return s
}
