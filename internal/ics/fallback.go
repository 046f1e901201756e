package ics

import (
	"regexp"
	"strings"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// Fallback extraction for payloads the structured parser rejects. Upstream
// servers occasionally emit blobs with broken folding or truncated
// containers; the event fields inside are usually still recoverable by
// pattern matching.
var (
	veventBlockRe = regexp.MustCompile(`(?s)BEGIN:VEVENT(.*?)(?:END:VEVENT|\z)`)

	// DTSTART/DTEND in either the all-day date form (20240601) or the
	// timestamped UTC form (20240601T100000Z).
	dtStartRe = regexp.MustCompile(`(?mi)^DTSTART(?:;[^:\r\n]*)?:(\d{8})(T\d{6}Z?)?`)
	dtEndRe   = regexp.MustCompile(`(?mi)^DTEND(?:;[^:\r\n]*)?:(\d{8})(T\d{6}Z?)?`)
	summaryRe = regexp.MustCompile(`(?mi)^SUMMARY(?:;[^:\r\n]*)?:(.+?)\r?$`)
)

// extractFallback scans the raw text for VEVENT blocks and pulls start,
// end and summary by regular expression.
func (n *Normalizer) extractFallback(ref, data string, parseErr error) ([]domain.CanonicalEvent, []Skip) {
	blocks := veventBlockRe.FindAllStringSubmatch(data, -1)
	if len(blocks) == 0 {
		return nil, []Skip{{Ref: ref, Code: SkipParseFailed, Detail: parseErr.Error()}}
	}

	events := make([]domain.CanonicalEvent, 0, len(blocks))
	var skips []Skip

	for _, block := range blocks {
		body := block[1]

		start, startAllDay, ok := matchInstant(dtStartRe, body, n.loc)
		if !ok {
			skips = append(skips, Skip{Ref: ref, Code: SkipBadRange, Detail: "no DTSTART in event block"})
			continue
		}

		var end time.Time
		if e, _, ok := matchInstant(dtEndRe, body, n.loc); ok {
			end = e
		}

		start, end = normalizeRange(start, end, startAllDay)

		label := ""
		if m := summaryRe.FindStringSubmatch(body); m != nil {
			label = truncateLabel(strings.TrimSpace(m[1]))
		}

		events = append(events, domain.CanonicalEvent{
			SourceRef: ref,
			Start:     start,
			End:       end,
			AllDay:    startAllDay,
			Label:     label,
		})
	}

	return events, skips
}

// matchInstant applies a DTSTART/DTEND pattern to one event block.
// Returns the parsed instant, whether the value was date-only, and whether
// the pattern matched at all.
func matchInstant(re *regexp.Regexp, body string, loc *time.Location) (time.Time, bool, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return time.Time{}, false, false
	}

	datePart, timePart := m[1], m[2]

	if timePart == "" {
		t, err := time.ParseInLocation("20060102", datePart, loc)
		if err != nil {
			return time.Time{}, false, false
		}
		return t, true, true
	}

	if strings.HasSuffix(timePart, "Z") {
		t, err := time.Parse("20060102T150405Z", datePart+timePart)
		if err != nil {
			return time.Time{}, false, false
		}
		return t, false, true
	}

	t, err := time.ParseInLocation("20060102T150405", datePart+timePart, loc)
	if err != nil {
		return time.Time{}, false, false
	}
	return t, false, true
}
