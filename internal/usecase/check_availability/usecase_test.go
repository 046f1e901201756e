package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/ics"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

type fakeFeed struct {
	window *calendarfeed.Window
	err    error

	gotFrom domain.Day
	gotTo   domain.Day
}

func (f *fakeFeed) Load(_ context.Context, from, to domain.Day) (*calendarfeed.Window, error) {
	f.gotFrom, f.gotTo = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.window, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) domain.Day {
	return domain.Day{Year: y, Month: m, Date: d}
}

func TestExecute_HappyPath(t *testing.T) {
	loc := time.UTC
	feed := &fakeFeed{window: &calendarfeed.Window{
		Bookings: []domain.CanonicalEvent{{
			SourceRef: "a.ics",
			Start:     time.Date(2026, 6, 1, 10, 0, 0, 0, loc),
			End:       time.Date(2026, 6, 1, 16, 0, 0, 0, loc),
			Label:     "Recording Session (6h)",
		}},
	}}
	uc := NewUseCase(feed, loc, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.June, 1),
		To:   day(2026, time.June, 3),
	})
	require.NoError(t, err)

	assert.True(t, feed.gotFrom.Equal(day(2026, time.June, 1)))
	assert.True(t, feed.gotTo.Equal(day(2026, time.June, 3)))

	require.Len(t, resp.Verdicts, 3)
	assert.True(t, resp.Verdicts[0].Available)
	assert.Equal(t, 1, resp.Verdicts[0].BookedCount)
	assert.True(t, resp.Verdicts[1].Available)
	assert.Nil(t, resp.Skipped)
}

func TestExecute_MissingDates(t *testing.T) {
	uc := NewUseCase(&fakeFeed{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvertedRange(t *testing.T) {
	uc := NewUseCase(&fakeFeed{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.June, 3),
		To:   day(2026, time.June, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_RangeTooLarge(t *testing.T) {
	uc := NewUseCase(&fakeFeed{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.January, 1),
		To:   day(2027, time.June, 1),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestExecute_CalendarUnavailable(t *testing.T) {
	feed := &fakeFeed{err: calendarfeed.ErrCalendarUnavailable}
	uc := NewUseCase(feed, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.June, 1),
		To:   day(2026, time.June, 1),
	})
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
}

func TestExecute_FeedInternalError(t *testing.T) {
	feed := &fakeFeed{err: errors.New("boom")}
	uc := NewUseCase(feed, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.June, 1),
		To:   day(2026, time.June, 1),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DebugSurfacesSkipsAndOutOfWindow(t *testing.T) {
	loc := time.UTC
	feed := &fakeFeed{window: &calendarfeed.Window{
		Bookings: []domain.CanonicalEvent{{
			// Попадает в окно выборки (паддинг), но не в запрошенный диапазон
			SourceRef: "early.ics",
			Start:     time.Date(2026, 5, 31, 10, 0, 0, 0, loc),
			End:       time.Date(2026, 5, 31, 12, 0, 0, 0, loc),
		}},
		Skips: []ics.Skip{{Ref: "junk.ics", Code: ics.SkipParseFailed}},
	}}
	uc := NewUseCase(feed, loc, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		From:  day(2026, time.June, 1),
		To:    day(2026, time.June, 1),
		Debug: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, ics.SkipParseFailed, resp.Skipped[0].Code)
	assert.Equal(t, ics.SkipNoOverlap, resp.Skipped[1].Code)
	assert.Equal(t, "early.ics", resp.Skipped[1].Ref)

	// Событие вне диапазона не влияет на вердикт
	require.Len(t, resp.Verdicts, 1)
	assert.True(t, resp.Verdicts[0].Available)
	assert.Equal(t, 0, resp.Verdicts[0].BookedCount)
}

func TestExecute_NonDebugHidesSkips(t *testing.T) {
	feed := &fakeFeed{window: &calendarfeed.Window{
		Skips: []ics.Skip{{Ref: "junk.ics", Code: ics.SkipParseFailed}},
	}}
	uc := NewUseCase(feed, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		From: day(2026, time.June, 1),
		To:   day(2026, time.June, 1),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Skipped)
}
