// Package calendarfeed materializes the two upstream event collections
// (bookings, blackouts) for a day window: padded fetch, stub hydration and
// normalization. The availability core receives only its output, never raw
// collaborator data.
package calendarfeed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/ics"
)

// fetchPadDays расширение окна выборки с каждой стороны: серверная
// фильтрация по меткам времени может не учитывать date-only записи на
// границах суток.
const fetchPadDays = 1

// Window holds both normalized collections for one requested day range.
type Window struct {
	Bookings  []domain.CanonicalEvent
	Blackouts []domain.CanonicalEvent

	// Skips собирает причины пропуска записей из обеих коллекций
	// (отдаётся наружу только в debug-режиме).
	Skips []ics.Skip
}

// Feed загружает и нормализует календарные коллекции
type Feed struct {
	calClient     CalendarClient
	normalizer    *ics.Normalizer
	bookingsPath  string
	blackoutsPath string
	loc           *time.Location
	logger        Logger
}

// NewFeed создает новый экземпляр фида
func NewFeed(
	calClient CalendarClient,
	normalizer *ics.Normalizer,
	bookingsPath, blackoutsPath string,
	loc *time.Location,
	logger Logger,
) *Feed {
	return &Feed{
		calClient:     calClient,
		normalizer:    normalizer,
		bookingsPath:  bookingsPath,
		blackoutsPath: blackoutsPath,
		loc:           loc,
		logger:        logger,
	}
}

// Load загружает обе коллекции для диапазона дней [from, to] включительно.
// Коллекции независимы и read-only, поэтому выбираются параллельно; обе
// должны успешно завершиться.
func (f *Feed) Load(ctx context.Context, from, to domain.Day) (*Window, error) {
	start := from.Start(f.loc).AddDate(0, 0, -fetchPadDays)
	end := to.End(f.loc).AddDate(0, 0, fetchPadDays)

	var (
		wg sync.WaitGroup

		bookings, blackouts         []domain.CanonicalEvent
		bookingSkips, blackoutSkips []ics.Skip
		bookingErr, blackoutErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, bookingSkips, bookingErr = f.loadCollection(ctx, f.bookingsPath, start, end)
	}()
	go func() {
		defer wg.Done()
		blackouts, blackoutSkips, blackoutErr = f.loadCollection(ctx, f.blackoutsPath, start, end)
	}()
	wg.Wait()

	if bookingErr != nil {
		return nil, fmt.Errorf("%w: bookings collection: %v", ErrCalendarUnavailable, bookingErr)
	}
	if blackoutErr != nil {
		return nil, fmt.Errorf("%w: blackouts collection: %v", ErrCalendarUnavailable, blackoutErr)
	}

	return &Window{
		Bookings:  bookings,
		Blackouts: blackouts,
		Skips:     append(bookingSkips, blackoutSkips...),
	}, nil
}

// loadCollection выбирает одну коллекцию, догружает stub-объекты и
// нормализует каждую запись. Ошибка отдельной записи никогда не прерывает
// обработку остальных.
func (f *Feed) loadCollection(ctx context.Context, path string, start, end time.Time) ([]domain.CanonicalEvent, []ics.Skip, error) {
	objects, err := f.calClient.FetchEvents(ctx, path, start, end)
	if err != nil {
		return nil, nil, err
	}

	events := make([]domain.CanonicalEvent, 0, len(objects))
	var skips []ics.Skip

	for _, obj := range objects {
		data := obj.Data
		if strings.TrimSpace(data) == "" {
			hydrated, herr := f.calClient.FetchObject(ctx, obj.Href)
			if herr != nil {
				f.logger.Warn("calendarfeed: hydration failed for %s: %v", obj.Href, herr)
				skips = append(skips, ics.Skip{Ref: obj.Href, Code: ics.SkipNoICS, Detail: "hydration failed"})
				continue
			}
			data = hydrated.Data
		}

		evs, sk := f.normalizer.Normalize(obj.Href, data)
		events = append(events, evs...)
		skips = append(skips, sk...)
	}

	return events, skips, nil
}
