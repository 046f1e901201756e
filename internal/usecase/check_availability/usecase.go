package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/ics"
	"github.com/studio609/Studio-BookingService/internal/service/availability"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

// UseCase use case проверки доступности диапазона дат
type UseCase struct {
	feed   EventFeed
	loc    *time.Location
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(feed EventFeed, loc *time.Location, logger Logger) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		feed:   feed,
		loc:    loc,
		logger: logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: from=%s, to=%s, debug=%t", req.From, req.To, req.Debug)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем обе коллекции (bookings, blackouts) с запасом в сутки
	window, err := uc.feed.Load(ctx, req.From, req.To)
	if err != nil {
		if errors.Is(err, calendarfeed.ErrCalendarUnavailable) {
			uc.logger.Error("CheckAvailability: calendar unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		uc.logger.Error("CheckAvailability: feed error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Вычисляем вердикты по дням
	verdicts := availability.EvaluateRange(window.Bookings, window.Blackouts, req.From, req.To, uc.loc)

	uc.logger.Info("CheckAvailability: evaluated %d days (%d bookings, %d blackouts, %d skipped entries)",
		len(verdicts), len(window.Bookings), len(window.Blackouts), len(window.Skips))

	resp := &Response{
		From:     req.From,
		To:       req.To,
		Verdicts: verdicts,
	}

	// 4. В debug-режиме отдаем диагностику пропусков и событий вне окна
	if req.Debug {
		resp.Skipped = append(resp.Skipped, window.Skips...)
		resp.Skipped = append(resp.Skipped, uc.outOfWindow(window, req.From, req.To)...)
	}

	return resp, nil
}

// outOfWindow отмечает записи, которые распарсились, но не пересекают ни
// один день запрошенного диапазона
func (uc *UseCase) outOfWindow(window *calendarfeed.Window, from, to domain.Day) []ics.Skip {
	var skips []ics.Skip
	for _, set := range [][]domain.CanonicalEvent{window.Bookings, window.Blackouts} {
		for _, e := range set {
			if e.Start.Before(to.End(uc.loc)) && e.End.After(from.Start(uc.loc)) {
				continue
			}
			skips = append(skips, ics.Skip{Ref: e.SourceRef, Code: ics.SkipNoOverlap})
		}
	}
	return skips
}
