package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/ics"
	"github.com/studio609/Studio-BookingService/internal/integrations/stripepay"
	"github.com/studio609/Studio-BookingService/internal/service/availability"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

// Config параметры use case создания бронирования
type Config struct {
	BookingsPath string // коллекция, в которую пишутся брони
	Summary      string // метка резервирующего события
	AmountMinor  int64  // размер депозита в минорных единицах
	Currency     string
}

// UseCase use case создания бронирования
type UseCase struct {
	feed         EventFeed
	calClient    CalendarClient
	bookingRepo  BookingRepository
	payClient    PaymentClient
	cfg          Config
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feed EventFeed,
	calClient CalendarClient,
	bookingRepo BookingRepository,
	payClient PaymentClient,
	cfg Config,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		feed:         feed,
		calClient:    calClient,
		bookingRepo:  bookingRepo,
		payClient:    payClient,
		cfg:          cfg,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Доступность перепроверяется непосредственно перед записью в календарь,
// чтобы закрыть окно гонки между последним опросом клиента и созданием
// события.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s", req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.loc); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Загружаем коллекции и перепроверяем доступность дня
	window, err := uc.feed.Load(ctx, req.Date, req.Date)
	if err != nil {
		if errors.Is(err, calendarfeed.ErrCalendarUnavailable) {
			uc.logger.Error("CreateBooking: calendar unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	verdict := availability.EvaluateDay(window.Bookings, window.Blackouts, req.Date, uc.loc)
	if !verdict.Available {
		uc.logger.Warn("CreateBooking: day %s not available (blackout=%t, booked=%d, short=%t)",
			req.Date, verdict.IsBlackout, verdict.BookedCount, verdict.HasShortSession)
		return nil, ErrDayNotAvailable
	}

	// 5. Генерируем booking reference: метка времени + случайный суффикс
	ref := newBookingRef(now)

	// 6. Создаем резервирующее событие в календаре
	description := ""
	if req.Notes != nil {
		description = *req.Notes
	}
	icsBody := ics.BuildAllDayEvent(ref, req.Date, uc.loc, uc.cfg.Summary, description)

	href, err := uc.calClient.PutEvent(ctx, uc.cfg.BookingsPath, ref, icsBody)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create calendar event for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to create calendar event: %v", ErrCalendarUnavailable, err)
	}

	// 7. Открываем checkout-сессию для депозита
	session, err := uc.payClient.CreateCheckoutSession(ctx, stripepay.CheckoutInput{
		BookingRef:    ref,
		BookingDate:   req.Date.String(),
		AmountMinor:   uc.cfg.AmountMinor,
		Description:   fmt.Sprintf("%s - %s", uc.cfg.Summary, req.Date),
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		// Платёжная сессия не открылась - снимаем только что созданное
		// событие, иначе день останется занятым без оплаты.
		uc.rollbackCalendarEvent(ctx, href)
		uc.logger.Error("CreateBooking: failed to create checkout session for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	// 8. Фиксируем запись в ledger
	booking := &domain.Booking{
		Ref:               ref,
		Date:              req.Date,
		Summary:           uc.cfg.Summary,
		Notes:             req.Notes,
		CalendarHref:      href,
		CheckoutSessionID: session.ID,
		AmountMinor:       uc.cfg.AmountMinor,
		Currency:          uc.cfg.Currency,
		Status:            domain.StatusPendingPayment,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.rollbackCalendarEvent(ctx, href)
		uc.logger.Error("CreateBooking: failed to persist booking ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to persist booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking ref=%s date=%s session=%s", ref, req.Date, session.ID)

	return &Response{
		BookingRef:  created.Ref,
		Date:        created.Date,
		Status:      string(created.Status),
		CheckoutURL: session.URL,
		AmountMinor: created.AmountMinor,
		Currency:    created.Currency,
	}, nil
}

// rollbackCalendarEvent снимает резервирующее событие после сбоя на более
// позднем шаге. Ошибка удаления только логируется - повторная попытка
// бронирования с тем же днём упрётся в перепроверку доступности.
func (uc *UseCase) rollbackCalendarEvent(ctx context.Context, href string) {
	if err := uc.calClient.DeleteEvent(ctx, href); err != nil {
		uc.logger.Error("CreateBooking: rollback failed, event %s left in calendar: %v", href, err)
	}
}

// newBookingRef генерирует уникальный reference бронирования
func newBookingRef(now time.Time) string {
	return fmt.Sprintf("bk-%s-%s", now.UTC().Format("20060102T150405"), uuid.NewString()[:8])
}
