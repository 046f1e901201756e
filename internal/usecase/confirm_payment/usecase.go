package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
	bookingRepo "github.com/studio609/Studio-BookingService/internal/infra/storage/booking"
	"github.com/studio609/Studio-BookingService/internal/service/availability"
)

// UseCase use case обработки платёжных событий: финализация оплаченного
// бронирования либо возврат, если день успел стать недоступным
type UseCase struct {
	feed        EventFeed
	calClient   CalendarClient
	bookingRepo BookingRepository
	payClient   PaymentClient
	loc         *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	feed EventFeed,
	calClient CalendarClient,
	bookingRepo BookingRepository,
	payClient PaymentClient,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		feed:        feed,
		calClient:   calClient,
		bookingRepo: bookingRepo,
		payClient:   payClient,
		loc:         loc,
		logger:      logger,
	}
}

// Execute обрабатывает одно проверенное платёжное событие.
//
// Структура фиксированная: чистое вычисление вердикта, затем ветка решения,
// затем явное побочное действие. Никакие side effects не переплетаются с
// оценкой доступности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: event=%s id=%s session=%s ref=%s",
		req.EventType, req.EventID, req.SessionID, req.BookingRef)

	switch req.EventType {
	case EventCheckoutCompleted:
		return uc.handleCompleted(ctx, req)
	case EventCheckoutExpired:
		return uc.handleExpired(ctx, req)
	default:
		uc.logger.Info("ConfirmPayment: event type %s ignored", req.EventType)
		return &Response{BookingRef: req.BookingRef, Outcome: OutcomeIgnored}, nil
	}
}

func (uc *UseCase) handleCompleted(ctx context.Context, req *Request) (*Response, error) {
	// 1. Находим запись бронирования
	booking, err := uc.loadBooking(ctx, req.BookingRef)
	if err != nil {
		return nil, err
	}

	// 2. Идемпотентность: повторная доставка события не меняет состояние
	if booking.IsFinal() {
		uc.logger.Info("ConfirmPayment: booking ref=%s already %s, duplicate delivery ignored",
			booking.Ref, booking.Status)
		return &Response{BookingRef: booking.Ref, Outcome: OutcomeDuplicate}, nil
	}

	// 3. Перепроверяем доступность дня перед финализацией
	window, err := uc.feed.Load(ctx, booking.Date, booking.Date)
	if err != nil {
		// Календарь недоступен - возвращаем ошибку, процессор повторит
		// доставку события позже.
		uc.logger.Error("ConfirmPayment: calendar unavailable for ref=%s: %v", booking.Ref, err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	verdict := availability.EvaluateDay(window.Bookings, window.Blackouts, booking.Date, uc.loc)

	// 4. Ветка решения
	if verdict.Available {
		if err := uc.bookingRepo.SetPaymentIntent(ctx, booking.Ref, req.PaymentIntentID, domain.StatusConfirmed); err != nil {
			uc.logger.Error("ConfirmPayment: failed to confirm booking ref=%s: %v", booking.Ref, err)
			return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}
		uc.logger.Info("ConfirmPayment: booking ref=%s confirmed", booking.Ref)
		return &Response{BookingRef: booking.Ref, Outcome: OutcomeConfirmed}, nil
	}

	// 5. Вердикт сменился на "недоступно" между оплатой и подтверждением -
	// возвращаем депозит и освобождаем день
	uc.logger.Warn("ConfirmPayment: day %s flipped to unavailable (blackout=%t, booked=%d, short=%t), refunding ref=%s",
		booking.Date, verdict.IsBlackout, verdict.BookedCount, verdict.HasShortSession, booking.Ref)

	refundID, err := uc.payClient.Refund(ctx, req.PaymentIntentID, "booking date no longer available")
	if err != nil {
		uc.logger.Error("ConfirmPayment: refund failed for ref=%s: %v", booking.Ref, err)
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	uc.removeCalendarEvent(ctx, booking)

	if err := uc.bookingRepo.SetPaymentIntent(ctx, booking.Ref, req.PaymentIntentID, domain.StatusRefunded); err != nil {
		uc.logger.Error("ConfirmPayment: failed to mark booking ref=%s refunded: %v", booking.Ref, err)
		return nil, fmt.Errorf("%w: failed to mark booking refunded: %v", ErrInternal, err)
	}

	return &Response{BookingRef: booking.Ref, Outcome: OutcomeRefunded, RefundID: refundID}, nil
}

func (uc *UseCase) handleExpired(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.loadBooking(ctx, req.BookingRef)
	if err != nil {
		return nil, err
	}

	if !booking.AwaitsPayment() {
		uc.logger.Info("ConfirmPayment: booking ref=%s is %s, expiry ignored", booking.Ref, booking.Status)
		return &Response{BookingRef: booking.Ref, Outcome: OutcomeDuplicate}, nil
	}

	// Сессия истекла без оплаты - снимаем бронь и освобождаем день
	uc.removeCalendarEvent(ctx, booking)

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.Ref, domain.StatusCancelled); err != nil {
		uc.logger.Error("ConfirmPayment: failed to cancel booking ref=%s: %v", booking.Ref, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: booking ref=%s cancelled after checkout expiry", booking.Ref)
	return &Response{BookingRef: booking.Ref, Outcome: OutcomeCancelled}, nil
}

func (uc *UseCase) loadBooking(ctx context.Context, ref string) (*domain.Booking, error) {
	if ref == "" {
		uc.logger.Warn("ConfirmPayment: event without booking_ref metadata")
		return nil, ErrUnknownBooking
	}

	booking, err := uc.bookingRepo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking ref=%s not found", ref)
			return nil, ErrUnknownBooking
		}
		uc.logger.Error("ConfirmPayment: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// removeCalendarEvent снимает резервирующее событие; ошибка только
// логируется, чтобы не блокировать обновление ledger
func (uc *UseCase) removeCalendarEvent(ctx context.Context, booking *domain.Booking) {
	if booking.CalendarHref == "" {
		return
	}
	if err := uc.calClient.DeleteEvent(ctx, booking.CalendarHref); err != nil {
		uc.logger.Error("ConfirmPayment: failed to delete calendar event %s: %v", booking.CalendarHref, err)
	}
}
