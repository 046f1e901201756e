package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio609/Studio-BookingService/internal/domain"
	bookingRepo "github.com/studio609/Studio-BookingService/internal/infra/storage/booking"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
)

type fakeFeed struct {
	window *calendarfeed.Window
	err    error
}

func (f *fakeFeed) Load(context.Context, domain.Day, domain.Day) (*calendarfeed.Window, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.window, nil
}

type fakeCalClient struct {
	deletedHrefs []string
	deleteErr    error
}

func (f *fakeCalClient) DeleteEvent(_ context.Context, href string) error {
	f.deletedHrefs = append(f.deletedHrefs, href)
	return f.deleteErr
}

type fakeRepo struct {
	booking *domain.Booking
	getErr  error

	updatedStatus    domain.BookingStatus
	setIntentID      string
	setIntentStatus  domain.BookingStatus
	updateStatusErr  error
	setPaymentErr    error
	updateStatusRefs []string
}

func (f *fakeRepo) GetByRef(context.Context, string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, ref string, status domain.BookingStatus) error {
	f.updateStatusRefs = append(f.updateStatusRefs, ref)
	f.updatedStatus = status
	return f.updateStatusErr
}

func (f *fakeRepo) SetPaymentIntent(_ context.Context, _, paymentIntentID string, status domain.BookingStatus) error {
	f.setIntentID = paymentIntentID
	f.setIntentStatus = status
	return f.setPaymentErr
}

type fakePayClient struct {
	refundID  string
	refundErr error
	refunded  []string
}

func (f *fakePayClient) Refund(_ context.Context, paymentIntentID, _ string) (string, error) {
	f.refunded = append(f.refunded, paymentIntentID)
	if f.refundErr != nil {
		return "", f.refundErr
	}
	return f.refundID, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		Ref:          "bk-20260520T120000-abc12345",
		Date:         domain.Day{Year: 2026, Month: time.June, Date: 1},
		CalendarHref: "/calendars/studio/bookings/bk-20260520T120000-abc12345.ics",
		Status:       domain.StatusPendingPayment,
	}
}

// Окно, в котором день остался доступным: только собственная бронь
func ownEventWindow(b *domain.Booking) *calendarfeed.Window {
	loc := time.UTC
	return &calendarfeed.Window{
		Bookings: []domain.CanonicalEvent{{
			SourceRef: b.CalendarHref,
			Start:     b.Date.Start(loc),
			End:       b.Date.End(loc),
			AllDay:    true,
			Label:     "609 Booking",
		}},
	}
}

func TestExecute_CompletedConfirms(t *testing.T) {
	b := pendingBooking()
	repo := &fakeRepo{booking: b}
	pay := &fakePayClient{}
	cal := &fakeCalClient{}
	uc := NewUseCase(&fakeFeed{window: ownEventWindow(b)}, cal, repo, pay, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:       EventCheckoutCompleted,
		SessionID:       "cs_123",
		PaymentIntentID: "pi_123",
		BookingRef:      b.Ref,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfirmed, resp.Outcome)
	assert.Equal(t, domain.StatusConfirmed, repo.setIntentStatus)
	assert.Equal(t, "pi_123", repo.setIntentID)
	assert.Empty(t, pay.refunded)
	assert.Empty(t, cal.deletedHrefs)
}

func TestExecute_CompletedRefundsOnFlip(t *testing.T) {
	b := pendingBooking()
	loc := time.UTC

	// День стал недоступен: появился блэкаут
	window := ownEventWindow(b)
	window.Blackouts = []domain.CanonicalEvent{{
		SourceRef: "closure.ics",
		Start:     b.Date.Start(loc),
		End:       b.Date.End(loc),
		AllDay:    true,
		Label:     "Closed",
	}}

	repo := &fakeRepo{booking: b}
	pay := &fakePayClient{refundID: "re_777"}
	cal := &fakeCalClient{}
	uc := NewUseCase(&fakeFeed{window: window}, cal, repo, pay, loc, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:       EventCheckoutCompleted,
		PaymentIntentID: "pi_123",
		BookingRef:      b.Ref,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRefunded, resp.Outcome)
	assert.Equal(t, "re_777", resp.RefundID)
	assert.Equal(t, []string{"pi_123"}, pay.refunded)
	assert.Equal(t, []string{b.CalendarHref}, cal.deletedHrefs)
	assert.Equal(t, domain.StatusRefunded, repo.setIntentStatus)
}

func TestExecute_CompletedDuplicateDelivery(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed

	repo := &fakeRepo{booking: b}
	pay := &fakePayClient{}
	uc := NewUseCase(&fakeFeed{}, &fakeCalClient{}, repo, pay, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:  EventCheckoutCompleted,
		BookingRef: b.Ref,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	assert.Empty(t, pay.refunded)
	assert.Zero(t, repo.setIntentStatus)
}

func TestExecute_CompletedUnknownBooking(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := NewUseCase(&fakeFeed{}, &fakeCalClient{}, repo, &fakePayClient{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		EventType:  EventCheckoutCompleted,
		BookingRef: "bk-missing",
	})
	assert.ErrorIs(t, err, ErrUnknownBooking)
}

func TestExecute_CompletedMissingRef(t *testing.T) {
	uc := NewUseCase(&fakeFeed{}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{EventType: EventCheckoutCompleted})
	assert.ErrorIs(t, err, ErrUnknownBooking)
}

func TestExecute_CompletedCalendarDown(t *testing.T) {
	b := pendingBooking()
	repo := &fakeRepo{booking: b}
	feed := &fakeFeed{err: calendarfeed.ErrCalendarUnavailable}
	uc := NewUseCase(feed, &fakeCalClient{}, repo, &fakePayClient{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		EventType:  EventCheckoutCompleted,
		BookingRef: b.Ref,
	})
	// Ошибка отдаётся наружу, чтобы процессор повторил доставку
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
	assert.Zero(t, repo.setIntentStatus)
}

func TestExecute_CompletedRefundFails(t *testing.T) {
	b := pendingBooking()
	window := ownEventWindow(b)
	window.Blackouts = []domain.CanonicalEvent{{
		SourceRef: "closure.ics",
		Start:     b.Date.Start(time.UTC),
		End:       b.Date.End(time.UTC),
	}}

	repo := &fakeRepo{booking: b}
	pay := &fakePayClient{refundErr: errors.New("stripe down")}
	cal := &fakeCalClient{}
	uc := NewUseCase(&fakeFeed{window: window}, cal, repo, pay, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		EventType:       EventCheckoutCompleted,
		PaymentIntentID: "pi_123",
		BookingRef:      b.Ref,
	})
	assert.ErrorIs(t, err, ErrRefundFailed)
	// Календарное событие не трогаем, пока возврат не прошёл
	assert.Empty(t, cal.deletedHrefs)
	assert.Zero(t, repo.setIntentStatus)
}

func TestExecute_ExpiredCancels(t *testing.T) {
	b := pendingBooking()
	repo := &fakeRepo{booking: b}
	cal := &fakeCalClient{}
	uc := NewUseCase(&fakeFeed{}, cal, repo, &fakePayClient{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:  EventCheckoutExpired,
		BookingRef: b.Ref,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, resp.Outcome)
	assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
	assert.Equal(t, []string{b.CalendarHref}, cal.deletedHrefs)
}

func TestExecute_ExpiredAfterConfirmIgnored(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed

	repo := &fakeRepo{booking: b}
	cal := &fakeCalClient{}
	uc := NewUseCase(&fakeFeed{}, cal, repo, &fakePayClient{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:  EventCheckoutExpired,
		BookingRef: b.Ref,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	assert.Empty(t, cal.deletedHrefs)
	assert.Empty(t, repo.updateStatusRefs)
}

func TestExecute_UnknownEventTypeIgnored(t *testing.T) {
	uc := NewUseCase(&fakeFeed{}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventType:  "payment_intent.created",
		BookingRef: "bk-x",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, resp.Outcome)
}
