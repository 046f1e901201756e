package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/integrations/stripepay"
	"github.com/studio609/Studio-BookingService/internal/service/calendarfeed"
	"github.com/studio609/Studio-BookingService/pkg/ptr"
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
	putHref      string
	putErr       error
	putBodies    []string
	deletedHrefs []string
}

func (f *fakeCalClient) PutEvent(_ context.Context, _, _, icsBody string) (string, error) {
	f.putBodies = append(f.putBodies, icsBody)
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.putHref, nil
}

func (f *fakeCalClient) DeleteEvent(_ context.Context, href string) error {
	f.deletedHrefs = append(f.deletedHrefs, href)
	return nil
}

type fakeRepo struct {
	created   *domain.Booking
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = b
	return b, nil
}

type fakePayClient struct {
	session   *stripepay.CheckoutSession
	err       error
	gotInputs []stripepay.CheckoutInput
}

func (f *fakePayClient) CreateCheckoutSession(_ context.Context, in stripepay.CheckoutInput) (*stripepay.CheckoutSession, error) {
	f.gotInputs = append(f.gotInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testCfg = Config{
	BookingsPath: "/calendars/studio/bookings/",
	Summary:      "609 Booking",
	AmountMinor:  10000,
	Currency:     "usd",
}

func newTestUseCase(feed EventFeed, cal CalendarClient, repo BookingRepository, pay PaymentClient) *UseCase {
	uc := NewUseCase(feed, cal, repo, pay, testCfg, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_CreatesBooking(t *testing.T) {
	cal := &fakeCalClient{putHref: "/calendars/studio/bookings/bk-x.ics"}
	repo := &fakeRepo{}
	pay := &fakePayClient{session: &stripepay.CheckoutSession{
		ID:  "cs_123",
		URL: "https://checkout.stripe.com/pay/cs_123",
	}}
	uc := newTestUseCase(&fakeFeed{window: &calendarfeed.Window{}}, cal, repo, pay)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:  domain.Day{Year: 2026, Month: time.June, Date: 1},
		Notes: ptr.Ptr("two guitars, one drum kit"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.BookingRef, "bk-20260520T120000-"))
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_123", resp.CheckoutURL)
	assert.Equal(t, int64(10000), resp.AmountMinor)
	assert.Equal(t, "usd", resp.Currency)

	// Резервирующее событие записано и содержит summary
	require.Len(t, cal.putBodies, 1)
	assert.Contains(t, cal.putBodies[0], "SUMMARY:609 Booking")
	assert.Empty(t, cal.deletedHrefs)

	// Ledger-запись создана со ссылками на календарь и checkout-сессию
	require.NotNil(t, repo.created)
	assert.Equal(t, "/calendars/studio/bookings/bk-x.ics", repo.created.CalendarHref)
	assert.Equal(t, "cs_123", repo.created.CheckoutSessionID)
	assert.Equal(t, domain.StatusPendingPayment, repo.created.Status)

	require.Len(t, pay.gotInputs, 1)
	assert.Equal(t, resp.BookingRef, pay.gotInputs[0].BookingRef)
	assert.Equal(t, "2026-06-01", pay.gotInputs[0].BookingDate)
}

func TestExecute_MissingDate(t *testing.T) {
	uc := newTestUseCase(&fakeFeed{}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotesTooLong(t *testing.T) {
	uc := newTestUseCase(&fakeFeed{}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:  domain.Day{Year: 2026, Month: time.June, Date: 1},
		Notes: ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeFeed{}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: domain.Day{Year: 2026, Month: time.May, Date: 19},
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	cal := &fakeCalClient{putHref: "/x.ics"}
	pay := &fakePayClient{session: &stripepay.CheckoutSession{ID: "cs_1", URL: "u"}}
	uc := newTestUseCase(&fakeFeed{window: &calendarfeed.Window{}}, cal, &fakeRepo{}, pay)

	_, err := uc.Execute(context.Background(), &Request{
		Date: domain.Day{Year: 2026, Month: time.May, Date: 20},
	})
	assert.NoError(t, err)
}

func TestExecute_DayNotAvailable(t *testing.T) {
	loc := time.UTC
	date := domain.Day{Year: 2026, Month: time.June, Date: 1}
	window := &calendarfeed.Window{
		Blackouts: []domain.CanonicalEvent{{
			SourceRef: "closure.ics",
			Start:     date.Start(loc),
			End:       date.End(loc),
		}},
	}
	cal := &fakeCalClient{}
	uc := newTestUseCase(&fakeFeed{window: window}, cal, &fakeRepo{}, &fakePayClient{})

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrDayNotAvailable)
	assert.Empty(t, cal.putBodies)
}

func TestExecute_CalendarDown(t *testing.T) {
	uc := newTestUseCase(&fakeFeed{err: calendarfeed.ErrCalendarUnavailable}, &fakeCalClient{}, &fakeRepo{}, &fakePayClient{})

	_, err := uc.Execute(context.Background(), &Request{
		Date: domain.Day{Year: 2026, Month: time.June, Date: 1},
	})
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
}

func TestExecute_PaymentFailureRollsBackCalendar(t *testing.T) {
	cal := &fakeCalClient{putHref: "/calendars/studio/bookings/bk-x.ics"}
	pay := &fakePayClient{err: errors.New("stripe down")}
	repo := &fakeRepo{}
	uc := newTestUseCase(&fakeFeed{window: &calendarfeed.Window{}}, cal, repo, pay)

	_, err := uc.Execute(context.Background(), &Request{
		Date: domain.Day{Year: 2026, Month: time.June, Date: 1},
	})
	assert.ErrorIs(t, err, ErrPaymentUnavailable)

	// Резервирующее событие снято, ledger-записи нет
	assert.Equal(t, []string{"/calendars/studio/bookings/bk-x.ics"}, cal.deletedHrefs)
	assert.Nil(t, repo.created)
}

func TestExecute_PersistFailureRollsBackCalendar(t *testing.T) {
	cal := &fakeCalClient{putHref: "/calendars/studio/bookings/bk-x.ics"}
	pay := &fakePayClient{session: &stripepay.CheckoutSession{ID: "cs_1", URL: "u"}}
	repo := &fakeRepo{createErr: errors.New("db down")}
	uc := newTestUseCase(&fakeFeed{window: &calendarfeed.Window{}}, cal, repo, pay)

	_, err := uc.Execute(context.Background(), &Request{
		Date: domain.Day{Year: 2026, Month: time.June, Date: 1},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"/calendars/studio/bookings/bk-x.ics"}, cal.deletedHrefs)
}

func TestNewBookingRef_Format(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	ref := newBookingRef(now)
	assert.True(t, strings.HasPrefix(ref, "bk-20260520T120000-"))
	assert.Len(t, ref, len("bk-20260520T120000-")+8)

	// Суффикс случайный: два вызова дают разные reference
	assert.NotEqual(t, ref, newBookingRef(now))
}
