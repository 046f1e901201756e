package domain

import "time"

// BookingStatus represents the payment lifecycle state of a booking record.
type BookingStatus string

const (
	// StatusPendingPayment - календарная запись создана, ждём оплату через Stripe Checkout
	StatusPendingPayment BookingStatus = "pending_payment"
	// StatusConfirmed - оплата получена, день всё ещё доступен
	StatusConfirmed BookingStatus = "confirmed"
	// StatusCancelled - checkout-сессия истекла, бронирование снято
	StatusCancelled BookingStatus = "cancelled"
	// StatusRefunded - оплата получена, но день успел стать недоступным; деньги возвращены
	StatusRefunded BookingStatus = "refunded"
)

// Booking is the ledger record of one studio booking. The calendar entry in
// the remote CalDAV collection is the source of truth for availability; this
// record tracks payment state and gives webhook processing idempotency.
type Booking struct {
	ID  int64
	Ref string // e.g. "bk-20240601T101500-3f9a2c41"

	Date    Day
	Summary string
	Notes   *string

	CalendarHref      string // href of the reserving VEVENT object
	CheckoutSessionID string
	PaymentIntentID   *string

	AmountMinor int64 // deposit in minor currency units
	Currency    string

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinal returns true if the booking can no longer change state.
func (b *Booking) IsFinal() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCancelled || b.Status == StatusRefunded
}

// AwaitsPayment returns true while the checkout session is outstanding.
func (b *Booking) AwaitsPayment() bool {
	return b.Status == StatusPendingPayment
}
