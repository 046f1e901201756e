package confirm_payment

// Event types this use case reacts to; anything else is acknowledged and
// ignored so the processor stops retrying.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

// Outcome статусы обработки платёжного события
const (
	OutcomeConfirmed = "confirmed"
	OutcomeRefunded  = "refunded"
	OutcomeCancelled = "cancelled"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
)

// Request распакованное и проверенное платёжное событие
type Request struct {
	EventType       string
	EventID         string
	SessionID       string
	PaymentIntentID string
	BookingRef      string // из metadata checkout-сессии
}

// Response результат обработки события
type Response struct {
	BookingRef string
	Outcome    string
	RefundID   string
}
