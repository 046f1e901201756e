package stripepay

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/refund"
	"github.com/stripe/stripe-go/v79/webhook"
)

const defaultWebhookTolerance = 300 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает факт обращения к внешнему сервису (для метрик)
type Observer interface {
	ObserveExternal(target, operation string, err error)
}

// Config параметры Stripe-клиента
type Config struct {
	SecretKey        string
	WebhookSecret    string
	WebhookTolerance time.Duration
	SuccessURL       string
	CancelURL        string
	Currency         string
}

// Client клиент для работы со Stripe: checkout-сессии, проверка подписи
// webhook-событий и возвраты платежей
type Client struct {
	cfg      Config
	log      Logger
	observer Observer
}

// NewClient создает новый экземпляр Stripe-клиента
func NewClient(cfg Config, log Logger, observer Observer) *Client {
	if cfg.WebhookTolerance <= 0 {
		cfg.WebhookTolerance = defaultWebhookTolerance
	}
	return &Client{cfg: cfg, log: log, observer: observer}
}

// CheckoutInput параметры создания checkout-сессии
type CheckoutInput struct {
	BookingRef    string
	BookingDate   string
	AmountMinor   int64
	Description   string
	CustomerEmail string
}

// CheckoutSession результат создания checkout-сессии
type CheckoutSession struct {
	ID  string
	URL string
}

// CreateCheckoutSession создает одноразовую платёжную сессию для депозита.
// Booking reference кладётся в metadata сессии и payment intent, чтобы
// webhook мог связать платёж с записью в ledger.
func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	// Stripe использует глобальный API-ключ; ограничиваем использование
	// этим вызовом.
	stripe.Key = c.cfg.SecretKey

	meta := map[string]string{
		"booking_ref":  in.BookingRef,
		"booking_date": in.BookingDate,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.cfg.SuccessURL),
		CancelURL:         stripe.String(c.cfg.CancelURL),
		ClientReferenceID: stripe.String(in.BookingRef),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.cfg.Currency),
					UnitAmount: stripe.Int64(in.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: meta,
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: meta,
		},
	}
	params.Context = ctx
	// Stripe-level idempotency: безопасные повторы на уровне booking ref.
	params.IdempotencyKey = stripe.String("checkout-" + in.BookingRef)
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}

	sess, err := checkoutsession.New(params)
	c.observe("create_checkout_session", err)
	if err != nil {
		c.log.Error("stripepay: checkout session create failed for ref=%s: %v", in.BookingRef, err)
		return nil, fmt.Errorf("%w: %v", ErrSessionCreate, err)
	}

	c.log.Info("stripepay: checkout session created id=%s ref=%s", sess.ID, in.BookingRef)
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyEvent проверяет подпись webhook-события и возвращает распакованное
// событие. Подпись - единственная аутентификация этого эндпоинта.
func (c *Client) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if c.cfg.WebhookSecret == "" {
		return stripe.Event{}, ErrNotConfigured
	}

	evt, err := webhook.ConstructEventWithTolerance(payload, sigHeader, c.cfg.WebhookSecret, c.cfg.WebhookTolerance)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return evt, nil
}

// Refund возвращает платёж целиком по payment intent.
func (c *Client) Refund(ctx context.Context, paymentIntentID, reason string) (string, error) {
	stripe.Key = c.cfg.SecretKey

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Metadata: map[string]string{
			"reason": reason,
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String("refund-" + paymentIntentID)

	ref, err := refund.New(params)
	c.observe("refund", err)
	if err != nil {
		c.log.Error("stripepay: refund failed for payment_intent=%s: %v", paymentIntentID, err)
		return "", fmt.Errorf("%w: %v", ErrRefund, err)
	}

	c.log.Info("stripepay: refund issued id=%s payment_intent=%s", ref.ID, paymentIntentID)
	return ref.ID, nil
}

func (c *Client) observe(operation string, err error) {
	if c.observer != nil {
		c.observer.ObserveExternal("stripe", operation, err)
	}
}
