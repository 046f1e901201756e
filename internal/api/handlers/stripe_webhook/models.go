package stripe_webhook

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v79"

	confirmPayment "github.com/studio609/Studio-BookingService/internal/usecase/confirm_payment"
)

// WebhookResponse HTTP response model: подтверждение приёма события
type WebhookResponse struct {
	Received   bool   `json:"received"`
	Outcome    string `json:"outcome,omitempty"`
	BookingRef string `json:"bookingRef,omitempty"`
}

// ToUseCaseRequest распаковывает checkout-сессию из события Stripe
func ToUseCaseRequest(event stripe.Event) (*confirmPayment.Request, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, err
	}

	req := &confirmPayment.Request{
		EventType:  string(event.Type),
		EventID:    event.ID,
		SessionID:  session.ID,
		BookingRef: session.Metadata["booking_ref"],
	}

	// PaymentIntent приходит как expandable-ссылка: только ID заполнен
	if session.PaymentIntent != nil {
		req.PaymentIntentID = session.PaymentIntent.ID
	}

	return req, nil
}
