package stripe_webhook

import (
	"context"

	"github.com/stripe/stripe-go/v79"

	confirmPayment "github.com/studio609/Studio-BookingService/internal/usecase/confirm_payment"
)

// EventVerifier проверяет подпись входящего события Stripe
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
