package stripepay

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись webhook-события не прошла проверку
	ErrInvalidSignature = errors.New("stripepay client: invalid webhook signature")

	// ErrNotConfigured возвращается, когда не задан webhook secret
	ErrNotConfigured = errors.New("stripepay client: webhook secret not configured")

	// ErrSessionCreate возвращается при ошибке создания checkout-сессии
	ErrSessionCreate = errors.New("stripepay client: failed to create checkout session")

	// ErrRefund возвращается при ошибке возврата платежа
	ErrRefund = errors.New("stripepay client: failed to issue refund")
)
