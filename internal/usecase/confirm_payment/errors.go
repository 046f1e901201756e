package confirm_payment

import "errors"

var (
	// ErrUnknownBooking возвращается, когда событие ссылается на неизвестное бронирование
	ErrUnknownBooking = errors.New("event references unknown booking")

	// ErrCalendarUnavailable возвращается, когда календарный сервер недоступен
	ErrCalendarUnavailable = errors.New("calendar server unavailable")

	// ErrRefundFailed возвращается, когда не удалось оформить возврат
	ErrRefundFailed = errors.New("refund failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
