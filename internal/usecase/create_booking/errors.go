package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDateInPast возвращается при попытке забронировать прошедшую дату
	ErrDateInPast = errors.New("booking date is in the past")

	// ErrDayNotAvailable возвращается, когда день недоступен для бронирования
	ErrDayNotAvailable = errors.New("day is not available")

	// ErrCalendarUnavailable возвращается, когда календарный сервер недоступен
	ErrCalendarUnavailable = errors.New("calendar server unavailable")

	// ErrPaymentUnavailable возвращается при ошибке создания платёжной сессии
	ErrPaymentUnavailable = errors.New("payment processor unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
