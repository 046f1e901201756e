package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidRange возвращается, когда начало диапазона позже конца
	ErrInvalidRange = errors.New("range start is after range end")

	// ErrRangeTooLarge возвращается при слишком широком диапазоне дат
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrCalendarUnavailable возвращается, когда календарный сервер недоступен
	ErrCalendarUnavailable = errors.New("calendar server unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
