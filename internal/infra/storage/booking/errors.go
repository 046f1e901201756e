package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись бронирования не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateRef возвращается при попытке создать бронирование с уже занятым reference
	ErrDuplicateRef = errors.New("booking.repository: duplicate booking ref")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
