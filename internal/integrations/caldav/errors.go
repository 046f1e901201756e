package caldav

import "errors"

var (
	// ErrObjectNotFound возвращается, когда календарный объект не найден
	ErrObjectNotFound = errors.New("caldav client: object not found")

	// ErrUnauthorized возвращается при отказе в доступе к коллекции
	ErrUnauthorized = errors.New("caldav client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("caldav client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервера
	ErrInvalidResponse = errors.New("caldav client: invalid response")
)
