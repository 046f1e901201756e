package create_booking

import "github.com/studio609/Studio-BookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Date          domain.Day
	Notes         *string
	CustomerEmail string
}

// Response модель ответа о созданном бронировании
type Response struct {
	BookingRef  string
	Date        domain.Day
	Status      string
	CheckoutURL string
	AmountMinor int64
	Currency    string
}
