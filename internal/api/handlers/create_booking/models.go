package create_booking

import (
	"github.com/studio609/Studio-BookingService/internal/domain"
	createBooking "github.com/studio609/Studio-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date          string  `json:"date"` // "2026-06-01"
	Notes         *string `json:"notes,omitempty"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	BookingRef  string `json:"bookingRef"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkoutUrl"`
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseDay(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:          date,
		Notes:         r.Notes,
		CustomerEmail: r.CustomerEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		BookingRef:  resp.BookingRef,
		Date:        resp.Date.String(),
		Status:      resp.Status,
		CheckoutURL: resp.CheckoutURL,
		AmountMinor: resp.AmountMinor,
		Currency:    resp.Currency,
	}
}
