package models

import (
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// BookingResponse модель записи бронирования для чтения
type BookingResponse struct {
	Ref         string  `json:"bookingRef"`
	Date        string  `json:"date"`
	Summary     string  `json:"summary"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`
	AmountMinor int64   `json:"amountMinor"`
	Currency    string  `json:"currency"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменную модель в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		Ref:         b.Ref,
		Date:        b.Date.String(),
		Summary:     b.Summary,
		Notes:       b.Notes,
		Status:      string(b.Status),
		AmountMinor: b.AmountMinor,
		Currency:    b.Currency,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}
