package create_booking

import (
	"fmt"
	"time"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if (req.Date == domain.Day{}) {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date domain.Day, now time.Time, loc *time.Location) error {
	today := domain.NewDay(now.In(loc))
	if today.After(date) {
		return ErrDateInPast
	}
	return nil
}
