package check_availability

import (
	"fmt"

	"github.com/studio609/Studio-BookingService/internal/domain"
)

// maxRangeDays верхняя граница ширины запрашиваемого диапазона:
// защищает календарный сервер от выборки произвольно широких окон
const maxRangeDays = 366

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	zero := domain.Day{}
	if req.From == zero || req.To == zero {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.From.After(req.To) {
		return ErrInvalidRange
	}

	if rangeWidthDays(req.From, req.To) > maxRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooLarge, maxRangeDays)
	}

	return nil
}

// rangeWidthDays число дней в диапазоне [from, to] включительно
func rangeWidthDays(from, to domain.Day) int {
	days := 0
	for day := from; !day.After(to) && days <= maxRangeDays; day = day.Next() {
		days++
	}
	return days
}
