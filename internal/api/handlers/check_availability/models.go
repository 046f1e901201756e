package check_availability

import (
	"github.com/studio609/Studio-BookingService/internal/domain"
	checkAvailability "github.com/studio609/Studio-BookingService/internal/usecase/check_availability"
)

// DayAvailability HTTP response model для одного дня
type DayAvailability struct {
	Date            string `json:"date"` // "2026-06-01"
	Available       bool   `json:"available"`
	IsBlackout      bool   `json:"isBlackout"`
	BookedCount     int    `json:"bookedCount"`
	HasShortSession bool   `json:"hasShortSession"`
}

// SkippedEntry диагностическая запись о пропущенном элементе календаря
type SkippedEntry struct {
	Ref    string `json:"ref"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// ruleText фиксированная формулировка правила доступности для фронтенда
const ruleText = "A day is bookable unless the studio is closed, two bookings already exist, or any booking is a recording session under 4 hours."

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Rule    string            `json:"rule"`
	Days    []DayAvailability `json:"days"`
	Skipped []SkippedEntry    `json:"skipped,omitempty"`
}

// ToUseCaseRequest парсит query-параметры в модель use case
func ToUseCaseRequest(from, to string, debug bool) (*checkAvailability.Request, error) {
	fromDay, err := domain.ParseDay(from)
	if err != nil {
		return nil, err
	}

	toDay, err := domain.ParseDay(to)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		From:  fromDay,
		To:    toDay,
		Debug: debug,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, 0, len(resp.Verdicts))
	for _, v := range resp.Verdicts {
		days = append(days, DayAvailability{
			Date:            v.Date.String(),
			Available:       v.Available,
			IsBlackout:      v.IsBlackout,
			BookedCount:     v.BookedCount,
			HasShortSession: v.HasShortSession,
		})
	}

	out := &AvailabilityResponse{
		From: resp.From.String(),
		To:   resp.To.String(),
		Rule: ruleText,
		Days: days,
	}

	for _, s := range resp.Skipped {
		out.Skipped = append(out.Skipped, SkippedEntry{
			Ref:    s.Ref,
			Code:   s.Code,
			Detail: s.Detail,
		})
	}

	return out
}
