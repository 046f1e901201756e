package check_availability

import (
	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/internal/ics"
)

// Request модель запроса на проверку доступности диапазона дат
type Request struct {
	From domain.Day // первый день диапазона (включительно)
	To   domain.Day // последний день диапазона (включительно)

	// Debug включает диагностику пропущенных записей в ответе
	Debug bool
}

// Response модель ответа с вердиктами по дням
type Response struct {
	From     domain.Day
	To       domain.Day
	Verdicts []domain.DayVerdict

	// Skipped заполняется только в debug-режиме
	Skipped []ics.Skip
}
