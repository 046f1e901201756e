package domain

// Business rule constants
const (
	// MaxBookingsPerDay наибольшее число уже существующих бронирований,
	// при котором день ещё считается доступным (всего студия принимает
	// не более двух параллельных бронирований)
	MaxBookingsPerDay = 1
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Validation constants
const (
	MaxEventLabelLength = 256
	MaxNotesLength      = 500
	MaxSummaryLength    = 120

	// ShortSessionHours любая бронь с меткой длительности строго меньше
	// этого порога закрывает день целиком
	ShortSessionHours = 4
)
