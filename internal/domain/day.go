package domain

import "time"

// Day is an immutable calendar day (year, month, day-of-month) interpreted
// in the venue's reference time zone. All availability math is done against
// the half-open instant range [Start, Start+24h) of a Day.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// NewDay builds a Day from the calendar date of t in t's location.
func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Day{}, err
	}
	return NewDay(t), nil
}

// Start returns local midnight of the day in loc.
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
}

// End returns local midnight of the next day in loc (exclusive bound).
func (d Day) End(loc *time.Location) time.Time {
	return d.Start(loc).Add(24 * time.Hour)
}

// Next returns the following calendar day.
// time.Date normalizes out-of-range values, so month/year carry is free.
func (d Day) Next() Day {
	return NewDay(time.Date(d.Year, d.Month, d.Date+1, 0, 0, 0, 0, time.UTC))
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Date > other.Date
}

// Equal reports whether two days are the same calendar date.
func (d Day) Equal(other Day) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Date == other.Date
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.Start(time.UTC).Format(DateFormat)
}
