package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, Day{Year: 2026, Month: time.June, Date: 1}, day)

	_, err = ParseDay("01.06.2026")
	assert.Error(t, err)

	_, err = ParseDay("2026-13-01")
	assert.Error(t, err)
}

func TestDay_StartEnd(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day := Day{Year: 2026, Month: time.June, Date: 1}

	start := day.Start(loc)
	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, loc), start)

	// Конец дня — эксклюзивная граница: полночь следующего дня
	end := day.End(loc)
	assert.Equal(t, start.Add(24*time.Hour), end)
}

func TestDay_Next_MonthCarry(t *testing.T) {
	day := Day{Year: 2026, Month: time.June, Date: 30}
	assert.Equal(t, Day{Year: 2026, Month: time.July, Date: 1}, day.Next())
}

func TestDay_Next_YearCarry(t *testing.T) {
	day := Day{Year: 2026, Month: time.December, Date: 31}
	assert.Equal(t, Day{Year: 2027, Month: time.January, Date: 1}, day.Next())
}

func TestDay_Next_LeapYear(t *testing.T) {
	day := Day{Year: 2028, Month: time.February, Date: 28}
	assert.Equal(t, Day{Year: 2028, Month: time.February, Date: 29}, day.Next())

	day = Day{Year: 2026, Month: time.February, Date: 28}
	assert.Equal(t, Day{Year: 2026, Month: time.March, Date: 1}, day.Next())
}

func TestDay_After(t *testing.T) {
	a := Day{Year: 2026, Month: time.June, Date: 1}
	b := Day{Year: 2026, Month: time.June, Date: 2}

	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.False(t, a.After(a))

	prevYear := Day{Year: 2025, Month: time.December, Date: 31}
	assert.True(t, a.After(prevYear))
}

func TestDay_String(t *testing.T) {
	day := Day{Year: 2026, Month: time.June, Date: 1}
	assert.Equal(t, "2026-06-01", day.String())
}
