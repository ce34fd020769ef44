package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/generic"
)

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func TestTimePoint_FromTimeDropsClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	tp := generic.FromTime(time.Date(2023, time.January, 15, 23, 30, 0, 0, loc))

	assert.Equal(t, "2023-01-15", tp.String())
	assert.True(t, tp.Equal(date(2023, time.January, 15)))
}

func TestParseDate(t *testing.T) {
	tp, err := generic.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.True(t, tp.Equal(date(2024, time.February, 29)))

	_, err = generic.ParseDate("29.02.2024")
	assert.Error(t, err)
}

func TestPeriod_Intersect(t *testing.T) {
	year := generic.Period{Start: date(2023, time.January, 10), End: date(2024, time.January, 9)}

	got, ok := year.Intersect(generic.Period{Start: date(2024, time.January, 5), End: date(2024, time.January, 12)})
	require.True(t, ok)
	assert.Equal(t, "[2024-01-05, 2024-01-09]", got.String())
	assert.Equal(t, 5, got.Len())

	_, ok = year.Intersect(generic.Period{Start: date(2024, time.January, 10), End: date(2024, time.January, 12)})
	assert.False(t, ok, "next anniversary belongs to the next year")
}

func TestNewPeriod_RejectsReversedRange(t *testing.T) {
	_, err := generic.NewPeriod(date(2023, time.March, 2), date(2023, time.March, 1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidRange))
	var rangeErr *generic.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.True(t, rangeErr.From.Equal(date(2023, time.March, 2)))
}

func TestEmploymentYear(t *testing.T) {
	hire := date(2022, time.January, 10)

	first := generic.EmploymentYear(hire, 0)
	assert.Equal(t, "[2022-01-10, 2023-01-09]", first.String())

	second := generic.EmploymentYear(hire, 1)
	assert.Equal(t, "[2023-01-10, 2024-01-09]", second.String())
	assert.True(t, first.End.AddDays(1).Equal(second.Start), "years are contiguous")
}

func TestEmploymentYear_LeapDayHire(t *testing.T) {
	hire := date(2020, time.February, 29)

	assert.Equal(t, "[2021-03-01, 2022-02-28]", generic.EmploymentYear(hire, 1).String())
	assert.Equal(t, "[2024-02-29, 2025-02-28]", generic.EmploymentYear(hire, 4).String())
}

func TestEmploymentYearsElapsed(t *testing.T) {
	hire := date(2022, time.January, 10)

	tests := []struct {
		at   generic.TimePoint
		want int
	}{
		{date(2021, time.December, 31), 0},
		{date(2022, time.January, 10), 0},
		{date(2023, time.January, 9), 0},
		{date(2023, time.January, 10), 1},
		{date(2025, time.June, 1), 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, generic.EmploymentYearsElapsed(hire, tt.at), tt.at.String())
	}
}

func TestMonthsElapsed(t *testing.T) {
	start := date(2023, time.January, 10)

	assert.True(t, generic.MonthsElapsed(start, start).IsZero())
	assert.Equal(t, "2", generic.MonthsElapsed(start, date(2023, time.March, 10)).String())

	// Mar 10 -> Mar 24 is 14 of 31 days
	got := generic.MonthsElapsed(start, date(2023, time.March, 24))
	assert.Equal(t, "2.45", got.Round(2).String())
}

func TestDaysBetween_LongSpans(t *testing.T) {
	assert.Equal(t, 182621, generic.DaysBetween(date(1500, time.January, 1), date(2000, time.January, 1)))
	assert.Equal(t, -182621, generic.DaysBetween(date(2000, time.January, 1), date(1500, time.January, 1)))
	assert.Equal(t, 3652058, generic.DaysBetween(date(1, time.January, 1), date(9999, time.December, 31)))

	p := generic.Period{Start: date(1, time.January, 1), End: date(9999, time.December, 31)}
	assert.Equal(t, 3652059, p.Len())
}
