/*
Package generic provides the date primitives shared by every package of the
leave engine.

PURPOSE:
  Leave accounting is done in whole days. Timestamps coming from storage or
  HTTP carry clocks and zones that must never leak into day arithmetic, so
  every date in the engine is a TimePoint: a UTC midnight.

KEY CONCEPTS:
  - TimePoint: a calendar day (time.go)
  - Period: an inclusive range of days (period.go)
  - Employment years: hire-date anniversaries (period.go)
  - Sentinel errors (errors.go)

USAGE:
  hire := generic.NewTimePoint(2022, time.January, 10)
  year := generic.EmploymentYear(hire, 1)
  // [2023-01-10, 2024-01-09]
*/
package generic

import (
	"time"
)

// DateLayout is the wire and storage format for dates.
const DateLayout = "2006-01-02"

// =============================================================================
// TIME POINT - A calendar day
// =============================================================================

type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock and zone of t, keeping its calendar day.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

func Today() TimePoint {
	return FromTime(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return FromTime(tp.normalize().AddDate(0, 0, n)) }
func (tp TimePoint) AddMonths(n int) TimePoint { return FromTime(tp.normalize().AddDate(0, n, 0)) }
func (tp TimePoint) AddYears(n int) TimePoint  { return FromTime(tp.normalize().AddDate(n, 0, 0)) }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (tp TimePoint) String() string {
	return tp.normalize().Format(DateLayout)
}

func MinTime(a, b TimePoint) TimePoint {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxTime(a, b TimePoint) TimePoint {
	if a.After(b) {
		return a
	}
	return b
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the signed number of days from `from` to `to`.
// Unix seconds of UTC midnights, since time.Duration saturates near 292 years.
func DaysBetween(from, to TimePoint) int {
	return int((to.normalize().Unix() - from.normalize().Unix()) / secondsPerDay)
}

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

func EndOfMonth(year int, month time.Month) TimePoint {
	return FromTime(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

func DaysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month).Day()
}
