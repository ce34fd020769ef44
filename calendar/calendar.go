/*
Package calendar implements the production calendar: the per-year, per-month
lists of non-working days published by HR.

PURPOSE:
  Limited leave categories are charged in working days. Whether a day is
  working is decided by the production calendar only: weekends are non-working
  because the calendar lists them, not because of their weekday. A year the
  calendar knows nothing about is treated as all working days.

USAGE:
  cal := calendar.New()
  cal.SetMonth(2023, time.January, []int{1, 2, 3, 7, 8, 16})

  cal.IsWorkingDay(generic.NewTimePoint(2023, time.January, 16)) // false
  n, err := cal.CountWorkingDays(from, &to)

SEE ALSO:
  - leave/accrual.go: charges limited categories through CountWorkingDays
  - store/sqlite/sqlite.go: persists calendar months
*/
package calendar

import (
	"sort"
	"time"

	"github.com/warp/leave-engine/generic"
)

// ProductionCalendar maps year -> month -> set of non-working days of month.
// The zero value is an empty calendar where every day is working.
type ProductionCalendar struct {
	years map[int]map[time.Month]map[int]struct{}
}

func New() *ProductionCalendar {
	return &ProductionCalendar{years: make(map[int]map[time.Month]map[int]struct{})}
}

// FromDates builds a calendar from a flat list of non-working dates.
func FromDates(dates []generic.TimePoint) *ProductionCalendar {
	c := New()
	for _, d := range dates {
		c.AddHoliday(d)
	}
	return c
}

// SetMonth replaces the non-working days of a month. Days outside the
// month are ignored.
func (c *ProductionCalendar) SetMonth(year int, month time.Month, days []int) {
	c.ensure()
	months, ok := c.years[year]
	if !ok {
		months = make(map[time.Month]map[int]struct{})
		c.years[year] = months
	}
	last := generic.DaysInMonth(year, month)
	set := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d >= 1 && d <= last {
			set[d] = struct{}{}
		}
	}
	months[month] = set
}

// AddHoliday marks a single date as non-working.
func (c *ProductionCalendar) AddHoliday(d generic.TimePoint) {
	c.ensure()
	months, ok := c.years[d.Year()]
	if !ok {
		months = make(map[time.Month]map[int]struct{})
		c.years[d.Year()] = months
	}
	set, ok := months[d.Month()]
	if !ok {
		set = make(map[int]struct{})
		months[d.Month()] = set
	}
	set[d.Day()] = struct{}{}
}

func (c *ProductionCalendar) ensure() {
	if c.years == nil {
		c.years = make(map[int]map[time.Month]map[int]struct{})
	}
}

// HasYear reports whether the calendar has any data for the year.
func (c *ProductionCalendar) HasYear(year int) bool {
	if c == nil {
		return false
	}
	_, ok := c.years[year]
	return ok
}

// Years returns the years with data, ascending.
func (c *ProductionCalendar) Years() []int {
	if c == nil {
		return nil
	}
	years := make([]int, 0, len(c.years))
	for y := range c.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Holidays returns the sorted non-working days of a month.
func (c *ProductionCalendar) Holidays(year int, month time.Month) []int {
	if c == nil {
		return nil
	}
	set := c.years[year][month]
	days := make([]int, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// IsWorkingDay returns false only when the day is listed for its year and
// month. Missing data fails open.
func (c *ProductionCalendar) IsWorkingDay(d generic.TimePoint) bool {
	if c == nil {
		return true
	}
	months, ok := c.years[d.Year()]
	if !ok {
		return true
	}
	_, holiday := months[d.Month()][d.Day()]
	return !holiday
}

// CountWorkingDays counts working days in [from, to]. A nil `to` means
// the single day `from`.
func (c *ProductionCalendar) CountWorkingDays(from generic.TimePoint, to *generic.TimePoint) (int, error) {
	p, err := span(from, to)
	if err != nil {
		return 0, err
	}
	n := 0
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n, nil
}

// WorkingDaysInMonth counts the working days of a whole month.
func (c *ProductionCalendar) WorkingDaysInMonth(year int, month time.Month) int {
	end := generic.EndOfMonth(year, month)
	n, _ := c.CountWorkingDays(generic.StartOfMonth(year, month), &end)
	return n
}

// CountCalendarDays counts every day in [from, to]. A nil `to` counts 1.
func CountCalendarDays(from generic.TimePoint, to *generic.TimePoint) (int, error) {
	p, err := span(from, to)
	if err != nil {
		return 0, err
	}
	return p.Len(), nil
}

func span(from generic.TimePoint, to *generic.TimePoint) (generic.Period, error) {
	end := from
	if to != nil {
		end = *to
	}
	return generic.NewPeriod(from, end)
}
