package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PERIOD - Inclusive range of days
// =============================================================================

// Period is the inclusive day range [Start, End].
//
// Examples:
//   - Single day: Start == End
//   - Employment year: anniversary .. day before next anniversary
//   - Report window: from .. to query parameters
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod builds a period, rejecting an end before the start.
func NewPeriod(start, end TimePoint) (Period, error) {
	p := Period{Start: start, End: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate returns a *RangeError when End is before Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return &RangeError{From: p.Start, To: p.End}
	}
	return nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Intersect returns the overlap of two periods, false when they are disjoint.
func (p Period) Intersect(other Period) (Period, bool) {
	out := Period{
		Start: MaxTime(p.Start, other.Start),
		End:   MinTime(p.End, other.End),
	}
	if out.End.Before(out.Start) {
		return Period{}, false
	}
	return out, true
}

// Len returns the number of days in the period.
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// EMPLOYMENT YEARS - Anniversary periods anchored on the hire date
// =============================================================================

// EmploymentYear returns the k-th employment year (0-based) for the hire date:
// [hire + k years, hire + (k+1) years - 1 day].
//
// Anniversaries are always computed from the hire date rather than chained
// from the previous window, so a Feb 29 hire lands on Mar 1 in common years
// without drifting.
func EmploymentYear(hire TimePoint, k int) Period {
	start := hire.AddYears(k)
	return Period{Start: start, End: hire.AddYears(k + 1).AddDays(-1)}
}

// EmploymentYearsElapsed returns the number of whole employment years
// completed between the hire date and `at`. Never negative.
func EmploymentYearsElapsed(hire, at TimePoint) int {
	if at.Before(hire) {
		return 0
	}
	years := at.Year() - hire.Year()
	if at.Before(hire.AddYears(years)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// MonthsElapsed returns the number of months from `from` to `to` as a
// decimal: whole months plus the fraction of the following month.
// Returns zero when `to` is not after `from`.
func MonthsElapsed(from, to TimePoint) decimal.Decimal {
	if !to.After(from) {
		return decimal.Zero
	}
	whole := 0
	for !from.AddMonths(whole + 1).After(to) {
		whole++
	}
	monthStart := from.AddMonths(whole)
	monthEnd := from.AddMonths(whole + 1)
	rest := DaysBetween(monthStart, to)
	if rest == 0 {
		return decimal.NewFromInt(int64(whole))
	}
	fraction := decimal.NewFromInt(int64(rest)).Div(decimal.NewFromInt(int64(DaysBetween(monthStart, monthEnd))))
	return decimal.NewFromInt(int64(whole)).Add(fraction)
}
