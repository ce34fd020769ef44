/*
accrual.go - Used and remaining leave days per employment year

PURPOSE:
  Computes, for one employee and every leave category, how many days were
  used in the current employment year and how many remain.

EMPLOYMENT YEARS:
  Year k runs from the k-th hire-date anniversary to the day before the
  next one. The current year is the one containing AsOf.

  Hired 2022-01-10, AsOf 2023-03-10:
    year 0: [2022-01-10, 2023-01-09]  completed
    year 1: [2023-01-10, 2024-01-09]  current

REMAINING DAYS (limited categories):
  carried  = sum over completed years of (limit - used in that year)
  accrued  = limit / 12 * round(months elapsed in current year)
  rest     = carried + accrued - used in current year, rounded to 0.01

  carried goes negative when a year was over-used.

DAY ATTRIBUTION:
  Every day belongs to exactly one employment year. An entry that crosses
  an anniversary is split and each part is charged to its own year, so a
  day is never counted twice nor dropped at a boundary.

COUNTING MODE:
  Limited categories count working days against the production calendar.
  Unlimited categories count calendar days. An entry without an end date is
  one day whichever mode applies.

REPORT WINDOW:
  When FromLimit/ToLimit are set, entries are clamped to that window before
  the usage figures are counted: Used (current year inside the window) and
  WindowUsed (the whole window, across anniversaries). Carried, Accrued and
  Remaining are the balance as of AsOf and ignore the window.

EXAMPLE:
  usage, err := leave.Summarize(leave.Input{
      HireDate:   hire,
      Entries:    entries,
      Categories: categories,
      Calendar:   cal,
      AsOf:       generic.Today(),
  })

SEE ALSO:
  - calendar/calendar.go: working-day counting
  - generic/period.go: employment years and month arithmetic
*/
package leave

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	restPlaces    = int32(2)
)

// Input is everything the calculation depends on.
type Input struct {
	HireDate   generic.TimePoint
	Entries    []Entry
	Categories []Category
	Calendar   *calendar.ProductionCalendar
	AsOf       generic.TimePoint

	// Optional report window. Either bound may be nil.
	FromLimit *generic.TimePoint
	ToLimit   *generic.TimePoint
}

// Summarize computes usage for every category, in category order.
func Summarize(in Input) ([]Usage, error) {
	window, err := in.reportWindow()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[CategoryID][]Entry)
	for _, e := range in.Entries {
		if err := e.Period().Validate(); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if !e.Counts() {
			continue
		}
		byCategory[e.CategoryID] = append(byCategory[e.CategoryID], e)
	}

	balance := counter{cal: in.Calendar}
	report := counter{cal: in.Calendar, window: window}
	workYears := generic.EmploymentYearsElapsed(in.HireDate, in.AsOf)
	current := generic.EmploymentYear(in.HireDate, workYears)

	out := make([]Usage, 0, len(in.Categories))
	for _, cat := range in.Categories {
		entries := byCategory[cat.ID]
		limited := !cat.Unlimited()

		used, err := report.count(entries, current, limited)
		if err != nil {
			return nil, err
		}
		u := Usage{
			CategoryID: cat.ID,
			Title:      cat.Title,
			Limit:      cat.AnnualLimit,
			Used:       used,
			Carried:    decimal.Zero,
			Accrued:    decimal.Zero,
		}

		if window != nil {
			inWindow, err := report.count(entries, *window, limited)
			if err != nil {
				return nil, err
			}
			u.WindowUsed = &inWindow
		}

		if limited {
			limit := decimal.NewFromInt(int64(cat.AnnualLimit))

			for k := 0; k < workYears; k++ {
				usedK, err := balance.count(entries, generic.EmploymentYear(in.HireDate, k), true)
				if err != nil {
					return nil, err
				}
				u.Carried = u.Carried.Add(limit.Sub(decimal.NewFromInt(int64(usedK))))
			}

			usedNow := used
			if window != nil {
				if usedNow, err = balance.count(entries, current, true); err != nil {
					return nil, err
				}
			}

			accrued := limit.Div(monthsPerYear).Mul(roundedMonths(current.Start, in.AsOf))
			rest := u.Carried.Add(accrued).Sub(decimal.NewFromInt(int64(usedNow))).Round(restPlaces)
			u.Accrued = accrued.Round(restPlaces)
			u.Remaining = &rest
		}

		out = append(out, u)
	}
	return out, nil
}

// roundedMonths is the number of months elapsed since the start of the
// employment year, rounded half-up to a whole month and capped at 12.
func roundedMonths(yearStart, asOf generic.TimePoint) decimal.Decimal {
	months := generic.MonthsElapsed(yearStart, asOf).Round(0)
	if months.GreaterThan(monthsPerYear) {
		return monthsPerYear
	}
	return months
}

func (in Input) reportWindow() (*generic.Period, error) {
	if in.FromLimit == nil && in.ToLimit == nil {
		return nil, nil
	}
	// Open bounds are widened to the employment history.
	start := in.HireDate
	if in.FromLimit != nil {
		start = *in.FromLimit
	}
	end := generic.MaxTime(in.AsOf, start).AddYears(1)
	if in.ToLimit != nil {
		end = *in.ToLimit
	}
	if in.FromLimit != nil && in.ToLimit != nil && end.Before(start) {
		return nil, fmt.Errorf("report window: %w", &generic.RangeError{From: start, To: end})
	}
	return &generic.Period{Start: start, End: end}, nil
}

// =============================================================================
// DAY COUNTING
// =============================================================================

type counter struct {
	cal    *calendar.ProductionCalendar
	window *generic.Period
}

// count sums the days of entries falling inside `bucket`, after clamping each
// entry to the report window.
func (c counter) count(entries []Entry, bucket generic.Period, limited bool) (int, error) {
	total := 0
	for _, e := range entries {
		p := e.Period()
		if c.window != nil {
			var ok bool
			if p, ok = p.Intersect(*c.window); !ok {
				continue
			}
		}
		p, ok := p.Intersect(bucket)
		if !ok {
			continue
		}

		clamped := Entry{Start: p.Start}
		if e.End != nil {
			clamped.End = &p.End
		}
		n, err := clamped.Days(c.cal, limited)
		if err != nil {
			return 0, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		total += n
	}
	return total, nil
}
