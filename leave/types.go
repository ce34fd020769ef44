// Package leave implements leave accounting: categories with annual limits,
// the leave log, and the per-employment-year usage and remaining-days
// calculation.
package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type CategoryID string
type EntryID string

// =============================================================================
// REFERENCE DATA
// =============================================================================

// Employee is the part of the employee record leave accounting needs.
type Employee struct {
	ID        EmployeeID
	Name      string
	Email     string
	HireDate  generic.TimePoint
	CreatedAt time.Time
}

// Category is a kind of leave ("Annual", "Sick", "Unpaid").
// An AnnualLimit of 0 means unlimited.
type Category struct {
	ID          CategoryID
	Title       string
	AnnualLimit int
}

func (c Category) Unlimited() bool { return c.AnnualLimit == 0 }

// =============================================================================
// LEAVE LOG
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Entry is one leave request in the log. A nil End marks a single-day event.
type Entry struct {
	ID         EntryID
	EmployeeID EmployeeID
	CategoryID CategoryID
	Start      generic.TimePoint
	End        *generic.TimePoint
	Status     Status
	Comment    string
	DecidedBy  string
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// Period returns the inclusive day range the entry covers.
func (e Entry) Period() generic.Period {
	end := e.Start
	if e.End != nil {
		end = *e.End
	}
	return generic.Period{Start: e.Start, End: end}
}

// Counts reports whether the entry is charged against allowances.
// Pending entries reserve days until they are decided.
func (e Entry) Counts() bool {
	return e.Status != StatusRejected
}

// Days returns the entry's charged length: working days for limited
// categories, calendar days otherwise. Single-day events are always 1.
func (e Entry) Days(cal *calendar.ProductionCalendar, limited bool) (int, error) {
	if e.End == nil {
		return 1, nil
	}
	if limited {
		return cal.CountWorkingDays(e.Start, e.End)
	}
	return calendar.CountCalendarDays(e.Start, e.End)
}

// =============================================================================
// RESULTS
// =============================================================================

// Usage is the per-category outcome of the accrual calculation.
type Usage struct {
	CategoryID CategoryID
	Title      string
	Limit      int

	// Used is the number of days charged in the current employment year.
	Used int

	// WindowUsed is the number of days charged inside the report window,
	// whatever employment years it spans. Nil without a window.
	WindowUsed *int

	// Remaining is nil for unlimited categories.
	Remaining *decimal.Decimal

	// Carried is the sum of (limit - used) over completed employment years.
	Carried decimal.Decimal

	// Accrued is the pro-rated allowance of the current employment year.
	Accrued decimal.Decimal
}

// Summary is the leave picture of one employee at a point in time.
type Summary struct {
	Employee   Employee
	AsOf       generic.TimePoint
	WorkYears  int
	Year       generic.Period
	Categories []Usage
}
