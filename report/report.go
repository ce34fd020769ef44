/*
Package report builds the tabular HR reports.

KINDS:
  Each report kind is a value of Kind. The builders table is indexed by Kind
  and its length is pinned to kindCount, so a kind added without a builder
  does not compile.

  leave-balance  used and remaining days per employee and category
  leave-usage    days charged inside a date window
  working-days   working days per month of a year

OUTPUT:
  Every builder returns a *Report (title, columns, string rows), served as
  JSON or rendered to PDF by RenderPDF.
*/
package report

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
)

var ErrUnknownKind = errors.New("unknown report kind")

type Kind int

const (
	KindLeaveBalance Kind = iota
	KindLeaveUsage
	KindWorkingDays

	kindCount
)

var kindNames = [...]string{
	KindLeaveBalance: "leave-balance",
	KindLeaveUsage:   "leave-usage",
	KindWorkingDays:  "working-days",
}

// Builder produces one kind of report.
type Builder func(ctx context.Context, src Source, p Params) (*Report, error)

var builders = [...]Builder{
	KindLeaveBalance: buildLeaveBalance,
	KindLeaveUsage:   buildLeaveUsage,
	KindWorkingDays:  buildWorkingDays,
}

// Both tables must have exactly one slot per kind.
var (
	_ = [1]struct{}{}[len(kindNames)-int(kindCount)]
	_ = [1]struct{}{}[len(builders)-int(kindCount)]
)

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds lists every report kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Source is the data a report reads.
type Source interface {
	Employees(ctx context.Context) ([]leave.Employee, error)
	Summary(ctx context.Context, id leave.EmployeeID, q leave.SummaryQuery) (*leave.Summary, error)
	Calendar(ctx context.Context) (*calendar.ProductionCalendar, error)
}

// Params are the report query parameters. Kinds ignore what they don't use.
type Params struct {
	AsOf *generic.TimePoint
	From *generic.TimePoint
	To   *generic.TimePoint
	Year int
}

type Report struct {
	Kind        Kind       `json:"-"`
	Name        string     `json:"kind"`
	Title       string     `json:"title"`
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Build dispatches to the builder of the kind.
func Build(ctx context.Context, kind Kind, src Source, p Params) (*Report, error) {
	if kind < 0 || kind >= kindCount {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	r, err := builders[kind](ctx, src, p)
	if err != nil {
		return nil, err
	}
	r.Kind = kind
	r.Name = kind.String()
	r.GeneratedAt = time.Now().UTC()
	return r, nil
}

// =============================================================================
// BUILDERS
// =============================================================================

func buildLeaveBalance(ctx context.Context, src Source, p Params) (*Report, error) {
	q := leave.SummaryQuery{AsOf: p.AsOf}
	title := "Leave balance"
	if p.AsOf != nil {
		title += " as of " + p.AsOf.String()
	}
	return summaryReport(ctx, src, q, title,
		[]string{"Employee", "Category", "Limit", "Used", "Remaining"},
		func(emp leave.Employee, u leave.Usage) []string {
			return []string{emp.Name, u.Title, limitText(u.Limit), strconv.Itoa(u.Used), remainingText(u)}
		})
}

func buildLeaveUsage(ctx context.Context, src Source, p Params) (*Report, error) {
	if p.From == nil || p.To == nil {
		return nil, fmt.Errorf("leave usage report needs from and to: %w", generic.ErrInvalidRange)
	}
	window, err := generic.NewPeriod(*p.From, *p.To)
	if err != nil {
		return nil, err
	}
	q := leave.SummaryQuery{AsOf: p.AsOf, From: p.From, To: p.To}
	return summaryReport(ctx, src, q, "Leave usage "+window.String(),
		[]string{"Employee", "Category", "Used"},
		func(emp leave.Employee, u leave.Usage) []string {
			used := 0
			if u.WindowUsed != nil {
				used = *u.WindowUsed
			}
			return []string{emp.Name, u.Title, strconv.Itoa(used)}
		})
}

func summaryReport(ctx context.Context, src Source, q leave.SummaryQuery, title string, columns []string, row func(leave.Employee, leave.Usage) []string) (*Report, error) {
	employees, err := src.Employees(ctx)
	if err != nil {
		return nil, err
	}
	r := &Report{Title: title, Columns: columns, Rows: [][]string{}}
	for _, emp := range employees {
		sum, err := src.Summary(ctx, emp.ID, q)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		for _, u := range sum.Categories {
			r.Rows = append(r.Rows, row(sum.Employee, u))
		}
	}
	return r, nil
}

func buildWorkingDays(ctx context.Context, src Source, p Params) (*Report, error) {
	year := p.Year
	if year == 0 {
		year = generic.Today().Year()
	}
	cal, err := src.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Title:   "Working days " + strconv.Itoa(year),
		Columns: []string{"Month", "Days", "Non-working", "Working"},
		Rows:    [][]string{},
	}
	total := 0
	for m := time.January; m <= time.December; m++ {
		working := cal.WorkingDaysInMonth(year, m)
		total += working
		r.Rows = append(r.Rows, []string{
			m.String(),
			strconv.Itoa(generic.DaysInMonth(year, m)),
			strconv.Itoa(len(cal.Holidays(year, m))),
			strconv.Itoa(working),
		})
	}
	r.Rows = append(r.Rows, []string{"Total", "", "", strconv.Itoa(total)})
	return r, nil
}

func limitText(limit int) string {
	if limit == 0 {
		return "unlimited"
	}
	return strconv.Itoa(limit)
}

func remainingText(u leave.Usage) string {
	if u.Remaining == nil {
		return "-"
	}
	return u.Remaining.StringFixed(2)
}
