package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
)

// Service ties the store to the calculator and the entry workflow.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Used by tests and scenarios.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the service's current date.
func (s *Service) Today() generic.TimePoint {
	return generic.FromTime(s.now())
}

// SummaryQuery selects the evaluation date and optional report window.
// A nil AsOf defaults to To, then to today.
type SummaryQuery struct {
	AsOf *generic.TimePoint
	From *generic.TimePoint
	To   *generic.TimePoint
}

// Summary computes the leave picture of one employee.
func (s *Service) Summary(ctx context.Context, id EmployeeID, q SummaryQuery) (*Summary, error) {
	emp, err := s.employee(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	entries, err := s.store.ListEntries(ctx, EntryFilter{EmployeeID: id})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	cal, err := s.store.LoadCalendar(ctx)
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	asOf := s.Today()
	switch {
	case q.AsOf != nil:
		asOf = *q.AsOf
	case q.To != nil:
		asOf = *q.To
	}

	usage, err := Summarize(Input{
		HireDate:   emp.HireDate,
		Entries:    entries,
		Categories: categories,
		Calendar:   cal,
		AsOf:       asOf,
		FromLimit:  q.From,
		ToLimit:    q.To,
	})
	if err != nil {
		return nil, err
	}

	workYears := generic.EmploymentYearsElapsed(emp.HireDate, asOf)
	return &Summary{
		Employee:   *emp,
		AsOf:       asOf,
		WorkYears:  workYears,
		Year:       generic.EmploymentYear(emp.HireDate, workYears),
		Categories: usage,
	}, nil
}

// Submit validates and stores a new pending entry.
func (s *Service) Submit(ctx context.Context, e Entry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	if _, err := s.employee(ctx, e.EmployeeID); err != nil {
		return Entry{}, err
	}
	cat, err := s.store.GetCategory(ctx, e.CategoryID)
	if err != nil {
		return Entry{}, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return Entry{}, fmt.Errorf("%w: %s", generic.ErrCategoryNotFound, e.CategoryID)
	}

	if e.ID == "" {
		e.ID = EntryID(uuid.NewString())
	}
	e.Status = StatusPending
	e.DecidedBy = ""
	e.DecidedAt = nil
	e.CreatedAt = s.now().UTC()

	if err := s.store.SaveEntry(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	s.logger.InfoContext(ctx, "leave entry submitted",
		"entry_id", e.ID, "employee_id", e.EmployeeID, "category_id", e.CategoryID,
		"period", e.Period().String())
	return e, nil
}

// Approve moves a pending entry to approved.
func (s *Service) Approve(ctx context.Context, id EntryID, actor string) (Entry, error) {
	return s.decide(ctx, id, actor, (*Entry).Approve)
}

// Reject moves a pending entry to rejected.
func (s *Service) Reject(ctx context.Context, id EntryID, actor string) (Entry, error) {
	return s.decide(ctx, id, actor, (*Entry).Reject)
}

func (s *Service) decide(ctx context.Context, id EntryID, actor string, transition func(*Entry, string, time.Time) error) (Entry, error) {
	e, err := s.Entry(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if err := transition(e, actor, s.now().UTC()); err != nil {
		return Entry{}, err
	}
	if err := s.store.SaveEntry(ctx, *e); err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	s.logger.InfoContext(ctx, "leave entry decided", "entry_id", id, "status", e.Status, "actor", actor)
	return *e, nil
}

// Delete removes an entry from the log.
func (s *Service) Delete(ctx context.Context, id EntryID) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "leave entry deleted", "entry_id", id)
	return nil
}

// Entries lists the log entries matching the filter.
func (s *Service) Entries(ctx context.Context, f EntryFilter) ([]Entry, error) {
	if f.EmployeeID != "" {
		if _, err := s.employee(ctx, f.EmployeeID); err != nil {
			return nil, err
		}
	}
	return s.store.ListEntries(ctx, f)
}

func (s *Service) Employees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) Calendar(ctx context.Context) (*calendar.ProductionCalendar, error) {
	return s.store.LoadCalendar(ctx)
}

// Entry loads one entry or returns generic.ErrEntryNotFound.
func (s *Service) Entry(ctx context.Context, id EntryID) (*Entry, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s", generic.ErrEntryNotFound, id)
	}
	return e, nil
}

func (s *Service) employee(ctx context.Context, id EmployeeID) (*Employee, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if emp == nil {
		return nil, fmt.Errorf("%w: %s", generic.ErrEmployeeNotFound, id)
	}
	return emp, nil
}
