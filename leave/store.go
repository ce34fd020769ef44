/*
store.go - Persistence interface for leave data

PURPOSE:
  Defines the interface between leave accounting and the database.
  Reference data (employees, categories, production calendar) and the
  leave log all live behind it.

LOOKUPS:
  Get* methods return (nil, nil) when the record does not exist; the
  service turns that into a typed not-found error.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - store/memory/memory.go: In-memory for testing and demos
*/
package leave

import (
	"context"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// EntryFilter narrows ListEntries. Zero fields match everything.
type EntryFilter struct {
	EmployeeID EmployeeID
	CategoryID CategoryID
	Status     Status
}

// Matches reports whether e passes the filter.
func (f EntryFilter) Matches(e Entry) bool {
	if f.EmployeeID != "" && e.EmployeeID != f.EmployeeID {
		return false
	}
	if f.CategoryID != "" && e.CategoryID != f.CategoryID {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

type Store interface {
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)

	SaveCategory(ctx context.Context, cat Category) error
	GetCategory(ctx context.Context, id CategoryID) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// SaveEntry inserts or replaces an entry.
	SaveEntry(ctx context.Context, e Entry) error
	GetEntry(ctx context.Context, id EntryID) (*Entry, error)
	// ListEntries returns matching entries ordered by start date.
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	// DeleteEntry returns generic.ErrEntryNotFound when nothing was deleted.
	DeleteEntry(ctx context.Context, id EntryID) error

	// SaveCalendarMonth replaces the non-working days of one month.
	SaveCalendarMonth(ctx context.Context, year int, month time.Month, days []int) error
	LoadCalendar(ctx context.Context) (*calendar.ProductionCalendar, error)
}
