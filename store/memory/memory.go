// Package memory provides an in-memory implementation of the leave and
// session stores.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/session"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	employees  map[leave.EmployeeID]leave.Employee
	categories map[leave.CategoryID]leave.Category
	entries    map[leave.EntryID]leave.Entry
	calendar   map[monthKey][]int
	users      map[string]session.User // by id
}

type monthKey struct {
	Year  int
	Month time.Month
}

var (
	_ leave.Store       = (*Memory)(nil)
	_ session.UserStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.employees = make(map[leave.EmployeeID]leave.Employee)
	m.categories = make(map[leave.CategoryID]leave.Category)
	m.entries = make(map[leave.EntryID]leave.Entry)
	m.calendar = make(map[monthKey][]int)
	m.users = make(map[string]session.User)
}

// Reset drops all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

// Employees

func (m *Memory) SaveEmployee(_ context.Context, emp leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.employees[emp.ID]; ok {
		emp.CreatedAt = existing.CreatedAt
	} else if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leave.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Categories

func (m *Memory) SaveCategory(_ context.Context, cat leave.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[cat.ID] = cat
	return nil
}

func (m *Memory) GetCategory(_ context.Context, id leave.CategoryID) (*leave.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cat, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (m *Memory) ListCategories(_ context.Context) ([]leave.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leave.Category, 0, len(m.categories))
	for _, cat := range m.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Leave log

func (m *Memory) SaveEntry(_ context.Context, e leave.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *Memory) GetEntry(_ context.Context, id leave.EntryID) (*leave.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) ListEntries(_ context.Context, filter leave.EntryFilter) ([]leave.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []leave.Entry
	for _, e := range m.entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteEntry(_ context.Context, id leave.EntryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return generic.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

// Production calendar

func (m *Memory) SaveCalendarMonth(_ context.Context, year int, month time.Month, days []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendar[monthKey{Year: year, Month: month}] = append([]int(nil), days...)
	return nil
}

func (m *Memory) LoadCalendar(_ context.Context) (*calendar.ProductionCalendar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cal := calendar.New()
	for k, days := range m.calendar {
		cal.SetMonth(k.Year, k.Month, days)
	}
	return cal, nil
}

// Users

func (m *Memory) SaveUser(_ context.Context, u session.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.users {
		if id != u.ID && other.Login == u.Login {
			return fmt.Errorf("login %q already taken", u.Login)
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *Memory) GetUserByLogin(_ context.Context, login string) (*session.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, nil
}
