/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for demos. Each scenario creates leave categories, employees, a
	production calendar, a leave log and demo accounts.

AVAILABLE SCENARIOS:

	first-year:  One employee in the first employment year
	carry-over:  Three completed years, one overspent, an entry crossing
	             an anniversary
	team:        Several employees with pending requests for a manager

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Re-create the bootstrap admin
 3. Save categories, employees and calendar months
 4. Save leave log entries with their statuses
 5. Save demo accounts (password "demo")

Dates are relative to the service clock, so a scenario always shows a
current employment year.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "carry-over"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/session"
)

// DemoPassword is the password of every account a scenario creates.
const DemoPassword = "demo"

var errUnknownScenario = errors.New("unknown scenario")

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "first-year",
		Name:        "First Year",
		Description: "Employee hired five months ago: accrual only, no carry-over",
	},
	{
		ID:          "carry-over",
		Name:        "Carry-Over",
		Description: "Three completed employment years, one overspent, with an entry crossing an anniversary",
	},
	{
		ID:          "team",
		Name:        "Team",
		Description: "Three employees with pending requests waiting for a manager",
	},
}

// scenarioData is everything a scenario writes.
type scenarioData struct {
	categories []leave.Category
	employees  []leave.Employee
	entries    []leave.Entry
	users      []demoUser
}

type demoUser struct {
	login      string
	role       session.Role
	employeeID leave.EmployeeID
}

var scenarioBuilders = map[string]func(today generic.TimePoint) scenarioData{
	"first-year": firstYearScenario,
	"carry-over": carryOverScenario,
	"team":       teamScenario,
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns all available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.loadScenario(r.Context(), req.ScenarioID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	for _, s := range scenarios {
		if s.ID == req.ScenarioID {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
}

func (h *Handler) loadScenario(ctx context.Context, id string) error {
	build, ok := scenarioBuilders[id]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownScenario, id)
	}
	data := build(h.Service.Today())

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	if err := h.EnsureAdmin(ctx); err != nil {
		return err
	}
	if err := h.seed(ctx, data); err != nil {
		return fmt.Errorf("scenario %s: %w", id, err)
	}

	h.mu.Lock()
	h.currentScenario = id
	h.mu.Unlock()
	h.logger.InfoContext(ctx, "scenario loaded", "scenario", id,
		"employees", len(data.employees), "entries", len(data.entries))
	return nil
}

func (h *Handler) seed(ctx context.Context, data scenarioData) error {
	for _, c := range data.categories {
		if err := h.Store.SaveCategory(ctx, c); err != nil {
			return fmt.Errorf("save category %s: %w", c.ID, err)
		}
	}

	first := h.Service.Today().Year()
	for _, e := range data.employees {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return fmt.Errorf("save employee %s: %w", e.ID, err)
		}
		first = min(first, e.HireDate.Year())
	}
	for year := first; year <= h.Service.Today().Year()+1; year++ {
		for m := time.January; m <= time.December; m++ {
			if err := h.Store.SaveCalendarMonth(ctx, year, m, demoNonWorkingDays(year, m)); err != nil {
				return fmt.Errorf("save calendar %d-%02d: %w", year, m, err)
			}
		}
	}

	now := time.Now().UTC()
	for _, e := range data.entries {
		if e.Status != leave.StatusPending {
			e.DecidedBy = "scenario"
			e.DecidedAt = &now
		}
		e.CreatedAt = now
		if err := h.Store.SaveEntry(ctx, e); err != nil {
			return fmt.Errorf("save entry %s: %w", e.ID, err)
		}
	}

	if len(data.users) == 0 {
		return nil
	}
	hash, err := h.demoPasswordHash()
	if err != nil {
		return err
	}
	for _, u := range data.users {
		user := session.User{
			ID:           "user-" + u.login,
			Login:        u.login,
			PasswordHash: hash,
			Role:         u.role,
			EmployeeID:   string(u.employeeID),
		}
		if err := h.Store.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("save user %s: %w", u.login, err)
		}
	}
	return nil
}

// demoPasswordHash hashes DemoPassword once per handler.
func (h *Handler) demoPasswordHash() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.demoHash != "" {
		return h.demoHash, nil
	}
	hash, err := session.HashPassword(DemoPassword)
	if err != nil {
		return "", fmt.Errorf("hash demo password: %w", err)
	}
	h.demoHash = hash
	return hash, nil
}

// demoNonWorkingDays lists weekends plus a few fixed public holidays.
func demoNonWorkingDays(year int, month time.Month) []int {
	var days []int
	for d := 1; d <= generic.DaysInMonth(year, month); d++ {
		tp := generic.NewTimePoint(year, month, d)
		if tp.IsWeekend() || isDemoHoliday(month, d) {
			days = append(days, d)
		}
	}
	return days
}

func isDemoHoliday(month time.Month, day int) bool {
	switch {
	case month == time.January && (day == 1 || day == 2):
		return true
	case month == time.May && day == 1:
		return true
	case month == time.December && (day == 25 || day == 26):
		return true
	}
	return false
}

// =============================================================================
// SCENARIO BUILDERS
// =============================================================================

func standardCategories() []leave.Category {
	return []leave.Category{
		{ID: "annual", Title: "Annual leave", AnnualLimit: 28},
		{ID: "study", Title: "Study leave", AnnualLimit: 10},
		{ID: "sick", Title: "Sick leave"},
		{ID: "unpaid", Title: "Unpaid leave"},
	}
}

func span(id string, emp leave.EmployeeID, cat leave.CategoryID, start generic.TimePoint, days int, status leave.Status) leave.Entry {
	e := leave.Entry{
		ID:         leave.EntryID(id),
		EmployeeID: emp,
		CategoryID: cat,
		Start:      start,
		Status:     status,
	}
	if days > 1 {
		end := start.AddDays(days - 1)
		e.End = &end
	}
	return e
}

func firstYearScenario(today generic.TimePoint) scenarioData {
	hire := today.AddMonths(-5)
	return scenarioData{
		categories: standardCategories(),
		employees: []leave.Employee{
			{ID: "emp-anna", Name: "Anna Petrova", Email: "anna@example.com", HireDate: hire},
		},
		entries: []leave.Entry{
			span("fy-1", "emp-anna", "annual", hire.AddMonths(2), 7, leave.StatusApproved),
			span("fy-2", "emp-anna", "sick", hire.AddMonths(3), 1, leave.StatusApproved),
			span("fy-3", "emp-anna", "annual", today.AddDays(14), 5, leave.StatusPending),
		},
		users: []demoUser{
			{login: "anna", role: session.RoleEmployee, employeeID: "emp-anna"},
			{login: "hr", role: session.RoleHR},
		},
	}
}

func carryOverScenario(today generic.TimePoint) scenarioData {
	hire := today.AddYears(-3).AddMonths(-2)
	year := func(k int) generic.TimePoint { return hire.AddYears(k) }

	return scenarioData{
		categories: standardCategories(),
		employees: []leave.Employee{
			{ID: "emp-boris", Name: "Boris Ivanov", Email: "boris@example.com", HireDate: hire},
		},
		entries: []leave.Entry{
			// Year 0: 20 of 28
			span("co-1", "emp-boris", "annual", year(0).AddMonths(4), 28, leave.StatusApproved),
			span("co-2", "emp-boris", "study", year(0).AddMonths(6), 5, leave.StatusApproved),
			// Year 1: overspent
			span("co-3", "emp-boris", "annual", year(1).AddMonths(1), 21, leave.StatusApproved),
			span("co-4", "emp-boris", "annual", year(1).AddMonths(7), 28, leave.StatusApproved),
			// Year 2: crosses into year 3
			span("co-5", "emp-boris", "annual", year(3).AddDays(-4), 9, leave.StatusApproved),
			span("co-6", "emp-boris", "sick", year(2).AddMonths(5), 3, leave.StatusApproved),
			// Current year
			span("co-7", "emp-boris", "annual", year(3).AddMonths(1), 10, leave.StatusRejected),
			span("co-8", "emp-boris", "unpaid", year(3).AddMonths(1).AddDays(14), 2, leave.StatusPending),
		},
		users: []demoUser{
			{login: "boris", role: session.RoleEmployee, employeeID: "emp-boris"},
			{login: "hr", role: session.RoleHR},
		},
	}
}

func teamScenario(today generic.TimePoint) scenarioData {
	return scenarioData{
		categories: standardCategories(),
		employees: []leave.Employee{
			{ID: "emp-anna", Name: "Anna Petrova", Email: "anna@example.com", HireDate: today.AddYears(-2).AddMonths(-1)},
			{ID: "emp-chen", Name: "Chen Wei", Email: "chen@example.com", HireDate: today.AddMonths(-10)},
			{ID: "emp-dana", Name: "Dana Smith", Email: "dana@example.com", HireDate: today.AddYears(-4).AddMonths(-6)},
			{ID: "emp-maria", Name: "Maria Lopez", Email: "maria@example.com", HireDate: today.AddYears(-6)},
		},
		entries: []leave.Entry{
			span("tm-1", "emp-anna", "annual", today.AddMonths(-3), 10, leave.StatusApproved),
			span("tm-2", "emp-anna", "annual", today.AddDays(21), 5, leave.StatusPending),
			span("tm-3", "emp-chen", "sick", today.AddDays(-20), 2, leave.StatusApproved),
			span("tm-4", "emp-chen", "study", today.AddDays(30), 3, leave.StatusPending),
			span("tm-5", "emp-dana", "annual", today.AddMonths(-8), 14, leave.StatusApproved),
			span("tm-6", "emp-dana", "unpaid", today.AddDays(7), 1, leave.StatusPending),
		},
		users: []demoUser{
			{login: "anna", role: session.RoleEmployee, employeeID: "emp-anna"},
			{login: "chen", role: session.RoleEmployee, employeeID: "emp-chen"},
			{login: "dana", role: session.RoleEmployee, employeeID: "emp-dana"},
			{login: "maria", role: session.RoleManager, employeeID: "emp-maria"},
			{login: "hr", role: session.RoleHR},
		},
	}
}
