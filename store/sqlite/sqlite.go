/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements leave.Store and session.UserStore using SQLite.

KEY TABLES:
  employees:         Employee records with hire date
  leave_categories:  Leave kinds with annual limit (0 = unlimited)
  leave_entries:     The leave log
  calendar_days:     Non-working days of the production calendar
  users:             Accounts allowed to sign in

DATES:
  Calendar days are stored as TEXT in YYYY-MM-DD form so that string order
  is date order. Instants (created_at, decided_at) are RFC3339.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Readers share, writers serialize.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - leave/store.go: Interface definition
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/session"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ leave.Store       = (*Store)(nil)
	_ session.UserStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_categories (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		annual_limit INTEGER NOT NULL DEFAULT 0 CHECK (annual_limit >= 0)
	);

	CREATE TABLE IF NOT EXISTS leave_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES leave_categories(id),
		start_date TEXT NOT NULL,
		end_date TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		comment TEXT,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL,
		CHECK (end_date IS NULL OR end_date >= start_date)
	);

	CREATE INDEX IF NOT EXISTS idx_leave_entries_employee_start
		ON leave_entries(employee_id, start_date);
	CREATE INDEX IF NOT EXISTS idx_leave_entries_status
		ON leave_entries(status);

	-- Production calendar: one row per non-working day.
	-- A month present in calendar_months with no days is a month without holidays.
	CREATE TABLE IF NOT EXISTS calendar_months (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		PRIMARY KEY (year, month)
	);

	CREATE TABLE IF NOT EXISTS calendar_days (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		PRIMARY KEY (year, month, day),
		FOREIGN KEY (year, month) REFERENCES calendar_months(year, month) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		employee_id TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset drops all data.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"leave_entries", "calendar_days", "calendar_months", "leave_categories", "employees", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// SaveEmployee saves an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, email, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			hire_date = excluded.hire_date
	`

	createdAt := emp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID), emp.Name, emp.Email,
		emp.HireDate.String(),
		createdAt.Format(time.RFC3339),
	)
	return err
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, hire_date, created_at FROM employees WHERE id = ?",
		string(id),
	)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns all employees.
func (s *Store) ListEmployees(ctx context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, hire_date, created_at FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func scanEmployee(row scanner) (leave.Employee, error) {
	var emp leave.Employee
	var id, hireDate, createdAt string
	var email sql.NullString
	if err := row.Scan(&id, &emp.Name, &email, &hireDate, &createdAt); err != nil {
		return leave.Employee{}, err
	}
	hire, err := generic.ParseDate(hireDate)
	if err != nil {
		return leave.Employee{}, fmt.Errorf("employee %s: hire date: %w", id, err)
	}
	emp.ID = leave.EmployeeID(id)
	emp.Email = email.String
	emp.HireDate = hire
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return emp, nil
}

// =============================================================================
// CATEGORY STORE
// =============================================================================

func (s *Store) SaveCategory(ctx context.Context, cat leave.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_categories (id, title, annual_limit)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			annual_limit = excluded.annual_limit
	`
	_, err := s.db.ExecContext(ctx, query, string(cat.ID), cat.Title, cat.AnnualLimit)
	return err
}

func (s *Store) GetCategory(ctx context.Context, id leave.CategoryID) (*leave.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cat leave.Category
	var catID string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, annual_limit FROM leave_categories WHERE id = ?",
		string(id),
	).Scan(&catID, &cat.Title, &cat.AnnualLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cat.ID = leave.CategoryID(catID)
	return &cat, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]leave.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, title, annual_limit FROM leave_categories ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []leave.Category
	for rows.Next() {
		var cat leave.Category
		var id string
		if err := rows.Scan(&id, &cat.Title, &cat.AnnualLimit); err != nil {
			return nil, err
		}
		cat.ID = leave.CategoryID(id)
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// =============================================================================
// LEAVE LOG
// =============================================================================

const entryColumns = "id, employee_id, category_id, start_date, end_date, status, comment, decided_by, decided_at, created_at"

// SaveEntry inserts or replaces a leave entry.
func (s *Store) SaveEntry(ctx context.Context, e leave.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category_id = excluded.category_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			comment = excluded.comment,
			decided_by = excluded.decided_by,
			decided_at = excluded.decided_at
	`

	var endDate, decidedAt sql.NullString
	if e.End != nil {
		endDate = sql.NullString{String: e.End.String(), Valid: true}
	}
	if e.DecidedAt != nil {
		decidedAt = sql.NullString{String: e.DecidedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		string(e.ID), string(e.EmployeeID), string(e.CategoryID),
		e.Start.String(), endDate, string(e.Status),
		nullString(e.Comment), nullString(e.DecidedBy), decidedAt,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id leave.EntryID) (*leave.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM leave_entries WHERE id = ?", string(id))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter leave.EntryFilter) ([]leave.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var where []string
	var args []any
	if filter.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, string(filter.EmployeeID))
	}
	if filter.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, string(filter.CategoryID))
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := "SELECT " + entryColumns + " FROM leave_entries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []leave.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(ctx context.Context, id leave.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM leave_entries WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrEntryNotFound
	}
	return nil
}

func scanEntry(row scanner) (leave.Entry, error) {
	var e leave.Entry
	var id, employeeID, categoryID, start, status, createdAt string
	var end, comment, decidedBy, decidedAt sql.NullString

	if err := row.Scan(&id, &employeeID, &categoryID, &start, &end, &status, &comment, &decidedBy, &decidedAt, &createdAt); err != nil {
		return leave.Entry{}, err
	}

	startDate, err := generic.ParseDate(start)
	if err != nil {
		return leave.Entry{}, fmt.Errorf("entry %s: start date: %w", id, err)
	}
	if end.Valid {
		endDate, err := generic.ParseDate(end.String)
		if err != nil {
			return leave.Entry{}, fmt.Errorf("entry %s: end date: %w", id, err)
		}
		e.End = &endDate
	}
	if decidedAt.Valid {
		t, err := time.Parse(time.RFC3339, decidedAt.String)
		if err == nil {
			e.DecidedAt = &t
		}
	}

	e.ID = leave.EntryID(id)
	e.EmployeeID = leave.EmployeeID(employeeID)
	e.CategoryID = leave.CategoryID(categoryID)
	e.Start = startDate
	e.Status = leave.Status(status)
	e.Comment = comment.String
	e.DecidedBy = decidedBy.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// =============================================================================
// PRODUCTION CALENDAR
// =============================================================================

// SaveCalendarMonth replaces the non-working days of a month atomically.
func (s *Store) SaveCalendarMonth(ctx context.Context, year int, month time.Month, days []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO calendar_months (year, month) VALUES (?, ?) ON CONFLICT DO NOTHING",
		year, int(month),
	); err != nil {
		return fmt.Errorf("save calendar month: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM calendar_days WHERE year = ? AND month = ?",
		year, int(month),
	); err != nil {
		return fmt.Errorf("clear calendar month: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO calendar_days (year, month, day) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	last := generic.DaysInMonth(year, month)
	for _, d := range days {
		if d < 1 || d > last {
			continue
		}
		if _, err := stmt.ExecContext(ctx, year, int(month), d); err != nil {
			return fmt.Errorf("save calendar day %d-%02d-%02d: %w", year, int(month), d, err)
		}
	}

	return tx.Commit()
}

// LoadCalendar reads the whole production calendar.
func (s *Store) LoadCalendar(ctx context.Context) (*calendar.ProductionCalendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT m.year, m.month, d.day
		FROM calendar_months m
		LEFT JOIN calendar_days d ON d.year = m.year AND d.month = m.month
		ORDER BY m.year, m.month, d.day
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make(map[[2]int][]int)
	var order [][2]int
	for rows.Next() {
		var year, month int
		var day sql.NullInt64
		if err := rows.Scan(&year, &month, &day); err != nil {
			return nil, err
		}
		k := [2]int{year, month}
		if _, seen := months[k]; !seen {
			months[k] = []int{}
			order = append(order, k)
		}
		if day.Valid {
			months[k] = append(months[k], int(day.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cal := calendar.New()
	for _, k := range order {
		cal.SetMonth(k[0], time.Month(k[1]), months[k])
	}
	return cal, nil
}

// =============================================================================
// USER STORE (session.UserStore interface)
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u session.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO users (id, login, password_hash, role, employee_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			login = excluded.login,
			password_hash = excluded.password_hash,
			role = excluded.role,
			employee_id = excluded.employee_id
	`
	_, err := s.db.ExecContext(ctx, query, u.ID, u.Login, u.PasswordHash, string(u.Role), nullString(u.EmployeeID))
	if isUniqueConstraintError(err) {
		return fmt.Errorf("login %q already taken: %w", u.Login, err)
	}
	return err
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (*session.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u session.User
	var role string
	var employeeID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, login, password_hash, role, employee_id FROM users WHERE login = ?",
		login,
	).Scan(&u.ID, &u.Login, &u.PasswordHash, &role, &employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = session.Role(role)
	u.EmployeeID = employeeID.String
	return &u, nil
}

// Helper functions

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
