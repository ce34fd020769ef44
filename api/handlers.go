/*
handlers.go - HTTP API handlers for the leave engine

PURPOSE:
  Exposes leave accounting via REST API. Handles HTTP request/response,
  JSON serialization and access checks, and delegates to leave.Service.

ENDPOINTS:
  Auth:
    POST   /api/auth/login                   Sign in, returns a bearer token
    POST   /api/auth/logout                  Revoke the current token
    GET    /api/auth/me                      Current user

  Employees:
    GET    /api/employees                    List all employees
    POST   /api/employees                    Create employee (hr)
    GET    /api/employees/{id}               Get employee details
    GET    /api/employees/{id}/leave-summary Used / remaining days per category
    GET    /api/employees/{id}/leave         Leave log of one employee
    POST   /api/employees/{id}/leave         Submit a leave entry

  Categories:
    GET    /api/categories                   List leave categories
    POST   /api/categories                   Create category (hr)

  Leave log:
    GET    /api/leave?status=                Entries across employees
    POST   /api/leave/{id}/approve           Approve a pending entry
    POST   /api/leave/{id}/reject            Reject a pending entry
    DELETE /api/leave/{id}                   Delete an entry (hr)

  Calendar:
    GET    /api/calendar/{year}              Non-working days per month
    PUT    /api/calendar/{year}/{month}      Replace one month (hr)
    GET    /api/calendar/working-days        Count working days in a range

  Reports:
    GET    /api/reports                      List report kinds
    GET    /api/reports/{kind}?format=pdf    Build a report

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed dates, end before start
  - 401: Missing or bad credentials
  - 403: Role or ownership check failed
  - 404: Employee, category, entry or report kind not found
  - 409: Already exists, or entry already decided
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/report"
	"github.com/warp/leave-engine/session"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is everything the API persists. Both store/sqlite and store/memory
// satisfy it.
type Store interface {
	leave.Store
	session.UserStore
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    Store
	Service  *leave.Service
	Sessions *session.Manager

	logger   *slog.Logger
	validate *validator.Validate

	mu              sync.Mutex
	currentScenario string
	admin           *session.User
	demoHash        string
}

// NewHandler creates a new handler with the given store and session manager.
func NewHandler(store Store, sessions *session.Manager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:    store,
		Service:  leave.NewService(store, logger),
		Sessions: sessions,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SetBootstrapAdmin registers the admin account that EnsureAdmin creates
// and that survives scenario loads.
func (h *Handler) SetBootstrapAdmin(login, password string) error {
	hash, err := session.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.admin = &session.User{ID: "admin", Login: login, PasswordHash: hash, Role: session.RoleAdmin}
	return nil
}

// EnsureAdmin saves the bootstrap admin unless its login already exists.
func (h *Handler) EnsureAdmin(ctx context.Context) error {
	h.mu.Lock()
	admin := h.admin
	h.mu.Unlock()
	if admin == nil {
		return nil
	}

	existing, err := h.Store.GetUserByLogin(ctx, admin.Login)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if err := h.Store.SaveUser(ctx, *admin); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	h.logger.InfoContext(ctx, "bootstrap admin created", "login", admin.Login)
	return nil
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login checks credentials and returns a bearer token.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	auth := h.Sessions.NewContext()
	token, err := auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	u, _ := auth.CurrentUser()
	h.logger.InfoContext(r.Context(), "user signed in", "user_id", u.ID, "role", u.Role)

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserDTO(u)})
}

// Logout revokes the caller's token.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth := session.FromContext(r.Context())
	u, _ := auth.CurrentUser()
	auth.Logout()
	h.logger.InfoContext(r.Context(), "user signed out", "user_id", u.ID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the signed-in user.
// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := session.FromContext(r.Context()).CurrentUser()
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.Employees(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), leave.EmployeeID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	hireDate, err := generic.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
		return
	}

	ctx := r.Context()
	emp := leave.Employee{
		ID:       leave.EmployeeID(req.ID),
		Name:     req.Name,
		Email:    req.Email,
		HireDate: hireDate,
	}
	if emp.ID == "" {
		emp.ID = leave.EmployeeID(uuid.NewString())
	}
	existing, err := h.Store.GetEmployee(ctx, emp.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Employee already exists", nil)
		return
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "employee created", "employee_id", emp.ID)

	if saved, err := h.Store.GetEmployee(ctx, emp.ID); err == nil && saved != nil {
		emp = *saved
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetLeaveSummary returns used and remaining days per category.
// GET /api/employees/{id}/leave-summary?as_of=&from=&to=
func (h *Handler) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))
	if !h.authorizeEmployee(w, r, id, session.RoleManager, session.RoleHR) {
		return
	}

	var q leave.SummaryQuery
	var err error
	if q.AsOf, err = dateParam(r, "as_of"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	if q.From, err = dateParam(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from (use YYYY-MM-DD)", err)
		return
	}
	if q.To, err = dateParam(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to (use YYYY-MM-DD)", err)
		return
	}

	summary, err := h.Service.Summary(r.Context(), id, q)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// ListEmployeeLeave returns the leave log of one employee.
// GET /api/employees/{id}/leave?status=
func (h *Handler) ListEmployeeLeave(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))
	if !h.authorizeEmployee(w, r, id, session.RoleManager, session.RoleHR) {
		return
	}
	filter, ok := entryFilter(w, r)
	if !ok {
		return
	}
	filter.EmployeeID = id

	entries, err := h.Service.Entries(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// SubmitLeave adds a pending entry to the employee's leave log.
// POST /api/employees/{id}/leave
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))
	if !h.authorizeEmployee(w, r, id, session.RoleHR) {
		return
	}

	var req SubmitLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, err := generic.ParseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start (use YYYY-MM-DD)", err)
		return
	}
	entry := leave.Entry{
		EmployeeID: id,
		CategoryID: leave.CategoryID(req.CategoryID),
		Start:      start,
		Comment:    req.Comment,
	}
	if req.End != "" {
		end, err := generic.ParseDate(req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end (use YYYY-MM-DD)", err)
			return
		}
		entry.End = &end
	}

	saved, err := h.Service.Submit(r.Context(), entry)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(saved))
}

// authorizeEmployee admits the employee linked to the caller and callers
// holding one of the roles. Writes 403 otherwise.
func (h *Handler) authorizeEmployee(w http.ResponseWriter, r *http.Request, id leave.EmployeeID, roles ...session.Role) bool {
	auth := session.FromContext(r.Context())
	if auth.IsEmployee(string(id)) || auth.HasAnyRole(roles...) {
		return true
	}
	writeError(w, http.StatusForbidden, "Not allowed to access this employee", nil)
	return false
}

// =============================================================================
// CATEGORY HANDLERS
// =============================================================================

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Store.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dtos := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		dtos[i] = toCategoryDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	cat := leave.Category{
		ID:          leave.CategoryID(req.ID),
		Title:       req.Title,
		AnnualLimit: req.AnnualLimit,
	}
	if cat.ID == "" {
		cat.ID = leave.CategoryID(uuid.NewString())
	}
	existing, err := h.Store.GetCategory(ctx, cat.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Category already exists", nil)
		return
	}
	if err := h.Store.SaveCategory(ctx, cat); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "leave category created", "category_id", cat.ID, "annual_limit", cat.AnnualLimit)

	writeJSON(w, http.StatusCreated, toCategoryDTO(cat))
}

// =============================================================================
// LEAVE LOG HANDLERS
// =============================================================================

// ListLeave returns entries across employees, typically ?status=pending
// for the approval queue.
// GET /api/leave?status=&employee_id=&category_id=
func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	filter, ok := entryFilter(w, r)
	if !ok {
		return
	}
	filter.EmployeeID = leave.EmployeeID(r.URL.Query().Get("employee_id"))
	filter.CategoryID = leave.CategoryID(r.URL.Query().Get("category_id"))

	entries, err := h.Service.Entries(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// ApproveLeave approves a pending entry.
// POST /api/leave/{id}/approve
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, h.Service.Approve)
}

// RejectLeave rejects a pending entry.
// POST /api/leave/{id}/reject
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, h.Service.Reject)
}

func (h *Handler) decideLeave(w http.ResponseWriter, r *http.Request, decide func(context.Context, leave.EntryID, string) (leave.Entry, error)) {
	u, _ := session.FromContext(r.Context()).CurrentUser()
	entry, err := decide(r.Context(), leave.EntryID(chi.URLParam(r, "id")), u.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// DeleteLeave removes an entry from the log.
// DELETE /api/leave/{id}
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), leave.EntryID(chi.URLParam(r, "id"))); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func entryFilter(w http.ResponseWriter, r *http.Request) (leave.EntryFilter, bool) {
	status := leave.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid status", nil)
		return leave.EntryFilter{}, false
	}
	return leave.EntryFilter{Status: status}, true
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetCalendarYear returns the non-working days of every month of a year.
// GET /api/calendar/{year}
func (h *Handler) GetCalendarYear(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	cal, err := h.Service.Calendar(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dto := CalendarYearDTO{Year: year, HasData: cal.HasYear(year), Months: make([]CalendarMonthDTO, 0, 12)}
	for m := time.January; m <= time.December; m++ {
		month := CalendarMonthDTO{
			Month:       int(m),
			Days:        generic.DaysInMonth(year, m),
			NonWorking:  cal.Holidays(year, m),
			WorkingDays: cal.WorkingDaysInMonth(year, m),
		}
		if month.NonWorking == nil {
			month.NonWorking = []int{}
		}
		dto.WorkingDays += month.WorkingDays
		dto.Months = append(dto.Months, month)
	}
	writeJSON(w, http.StatusOK, dto)
}

// SetCalendarMonth replaces the non-working days of one month.
// PUT /api/calendar/{year}/{month}
func (h *Handler) SetCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	m, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || m < 1 || m > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	month := time.Month(m)

	var req SetCalendarMonthRequest
	if !h.decode(w, r, &req) {
		return
	}
	last := generic.DaysInMonth(year, month)
	for _, d := range req.NonWorking {
		if d > last {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Day %d is outside %s %d", d, month, year), nil)
			return
		}
	}

	ctx := r.Context()
	if err := h.Store.SaveCalendarMonth(ctx, year, month, req.NonWorking); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "calendar month saved", "year", year, "month", m, "non_working", len(req.NonWorking))

	cal, err := h.Service.Calendar(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	nonWorking := cal.Holidays(year, month)
	if nonWorking == nil {
		nonWorking = []int{}
	}
	writeJSON(w, http.StatusOK, CalendarMonthDTO{
		Month:       m,
		Days:        last,
		NonWorking:  nonWorking,
		WorkingDays: cal.WorkingDaysInMonth(year, month),
	})
}

// CountWorkingDays counts working and calendar days in an inclusive range.
// GET /api/calendar/working-days?from=&to=
func (h *Handler) CountWorkingDays(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r, "from")
	if err != nil || from == nil {
		writeError(w, http.StatusBadRequest, "from is required (use YYYY-MM-DD)", err)
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to (use YYYY-MM-DD)", err)
		return
	}

	cal, err := h.Service.Calendar(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	working, err := cal.CountWorkingDays(*from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	days, err := calendar.CountCalendarDays(*from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	end := *from
	if to != nil {
		end = *to
	}
	writeJSON(w, http.StatusOK, WorkingDaysDTO{
		From:         from.String(),
		To:           end.String(),
		WorkingDays:  working,
		CalendarDays: days,
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ListReports returns the available report kinds.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	kinds := report.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	writeJSON(w, http.StatusOK, names)
}

// GetReport builds a report as JSON, or as a PDF with ?format=pdf.
// GET /api/reports/{kind}?as_of=&from=&to=&year=&format=
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var p report.Params
	if p.AsOf, err = dateParam(r, "as_of"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
		return
	}
	if p.From, err = dateParam(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from (use YYYY-MM-DD)", err)
		return
	}
	if p.To, err = dateParam(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to (use YYYY-MM-DD)", err)
		return
	}
	if y := r.URL.Query().Get("year"); y != "" {
		if p.Year, err = yearParam(y); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "Unsupported format (use json or pdf)", nil)
		return
	}

	rep, err := report.Build(r.Context(), kind, h.Service, p)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if format != "pdf" {
		writeJSON(w, http.StatusOK, rep)
		return
	}
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, rep); err != nil {
		h.writeServiceError(w, r, fmt.Errorf("render pdf: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Name+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads a JSON body into dst and validates its struct tags.
// Writes 400 and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeServiceError maps domain errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, report.ErrUnknownKind), errors.Is(err, errUnknownScenario):
		writeError(w, http.StatusNotFound, "Not found", err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, "Conflict", err)
	case leave.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, session.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid login or password", nil)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// dateParam parses an optional YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (*generic.TimePoint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	tp, err := generic.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func yearParam(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if year < 1 || year > 9999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}
