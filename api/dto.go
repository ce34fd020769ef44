/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the leave domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:    EmployeeDTO, CreateEmployeeRequest
  Category:    CategoryDTO, CreateCategoryRequest
  Leave log:   EntryDTO, SubmitLeaveRequest
  Summary:     LeaveSummaryDTO, CategoryUsageDTO
  Calendar:    CalendarYearDTO, CalendarMonthDTO, SetCalendarMonthRequest,
               WorkingDaysDTO
  Auth:        LoginRequest, LoginResponse, UserDTO
  Scenarios:   ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Request types carry go-playground/validator tags, checked by
  Handler.decode before the handler sees the value. Date fields are
  strings in YYYY-MM-DD and are parsed by the handler.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/session"
)

// =============================================================================
// EMPLOYEES AND CATEGORIES
// =============================================================================

type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	HireDate  string `json:"hire_date"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateEmployeeRequest struct {
	ID       string `json:"id" validate:"omitempty,max=64"`
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	HireDate string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AnnualLimit int    `json:"annual_limit"`
	Unlimited   bool   `json:"unlimited"`
}

type CreateCategoryRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Title       string `json:"title" validate:"required,max=200"`
	AnnualLimit int    `json:"annual_limit" validate:"gte=0,lte=366"`
}

// =============================================================================
// LEAVE LOG
// =============================================================================

type EntryDTO struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	CategoryID string  `json:"category_id"`
	Start      string  `json:"start"`
	End        *string `json:"end"`
	Status     string  `json:"status"`
	Comment    string  `json:"comment,omitempty"`
	DecidedBy  string  `json:"decided_by,omitempty"`
	DecidedAt  string  `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// SubmitLeaveRequest adds an entry to the leave log. Omit End for a
// single-day event.
type SubmitLeaveRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Start      string `json:"start" validate:"required,datetime=2006-01-02"`
	End        string `json:"end" validate:"omitempty,datetime=2006-01-02"`
	Comment    string `json:"comment" validate:"max=500"`
}

// =============================================================================
// LEAVE SUMMARY
// =============================================================================

type LeaveSummaryDTO struct {
	EmployeeID string             `json:"employee_id"`
	AsOf       string             `json:"as_of"`
	WorkYears  int                `json:"work_years"`
	YearStart  string             `json:"year_start"`
	YearEnd    string             `json:"year_end"`
	Categories []CategoryUsageDTO `json:"categories"`
}

// CategoryUsageDTO is one calculator record on the wire.
type CategoryUsageDTO struct {
	CategoryID    string           `json:"category_id"`
	CategoryTitle string           `json:"category_title"`
	AnnualLimit   int              `json:"annual_limit"`
	UsedDays      int              `json:"used_days"`
	WindowDays    *int             `json:"window_used_days,omitempty"`
	RemainingDays *decimal.Decimal `json:"remaining_days"`
	CarriedDays   decimal.Decimal  `json:"carried_days"`
	AccruedDays   decimal.Decimal  `json:"accrued_days"`
}

// =============================================================================
// CALENDAR
// =============================================================================

type CalendarYearDTO struct {
	Year        int                `json:"year"`
	HasData     bool               `json:"has_data"`
	WorkingDays int                `json:"working_days"`
	Months      []CalendarMonthDTO `json:"months"`
}

type CalendarMonthDTO struct {
	Month       int   `json:"month"`
	Days        int   `json:"days"`
	NonWorking  []int `json:"non_working"`
	WorkingDays int   `json:"working_days"`
}

type SetCalendarMonthRequest struct {
	NonWorking []int `json:"non_working" validate:"dive,min=1,max=31"`
}

type WorkingDaysDTO struct {
	From         string `json:"from"`
	To           string `json:"to"`
	WorkingDays  int    `json:"working_days"`
	CalendarDays int    `json:"calendar_days"`
}

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID         string `json:"id"`
	Login      string `json:"login"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toEmployeeDTO(e leave.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:       string(e.ID),
		Name:     e.Name,
		Email:    e.Email,
		HireDate: e.HireDate.String(),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toCategoryDTO(c leave.Category) CategoryDTO {
	return CategoryDTO{
		ID:          string(c.ID),
		Title:       c.Title,
		AnnualLimit: c.AnnualLimit,
		Unlimited:   c.Unlimited(),
	}
}

func toEntryDTO(e leave.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         string(e.ID),
		EmployeeID: string(e.EmployeeID),
		CategoryID: string(e.CategoryID),
		Start:      e.Start.String(),
		Status:     string(e.Status),
		Comment:    e.Comment,
		DecidedBy:  e.DecidedBy,
	}
	if e.End != nil {
		end := e.End.String()
		dto.End = &end
	}
	if e.DecidedAt != nil {
		dto.DecidedAt = e.DecidedAt.Format(time.RFC3339)
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toEntryDTOs(entries []leave.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

func toSummaryDTO(s *leave.Summary) LeaveSummaryDTO {
	dto := LeaveSummaryDTO{
		EmployeeID: string(s.Employee.ID),
		AsOf:       s.AsOf.String(),
		WorkYears:  s.WorkYears,
		YearStart:  s.Year.Start.String(),
		YearEnd:    s.Year.End.String(),
		Categories: make([]CategoryUsageDTO, len(s.Categories)),
	}
	for i, u := range s.Categories {
		dto.Categories[i] = CategoryUsageDTO{
			CategoryID:    string(u.CategoryID),
			CategoryTitle: u.Title,
			AnnualLimit:   u.Limit,
			UsedDays:      u.Used,
			WindowDays:    u.WindowUsed,
			RemainingDays: u.Remaining,
			CarriedDays:   u.Carried,
			AccruedDays:   u.Accrued.Round(2),
		}
	}
	return dto
}

func toUserDTO(u session.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Login:      u.Login,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
	}
}
