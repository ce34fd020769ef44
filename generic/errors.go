/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Range errors - malformed date ranges (end before start)
  2. Lookup errors - missing employees, categories, leave entries
  3. Workflow errors - status transitions that are not allowed

USAGE:
    if errors.Is(err, generic.ErrInvalidRange) {
        // 400 Bad Request
    }

SEE ALSO:
  - leave/accrual.go: returns ErrInvalidRange for malformed entries
  - api/handlers.go: maps these errors to HTTP statuses
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a date range ends before it starts.
	// Missing calendar data is never reported through this error.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrCategoryNotFound is returned when a referenced leave category doesn't exist.
	ErrCategoryNotFound = errors.New("leave category not found")

	// ErrEntryNotFound is returned when a referenced leave entry doesn't exist.
	ErrEntryNotFound = errors.New("leave entry not found")

	// ErrUserNotFound is returned when a login does not match any user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransition is returned when a leave entry cannot move to the
	// requested status (e.g., approving a rejected entry).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RangeError provides the offending bounds of a malformed range.
type RangeError struct {
	From TimePoint
	To   TimePoint
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: %s is before %s", e.To, e.From)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// TransitionError names the statuses involved in a rejected transition.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsConflict returns true if the error reports a workflow conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
