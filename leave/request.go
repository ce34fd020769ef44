package leave

import (
	"errors"
	"time"

	"github.com/warp/leave-engine/generic"
)

// =============================================================================
// ENTRY VALIDATION AND STATUS TRANSITIONS
// =============================================================================
//
// Entries move pending -> approved or pending -> rejected. Decided entries
// are final; a wrong decision is corrected by deleting the entry and
// submitting a new one.

var (
	ErrMissingEmployee = errors.New("leave entry: employee is required")
	ErrMissingCategory = errors.New("leave entry: category is required")
	ErrMissingStart    = errors.New("leave entry: start date is required")
)

// IsValidationError reports whether err came from Entry.Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingEmployee) ||
		errors.Is(err, ErrMissingCategory) ||
		errors.Is(err, ErrMissingStart) ||
		generic.IsClientError(err)
}

// Validate checks the fields a submitted entry must carry.
func (e Entry) Validate() error {
	switch {
	case e.EmployeeID == "":
		return ErrMissingEmployee
	case e.CategoryID == "":
		return ErrMissingCategory
	case e.Start.IsZero():
		return ErrMissingStart
	}
	return e.Period().Validate()
}

// Approve marks a pending entry approved.
func (e *Entry) Approve(actor string, now time.Time) error {
	return e.decide(StatusApproved, actor, now)
}

// Reject marks a pending entry rejected. Rejected entries stop counting.
func (e *Entry) Reject(actor string, now time.Time) error {
	return e.decide(StatusRejected, actor, now)
}

func (e *Entry) decide(to Status, actor string, now time.Time) error {
	if e.Status != StatusPending {
		return &generic.TransitionError{From: string(e.Status), To: string(to)}
	}
	e.Status = to
	e.DecidedBy = actor
	e.DecidedAt = &now
	return nil
}
