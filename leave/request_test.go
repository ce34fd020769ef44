package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
)

func TestEntry_Validate(t *testing.T) {
	ok := entry("e1", "annual", date(2023, time.March, 1), nil)
	assert.NoError(t, ok.Validate())

	noEmployee := ok
	noEmployee.EmployeeID = ""
	assert.ErrorIs(t, noEmployee.Validate(), leave.ErrMissingEmployee)

	noCategory := ok
	noCategory.CategoryID = ""
	assert.ErrorIs(t, noCategory.Validate(), leave.ErrMissingCategory)

	noStart := ok
	noStart.Start = generic.TimePoint{}
	assert.ErrorIs(t, noStart.Validate(), leave.ErrMissingStart)

	reversed := entry("e2", "annual", date(2023, time.March, 5), ptr(date(2023, time.March, 1)))
	assert.ErrorIs(t, reversed.Validate(), generic.ErrInvalidRange)
}

func TestEntry_Transitions(t *testing.T) {
	now := time.Date(2023, time.March, 1, 12, 0, 0, 0, time.UTC)

	e := entry("e1", "annual", date(2023, time.March, 1), nil)
	e.Status = leave.StatusPending
	require.NoError(t, e.Reject("u-1", now))
	assert.Equal(t, leave.StatusRejected, e.Status)
	assert.False(t, e.Counts())

	err := e.Approve("u-1", now)
	var transition *generic.TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "rejected", transition.From)
	assert.Equal(t, "approved", transition.To)
}

func TestEntry_Days(t *testing.T) {
	cal := calendar.New()
	cal.SetMonth(2023, time.January, []int{16})

	single := entry("e1", "annual", date(2023, time.January, 16), nil)
	n, err := single.Days(cal, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	span := entry("e2", "annual", date(2023, time.January, 15), ptr(date(2023, time.January, 19)))
	n, err = span.Days(cal, true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = span.Days(cal, false)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestEntryFilter_Matches(t *testing.T) {
	e := entry("e1", "annual", date(2023, time.March, 1), nil)

	assert.True(t, leave.EntryFilter{}.Matches(e))
	assert.True(t, leave.EntryFilter{EmployeeID: "emp-1", Status: leave.StatusApproved}.Matches(e))
	assert.False(t, leave.EntryFilter{CategoryID: "unpaid"}.Matches(e))
	assert.False(t, leave.EntryFilter{Status: leave.StatusPending}.Matches(e))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, leave.IsValidationError(leave.ErrMissingStart))
	assert.True(t, leave.IsValidationError(&generic.RangeError{}))
	assert.False(t, leave.IsValidationError(generic.ErrEntryNotFound))
}
