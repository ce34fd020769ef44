package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/generic"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/session"
	"github.com/warp/leave-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func seed(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveEmployee(ctx, leave.Employee{
		ID: "emp-1", Name: "Anna", Email: "anna@example.com", HireDate: date(2022, time.January, 10),
	}))
	require.NoError(t, store.SaveCategory(ctx, leave.Category{ID: "annual", Title: "Annual leave", AnnualLimit: 28}))
	require.NoError(t, store.SaveCategory(ctx, leave.Category{ID: "unpaid", Title: "Unpaid leave"}))
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func TestEmployee_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)
	ctx := context.Background()

	emp, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Equal(t, "Anna", emp.Name)
	assert.True(t, emp.HireDate.Equal(date(2022, time.January, 10)))

	missing, err := store.GetEmployee(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Upsert keeps a single row
	emp.Name = "Anna K."
	require.NoError(t, store.SaveEmployee(ctx, *emp))
	all, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Anna K.", all[0].Name)
}

func TestCategories_OrderedByTitle(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, leave.CategoryID("annual"), cats[0].ID)
	assert.Equal(t, 28, cats[0].AnnualLimit)
	assert.True(t, cats[1].Unlimited())
}

// =============================================================================
// LEAVE LOG
// =============================================================================

func TestEntries_SaveListDelete(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)
	ctx := context.Background()

	end := date(2023, time.January, 19)
	decided := time.Date(2023, time.January, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEntry(ctx, leave.Entry{
		ID: "e2", EmployeeID: "emp-1", CategoryID: "annual",
		Start: date(2023, time.January, 15), End: &end,
		Status: leave.StatusApproved, DecidedBy: "u-1", DecidedAt: &decided,
	}))
	require.NoError(t, store.SaveEntry(ctx, leave.Entry{
		ID: "e1", EmployeeID: "emp-1", CategoryID: "unpaid",
		Start: date(2022, time.December, 1), Status: leave.StatusPending, Comment: "family",
	}))

	all, err := store.ListEntries(ctx, leave.EntryFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, leave.EntryID("e1"), all[0].ID, "ordered by start date")
	assert.Nil(t, all[0].End)
	assert.Equal(t, "family", all[0].Comment)
	require.NotNil(t, all[1].End)
	assert.True(t, all[1].End.Equal(end))
	require.NotNil(t, all[1].DecidedAt)
	assert.True(t, all[1].DecidedAt.Equal(decided))

	pending, err := store.ListEntries(ctx, leave.EntryFilter{Status: leave.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, store.DeleteEntry(ctx, "e1"))
	assert.ErrorIs(t, store.DeleteEntry(ctx, "e1"), generic.ErrEntryNotFound)

	got, err := store.GetEntry(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntries_ReversedRangeRejectedBySchema(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	end := date(2023, time.January, 1)
	err := store.SaveEntry(context.Background(), leave.Entry{
		ID: "bad", EmployeeID: "emp-1", CategoryID: "annual",
		Start: date(2023, time.January, 5), End: &end, Status: leave.StatusPending,
	})
	assert.Error(t, err)
}

func TestEntries_UnknownEmployeeRejected(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	err := store.SaveEntry(context.Background(), leave.Entry{
		ID: "e1", EmployeeID: "ghost", CategoryID: "annual",
		Start: date(2023, time.January, 5), Status: leave.StatusPending,
	})
	assert.Error(t, err)
}

// =============================================================================
// PRODUCTION CALENDAR
// =============================================================================

func TestCalendar_SaveMonthReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCalendarMonth(ctx, 2023, time.January, []int{1, 2, 3, 16}))
	require.NoError(t, store.SaveCalendarMonth(ctx, 2023, time.January, []int{1, 16, 40}))
	require.NoError(t, store.SaveCalendarMonth(ctx, 2023, time.February, nil))

	cal, err := store.LoadCalendar(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 16}, cal.Holidays(2023, time.January))
	assert.Empty(t, cal.Holidays(2023, time.February))
	assert.True(t, cal.HasYear(2023))
	assert.False(t, cal.IsWorkingDay(date(2023, time.January, 16)))
	assert.True(t, cal.IsWorkingDay(date(2023, time.January, 2)))
}

// =============================================================================
// USERS
// =============================================================================

func TestUsers_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, session.User{
		ID: "u-1", Login: "anna", PasswordHash: "hash", Role: session.RoleEmployee, EmployeeID: "emp-1",
	}))

	u, err := store.GetUserByLogin(ctx, "anna")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, session.RoleEmployee, u.Role)
	assert.Equal(t, "emp-1", u.EmployeeID)

	missing, err := store.GetUserByLogin(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = store.SaveUser(ctx, session.User{ID: "u-2", Login: "anna", PasswordHash: "x", Role: session.RoleHR})
	assert.Error(t, err, "logins are unique")
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Reset(ctx))

	emps, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, emps)
}
