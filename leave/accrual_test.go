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

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func ptr(tp generic.TimePoint) *generic.TimePoint { return &tp }

var (
	annual = leave.Category{ID: "annual", Title: "Annual leave", AnnualLimit: 28}
	unpaid = leave.Category{ID: "unpaid", Title: "Unpaid leave", AnnualLimit: 0}
)

func entry(id string, cat leave.CategoryID, start generic.TimePoint, end *generic.TimePoint) leave.Entry {
	return leave.Entry{
		ID:         leave.EntryID(id),
		EmployeeID: "emp-1",
		CategoryID: cat,
		Start:      start,
		End:        end,
		Status:     leave.StatusApproved,
	}
}

func summarize(t *testing.T, in leave.Input) map[leave.CategoryID]leave.Usage {
	t.Helper()
	usage, err := leave.Summarize(in)
	require.NoError(t, err)
	out := make(map[leave.CategoryID]leave.Usage, len(usage))
	for _, u := range usage {
		out[u.CategoryID] = u
	}
	return out
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestSummarize_SecondYearCarriesFirstYearAllowance(t *testing.T) {
	// GIVEN: Hired 2022-01-10, 28 days/year, one entry 2023-01-15..19, no holidays
	// WHEN: Evaluating on 2023-03-10 (second employment year, two months in)
	// THEN: Used 5, carried 28 from year one, accrued 28/12*2

	got := summarize(t, leave.Input{
		HireDate:   date(2022, time.January, 10),
		Entries:    []leave.Entry{entry("e1", "annual", date(2023, time.January, 15), ptr(date(2023, time.January, 19)))},
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 10),
	})["annual"]

	assert.Equal(t, 5, got.Used)
	assert.Equal(t, "28", got.Carried.String())
	assert.Equal(t, "4.67", got.Accrued.String())
	require.NotNil(t, got.Remaining)
	assert.Equal(t, "27.67", got.Remaining.String())
}

func TestSummarize_UnlimitedCategoryHasNoRemaining(t *testing.T) {
	// GIVEN: Unlimited category, entries totalling 3 calendar days
	// THEN: Used 3, Remaining nil

	cal := calendar.New()
	cal.SetMonth(2023, time.February, []int{4, 5}) // ignored for unlimited

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "unpaid", date(2023, time.February, 4), ptr(date(2023, time.February, 5))),
			entry("e2", "unpaid", date(2023, time.February, 20), nil),
		},
		Categories: []leave.Category{unpaid},
		Calendar:   cal,
		AsOf:       date(2023, time.March, 10),
	})["unpaid"]

	assert.Equal(t, 3, got.Used)
	assert.Nil(t, got.Remaining)
	assert.True(t, got.Carried.IsZero())
}

func TestSummarize_HolidayNotChargedToLimitedCategory(t *testing.T) {
	// GIVEN: 2023-01-16 is a holiday
	// WHEN: The same 5-day entry is booked in a limited and an unlimited category
	// THEN: Limited charges 4 working days, unlimited 5 calendar days

	cal := calendar.New()
	cal.SetMonth(2023, time.January, []int{16})

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2023, time.January, 15), ptr(date(2023, time.January, 19))),
			entry("e2", "unpaid", date(2023, time.January, 15), ptr(date(2023, time.January, 19))),
		},
		Categories: []leave.Category{annual, unpaid},
		Calendar:   cal,
		AsOf:       date(2023, time.March, 10),
	})

	assert.Equal(t, 4, got["annual"].Used)
	assert.Equal(t, 5, got["unpaid"].Used)
}

func TestSummarize_SingleDayEntryIsOneDayEvenOnHoliday(t *testing.T) {
	cal := calendar.New()
	cal.SetMonth(2023, time.January, []int{16})

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2023, time.January, 16), nil),
			entry("e2", "unpaid", date(2023, time.January, 16), nil),
		},
		Categories: []leave.Category{annual, unpaid},
		Calendar:   cal,
		AsOf:       date(2023, time.March, 10),
	})

	assert.Equal(t, 1, got["annual"].Used)
	assert.Equal(t, 1, got["unpaid"].Used)
}

func TestSummarize_NoEntriesCarriesFullLimitPerCompletedYear(t *testing.T) {
	// GIVEN: Three completed years without leave
	// WHEN: Evaluating on the third anniversary (zero months into year four)
	// THEN: Carried = 3 * 28, nothing accrued yet

	got := summarize(t, leave.Input{
		HireDate:   date(2020, time.January, 10),
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.January, 10),
	})["annual"]

	assert.Equal(t, "84", got.Carried.String())
	assert.True(t, got.Accrued.IsZero())
	assert.Equal(t, "84", got.Remaining.String())
}

func TestSummarize_OverusedYearCarriesNegative(t *testing.T) {
	// GIVEN: 10-day limit, 12 days taken in year one
	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "short", date(2022, time.June, 1), ptr(date(2022, time.June, 12))),
		},
		Categories: []leave.Category{{ID: "short", Title: "Short", AnnualLimit: 10}},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.January, 10),
	})["short"]

	assert.Equal(t, 0, got.Used)
	assert.Equal(t, "-2", got.Carried.String())
	assert.Equal(t, "-2", got.Remaining.String())
}

func TestSummarize_EntryCrossingAnniversaryIsSplit(t *testing.T) {
	// GIVEN: Entry 2023-01-07..2023-01-12 crossing the 2023-01-10 anniversary
	// THEN: 3 days charged to year one, 3 to year two; none double-counted

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2023, time.January, 7), ptr(date(2023, time.January, 12))),
		},
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.January, 10),
	})["annual"]

	assert.Equal(t, 3, got.Used)
	assert.Equal(t, "25", got.Carried.String())
	assert.Equal(t, "22", got.Remaining.String())
}

func TestSummarize_EntryStartingOnAnniversaryBelongsToNewYear(t *testing.T) {
	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2023, time.January, 10), nil),
			entry("e2", "annual", date(2023, time.January, 9), nil),
		},
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.February, 1),
	})["annual"]

	assert.Equal(t, 1, got.Used)
	assert.Equal(t, "27", got.Carried.String())
}

func TestSummarize_RejectedEntriesIgnored_PendingCounted(t *testing.T) {
	rejected := entry("e1", "annual", date(2023, time.February, 1), ptr(date(2023, time.February, 3)))
	rejected.Status = leave.StatusRejected
	pending := entry("e2", "annual", date(2023, time.February, 6), ptr(date(2023, time.February, 7)))
	pending.Status = leave.StatusPending

	got := summarize(t, leave.Input{
		HireDate:   date(2022, time.January, 10),
		Entries:    []leave.Entry{rejected, pending},
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 10),
	})["annual"]

	assert.Equal(t, 2, got.Used)
}

func TestSummarize_ReportWindowClampsEntries(t *testing.T) {
	// GIVEN: Entry 2023-02-25..2023-03-05 (9 days)
	// WHEN: Reporting on March only
	// THEN: Only the 5 March days are charged

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "unpaid", date(2023, time.February, 25), ptr(date(2023, time.March, 5))),
			entry("e2", "unpaid", date(2023, time.April, 2), nil),
		},
		Categories: []leave.Category{unpaid},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 31),
		FromLimit:  ptr(date(2023, time.March, 1)),
		ToLimit:    ptr(date(2023, time.March, 31)),
	})["unpaid"]

	assert.Equal(t, 5, got.Used)
}

func TestSummarize_ReportWindowOpenStart(t *testing.T) {
	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "unpaid", date(2023, time.February, 25), ptr(date(2023, time.March, 5))),
		},
		Categories: []leave.Category{unpaid},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 31),
		ToLimit:    ptr(date(2023, time.February, 28)),
	})["unpaid"]

	assert.Equal(t, 4, got.Used)
}

func TestSummarize_WindowUsedCrossesAnniversary(t *testing.T) {
	// GIVEN: Hired 2022-01-10, entries 2022-12-05..09 (year 0) and 2023-01-17..19 (year 1)
	// WHEN: Reporting on 2022-12-01..2023-01-31
	// THEN: The window holds all 8 days; Used keeps to the current year

	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2022, time.December, 5), ptr(date(2022, time.December, 9))),
			entry("e2", "annual", date(2023, time.January, 17), ptr(date(2023, time.January, 19))),
		},
		Categories: []leave.Category{annual, unpaid},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 10),
		FromLimit:  ptr(date(2022, time.December, 1)),
		ToLimit:    ptr(date(2023, time.January, 31)),
	})

	require.NotNil(t, got["annual"].WindowUsed)
	assert.Equal(t, 8, *got["annual"].WindowUsed)
	assert.Equal(t, 3, got["annual"].Used)
	require.NotNil(t, got["unpaid"].WindowUsed)
	assert.Equal(t, 0, *got["unpaid"].WindowUsed)
}

func TestSummarize_WindowLeavesBalanceAlone(t *testing.T) {
	// GIVEN: 5 days used in year 0, 3 days in January of year 1
	// WHEN: Reporting on February..March 2023 only
	// THEN: Nothing used inside the window, but carried and remaining
	//       still reflect every entry: 23 + 28/12*2 - 3

	in := leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2022, time.December, 5), ptr(date(2022, time.December, 9))),
			entry("e2", "annual", date(2023, time.January, 17), ptr(date(2023, time.January, 19))),
		},
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.March, 10),
	}
	plain := summarize(t, in)["annual"]
	assert.Nil(t, plain.WindowUsed)

	in.FromLimit = ptr(date(2023, time.February, 1))
	in.ToLimit = ptr(date(2023, time.March, 31))
	windowed := summarize(t, in)["annual"]

	assert.Equal(t, 0, windowed.Used)
	require.NotNil(t, windowed.WindowUsed)
	assert.Equal(t, 0, *windowed.WindowUsed)
	assert.Equal(t, "23", windowed.Carried.String())
	require.NotNil(t, windowed.Remaining)
	assert.Equal(t, "24.67", windowed.Remaining.String())
	assert.Equal(t, plain.Remaining.String(), windowed.Remaining.String())
}

func TestSummarize_MonthsRoundHalfUp(t *testing.T) {
	// 12 days/year accrues 1 day per rounded month.
	cat := leave.Category{ID: "c", Title: "C", AnnualLimit: 12}
	hire := date(2023, time.January, 1)

	tests := []struct {
		asOf generic.TimePoint
		want string
	}{
		{date(2023, time.January, 1), "0"},
		{date(2023, time.January, 15), "0"}, // 14/31 month
		{date(2023, time.January, 17), "1"}, // 16/31 month
		{date(2023, time.March, 1), "2"},
		{date(2023, time.December, 31), "12"},
	}
	for _, tt := range tests {
		got := summarize(t, leave.Input{
			HireDate:   hire,
			Categories: []leave.Category{cat},
			Calendar:   calendar.New(),
			AsOf:       tt.asOf,
		})["c"]
		assert.Equal(t, tt.want, got.Accrued.String(), tt.asOf.String())
	}
}

func TestSummarize_BeforeHireDate(t *testing.T) {
	got := summarize(t, leave.Input{
		HireDate:   date(2024, time.January, 10),
		Categories: []leave.Category{annual},
		Calendar:   calendar.New(),
		AsOf:       date(2023, time.December, 1),
	})["annual"]

	assert.Equal(t, 0, got.Used)
	assert.Equal(t, "0", got.Remaining.String())
}

// =============================================================================
// ERRORS
// =============================================================================

func TestSummarize_ReversedEntryRejected(t *testing.T) {
	_, err := leave.Summarize(leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("bad", "annual", date(2023, time.January, 19), ptr(date(2023, time.January, 15))),
		},
		Categories: []leave.Category{annual},
		AsOf:       date(2023, time.March, 10),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInvalidRange)
	assert.Contains(t, err.Error(), "bad")
}

func TestSummarize_ReversedReportWindowRejected(t *testing.T) {
	_, err := leave.Summarize(leave.Input{
		HireDate:   date(2022, time.January, 10),
		Categories: []leave.Category{annual},
		AsOf:       date(2023, time.March, 10),
		FromLimit:  ptr(date(2023, time.March, 1)),
		ToLimit:    ptr(date(2023, time.February, 1)),
	})

	assert.ErrorIs(t, err, generic.ErrInvalidRange)
}

func TestSummarize_NilCalendarTreatsEveryDayAsWorking(t *testing.T) {
	got := summarize(t, leave.Input{
		HireDate: date(2022, time.January, 10),
		Entries: []leave.Entry{
			entry("e1", "annual", date(2023, time.January, 14), ptr(date(2023, time.January, 15))),
		},
		Categories: []leave.Category{annual},
		AsOf:       date(2023, time.March, 10),
	})["annual"]

	assert.Equal(t, 2, got.Used)
}
