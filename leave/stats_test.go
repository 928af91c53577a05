package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/leave"
)

func TestSummarize_CountsByStatusAndType(t *testing.T) {
	requests := []leave.Request{
		request(1, leave.TypeAnnual, leave.StatusApproved, day(2025, time.June, 2), day(2025, time.June, 3)),
		request(2, leave.TypeAnnual, leave.StatusPending, day(2025, time.June, 9), day(2025, time.June, 9)),
		request(3, leave.TypeSick, leave.StatusRejected, day(2025, time.June, 5), day(2025, time.June, 5)),
	}

	s := leave.Summarize(requests)

	assert.Equal(t, leave.StatusCounts{Pending: 1, Approved: 1, Rejected: 1}, s.ByStatus)
	assert.Equal(t, 2, s.ByType[leave.TypeAnnual])
	assert.Equal(t, 1, s.ByType[leave.TypeSick])
}

func TestApprovalRate_OneDecimalPlace(t *testing.T) {
	// 1 approved of 3 total: 33.3, not a float artifact.
	c := leave.StatusCounts{Pending: 1, Approved: 1, Rejected: 1}
	assert.True(t, c.ApprovalRate().Equal(decimal.RequireFromString("33.3")),
		"got %s", c.ApprovalRate())

	empty := leave.StatusCounts{}
	assert.True(t, empty.ApprovalRate().IsZero())
}

func TestDepartmentAnalytics_Rollup(t *testing.T) {
	// GIVEN: Two departments; one engineer on approved leave today
	// WHEN: Computing department analytics
	// THEN: Rows are per department, sorted, with on-leave head counts

	asOf := day(2025, time.June, 4)
	employees := []leave.Employee{
		{ID: 1, Name: "Ada", Department: "Engineering"},
		{ID: 2, Name: "Bo", Department: "Engineering"},
		{ID: 3, Name: "Cleo", Department: "HR"},
	}
	requests := []leave.Request{
		{ID: 1, EmployeeID: 1, Type: leave.TypeAnnual, Status: leave.StatusApproved,
			Range: span(day(2025, time.June, 2), day(2025, time.June, 6))},
		{ID: 2, EmployeeID: 2, Type: leave.TypeSick, Status: leave.StatusRejected,
			Range: span(day(2025, time.June, 9), day(2025, time.June, 9))},
		{ID: 3, EmployeeID: 3, Type: leave.TypeAnnual, Status: leave.StatusPending,
			Range: span(day(2025, time.June, 16), day(2025, time.June, 17))},
	}

	stats := leave.DepartmentAnalytics(employees, requests, asOf)
	require.Len(t, stats, 2)

	eng := stats[0]
	assert.Equal(t, "Engineering", eng.Department)
	assert.Equal(t, 2, eng.TotalEmployees)
	assert.Equal(t, 1, eng.EmployeesOnLeave)
	assert.Equal(t, 2, eng.TotalLeaves)
	assert.True(t, eng.ApprovedRate.Equal(decimal.NewFromInt(50)), "got %s", eng.ApprovedRate)

	hr := stats[1]
	assert.Equal(t, "HR", hr.Department)
	assert.Equal(t, 1, hr.TotalEmployees)
	assert.Equal(t, 0, hr.EmployeesOnLeave)
	assert.Equal(t, 1, hr.TotalLeaves)
	assert.True(t, hr.ApprovedRate.IsZero())
}
