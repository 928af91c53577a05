package leaveservice_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/leaveservice"
	"github.com/warp/leave-engine/leaveservice/servicetest"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// today is the pinned clock for all client tests: Monday June 2 2025.
var today = calendar.NewDate(2025, time.June, 2)

func newTestClient(t *testing.T) (*leaveservice.Client, *servicetest.Service) {
	t.Helper()
	fake := servicetest.New(servicetest.FixedClock{Day: today})
	server := httptest.NewServer(fake.Router())
	t.Cleanup(server.Close)

	client := leaveservice.NewWithClock(
		leaveservice.Config{BaseURL: server.URL, Timeout: 5 * time.Second},
		servicetest.FixedClock{Day: today},
	)
	return client, fake
}

func seedEmployee(fake *servicetest.Service, name, dept string) int {
	return fake.SeedEmployee(leave.Employee{
		Name:        name,
		Email:       name + "@example.com",
		Department:  dept,
		JoiningDate: calendar.NewDate(2024, time.January, 8),
	})
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestClient_AddEmployee(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	emp, err := client.AddEmployee(ctx, leaveservice.NewEmployee{
		Name:        "Ada Lovelace",
		Email:       "Ada@Example.com",
		Department:  "Engineering",
		JoiningDate: calendar.NewDate(2025, time.May, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, emp.ID)
	assert.Equal(t, "ada@example.com", emp.Email, "service normalizes email")

	employees, err := client.Employees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 1)
}

func TestClient_AddEmployee_ValidationErrorsSurfaced(t *testing.T) {
	// GIVEN: A form with a bad name and a future joining date
	// WHEN: Registering through the client
	// THEN: The service's collected findings come back in one APIError

	client, _ := newTestClient(t)

	_, err := client.AddEmployee(context.Background(), leaveservice.NewEmployee{
		Name:        "a",
		Email:       "nope",
		Department:  "HR",
		JoiningDate: today.AddDays(30),
	})

	var apiErr *leaveservice.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Name must be at least 2 characters long")
	assert.Contains(t, apiErr.Message, "Invalid email format")
	assert.Contains(t, apiErr.Message, "Joining date cannot be in the future")
}

func TestClient_Employee_NotFound(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.Employee(context.Background(), 42)
	assert.ErrorIs(t, err, leaveservice.ErrNotFound)
}

// =============================================================================
// APPLY / APPROVE / BALANCE FLOW
// =============================================================================

func TestClient_ApplyApproveBalance_FullFlow(t *testing.T) {
	// GIVEN: An employee with the default 20/10 allotment
	// WHEN: A 5-day request is approved and a 3-day request stays pending
	// THEN: The balance reads {total:20, used:5, pending:3, available:12}

	client, fake := newTestClient(t)
	ctx := context.Background()
	empID := seedEmployee(fake, "ada", "Engineering")

	approved, err := client.ApplyLeave(ctx, leaveservice.Application{
		EmployeeID: empID,
		LeaveType:  "annual",
		StartDate:  today,                                 // Mon
		EndDate:    calendar.NewDate(2025, time.June, 6),  // Fri
		Reason:     "summer break",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, approved.Status)

	_, err = client.ApproveLeave(ctx, approved.ID, 99)
	require.NoError(t, err)

	_, err = client.ApplyLeave(ctx, leaveservice.Application{
		EmployeeID: empID,
		LeaveType:  "annual",
		StartDate:  calendar.NewDate(2025, time.June, 9),  // Mon
		EndDate:    calendar.NewDate(2025, time.June, 11), // Wed
	})
	require.NoError(t, err)

	balances, err := client.Balance(ctx, empID, 2025)
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceSnapshot{Total: 20, Used: 5, Pending: 3}, balances.Annual)
	assert.Equal(t, 12, balances.Annual.Available())
}

func TestClient_ApplyLeave_PolicyViolationsSurfaced(t *testing.T) {
	// GIVEN: A request starting before the pinned today with a bogus type
	// WHEN: Applying
	// THEN: Every validator finding is in the error, verbatim

	client, fake := newTestClient(t)
	empID := seedEmployee(fake, "bo", "HR")

	_, err := client.ApplyLeave(context.Background(), leaveservice.Application{
		EmployeeID: empID,
		LeaveType:  "vacation",
		StartDate:  today.AddDays(-7),
		EndDate:    today.AddDays(-3),
	})

	var apiErr *leaveservice.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Cannot apply for leave on past dates")
	assert.Contains(t, apiErr.Message, "Invalid leave type")
}

func TestClient_RejectLeave(t *testing.T) {
	client, fake := newTestClient(t)
	ctx := context.Background()
	empID := seedEmployee(fake, "cleo", "HR")

	req, err := client.ApplyLeave(ctx, leaveservice.Application{
		EmployeeID: empID,
		LeaveType:  "sick",
		StartDate:  today,
		EndDate:    today,
	})
	require.NoError(t, err)

	rejected, err := client.RejectLeave(ctx, req.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)

	// Rejected requests contribute nothing to the balance.
	balances, err := client.Balance(ctx, empID, 2025)
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceSnapshot{Total: 10}, balances.Sick)
}

func TestClient_ApproveLeave_AlreadyDecided(t *testing.T) {
	client, fake := newTestClient(t)
	ctx := context.Background()
	empID := seedEmployee(fake, "dee", "HR")

	req, err := client.ApplyLeave(ctx, leaveservice.Application{
		EmployeeID: empID,
		LeaveType:  "annual",
		StartDate:  today,
		EndDate:    today,
	})
	require.NoError(t, err)

	_, err = client.ApproveLeave(ctx, req.ID, 99)
	require.NoError(t, err)

	_, err = client.RejectLeave(ctx, req.ID, 99)
	var apiErr *leaveservice.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "leave request already decided", apiErr.Message)
}

// =============================================================================
// LISTING, ALLOTMENT, HISTORY, STATS
// =============================================================================

func TestClient_ListRequests_YearFilter(t *testing.T) {
	client, fake := newTestClient(t)
	empID := seedEmployee(fake, "ada", "Engineering")

	fake.SeedRequest(leave.Request{
		EmployeeID: empID, Type: leave.TypeAnnual, Status: leave.StatusApproved,
		Range: calendar.Range{
			Start: calendar.NewDate(2024, time.March, 4),
			End:   calendar.NewDate(2024, time.March, 8),
		},
	})
	fake.SeedRequest(leave.Request{
		EmployeeID: empID, Type: leave.TypeAnnual, Status: leave.StatusApproved,
		Range: calendar.Range{
			Start: calendar.NewDate(2025, time.March, 3),
			End:   calendar.NewDate(2025, time.March, 7),
		},
	})

	requests, err := client.ListRequests(context.Background(), empID, 2025)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, 2025, requests[0].Range.Start.Year())
}

func TestClient_Allotment(t *testing.T) {
	client, fake := newTestClient(t)
	empID := seedEmployee(fake, "ada", "Engineering")
	fake.SetAllotment(empID, leave.Allotment{Annual: 25, Sick: 12})

	allotment, err := client.Allotment(context.Background(), empID, 2025)
	require.NoError(t, err)
	assert.Equal(t, leave.Allotment{Annual: 25, Sick: 12}, allotment)
}

func TestClient_History_Paged(t *testing.T) {
	client, fake := newTestClient(t)
	empID := seedEmployee(fake, "ada", "Engineering")

	for i := 0; i < 5; i++ {
		start := calendar.NewDate(2025, time.March, 3).AddDays(i * 7)
		fake.SeedRequest(leave.Request{
			EmployeeID: empID, Type: leave.TypeAnnual, Status: leave.StatusApproved,
			Range: calendar.Range{Start: start, End: start},
		})
	}

	page, err := client.History(context.Background(), empID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Requests, 2)
	assert.Equal(t, leaveservice.Pagination{Page: 2, Limit: 2, Total: 5}, page.Pagination)
}

func TestClient_Stats(t *testing.T) {
	client, fake := newTestClient(t)
	empID := seedEmployee(fake, "ada", "Engineering")
	seedEmployee(fake, "bo", "HR")

	fake.SeedRequest(leave.Request{
		EmployeeID: empID, Type: leave.TypeAnnual, Status: leave.StatusApproved,
		Range: calendar.Range{Start: today, End: today.AddDays(4)},
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmployees)
	require.Len(t, stats.DepartmentAnalytics, 2)
	assert.Equal(t, "Engineering", stats.DepartmentAnalytics[0].Department)
	assert.Equal(t, 1, stats.DepartmentAnalytics[0].EmployeesOnLeave)
}

// =============================================================================
// TRANSPORT FAILURES
// =============================================================================

func TestClient_ServiceUnreachable(t *testing.T) {
	server := httptest.NewServer(servicetest.New(servicetest.FixedClock{Day: today}).Router())
	server.Close() // shut down before use

	client := leaveservice.New(leaveservice.Config{BaseURL: server.URL, Timeout: time.Second})
	_, err := client.Employees(context.Background())
	assert.ErrorIs(t, err, leaveservice.ErrUnavailable)
}

func TestClient_Today_UsesInjectedClock(t *testing.T) {
	client := leaveservice.NewWithClock(
		leaveservice.Config{BaseURL: "http://localhost:0", Timeout: time.Second},
		servicetest.FixedClock{Day: today},
	)
	assert.True(t, client.Today().Equal(today))
}
