/*
dto.go - Wire types for the remote leave service

PURPOSE:
  JSON structures for the leave service API. These decouple the wire
  contract from the leave domain model; conversion to and from domain
  types lives here so the rest of the repo never sees raw strings.

ENVELOPE:
  Every response carries {"success": bool, "error": string} plus a
  call-specific payload field. decodeEnvelope handles the common part.

DATES:
  All dates travel as "2006-01-02" strings (calendar.DateLayout).

SEE ALSO:
  - client.go: Call sites
  - leave/types.go: Domain types
*/
package leaveservice

import (
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// REQUEST BODIES
// =============================================================================

// NewEmployee is the registration form sent to the service.
type NewEmployee struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Department  string        `json:"department"`
	JoiningDate calendar.Date `json:"joining_date"`
}

// Application is a leave application sent to the service.
type Application struct {
	EmployeeID int           `json:"employee_id"`
	LeaveType  string        `json:"leave_type"`
	StartDate  calendar.Date `json:"start_date"`
	EndDate    calendar.Date `json:"end_date"`
	Reason     string        `json:"reason,omitempty"`
}

type decisionBody struct {
	ApprovedBy int `json:"approved_by"`
}

// =============================================================================
// RESPONSE PAYLOADS
// =============================================================================

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type employeeDTO struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Department  string        `json:"department"`
	JoiningDate calendar.Date `json:"joining_date"`
}

func (d employeeDTO) toDomain() leave.Employee {
	return leave.Employee{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Department:  d.Department,
		JoiningDate: d.JoiningDate,
	}
}

type requestDTO struct {
	ID         int           `json:"id"`
	EmployeeID int           `json:"employee_id"`
	LeaveType  string        `json:"leave_type"`
	StartDate  calendar.Date `json:"start_date"`
	EndDate    calendar.Date `json:"end_date"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
}

// toDomain converts without validating: the engine's components reject or
// skip out-of-set types and statuses themselves, and a listing call must
// not fail because one stored record is bad.
func (d requestDTO) toDomain() leave.Request {
	return leave.Request{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Type:       leave.Type(d.LeaveType),
		Range:      calendar.Range{Start: d.StartDate, End: d.EndDate},
		Status:     leave.Status(d.Status),
		Reason:     d.Reason,
	}
}

func requestsToDomain(dtos []requestDTO) []leave.Request {
	requests := make([]leave.Request, len(dtos))
	for i, d := range dtos {
		requests[i] = d.toDomain()
	}
	return requests
}

type allotmentDTO struct {
	Annual int `json:"annual"`
	Sick   int `json:"sick"`
}

// Pagination describes a leave-history page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// History is one page of an employee's leave history.
type History struct {
	Requests   []leave.Request
	Pagination Pagination
}

// DashboardStats is the service's dashboard rollup.
type DashboardStats struct {
	DepartmentAnalytics []leave.DepartmentStats `json:"department_analytics"`
	TotalEmployees      int                     `json:"total_employees"`
	PendingRequests     int                     `json:"pending_requests"`
}
