/*
stats.go - Dashboard analytics over leave requests

PURPOSE:
  Derives the read-only figures the dashboard shows: request counts by
  status and type, approval rates, and per-department rollups including
  who is on leave right now.

PRECISION:
  Rates are percentages computed with decimal arithmetic and rounded to
  one decimal place, so 1/3 renders as 33.3 rather than a float artifact.

SEE ALSO:
  - balance.go: Per-employee balance figures
*/
package leave

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// STATUS AND TYPE BREAKDOWNS
// =============================================================================

// StatusCounts tallies requests by workflow status.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Total returns the number of counted requests.
func (c StatusCounts) Total() int { return c.Pending + c.Approved + c.Rejected }

// ApprovalRate returns the approved share as a percentage, one decimal
// place. Zero when there are no requests.
func (c StatusCounts) ApprovalRate() decimal.Decimal {
	total := c.Total()
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(c.Approved)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}

// Summary is the request-level dashboard rollup.
type Summary struct {
	ByStatus StatusCounts `json:"by_status"`
	ByType   map[Type]int `json:"by_type"`
}

// Summarize tallies the given requests by status and type. Requests with
// an unknown status or type are skipped rather than miscounted.
func Summarize(requests []Request) Summary {
	s := Summary{ByType: make(map[Type]int)}
	for _, req := range requests {
		if !req.Status.Valid() || !req.Type.Valid() {
			continue
		}
		switch req.Status {
		case StatusPending:
			s.ByStatus.Pending++
		case StatusApproved:
			s.ByStatus.Approved++
		case StatusRejected:
			s.ByStatus.Rejected++
		}
		s.ByType[req.Type]++
	}
	return s
}

// =============================================================================
// DEPARTMENT ANALYTICS
// =============================================================================

// DepartmentStats is one department's dashboard row.
type DepartmentStats struct {
	Department       string          `json:"department"`
	TotalEmployees   int             `json:"total_employees"`
	EmployeesOnLeave int             `json:"employees_on_leave"`
	TotalLeaves      int             `json:"total_leaves"`
	ApprovedRate     decimal.Decimal `json:"approved_rate"`
}

// DepartmentAnalytics rolls requests up per department. An employee is
// on leave when an approved request's range contains asOf. Rows are
// sorted by department name for stable display.
func DepartmentAnalytics(employees []Employee, requests []Request, asOf calendar.Date) []DepartmentStats {
	deptOf := make(map[int]string, len(employees))
	empCount := make(map[string]int)
	for _, emp := range employees {
		deptOf[emp.ID] = emp.Department
		empCount[emp.Department]++
	}

	counts := make(map[string]StatusCounts)
	onLeave := make(map[string]map[int]struct{})
	for _, req := range requests {
		dept, ok := deptOf[req.EmployeeID]
		if !ok || !req.Status.Valid() {
			continue
		}
		c := counts[dept]
		switch req.Status {
		case StatusPending:
			c.Pending++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		}
		counts[dept] = c

		if req.Status == StatusApproved && req.Range.Contains(asOf) {
			if onLeave[dept] == nil {
				onLeave[dept] = make(map[int]struct{})
			}
			onLeave[dept][req.EmployeeID] = struct{}{}
		}
	}

	stats := make([]DepartmentStats, 0, len(empCount))
	for dept, total := range empCount {
		c := counts[dept]
		stats = append(stats, DepartmentStats{
			Department:       dept,
			TotalEmployees:   total,
			EmployeesOnLeave: len(onLeave[dept]),
			TotalLeaves:      c.Total(),
			ApprovedRate:     c.ApprovalRate(),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Department < stats[j].Department })
	return stats
}
