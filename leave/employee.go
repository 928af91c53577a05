package leave

import (
	"strings"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// EMPLOYEE FORM VALIDATION
// =============================================================================

// Employee is an employee record as owned by the remote leave service.
type Employee struct {
	ID          int
	Name        string
	Email       string
	Department  string
	JoiningDate calendar.Date
}

// ValidateEmployee checks an employee registration form before submission.
// Same collect-all-findings shape as request validation: every violation
// is reported together so the form can be fixed in one pass. asOf is the
// injected "today" for the joining-date check.
func ValidateEmployee(name, email, department string, joiningDate, asOf calendar.Date) Result {
	var findings []string

	if len(strings.TrimSpace(name)) < 2 {
		findings = append(findings, "Name must be at least 2 characters long")
	}

	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		findings = append(findings, "Invalid email format")
	}

	if len(strings.TrimSpace(department)) < 2 {
		findings = append(findings, "Department must be at least 2 characters long")
	}

	if joiningDate.After(asOf) {
		findings = append(findings, "Joining date cannot be in the future")
	}

	return Result{Valid: len(findings) == 0, Errors: findings}
}
