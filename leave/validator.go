/*
validator.go - Leave request policy validation

PURPOSE:
  Applies every business rule to a proposed leave request and reports all
  violations together, so a user can fix a whole form in one pass instead
  of discovering errors one at a time.

RULES (checked in this order, all independently):
  1. Range ordering: start must not be after end
  2. No past dates: start must be on or after asOf (injected, never
     read from the system clock)
  3. Leave type must be a member of the closed set
  4. The charged working-day count must be at least 1 and at most
     Limits.MaxWorkingDays

ERROR MODEL:
  Validate never fails hard. Every finding is a human-readable string in
  Result.Errors, rendered verbatim and simultaneously by the UI.
  WorkingDays is always populated best-effort (0 when the range itself is
  malformed) so callers can display it even on failure paths.

SEE ALSO:
  - calendar/workdays.go: The duration calculation
  - employee.go: The same collect-all-findings shape for employee forms
*/
package leave

import (
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// LIMITS - Duration policy knobs
// =============================================================================

// DefaultMaxWorkingDays is the stock upper bound on a single request.
// Policy, not law: override through Limits.
const DefaultMaxWorkingDays = 30

// Limits configures the duration bounds the validator enforces.
type Limits struct {
	// MaxWorkingDays caps a single request's charged duration.
	// Zero means DefaultMaxWorkingDays.
	MaxWorkingDays int
}

func (l Limits) maxWorkingDays() int {
	if l.MaxWorkingDays > 0 {
		return l.MaxWorkingDays
	}
	return DefaultMaxWorkingDays
}

// =============================================================================
// VALIDATION RESULT - All findings together
// =============================================================================

// Result aggregates every rule violation for one proposed request.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`

	// WorkingDays is the charged duration, populated best-effort even
	// when validation fails (0 for a malformed range).
	WorkingDays int `json:"working_days"`
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator applies leave request policy. Purely functional: safe for
// concurrent use.
type Validator struct {
	Limits Limits

	// Holidays excluded from the charged duration. Nil means none.
	Holidays calendar.HolidayCalendar
}

// Validate checks a proposed request. leaveType arrives as the raw
// external string and is parsed against the closed set here, at the edge.
// asOf is the injected "today" used for past-date checks.
func (v *Validator) Validate(employeeID int, leaveType string, r calendar.Range, asOf calendar.Date) Result {
	var findings []string

	if r.Start.After(r.End) {
		findings = append(findings, "Start date cannot be after end date")
	}

	if r.Start.Before(asOf) {
		findings = append(findings, "Cannot apply for leave on past dates")
	}

	if _, err := ParseType(leaveType); err != nil {
		findings = append(findings, "Invalid leave type")
	}

	// Best-effort duration: an inverted range charges 0 working days and
	// trips the zero-duration rule alongside the ordering error above.
	workingDays, _ := calendar.WorkingDays(r, v.Holidays)
	if workingDays == 0 {
		findings = append(findings, "Leave duration must include working days")
	} else if max := v.Limits.maxWorkingDays(); workingDays > max {
		findings = append(findings, fmt.Sprintf("Leave duration cannot exceed %d working days", max))
	}

	return Result{
		Valid:       len(findings) == 0,
		Errors:      findings,
		WorkingDays: workingDays,
	}
}
