/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Contract errors - structurally invalid input (inverted ranges live
     in package calendar; unknown types live here)
  2. Validation findings - business rule violations, always returned as
     data in a Result, never as a hard fault
  3. Over-allocation - a negative available balance, surfaced as a
     warning value rather than an error, because clamping or failing
     would hide a true accounting inconsistency

USAGE:
  if errors.Is(err, leave.ErrUnknownType) { ... }

SEE ALSO:
  - calendar/range.go: ErrInvalidRange / InvalidRangeError
  - validator.go: Result carries findings as data
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownType is returned when a string does not name a member of
	// the closed leave-type set.
	ErrUnknownType = errors.New("unknown leave type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownTypeError carries the offending value.
type UnknownTypeError struct {
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown leave type %q", e.Value)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// =============================================================================
// OVER-ALLOCATION - A warning, not an error
// =============================================================================

// OverAllocationWarning signals that an allotment's available balance went
// negative: used plus pending exceed the total. Reconciliation never fails
// on this; the caller renders it as a distinguishable over-allocated state.
type OverAllocationWarning struct {
	EmployeeID int
	Type       Type
	Available  int // negative
}

func (w OverAllocationWarning) String() string {
	return fmt.Sprintf("employee %d over-allocated %s leave by %d days",
		w.EmployeeID, w.Type, -w.Available)
}
