// Package leave implements the leave-policy engine: the rules that turn a
// requested date range into a charged working-day count, validate it
// against policy, and reconcile it against an employee's yearly allotments.
// It owns no data; employees, requests, and allotments are supplied by the
// remote leave service on every call.
package leave

import "github.com/warp/leave-engine/calendar"

// =============================================================================
// LEAVE TYPE - Closed set
// =============================================================================

// Type is a leave category. The set is closed: anything else arriving at
// the boundary is a validation error, never a crash. Use ParseType to
// convert external strings.
type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypeEmergency Type = "emergency"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
)

// Types lists every valid leave type, in display order.
func Types() []Type {
	return []Type{TypeAnnual, TypeSick, TypeEmergency, TypeMaternity, TypePaternity}
}

// ParseType converts an external string into a Type. Unknown values
// return ErrUnknownType; the caller decides whether that is a validation
// finding or a hard error.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", &UnknownTypeError{Value: s}
	}
	return t, nil
}

// Valid reports membership in the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeEmergency, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

// Tracked reports whether the type draws down a yearly allotment.
// Emergency, maternity, and paternity leave are untracked: they are
// granted case by case and carry no balance.
func (t Type) Tracked() bool {
	return t == TypeAnnual || t == TypeSick
}

func (t Type) String() string { return string(t) }

// =============================================================================
// REQUEST - Owned by the remote leave service, consumed here
// =============================================================================

// Status is a request's position in the approval workflow. A request
// starts pending and transitions to approved or rejected exactly once;
// the remote service enforces that, and this engine trusts the field.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports membership in the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is a leave request as handed to the engine. The engine never
// mutates status; it only derives working-day and balance figures.
type Request struct {
	ID         int
	EmployeeID int
	Type       Type
	Range      calendar.Range
	Status     Status
	Reason     string
}

// =============================================================================
// ALLOTMENT - Yearly entitlement per tracked type
// =============================================================================

// Allotment is the number of days an employee is entitled to per year
// for each tracked leave type. Policy-configured upstream.
type Allotment struct {
	Annual int
	Sick   int
}

// ForType returns the allotment for a tracked type, 0 otherwise.
func (a Allotment) ForType(t Type) int {
	switch t {
	case TypeAnnual:
		return a.Annual
	case TypeSick:
		return a.Sick
	}
	return 0
}
