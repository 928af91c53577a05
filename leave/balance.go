/*
balance.go - Balance snapshots and reconciliation

PURPOSE:
  Answers "how much leave does this employee have?" for a calendar year.
  Given the yearly allotment and the year's requests, partitions each
  tracked type into used / pending / available.

BALANCE COMPONENTS:
  Total:     Yearly allotment (policy-configured upstream)
  Used:      Working days of approved requests in the year
  Pending:   Working days of pending requests in the year
  Available: Total - Used - Pending (derived, may be negative)

YEAR APPORTIONMENT:
  A request spanning December 31 is split: only the working days falling
  inside the reconciliation year count toward that year's figures. The
  remainder belongs to the neighbouring year's reconciliation.

NEGATIVE AVAILABILITY:
  Available is allowed to go negative. Clamping at zero would hide a real
  double-booking, so the reconciler reports it and OverAllocated() lists
  the affected types for the UI to flag.

SEE ALSO:
  - calendar/workdays.go: WorkingDaysInYear
  - validator.go: Per-request policy checks (run before a request exists)
*/
package leave

import "github.com/warp/leave-engine/calendar"

// =============================================================================
// BALANCE SNAPSHOT - Value object, computed fresh per call
// =============================================================================

// BalanceSnapshot partitions one tracked type's yearly allotment.
type BalanceSnapshot struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Pending int `json:"pending"`
}

// Available returns Total - Used - Pending. May be negative; see
// OverAllocationWarning.
func (b BalanceSnapshot) Available() int {
	return b.Total - b.Used - b.Pending
}

// Overdrawn reports whether the allotment is over-allocated.
func (b BalanceSnapshot) Overdrawn() bool { return b.Available() < 0 }

// Balances holds one snapshot per tracked leave type.
type Balances struct {
	Annual BalanceSnapshot `json:"annual"`
	Sick   BalanceSnapshot `json:"sick"`
}

// ForType returns the snapshot for a tracked type; the zero snapshot for
// untracked types.
func (b Balances) ForType(t Type) BalanceSnapshot {
	switch t {
	case TypeAnnual:
		return b.Annual
	case TypeSick:
		return b.Sick
	}
	return BalanceSnapshot{}
}

// OverAllocated returns warnings for every type whose available balance
// is negative. Empty when the books are consistent.
func (b Balances) OverAllocated(employeeID int) []OverAllocationWarning {
	var warnings []OverAllocationWarning
	for _, t := range []Type{TypeAnnual, TypeSick} {
		if snap := b.ForType(t); snap.Overdrawn() {
			warnings = append(warnings, OverAllocationWarning{
				EmployeeID: employeeID,
				Type:       t,
				Available:  snap.Available(),
			})
		}
	}
	return warnings
}

// =============================================================================
// RECONCILER
// =============================================================================

// Reconciler computes yearly balance snapshots. Purely functional: safe
// for any number of concurrent callers.
type Reconciler struct {
	// Holidays excluded from working-day charges. Nil means none.
	Holidays calendar.HolidayCalendar
}

// Reconcile partitions the allotment using the given requests.
//
// Rules:
//   - Only tracked types (annual, sick) accumulate; others are unlimited
//     and skipped.
//   - Approved requests add to Used, pending to Pending, rejected nothing.
//   - Each request contributes only the working days that fall inside
//     the target year.
//   - Structurally invalid requests (inverted range, unknown type or
//     status) contribute nothing; the remote service should never send
//     them, and a bad record must not poison the whole reconciliation.
//
// Never fails: a negative available balance is returned as data.
func (rc *Reconciler) Reconcile(allotment Allotment, requests []Request, year int) Balances {
	balances := Balances{
		Annual: BalanceSnapshot{Total: allotment.Annual},
		Sick:   BalanceSnapshot{Total: allotment.Sick},
	}

	for _, req := range requests {
		if !req.Type.Tracked() {
			continue
		}
		if req.Status != StatusApproved && req.Status != StatusPending {
			continue
		}

		days, err := calendar.WorkingDaysInYear(req.Range, year, rc.Holidays)
		if err != nil || days == 0 {
			continue
		}

		snap := balances.ForType(req.Type)
		switch req.Status {
		case StatusApproved:
			snap.Used += days
		case StatusPending:
			snap.Pending += days
		}

		switch req.Type {
		case TypeAnnual:
			balances.Annual = snap
		case TypeSick:
			balances.Sick = snap
		}
	}

	return balances
}
