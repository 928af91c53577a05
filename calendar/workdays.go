/*
workdays.go - Working-day calculation

PURPOSE:
  Converts an inclusive date range into the number of chargeable working
  days. This is the one number the whole leave system hangs off: the
  validator limits it, the reconciler sums it, the dashboard displays it.

RULES:
  - Bounds are inclusive: [start, end]
  - Saturday and Sunday never count
  - Days in the supplied holiday calendar never count
  - A range with no working days (e.g. a single Saturday) counts 0
  - No fixed-length-year assumption: the walk is day by day, so leap
    years and multi-year ranges are exact

CONTRACT:
  An inverted range (start after end) is a caller error and fails with
  InvalidRangeError rather than producing undefined output. The validator
  checks ordering first, but this function defends itself anyway.

SEE ALSO:
  - holidays.go: HolidayCalendar
  - range.go: Range validation
*/
package calendar

// WorkingDays counts the working days in the inclusive range, excluding
// weekends and any days in the holiday calendar. A nil calendar means no
// holidays. Returns InvalidRangeError when the range is inverted.
func WorkingDays(r Range, holidays HolidayCalendar) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	days := 0
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		if cur.IsWorkdayWith(holidays) {
			days++
		}
	}
	return days, nil
}

// WorkingDaysInYear counts the working days of the range that fall within
// the given calendar year. Used for year apportionment: a range crossing
// December 31 contributes days to each year separately.
func WorkingDaysInYear(r Range, year int, holidays HolidayCalendar) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	clamped, ok := r.ClampToYear(year)
	if !ok {
		return 0, nil
	}
	return WorkingDays(clamped, holidays)
}
