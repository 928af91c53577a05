package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// RANGE - Inclusive span of calendar days
// =============================================================================

// ErrInvalidRange is returned when a range's start falls after its end.
var ErrInvalidRange = errors.New("invalid range: start after end")

// InvalidRangeError carries the offending bounds.
type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s after end %s", e.Start, e.End)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// Range is an inclusive span of days [Start, End].
// Construct through NewRange to guarantee Start <= End; a Range built
// directly from struct literals may be inverted and every consumer that
// cares validates again rather than produce undefined output.
type Range struct {
	Start Date
	End   Date
}

// NewRange constructs a validated range. Returns InvalidRangeError when
// start falls after end.
func NewRange(start, end Date) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate reports InvalidRangeError when the range is inverted.
func (r Range) Validate() error {
	if r.Start.After(r.End) {
		return &InvalidRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Contains reports whether the day falls within [Start, End].
func (r Range) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Len returns the inclusive calendar-day count. Zero for inverted ranges.
func (r Range) Len() int {
	if r.Start.After(r.End) {
		return 0
	}
	n := 0
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		n++
	}
	return n
}

// Days returns every day in the range in order. Nil for inverted ranges.
func (r Range) Days() []Date {
	var days []Date
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

// ClampToYear intersects the range with the given calendar year.
// The second return is false when the range does not touch the year at all.
// This is the apportionment primitive: a request spanning a year boundary
// contributes to each year only the days that fall inside it.
func (r Range) ClampToYear(year int) (Range, bool) {
	start, end := r.Start, r.End
	if start.Before(StartOfYear(year)) {
		start = StartOfYear(year)
	}
	if end.After(EndOfYear(year)) {
		end = EndOfYear(year)
	}
	if start.After(end) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func (r Range) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
