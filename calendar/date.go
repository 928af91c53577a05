/*
Package calendar provides day-granularity date handling for leave accounting.

PURPOSE:
  Leave is charged in whole calendar days. This package owns the date
  primitives everything else builds on: Date (a single day), Range (an
  inclusive span of days), holiday calendars, and the working-day count.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar day with no time-of-day or zone component
  - Comparison and arithmetic at day granularity only

DESIGN PRINCIPLES:
  1. Immutability: Date and Range are value objects, never mutated
  2. Determinism: "today" is never read here; callers inject it
  3. UTC only: a day is the same day everywhere in this system

SEE ALSO:
  - range.go: Inclusive date ranges and year clamping
  - workdays.go: Working-day calculation
  - holidays.go: Holiday calendar lookup
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - A single calendar day
// =============================================================================

// DateLayout is the wire format for dates everywhere in this system.
const DateLayout = "2006-01-02"

// Date is a calendar day, normalized to midnight UTC.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates any time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a date in DateLayout form ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Today returns the current calendar day. Core components never call this;
// they take an asOf parameter so validation stays deterministic.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

// IsWeekend reports whether the day is Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkday reports whether the day is Monday through Friday.
// It does not consider holidays; see IsWorkdayWith.
func (d Date) IsWorkday() bool { return !d.IsWeekend() }

// IsWorkdayWith reports whether the day is a working day under the given
// holiday calendar. A nil calendar means no holidays.
func (d Date) IsWorkdayWith(holidays HolidayCalendar) bool {
	if d.IsWeekend() {
		return false
	}
	if holidays != nil && holidays.IsHoliday(d) {
		return false
	}
	return true
}

func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON encodes the date as a DateLayout string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a DateLayout string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: not a JSON string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// YEAR BOUNDS
// =============================================================================

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
