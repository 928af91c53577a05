package calendar

// =============================================================================
// HOLIDAY CALENDAR - Caller-supplied excluded dates
// =============================================================================

// HolidayCalendar answers whether a given day is an observed holiday.
// The engine ships no built-in holiday data; callers supply their own.
type HolidayCalendar interface {
	IsHoliday(d Date) bool
}

// HolidaySet is a HolidayCalendar backed by an explicit set of dates.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from the given dates.
func NewHolidaySet(dates ...Date) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s HolidaySet) IsHoliday(d Date) bool {
	_, ok := s[d]
	return ok
}

// Add marks a date as a holiday.
func (s HolidaySet) Add(d Date) { s[d] = struct{}{} }

// NoHolidays is the default calendar: nothing is a holiday.
var NoHolidays HolidayCalendar = HolidaySet(nil)
