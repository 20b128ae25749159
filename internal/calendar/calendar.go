// Package calendar provides working-day arithmetic over a fixed weekly
// pattern. All operations are pure functions of the calendar's working-day
// set and the input dates; dates are time.Time values at UTC midnight.
package calendar

import "time"

// Calendar holds the set of weekdays that count as working days.
// The zero value treats Monday through Friday as working days.
type Calendar struct {
	working map[time.Weekday]bool
}

// New creates a calendar with the given working weekdays. With no
// arguments it returns the default Monday–Friday calendar.
func New(days ...time.Weekday) Calendar {
	if len(days) == 0 {
		return Calendar{}
	}
	working := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		working[d] = true
	}
	return Calendar{working: working}
}

// Date returns the UTC midnight time for the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to UTC midnight so that dates produced by
// parsers and by arithmetic compare with Equal.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

func (c Calendar) isWorking(wd time.Weekday) bool {
	if c.working == nil {
		return wd >= time.Monday && wd <= time.Friday
	}
	return c.working[wd]
}

// hasWorkingDay reports whether at least one weekday is a working day.
// Guards the walk loops against a calendar where no day ever counts.
func (c Calendar) hasWorkingDay() bool {
	if c.working == nil {
		return true
	}
	for _, ok := range c.working {
		if ok {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether t falls on a working weekday.
func (c Calendar) IsWorkingDay(t time.Time) bool {
	return c.isWorking(t.Weekday())
}

// Weekdays returns the working weekdays in Sunday-first order.
func (c Calendar) Weekdays() []time.Weekday {
	var days []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if c.isWorking(wd) {
			days = append(days, wd)
		}
	}
	return days
}

// AddWorkingDays returns the date n working days after d. Adding 0
// returns d unchanged: a duration of k working days spans
// [start, start + (k-1) working days], so callers deriving an end date
// pass k-1, and pass 1 for "the next working day after this date".
func (c Calendar) AddWorkingDays(d time.Time, n int) time.Time {
	if !c.hasWorkingDay() {
		return d
	}
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			remaining--
		}
	}
	return d
}

// SubWorkingDays returns the date n working days before d, stepping
// backward. Subtracting 0 returns d unchanged.
func (c Calendar) SubWorkingDays(d time.Time, n int) time.Time {
	if !c.hasWorkingDay() {
		return d
	}
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, -1)
		if c.IsWorkingDay(d) {
			remaining--
		}
	}
	return d
}

// CountWorkingDays returns the number of working days in [start, end]
// inclusive, or 0 if start is after end.
func (c Calendar) CountWorkingDays(start, end time.Time) int {
	if start.After(end) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}
