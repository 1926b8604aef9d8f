package holdings

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/holdings/date"
)

// Calendar is an ordered, duplicate-free sequence of trading days.
//
// The calendar is authoritative: only its days receive a holdings snapshot.
type Calendar struct {
	days []date.Date
}

// NewCalendar returns a calendar of the given days, which must be strictly
// increasing.
func NewCalendar(days ...date.Date) (Calendar, error) {
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			return Calendar{}, fmt.Errorf("%w: %s follows %s", ErrCalendarOrder, days[i], days[i-1])
		}
	}
	return Calendar{days: slices.Clone(days)}, nil
}

// Len returns the number of trading days.
func (c Calendar) Len() int { return len(c.days) }

// First returns the first trading day, or the zero date.
func (c Calendar) First() date.Date {
	if len(c.days) == 0 {
		return date.Date{}
	}
	return c.days[0]
}

// Last returns the last trading day, or the zero date.
func (c Calendar) Last() date.Date {
	if len(c.days) == 0 {
		return date.Date{}
	}
	return c.days[len(c.days)-1]
}

// Range returns the range from the first to the last trading day.
func (c Calendar) Range() date.Range { return date.Range{From: c.First(), To: c.Last()} }

// Days returns an iterator over the trading days, in order.
func (c Calendar) Days() iter.Seq[date.Date] { return slices.Values(c.days) }

// Contains reports whether day is a trading day.
func (c Calendar) Contains(day date.Date) bool {
	_, found := slices.BinarySearchFunc(c.days, day, date.Date.Compare)
	return found
}

// Next returns the first trading day on or after day.
func (c Calendar) Next(day date.Date) (date.Date, bool) {
	i, _ := slices.BinarySearchFunc(c.days, day, date.Date.Compare)
	if i == len(c.days) {
		return date.Date{}, false
	}
	return c.days[i], true
}

// Window returns the trading days within r.
func (c Calendar) Window(r date.Range) Calendar {
	var days []date.Date
	for _, d := range c.days {
		if r.Contains(d) {
			days = append(days, d)
		}
	}
	return Calendar{days: days}
}
