package holdings

import "fmt"

// CalendarPolicy defines what happens to a transaction dated on a day that is
// not in the trading calendar.
type CalendarPolicy int

const (
	// ShiftForward applies the transaction on the next trading day and records an Adjustment.
	ShiftForward CalendarPolicy = iota
	// Reject fails the fill with a *CalendarGapError.
	Reject
)

func (p CalendarPolicy) String() string {
	switch p {
	case ShiftForward:
		return "shift"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseCalendarPolicy parses a string into a CalendarPolicy.
func ParseCalendarPolicy(s string) (CalendarPolicy, error) {
	switch s {
	case "shift", "":
		return ShiftForward, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("unknown calendar policy: %q", s)
	}
}
