package rangedoppler

import "fmt"

// MTIMode selects the clutter cancellation applied before the 2-D transform.
type MTIMode int

const (
	MTINone MTIMode = iota
	MTITwoPulse
	MTIThreePulse
)

// Passes returns the number of cancellation passes the mode applies. Each
// pass consumes one chirp row.
func (m MTIMode) Passes() int {
	switch m {
	case MTITwoPulse:
		return 1
	case MTIThreePulse:
		return 2
	default:
		return 0
	}
}

// String returns the configuration name of the mode.
func (m MTIMode) String() string {
	switch m {
	case MTINone:
		return "none"
	case MTITwoPulse:
		return "2pulse"
	case MTIThreePulse:
		return "3pulse"
	default:
		return fmt.Sprintf("MTIMode(%d)", int(m))
	}
}

// ParseMTIMode converts a configuration string into an MTIMode.
func ParseMTIMode(s string) (MTIMode, error) {
	switch s {
	case "none", "":
		return MTINone, nil
	case "2pulse":
		return MTITwoPulse, nil
	case "3pulse":
		return MTIThreePulse, nil
	default:
		return 0, fmt.Errorf("rangedoppler: unknown MTI mode %q", s)
	}
}
