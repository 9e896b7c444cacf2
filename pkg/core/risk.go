package core

import (
	"fmt"
	"strings"
)

// Risk represents the sensitivity rating of a call's arguments
type Risk int

const (
	RiskNone Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// String returns the string representation of risk
func (r Risk) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Label returns a formatted label for display
func (r Risk) Label() string {
	switch r {
	case RiskNone:
		return "NONE"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// ParseRisk converts a string to Risk
func ParseRisk(s string) (Risk, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "n":
		return RiskNone, nil
	case "low", "l":
		return RiskLow, nil
	case "medium", "med", "m":
		return RiskMedium, nil
	case "high", "h":
		return RiskHigh, nil
	default:
		return RiskNone, fmt.Errorf("unknown risk level: %q", s)
	}
}

// IsAtLeast returns true if this risk is at least as severe as other
func (r Risk) IsAtLeast(other Risk) bool {
	return r >= other
}

// Max returns the higher of two risk levels
func (r Risk) Max(other Risk) Risk {
	if other > r {
		return other
	}
	return r
}
