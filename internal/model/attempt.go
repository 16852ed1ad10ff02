package model

import "time"

// ControlAttempt is one row in the append-only access-challenge audit
// log (control_attempts.csv). IDs are sequential per child.
type ControlAttempt struct {
	ID             int64
	AttemptedValue string
	Timestamp      time.Time
	Success        bool
}

// SanitizedValue returns the attempted value truncated for logging, so
// near-miss answers never land in full in a log line.
func (a ControlAttempt) SanitizedValue() string {
	if len(a.AttemptedValue) > 3 {
		return a.AttemptedValue[:3] + "..."
	}
	return "***"
}
