package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceSchedule is the recurring income configuration stored in
// allowance_schedule.csv: a fixed amount paid once a week on Weekday.
type AllowanceSchedule struct {
	ChildID   string
	Amount    decimal.Decimal
	Weekday   time.Weekday
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextOccurrence returns the first scheduled payday strictly after t.
func (s AllowanceSchedule) NextOccurrence(t time.Time) time.Time {
	d := t.AddDate(0, 0, 1)
	for d.Weekday() != s.Weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// OccurrenceN returns the n-th scheduled payday strictly after t (n >= 1).
func (s AllowanceSchedule) OccurrenceN(t time.Time, n int) time.Time {
	return s.NextOccurrence(t).AddDate(0, 0, 7*(n-1))
}
