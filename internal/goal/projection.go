package goal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/model"
)

// Projection errors. They travel alongside the goal, not instead of
// it: a goal that cannot be forecast is still a goal the caller can
// display.
var (
	ErrAlreadyAchievable = errors.New("balance already covers the target amount")
	ErrNoSchedule        = errors.New("no allowance schedule configured")
	ErrInvalidSchedule   = errors.New("allowance schedule amount must be positive")
)

// DefaultHorizonDays is how far out a projected date may land before
// it is flagged as exceeding the horizon.
const DefaultHorizonDays = 365

// Projection is the forecast for an active goal: how much is missing,
// how many allowance paydays that takes, and when the last one lands.
type Projection struct {
	CurrentBalance decimal.Decimal
	TargetAmount   decimal.Decimal
	AmountNeeded   decimal.Decimal
	CyclesNeeded   int
	ProjectedDate  time.Time
	ExceedsHorizon bool
}

// Project forecasts when a goal completes given the current balance
// and a recurring allowance schedule. A nil schedule means none is
// configured. A projected date past the horizon is returned with
// ExceedsHorizon set rather than failing; what to make of a far-off
// goal is the caller's call.
func Project(balance, target decimal.Decimal, sched *model.AllowanceSchedule, asOf time.Time, horizonDays int) (Projection, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	needed := target.Sub(balance)
	if needed.Sign() <= 0 {
		return Projection{}, ErrAlreadyAchievable
	}
	if sched == nil || !sched.Active {
		return Projection{}, ErrNoSchedule
	}
	if sched.Amount.Sign() <= 0 {
		return Projection{}, ErrInvalidSchedule
	}

	cycles := int(needed.Div(sched.Amount).Ceil().IntPart())
	projected := sched.OccurrenceN(asOf, cycles)

	return Projection{
		CurrentBalance: balance,
		TargetAmount:   target,
		AmountNeeded:   needed,
		CyclesNeeded:   cycles,
		ProjectedDate:  projected,
		ExceedsHorizon: projected.After(asOf.AddDate(0, 0, horizonDays)),
	}, nil
}
