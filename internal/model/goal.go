package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GoalState is the lifecycle state of a savings goal.
type GoalState string

const (
	GoalActive    GoalState = "active"
	GoalCancelled GoalState = "cancelled"
	GoalCompleted GoalState = "completed"
)

// ParseGoalState converts a stored state string back to a GoalState.
func ParseGoalState(s string) (GoalState, error) {
	switch GoalState(s) {
	case GoalActive, GoalCancelled, GoalCompleted:
		return GoalState(s), nil
	}
	return "", fmt.Errorf("unknown goal state %q", s)
}

// Goal is one row in a child's goals.csv. The file is append-only: a
// state transition appends a new row with the same ID and a later
// UpdatedAt, so the full lifecycle history is retained. The effective
// state of a goal is its most recent row.
type Goal struct {
	ID           string
	ChildID      string
	Description  string
	TargetAmount decimal.Decimal
	State        GoalState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
