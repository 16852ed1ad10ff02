// Package id generates and parses the string identifiers used across
// the data files. Transaction IDs carry their direction and creation
// time so a ledger row is self-describing even out of context.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	kindIncome  = "in"
	kindExpense = "ex"
	// KindAllowance marks transactions issued by the allowance
	// scheduler, so re-runs can tell them apart from manual deposits.
	KindAllowance = "al"
)

// NewTransaction returns an ID like "in-1718365800123-af3c": direction
// prefix, creation time in unix millis, random suffix.
func NewTransaction(amount decimal.Decimal, at time.Time) string {
	kind := kindIncome
	if amount.Sign() < 0 {
		kind = kindExpense
	}
	return format(kind, at)
}

// NewAllowance returns an allowance transaction ID for the given payday.
func NewAllowance(at time.Time) string {
	return format(KindAllowance, at)
}

// NewGoal returns a goal ID.
func NewGoal() string {
	return "goal-" + uuid.NewString()
}

// NewChild returns a child ID.
func NewChild() string {
	return "child-" + uuid.NewString()
}

func format(kind string, at time.Time) string {
	return fmt.Sprintf("%s-%d-%s", kind, at.UnixMilli(), uuid.NewString()[:4])
}

// ParseTransaction splits a transaction ID into its direction prefix
// and creation time.
func ParseTransaction(id string) (kind string, at time.Time, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return "", time.Time{}, fmt.Errorf("invalid transaction ID format: %q", id)
	}
	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid timestamp in transaction ID %q: %w", id, err)
	}
	return parts[0], time.UnixMilli(millis), nil
}

// IsAllowance reports whether a transaction ID was minted by the
// allowance scheduler.
func IsAllowance(id string) bool {
	return strings.HasPrefix(id, KindAllowance+"-")
}
