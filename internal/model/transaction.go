package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row in a child's transactions.csv.
// Amount is signed: positive = money in, negative = money out.
// Balance is derived: it is recomputed over the whole ledger after every
// insert or delete and stored so reads never have to re-sum.
type Transaction struct {
	ID          string
	ChildID     string
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	Balance     decimal.Decimal
}

// IsDeposit reports whether the transaction adds money.
func (t Transaction) IsDeposit() bool {
	return t.Amount.Sign() > 0
}
