package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/model"
)

// Recompute returns the transactions ordered by occurrence time with
// every derived balance rewritten from a single left-to-right scan.
// The sort is stable, so same-instant rows keep their insertion order
// and recalculation stays deterministic. The input slice is not
// modified.
func Recompute(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})

	running := decimal.Zero
	for i := range out {
		running = running.Add(out[i].Amount)
		out[i].Balance = running
	}
	return out
}

// CurrentBalance returns the balance after the last transaction of an
// ordered sequence, or zero for an empty ledger.
func CurrentBalance(txs []model.Transaction) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	return txs[len(txs)-1].Balance
}
