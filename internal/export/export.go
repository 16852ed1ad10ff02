// Package export renders ledgers into shareable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// StatementHeader is the header of an exported statement. Statements
// are for people, not for reimport: dates lose their time component
// and amounts keep their sign.
const StatementHeader = "date,description,amount,balance"

// Statement writes transactions as a statement CSV. Rows come out in
// the order given, which for a recalculated ledger is chronological.
func Statement(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(StatementHeader, ",")); err != nil {
		return fmt.Errorf("writing statement header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			store.FormatDate(tx.OccurredAt),
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.Balance.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing statement row for %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
