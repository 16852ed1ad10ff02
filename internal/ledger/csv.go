package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Header is the CSV header for transactions.csv.
const Header = "id,child_id,amount,description,occurred_at,balance"

const (
	numFields   = 6
	colID       = 0
	colChildID  = 1
	colAmount   = 2
	colDesc     = 3
	colOccurred = 4
	colBalance  = 5
)

// ReadTransactions reads all transactions from a transactions.csv
// reader. name is used in decode errors so corruption reports point at
// the offending file and row.
func ReadTransactions(name string, r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &store.MalformedRecordError{Path: name, Row: 1, Err: err}
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, &store.MalformedRecordError{Path: name, Row: i + 2, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions (including header) to a writer.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colChildID] = tx.ChildID
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colDesc] = tx.Description
	row[colOccurred] = store.FormatTimestamp(tx.OccurredAt)
	row[colBalance] = tx.Balance.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	occurred, err := store.ParseTimestamp(record[colOccurred])
	if err != nil {
		return model.Transaction{}, err
	}

	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return model.Transaction{
		ID:          record[colID],
		ChildID:     record[colChildID],
		Amount:      amount,
		Description: record[colDesc],
		OccurredAt:  occurred,
		Balance:     balance,
	}, nil
}
