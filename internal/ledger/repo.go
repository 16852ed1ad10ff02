package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Repository owns a child directory's transactions.csv. Every write is
// a full load-mutate-rewrite cycle: balances are derived fields that
// must be rewritten on every record anyway, and per-child volume is
// small enough that rewriting the whole file is cheaper than being
// clever.
type Repository struct {
	layout store.Layout
}

// NewRepository creates a Repository over layout.
func NewRepository(layout store.Layout) *Repository {
	return &Repository{layout: layout}
}

// List returns all transactions for a child directory in stored
// (occurrence) order. A missing file is an empty ledger.
func (r *Repository) List(childDir string) ([]model.Transaction, error) {
	path := r.layout.ChildPath(childDir, store.LedgerFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	return ReadTransactions(path, f)
}

// Get returns one transaction by ID.
func (r *Repository) Get(childDir, txID string) (model.Transaction, error) {
	txs, err := r.List(childDir)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, tx := range txs {
		if tx.ID == txID {
			return tx, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s: %w", txID, store.ErrNotFound)
}

// ReplaceAll atomically rewrites the whole ledger file with txs.
func (r *Repository) ReplaceAll(childDir string, txs []model.Transaction) error {
	if err := r.layout.EnsureChildDir(childDir); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteTransactions(&buf, txs); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	return store.WriteFileAtomic(r.layout.ChildPath(childDir, store.LedgerFile), buf.Bytes())
}
