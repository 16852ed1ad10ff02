package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/id"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

// Validation errors. They are returned before any write is attempted,
// so a rejected call leaves the ledger untouched.
var (
	ErrZeroAmount       = errors.New("transaction amount cannot be zero")
	ErrEmptyDescription = errors.New("transaction description cannot be empty")
	ErrEmptySelection   = errors.New("no transaction ids given")
)

// DeletionResult reports the outcome of a delete call. Deletion has
// partial-failure semantics: ids that exist are removed, ids that do
// not are reported back, and the remainder is recalculated in a single
// pass.
type DeletionResult struct {
	Deleted     int
	NotFoundIDs []string
	NewBalance  decimal.Decimal
}

// Service implements the transaction use cases over one Repository.
// Every call is synchronous: it blocks until the read, mutation,
// rewrite, and best-effort versioning commit are done.
type Service struct {
	layout store.Layout
	repo   *Repository
	vcs    *vcs.Manager
	now    func() time.Time
}

// NewService creates a transaction Service.
func NewService(layout store.Layout, versioning *vcs.Manager) *Service {
	return &Service{
		layout: layout,
		repo:   NewRepository(layout),
		vcs:    versioning,
		now:    store.Now,
	}
}

// Add records a deposit (positive amount) or spend (negative amount)
// for a child and returns the stored transaction with its recalculated
// balance. A zero when means "now".
func (s *Service) Add(child model.Child, amount decimal.Decimal, description string, when time.Time) (model.Transaction, error) {
	if amount.IsZero() {
		return model.Transaction{}, ErrZeroAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Transaction{}, ErrEmptyDescription
	}
	if when.IsZero() {
		when = s.now()
	}

	tx := model.Transaction{
		ID:          id.NewTransaction(amount, s.now()),
		ChildID:     child.ID,
		Amount:      amount,
		Description: description,
		OccurredAt:  when,
	}

	verb := "added"
	if amount.Sign() < 0 {
		verb = "spent"
	}
	action := fmt.Sprintf("%s $%s (%s)", verb, amount.Abs().StringFixed(2), description)

	inserted, err := s.InsertMany(child, []model.Transaction{tx}, action)
	if err != nil {
		return model.Transaction{}, err
	}
	return inserted[0], nil
}

// InsertMany appends a batch of transactions in one
// recompute-and-rewrite pass and records one versioning commit with the
// given action description. The returned transactions carry their
// recalculated balances, in input order.
func (s *Service) InsertMany(child model.Child, txs []model.Transaction, action string) ([]model.Transaction, error) {
	existing, err := s.repo.List(child.Dir)
	if err != nil {
		return nil, err
	}

	all := Recompute(append(existing, txs...))
	if err := s.repo.ReplaceAll(child.Dir, all); err != nil {
		return nil, err
	}

	s.vcs.Record(s.layout.ChildDir(child.Dir), store.LedgerFile, "Update transactions: "+action)

	byID := make(map[string]model.Transaction, len(all))
	for _, tx := range all {
		byID[tx.ID] = tx
	}
	inserted := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		inserted[i] = byID[tx.ID]
	}
	return inserted, nil
}

// Delete removes the given transaction ids. Ids that do not exist are
// reported in the result without failing the call; if none of the ids
// exist the ledger file is left untouched.
func (s *Service) Delete(child model.Child, ids []string) (DeletionResult, error) {
	if len(ids) == 0 {
		return DeletionResult{}, ErrEmptySelection
	}

	txs, err := s.repo.List(child.Dir)
	if err != nil {
		return DeletionResult{}, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, txID := range ids {
		wanted[txID] = true
	}

	var remaining []model.Transaction
	deleted := 0
	for _, tx := range txs {
		if wanted[tx.ID] {
			delete(wanted, tx.ID)
			deleted++
			continue
		}
		remaining = append(remaining, tx)
	}

	var notFound []string
	for _, txID := range ids {
		if wanted[txID] {
			notFound = append(notFound, txID)
		}
	}

	if deleted == 0 {
		return DeletionResult{NotFoundIDs: notFound, NewBalance: CurrentBalance(txs)}, nil
	}

	remaining = Recompute(remaining)
	if err := s.repo.ReplaceAll(child.Dir, remaining); err != nil {
		return DeletionResult{}, err
	}

	noun := "entries"
	if deleted == 1 {
		noun = "entry"
	}
	s.vcs.Record(s.layout.ChildDir(child.Dir), store.LedgerFile,
		fmt.Sprintf("Update transactions: deleted %d %s", deleted, noun))

	return DeletionResult{
		Deleted:     deleted,
		NotFoundIDs: notFound,
		NewBalance:  CurrentBalance(remaining),
	}, nil
}

// List returns a child's full ledger ordered by occurrence time.
func (s *Service) List(child model.Child) ([]model.Transaction, error) {
	return s.repo.List(child.Dir)
}

// Get returns one transaction by ID.
func (s *Service) Get(child model.Child, txID string) (model.Transaction, error) {
	return s.repo.Get(child.Dir, txID)
}

// CurrentBalance returns the child's balance after the most recent
// transaction.
func (s *Service) CurrentBalance(child model.Child) (decimal.Decimal, error) {
	txs, err := s.repo.List(child.Dir)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return CurrentBalance(txs), nil
}
