package allowance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/id"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

var ErrInvalidAmount = errors.New("allowance amount must be positive")

// AllowanceDescription is the ledger description used for scheduled
// allowance payments.
const AllowanceDescription = "Weekly allowance"

// TransactionSink is the slice of the transaction service the
// allowance scheduler needs to issue payments.
type TransactionSink interface {
	List(child model.Child) ([]model.Transaction, error)
	InsertMany(child model.Child, txs []model.Transaction, action string) ([]model.Transaction, error)
}

// Service manages a child's recurring allowance schedule and issues
// missed payments retroactively. The schedule itself is pure
// configuration; money only moves through the ledger.
type Service struct {
	layout store.Layout
	repo   *Repository
	ledger TransactionSink
	vcs    *vcs.Manager
	now    func() time.Time
}

// NewService creates an allowance Service.
func NewService(layout store.Layout, ledger TransactionSink, versioning *vcs.Manager) *Service {
	return &Service{
		layout: layout,
		repo:   NewRepository(layout),
		ledger: ledger,
		vcs:    versioning,
		now:    store.Now,
	}
}

// Set creates or replaces the child's schedule: amount paid every week
// on weekday. CreatedAt survives replacement so retroactive issuance
// keeps its original starting point.
func (s *Service) Set(child model.Child, amount decimal.Decimal, weekday time.Weekday) (model.AllowanceSchedule, error) {
	if amount.Sign() <= 0 {
		return model.AllowanceSchedule{}, ErrInvalidAmount
	}

	now := s.now()
	sched := model.AllowanceSchedule{
		ChildID:   child.ID,
		Amount:    amount,
		Weekday:   weekday,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	existing, err := s.repo.Get(child.Dir)
	switch {
	case err == nil:
		sched.CreatedAt = existing.CreatedAt
	case errors.Is(err, store.ErrNotFound):
		// First schedule for this child.
	default:
		// Never overwrite a file that exists but cannot be read.
		return model.AllowanceSchedule{}, err
	}

	if err := s.repo.Store(child.Dir, sched); err != nil {
		return model.AllowanceSchedule{}, err
	}

	s.vcs.Record(s.layout.ChildDir(child.Dir), store.ScheduleFile,
		fmt.Sprintf("Update allowance_schedule: $%s weekly on %s", amount.StringFixed(2), weekday))
	return sched, nil
}

// Get returns the child's schedule, or store.ErrNotFound if none is
// configured.
func (s *Service) Get(child model.Child) (model.AllowanceSchedule, error) {
	return s.repo.Get(child.Dir)
}

// Disable marks the schedule inactive without deleting its history.
func (s *Service) Disable(child model.Child) (model.AllowanceSchedule, error) {
	sched, err := s.repo.Get(child.Dir)
	if err != nil {
		return model.AllowanceSchedule{}, err
	}

	sched.Active = false
	sched.UpdatedAt = s.now()
	if err := s.repo.Store(child.Dir, sched); err != nil {
		return model.AllowanceSchedule{}, err
	}

	s.vcs.Record(s.layout.ChildDir(child.Dir), store.ScheduleFile, "Update allowance_schedule: disabled")
	return sched, nil
}

// IssuePending adds a ledger transaction for every scheduled payday
// between the schedule's creation and asOf that has not been issued
// yet. The whole batch lands in one recompute-and-rewrite pass, so the
// call is idempotent and cheap to run on every startup. A zero asOf
// means "now".
func (s *Service) IssuePending(child model.Child, asOf time.Time) ([]model.Transaction, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	sched, err := s.repo.Get(child.Dir)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sched.Active {
		return nil, nil
	}

	existing, err := s.ledger.List(child)
	if err != nil {
		return nil, err
	}
	issued := make(map[string]bool)
	for _, tx := range existing {
		if id.IsAllowance(tx.ID) {
			issued[store.FormatDate(tx.OccurredAt)] = true
		}
	}

	var pending []model.Transaction
	for occ := sched.NextOccurrence(sched.CreatedAt); !occ.After(asOf); occ = occ.AddDate(0, 0, 7) {
		if issued[store.FormatDate(occ)] {
			continue
		}
		pending = append(pending, model.Transaction{
			ID:          id.NewAllowance(occ),
			ChildID:     child.ID,
			Amount:      sched.Amount,
			Description: AllowanceDescription,
			OccurredAt:  occ,
		})
	}
	if len(pending) == 0 {
		return nil, nil
	}

	noun := "payments"
	if len(pending) == 1 {
		noun = "payment"
	}
	return s.ledger.InsertMany(child, pending, fmt.Sprintf("issued %d allowance %s", len(pending), noun))
}
