package goal

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

// Validation errors, returned before any row is appended.
var (
	ErrEmptyDescription   = errors.New("goal description cannot be empty")
	ErrDescriptionTooLong = errors.New("goal description cannot exceed 256 characters")
	ErrInvalidTarget      = errors.New("goal target amount must be positive")
	ErrActiveGoalExists   = errors.New("an active goal already exists; cancel or complete it first")
	ErrNoActiveGoal       = errors.New("no active goal")
)

const maxDescriptionLen = 256

// BalanceSource is the slice of the transaction service the goal
// service needs.
type BalanceSource interface {
	CurrentBalance(child model.Child) (decimal.Decimal, error)
}

// ScheduleSource is the slice of the allowance service the goal
// service needs.
type ScheduleSource interface {
	Get(child model.Child) (model.AllowanceSchedule, error)
}

// Status is a goal together with its forecast. ProjectionErr is not a
// failure of the call: the goal exists either way, it just cannot be
// forecast yet.
type Status struct {
	Goal          model.Goal
	Projection    *Projection
	ProjectionErr error
}

// Service implements the goal use cases: create, cancel, automatic
// completion, and history. All lifecycle changes are appended rows.
type Service struct {
	layout      store.Layout
	repo        *Repository
	balances    BalanceSource
	schedules   ScheduleSource
	vcs         *vcs.Manager
	horizonDays int
	now         func() time.Time
}

// NewService creates a goal Service. horizonDays <= 0 selects the
// default horizon.
func NewService(layout store.Layout, balances BalanceSource, schedules ScheduleSource, versioning *vcs.Manager, horizonDays int) *Service {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Service{
		layout:      layout,
		repo:        NewRepository(layout),
		balances:    balances,
		schedules:   schedules,
		vcs:         versioning,
		horizonDays: horizonDays,
		now:         store.Now,
	}
}

// Create starts a new active goal for the child. It fails with
// ErrAlreadyAchievable when the current balance already covers the
// target, and with ErrActiveGoalExists while another goal is active;
// in both cases nothing is written.
func (s *Service) Create(child model.Child, description string, target decimal.Decimal) (Status, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Status{}, ErrEmptyDescription
	}
	if len(description) > maxDescriptionLen {
		return Status{}, ErrDescriptionTooLong
	}
	if target.Sign() <= 0 {
		return Status{}, ErrInvalidTarget
	}

	if _, err := s.repo.Current(child.Dir); err == nil {
		return Status{}, ErrActiveGoalExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return Status{}, err
	}

	balance, err := s.balances.CurrentBalance(child)
	if err != nil {
		return Status{}, err
	}
	if balance.GreaterThanOrEqual(target) {
		return Status{}, ErrAlreadyAchievable
	}

	now := s.now()
	g := model.Goal{
		ID:           id.NewGoal(),
		ChildID:      child.ID,
		Description:  description,
		TargetAmount: target,
		State:        model.GoalActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Append(child.Dir, g); err != nil {
		return Status{}, err
	}

	s.vcs.Record(s.layout.ChildDir(child.Dir), store.GoalsFile,
		fmt.Sprintf("Update goals: created %q ($%s)", description, target.StringFixed(2)))

	return s.withProjection(child, g, balance)
}

// Current returns the child's active goal with its forecast. When the
// balance has reached the target it first appends the automatic
// completion row, so a reached goal is never reported as still active.
func (s *Service) Current(child model.Child) (Status, error) {
	g, err := s.repo.Current(child.Dir)
	if errors.Is(err, store.ErrNotFound) {
		return Status{}, ErrNoActiveGoal
	}
	if err != nil {
		return Status{}, err
	}

	balance, err := s.balances.CurrentBalance(child)
	if err != nil {
		return Status{}, err
	}

	if balance.GreaterThanOrEqual(g.TargetAmount) {
		g.State = model.GoalCompleted
		g.UpdatedAt = s.now()
		if err := s.repo.Append(child.Dir, g); err != nil {
			return Status{}, err
		}
		s.vcs.Record(s.layout.ChildDir(child.Dir), store.GoalsFile,
			fmt.Sprintf("Update goals: completed %q", g.Description))
		return Status{Goal: g}, nil
	}

	return s.withProjection(child, g, balance)
}

// Cancel ends the active goal by appending a cancelled row.
func (s *Service) Cancel(child model.Child) (model.Goal, error) {
	g, err := s.repo.Current(child.Dir)
	if errors.Is(err, store.ErrNotFound) {
		return model.Goal{}, ErrNoActiveGoal
	}
	if err != nil {
		return model.Goal{}, err
	}

	g.State = model.GoalCancelled
	g.UpdatedAt = s.now()
	if err := s.repo.Append(child.Dir, g); err != nil {
		return model.Goal{}, err
	}

	s.vcs.Record(s.layout.ChildDir(child.Dir), store.GoalsFile,
		fmt.Sprintf("Update goals: cancelled %q", g.Description))
	return g, nil
}

// History returns every goal row for the child in append order.
func (s *Service) History(child model.Child) ([]model.Goal, error) {
	return s.repo.History(child.Dir)
}

func (s *Service) withProjection(child model.Child, g model.Goal, balance decimal.Decimal) (Status, error) {
	var sched *model.AllowanceSchedule
	got, err := s.schedules.Get(child)
	switch {
	case err == nil:
		sched = &got
	case errors.Is(err, store.ErrNotFound):
		// No schedule configured; Project reports it as ErrNoSchedule.
	default:
		// A schedule that exists but cannot be read is corruption,
		// not a missing forecast. Fail the call.
		return Status{}, err
	}

	proj, err := Project(balance, g.TargetAmount, sched, s.now(), s.horizonDays)
	if err != nil {
		return Status{Goal: g, ProjectionErr: err}, nil
	}
	return Status{Goal: g, Projection: &proj}, nil
}
