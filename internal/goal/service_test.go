package goal

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidbank-dev/kidbank/internal/allowance"
	"github.com/kidbank-dev/kidbank/internal/ledger"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

type fixture struct {
	svc        *Service
	txSvc      *ledger.Service
	allowances *allowance.Service
	layout     store.Layout
	child      model.Child
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	layout := store.NewLayout(t.TempDir())
	versioning := vcs.NewManager("Test", "test@local", slog.Default())
	txSvc := ledger.NewService(layout, versioning)
	allowances := allowance.NewService(layout, txSvc, versioning)
	svc := NewService(layout, txSvc, allowances, versioning, 0)
	return fixture{
		svc:        svc,
		txSvc:      txSvc,
		allowances: allowances,
		layout:     layout,
		child:      model.Child{ID: "child-1", Name: "Alice", Dir: "alice"},
	}
}

func (f fixture) deposit(t *testing.T, amount string) {
	t.Helper()
	_, err := f.txSvc.Add(f.child, dec(amount), "deposit", time.Time{})
	require.NoError(t, err)
}

func (f fixture) historyLen(t *testing.T) int {
	t.Helper()
	history, err := f.svc.History(f.child)
	require.NoError(t, err)
	return len(history)
}

func TestCreateAndStatus(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "15.50")
	_, err := f.allowances.Set(f.child, dec("5.00"), time.Saturday)
	require.NoError(t, err)

	status, err := f.svc.Create(f.child, "new bike", dec("40.00"))
	require.NoError(t, err)
	assert.Equal(t, model.GoalActive, status.Goal.State)
	require.NotNil(t, status.Projection)
	assert.True(t, status.Projection.AmountNeeded.Equal(dec("24.50")))
	assert.Equal(t, 5, status.Projection.CyclesNeeded)
	assert.NoError(t, status.ProjectionErr)

	got, err := f.svc.Current(f.child)
	require.NoError(t, err)
	assert.Equal(t, status.Goal.ID, got.Goal.ID)
	assert.Equal(t, "new bike", got.Goal.Description)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.child, "  ", dec("40.00"))
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = f.svc.Create(f.child, "bike", dec("0"))
	assert.ErrorIs(t, err, ErrInvalidTarget)

	long := make([]byte, maxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = f.svc.Create(f.child, string(long), dec("40.00"))
	assert.ErrorIs(t, err, ErrDescriptionTooLong)

	assert.Equal(t, 0, f.historyLen(t))
}

func TestCreateAlreadyAchievable(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "15.00")

	_, err := f.svc.Create(f.child, "bike", dec("10.00"))
	assert.ErrorIs(t, err, ErrAlreadyAchievable)
	assert.Equal(t, 0, f.historyLen(t))
}

func TestCreateSecondActiveGoalRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)
	require.Equal(t, 1, f.historyLen(t))

	_, err = f.svc.Create(f.child, "skateboard", dec("30.00"))
	assert.ErrorIs(t, err, ErrActiveGoalExists)
	assert.Equal(t, 1, f.historyLen(t), "rejected create must not add rows")
}

func TestStatusWithoutSchedule(t *testing.T) {
	f := newFixture(t)

	status, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)
	assert.Nil(t, status.Projection)
	assert.ErrorIs(t, status.ProjectionErr, ErrNoSchedule)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(f.child)
	require.NoError(t, err)
	assert.Equal(t, created.Goal.ID, cancelled.ID)
	assert.Equal(t, model.GoalCancelled, cancelled.State)

	_, err = f.svc.Current(f.child)
	assert.ErrorIs(t, err, ErrNoActiveGoal)

	// Both lifecycle rows survive in the log.
	assert.Equal(t, 2, f.historyLen(t))

	// A cancelled goal no longer blocks a new one.
	_, err = f.svc.Create(f.child, "skateboard", dec("30.00"))
	require.NoError(t, err)
	assert.Equal(t, 3, f.historyLen(t))
}

func TestCancelWithoutActiveGoal(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(f.child)
	assert.ErrorIs(t, err, ErrNoActiveGoal)
}

func TestAutoCompletion(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, "15.00")

	created, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)

	f.deposit(t, "25.00")

	status, err := f.svc.Current(f.child)
	require.NoError(t, err)
	assert.Equal(t, created.Goal.ID, status.Goal.ID)
	assert.Equal(t, model.GoalCompleted, status.Goal.State)
	assert.Nil(t, status.Projection)

	// The completion row was appended, and the goal is gone from the
	// active slot.
	assert.Equal(t, 2, f.historyLen(t))
	_, err = f.svc.Current(f.child)
	assert.ErrorIs(t, err, ErrNoActiveGoal)
}

func TestCorruptScheduleFailsStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)

	// A schedule file that exists but cannot be decoded is corruption,
	// not "no schedule configured".
	corrupt := allowance.Header + "\nchild-1,notmoney,6,true,2025-06-09,2025-06-09\n"
	require.NoError(t, f.layout.EnsureChildDir(f.child.Dir))
	require.NoError(t, os.WriteFile(f.layout.ChildPath(f.child.Dir, store.ScheduleFile), []byte(corrupt), 0o644))

	_, err = f.svc.Current(f.child)
	require.Error(t, err)
	var mre *store.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.NotErrorIs(t, err, ErrNoSchedule)
}

func TestCorruptGoalLogFailsCreate(t *testing.T) {
	f := newFixture(t)

	corrupt := Header + "\ngoal-1,child-1,bike,notmoney,active,2025-06-09,2025-06-09\n"
	require.NoError(t, f.layout.EnsureChildDir(f.child.Dir))
	require.NoError(t, os.WriteFile(f.layout.ChildPath(f.child.Dir, store.GoalsFile), []byte(corrupt), 0o644))

	_, err := f.svc.Create(f.child, "skateboard", dec("30.00"))
	var mre *store.MalformedRecordError
	require.ErrorAs(t, err, &mre)
}

func TestHistoryAppendOrder(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(f.child, "bike", dec("40.00"))
	require.NoError(t, err)
	_, err = f.svc.Cancel(f.child)
	require.NoError(t, err)
	second, err := f.svc.Create(f.child, "skateboard", dec("30.00"))
	require.NoError(t, err)

	history, err := f.svc.History(f.child)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, first.Goal.ID, history[0].ID)
	assert.Equal(t, model.GoalActive, history[0].State)
	assert.Equal(t, first.Goal.ID, history[1].ID)
	assert.Equal(t, model.GoalCancelled, history[1].State)
	assert.Equal(t, second.Goal.ID, history[2].ID)

	// Appends go through the atomic rewrite; no temp files survive.
	entries, err := os.ReadDir(f.layout.ChildDir(f.child.Dir))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "leftover temp file %s", e.Name())
	}
}
