package goal

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Repository owns a child directory's goals.csv. The file is strictly
// append-only: there is no store or delete, only Append, so the row
// count can never decrease and the full lifecycle history survives
// every operation.
type Repository struct {
	layout store.Layout
}

// NewRepository creates a Repository over layout.
func NewRepository(layout store.Layout) *Repository {
	return &Repository{layout: layout}
}

// History returns every goal row for a child directory in append
// order. A missing file means no goals yet.
func (r *Repository) History(childDir string) ([]model.Goal, error) {
	path := r.layout.ChildPath(childDir, store.GoalsFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening goals %s: %w", path, err)
	}
	defer f.Close()

	return ReadGoals(path, f)
}

// Append adds one row to the log. The log is rewritten whole through a
// temp file and rename, so a crash mid-write leaves the previous rows
// intact instead of a torn last line. The append-only guarantee is
// semantic: no call path ever removes or rewrites an existing row.
func (r *Repository) Append(childDir string, g model.Goal) error {
	if err := r.layout.EnsureChildDir(childDir); err != nil {
		return err
	}

	history, err := r.History(childDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteGoals(&buf, append(history, g)); err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	return store.WriteFileAtomic(r.layout.ChildPath(childDir, store.GoalsFile), buf.Bytes())
}

// Current resolves the child's single active goal from the history:
// the effective state of each goal is its last row, and at most one
// goal may be effectively active.
func (r *Repository) Current(childDir string) (model.Goal, error) {
	history, err := r.History(childDir)
	if err != nil {
		return model.Goal{}, err
	}

	latest := make(map[string]model.Goal, len(history))
	var order []string
	for _, g := range history {
		if _, seen := latest[g.ID]; !seen {
			order = append(order, g.ID)
		}
		latest[g.ID] = g
	}

	for _, goalID := range order {
		if g := latest[goalID]; g.State == model.GoalActive {
			return g, nil
		}
	}
	return model.Goal{}, fmt.Errorf("active goal: %w", store.ErrNotFound)
}
