package control

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Repository owns a child directory's control_attempts.csv. Like the
// goal log it is append-only: rows are never rewritten or removed.
type Repository struct {
	layout store.Layout
}

// NewRepository creates a Repository over layout.
func NewRepository(layout store.Layout) *Repository {
	return &Repository{layout: layout}
}

// List returns every audit row for a child directory in append order.
// A missing file means no attempts yet.
func (r *Repository) List(childDir string) ([]model.ControlAttempt, error) {
	path := r.layout.ChildPath(childDir, store.AttemptsFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening attempts %s: %w", path, err)
	}
	defer f.Close()

	return ReadAttempts(path, f)
}

// NextID returns the id the next appended row should carry.
func (r *Repository) NextID(childDir string) (int64, error) {
	attempts, err := r.List(childDir)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, a := range attempts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1, nil
}

// Append adds one row to the log. Like the goal log, the file is
// rewritten whole through a temp file and rename so a crash never
// leaves a torn row; rows themselves are never removed or changed.
func (r *Repository) Append(childDir string, a model.ControlAttempt) error {
	if err := r.layout.EnsureChildDir(childDir); err != nil {
		return err
	}

	attempts, err := r.List(childDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteAttempts(&buf, append(attempts, a)); err != nil {
		return fmt.Errorf("encoding attempts: %w", err)
	}
	return store.WriteFileAtomic(r.layout.ChildPath(childDir, store.AttemptsFile), buf.Bytes())
}
