package allowance

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Repository owns a child directory's allowance_schedule.csv.
type Repository struct {
	layout store.Layout
}

// NewRepository creates a Repository over layout.
func NewRepository(layout store.Layout) *Repository {
	return &Repository{layout: layout}
}

// Get reads the schedule for a child directory.
func (r *Repository) Get(childDir string) (model.AllowanceSchedule, error) {
	path := r.layout.ChildPath(childDir, store.ScheduleFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.AllowanceSchedule{}, fmt.Errorf("allowance schedule: %w", store.ErrNotFound)
	}
	if err != nil {
		return model.AllowanceSchedule{}, fmt.Errorf("opening schedule %s: %w", path, err)
	}
	defer f.Close()

	return ReadSchedule(path, f)
}

// Store atomically rewrites the schedule file.
func (r *Repository) Store(childDir string, s model.AllowanceSchedule) error {
	if err := r.layout.EnsureChildDir(childDir); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, s); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return store.WriteFileAtomic(r.layout.ChildPath(childDir, store.ScheduleFile), buf.Bytes())
}
