package child

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Repository owns the child.csv profile files. Children are not kept
// in a central index; they are discovered by scanning the base
// directory for profile files.
type Repository struct {
	layout store.Layout
}

// NewRepository creates a Repository over layout.
func NewRepository(layout store.Layout) *Repository {
	return &Repository{layout: layout}
}

// Get reads the profile stored in the given child directory.
func (r *Repository) Get(dir string) (model.Child, error) {
	path := r.layout.ChildPath(dir, store.ChildFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Child{}, fmt.Errorf("child %s: %w", dir, store.ErrNotFound)
	}
	if err != nil {
		return model.Child{}, fmt.Errorf("opening profile %s: %w", path, err)
	}
	defer f.Close()

	c, err := ReadChild(path, f)
	if err != nil {
		return model.Child{}, err
	}
	c.Dir = dir
	return c, nil
}

// GetByID finds a child by ID across all child directories.
func (r *Repository) GetByID(childID string) (model.Child, error) {
	children, err := r.List()
	if err != nil {
		return model.Child{}, err
	}
	for _, c := range children {
		if c.ID == childID {
			return c, nil
		}
	}
	return model.Child{}, fmt.Errorf("child %s: %w", childID, store.ErrNotFound)
}

// List discovers all children under the base directory, sorted by name.
func (r *Repository) List() ([]model.Child, error) {
	dirs, err := r.layout.ChildDirs()
	if err != nil {
		return nil, err
	}

	children := make([]model.Child, 0, len(dirs))
	for _, dir := range dirs {
		c, err := r.Get(dir)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

// Store atomically rewrites the profile file in c.Dir.
func (r *Repository) Store(c model.Child) error {
	if err := r.layout.EnsureChildDir(c.Dir); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteChild(&buf, c); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return store.WriteFileAtomic(r.layout.ChildPath(c.Dir, store.ChildFile), buf.Bytes())
}
