package child

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kidbank-dev/kidbank/internal/id"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

var (
	ErrEmptyName     = errors.New("child name cannot be empty")
	ErrChildExists   = errors.New("a child with that name already exists")
	ErrNoActiveChild = errors.New("no active child selected")
)

// Service implements child profile use cases and tracks the active
// child through the global config. The active child is resolved once
// per session and passed explicitly into every other service call; no
// package holds it as mutable global state.
type Service struct {
	layout store.Layout
	repo   *Repository
	global *store.GlobalConfigRepository
	vcs    *vcs.Manager
	now    func() time.Time
}

// NewService creates a child Service.
func NewService(layout store.Layout, versioning *vcs.Manager) *Service {
	return &Service{
		layout: layout,
		repo:   NewRepository(layout),
		global: store.NewGlobalConfigRepository(layout),
		vcs:    versioning,
		now:    store.Now,
	}
}

// Create adds a new child profile. The directory name is derived from
// the display name once, here, and never changes afterwards.
func (s *Service) Create(name string, birthdate time.Time) (model.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Child{}, ErrEmptyName
	}
	dir := store.SafeDirName(name)
	if dir == "" {
		return model.Child{}, fmt.Errorf("name %q: %w", name, ErrEmptyName)
	}
	if _, err := s.repo.Get(dir); err == nil {
		return model.Child{}, fmt.Errorf("%q: %w", name, ErrChildExists)
	}

	now := s.now()
	c := model.Child{
		ID:        id.NewChild(),
		Name:      name,
		Birthdate: birthdate,
		Dir:       dir,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Store(c); err != nil {
		return model.Child{}, err
	}

	s.vcs.Record(s.layout.ChildDir(dir), store.ChildFile, "Update child: created profile for "+name)
	return c, nil
}

// Rename changes a child's display name. The directory name stays as
// it was at creation.
func (s *Service) Rename(c model.Child, newName string) (model.Child, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return model.Child{}, ErrEmptyName
	}

	c.Name = newName
	c.UpdatedAt = s.now()
	if err := s.repo.Store(c); err != nil {
		return model.Child{}, err
	}

	s.vcs.Record(s.layout.ChildDir(c.Dir), store.ChildFile, "Update child: renamed to "+newName)
	return c, nil
}

// List returns all children sorted by name.
func (s *Service) List() ([]model.Child, error) {
	return s.repo.List()
}

// Get returns the child stored in a directory.
func (s *Service) Get(dir string) (model.Child, error) {
	return s.repo.Get(dir)
}

// Active resolves the currently selected child from the global config.
func (s *Service) Active() (model.Child, error) {
	cfg, err := s.global.Load()
	if err != nil {
		return model.Child{}, err
	}
	if cfg.ActiveChildDir == "" {
		return model.Child{}, ErrNoActiveChild
	}
	return s.repo.Get(cfg.ActiveChildDir)
}

// SetActive points the global config at a child.
func (s *Service) SetActive(c model.Child) error {
	return s.global.SetActiveChild(c.Dir)
}
