package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kidbank-dev/kidbank/internal/allowance"
	"github.com/kidbank-dev/kidbank/internal/child"
	"github.com/kidbank-dev/kidbank/internal/config"
	"github.com/kidbank-dev/kidbank/internal/control"
	"github.com/kidbank-dev/kidbank/internal/goal"
	"github.com/kidbank-dev/kidbank/internal/ledger"
	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

// app holds the wired service graph for one CLI invocation.
type app struct {
	dataDir    string
	cfg        *config.Config
	layout     store.Layout
	children   *child.Service
	ledger     *ledger.Service
	allowances *allowance.Service
	goals      *goal.Service
	control    *control.Service
}

// newApp resolves the data directory, loads kidbank.yaml, and wires
// every service. Called at the top of each RunE.
func newApp(dataDirFlag string) (*app, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	dataDir := config.DataDir(dataDirFlag, filepath.Join(home, ".kidbank"))

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	var versioning *vcs.Manager
	if cfg.Git.AutoCommit {
		versioning = vcs.NewManager(cfg.Git.AuthorName, cfg.Git.AuthorEmail, slog.Default())
	} else {
		versioning = vcs.NewDisabled()
	}

	layout := store.NewLayout(dataDir)
	txSvc := ledger.NewService(layout, versioning)
	allowances := allowance.NewService(layout, txSvc, versioning)

	return &app{
		dataDir:    dataDir,
		cfg:        cfg,
		layout:     layout,
		children:   child.NewService(layout, versioning),
		ledger:     txSvc,
		allowances: allowances,
		goals:      goal.NewService(layout, txSvc, allowances, versioning, cfg.Goals.HorizonDays),
		control:    control.NewService(layout, versioning, cfg.Control.Answer),
	}, nil
}

// activeChild resolves the selected child and issues any allowance
// payments that came due since the last run, so balances are current
// before the command's own work.
func (a *app) activeChild() (model.Child, error) {
	c, err := a.children.Active()
	if err != nil {
		return model.Child{}, err
	}
	if _, err := a.allowances.IssuePending(c, time.Time{}); err != nil {
		return model.Child{}, fmt.Errorf("issuing pending allowance: %w", err)
	}
	return c, nil
}
