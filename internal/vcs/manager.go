package vcs

import "log/slog"

// Manager is the best-effort face of the package. Versioning is
// strictly additive: a failed init or commit is logged and discarded,
// and must never make the data write that preceded it look failed.
type Manager struct {
	authorName  string
	authorEmail string
	log         *slog.Logger
	disabled    bool
}

// NewManager creates a Manager committing as the given author.
func NewManager(authorName, authorEmail string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{authorName: authorName, authorEmail: authorEmail, log: log}
}

// NewDisabled creates a Manager that records nothing. Used when
// auto-commit is switched off in the config.
func NewDisabled() *Manager {
	return &Manager{log: slog.Default(), disabled: true}
}

// EnsureRepo idempotently initializes version tracking for dir.
func (m *Manager) EnsureRepo(dir string) {
	if m.disabled {
		return
	}
	if IsRepo(dir) {
		return
	}
	if err := Init(dir); err != nil {
		m.log.Warn("versioning init failed", "dir", dir, "error", err)
	}
}

// Record commits one changed file with a message naming the action
// taken, e.g. "Update transactions: deleted 3 entries".
func (m *Manager) Record(dir, filename, message string) {
	if m.disabled {
		return
	}
	m.EnsureRepo(dir)
	hash, err := CommitFile(dir, filename, message, m.authorName, m.authorEmail)
	if err != nil {
		m.log.Warn("versioning commit failed", "dir", dir, "file", filename, "error", err)
		return
	}
	m.log.Debug("versioned change", "file", filename, "commit", hash, "message", message)
}
