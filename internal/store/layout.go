package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Data file names inside a child directory.
const (
	ChildFile    = "child.csv"
	LedgerFile   = "transactions.csv"
	ScheduleFile = "allowance_schedule.csv"
	GoalsFile    = "goals.csv"
	AttemptsFile = "control_attempts.csv"

	globalConfigFile = "global_config.csv"
)

// Layout resolves paths under the base data directory. It is created
// once at startup and read-only afterwards; all mutation goes through
// the repositories that own the individual files.
type Layout struct {
	base string
}

// NewLayout creates a Layout rooted at base.
func NewLayout(base string) Layout {
	return Layout{base: base}
}

// Base returns the base data directory.
func (l Layout) Base() string {
	return l.base
}

// GlobalConfigPath returns the path of the base-level global config file.
func (l Layout) GlobalConfigPath() string {
	return filepath.Join(l.base, globalConfigFile)
}

// ChildDir returns the directory for a child directory name.
func (l Layout) ChildDir(dir string) string {
	return filepath.Join(l.base, dir)
}

// ChildPath returns the path of one data file inside a child directory.
func (l Layout) ChildPath(dir, file string) string {
	return filepath.Join(l.base, dir, file)
}

// EnsureChildDir creates the child directory if needed.
func (l Layout) EnsureChildDir(dir string) error {
	if err := os.MkdirAll(l.ChildDir(dir), 0o755); err != nil {
		return fmt.Errorf("creating child directory: %w", err)
	}
	return nil
}

// ChildDirs lists the directory names under base that contain a child
// profile file, sorted lexically.
func (l Layout) ChildDirs() ([]string, error) {
	entries, err := os.ReadDir(l.base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(l.ChildPath(e.Name(), ChildFile)); err == nil {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

var accentFolds = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

// SafeDirName derives a filesystem-safe directory name from a child's
// display name: lowercased, whitespace collapsed to underscores, common
// accents folded, everything else dropped.
func SafeDirName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			if folded, ok := accentFolds[r]; ok {
				b.WriteRune(folded)
			}
		}
	}
	return b.String()
}
