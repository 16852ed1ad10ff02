package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDirName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alice", "alice"},
		{"Mary Jane", "mary_jane"},
		{"José", "jose"},
		{"  Bob  ", "bob"},
		{"O'Brien Jr.", "obrien_jr"},
		{"Zoë 2", "zoe_2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeDirName(tt.name), "SafeDirName(%q)", tt.name)
	}
}

func TestParseTimestamp(t *testing.T) {
	// Canonical fixed-offset format.
	ts, err := ParseTimestamp("2025-06-14T10:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())
	_, offset := ts.Zone()
	assert.Equal(t, -5*3600, offset)

	// Zulu and fractional seconds from older files still decode.
	_, err = ParseTimestamp("2025-06-14T10:30:00Z")
	require.NoError(t, err)
	_, err = ParseTimestamp("2025-06-14T10:30:00.123Z")
	require.NoError(t, err)

	// Legacy date-only fallback decodes to midnight UTC.
	ts, err = ParseTimestamp("2025-06-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), ts)

	// Anything else is a hard error, not a silent guess.
	for _, bad := range []string{"", "14/06/2025", "June 14 2025", "2025-06-14 10:30"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, "ParseTimestamp(%q)", bad)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	loc := time.FixedZone("CDT", -5*3600)
	orig := time.Date(2025, 6, 14, 10, 30, 0, 0, loc)

	parsed, err := ParseTimestamp(FormatTimestamp(orig))
	require.NoError(t, err)
	assert.True(t, orig.Equal(parsed))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")

	require.NoError(t, WriteFileAtomic(path, []byte("one\n")))
	require.NoError(t, WriteFileAtomic(path, []byte("two\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestChildDirs(t *testing.T) {
	base := t.TempDir()
	layout := NewLayout(base)

	// Missing base dir is fine.
	dirs, err := NewLayout(filepath.Join(base, "nope")).ChildDirs()
	require.NoError(t, err)
	assert.Empty(t, dirs)

	// Only directories with a child profile count.
	require.NoError(t, os.MkdirAll(filepath.Join(base, "alice"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "stray"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "alice", ChildFile), []byte("id\n"), 0o644))

	dirs, err = layout.ChildDirs()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, dirs)
}

func TestGlobalConfig(t *testing.T) {
	layout := NewLayout(t.TempDir())
	repo := NewGlobalConfigRepository(layout)

	// Absent file means no active child.
	cfg, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ActiveChildDir)
	assert.Equal(t, "1.0", cfg.DataFormatVersion)

	// Switch, reload.
	require.NoError(t, repo.SetActiveChild("alice"))
	cfg, err = repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.ActiveChildDir)

	// Clear.
	require.NoError(t, repo.SetActiveChild(""))
	cfg, err = repo.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ActiveChildDir)
}

func TestGlobalConfigMalformed(t *testing.T) {
	layout := NewLayout(t.TempDir())
	repo := NewGlobalConfigRepository(layout)

	require.NoError(t, os.MkdirAll(layout.Base(), 0o755))
	bad := "active_child_directory,data_format_version,created_at,updated_at\nalice,1.0,yesterday,today\n"
	require.NoError(t, os.WriteFile(layout.GlobalConfigPath(), []byte(bad), 0o644))

	_, err := repo.Load()
	require.Error(t, err)
	var mre *MalformedRecordError
	assert.ErrorAs(t, err, &mre)
}
