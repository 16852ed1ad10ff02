package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// GlobalConfig is the single process-wide record at the base of the
// data directory. It tracks which child the UI last selected; an absent
// file simply means no child has been selected yet.
type GlobalConfig struct {
	ActiveChildDir    string // empty = no active child
	DataFormatVersion string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const globalConfigHeader = "active_child_directory,data_format_version,created_at,updated_at"

const currentDataFormatVersion = "1.0"

const globalConfigFields = 4

// GlobalConfigRepository owns <base>/global_config.csv.
type GlobalConfigRepository struct {
	layout Layout
	now    func() time.Time
}

// NewGlobalConfigRepository creates a repository over layout's global
// config file.
func NewGlobalConfigRepository(layout Layout) *GlobalConfigRepository {
	return &GlobalConfigRepository{layout: layout, now: Now}
}

// Load reads the global config, returning defaults if the file does
// not exist.
func (r *GlobalConfigRepository) Load() (GlobalConfig, error) {
	path := r.layout.GlobalConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		now := r.now()
		return GlobalConfig{
			DataFormatVersion: currentDataFormatVersion,
			CreatedAt:         now,
			UpdatedAt:         now,
		}, nil
	}
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("reading global config: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = globalConfigFields
	records, err := cr.ReadAll()
	if err != nil {
		return GlobalConfig{}, &MalformedRecordError{Path: path, Row: 1, Err: err}
	}
	if len(records) < 2 {
		return GlobalConfig{}, &MalformedRecordError{Path: path, Row: 2, Err: fmt.Errorf("missing config row")}
	}

	rec := records[1]
	createdAt, err := ParseTimestamp(rec[2])
	if err != nil {
		return GlobalConfig{}, &MalformedRecordError{Path: path, Row: 2, Err: err}
	}
	updatedAt, err := ParseTimestamp(rec[3])
	if err != nil {
		return GlobalConfig{}, &MalformedRecordError{Path: path, Row: 2, Err: err}
	}

	return GlobalConfig{
		ActiveChildDir:    rec[0],
		DataFormatVersion: rec[1],
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

// Store rewrites the global config file atomically, stamping UpdatedAt.
func (r *GlobalConfigRepository) Store(cfg GlobalConfig) error {
	if err := os.MkdirAll(r.layout.Base(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg.UpdatedAt = r.now()
	if cfg.DataFormatVersion == "" {
		cfg.DataFormatVersion = currentDataFormatVersion
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = cfg.UpdatedAt
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(strings.Split(globalConfigHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := []string{
		cfg.ActiveChildDir,
		cfg.DataFormatVersion,
		FormatTimestamp(cfg.CreatedAt),
		FormatTimestamp(cfg.UpdatedAt),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing config row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	return WriteFileAtomic(r.layout.GlobalConfigPath(), buf.Bytes())
}

// SetActiveChild points the global config at a child directory. An
// empty dir clears the selection.
func (r *GlobalConfigRepository) SetActiveChild(dir string) error {
	cfg, err := r.Load()
	if err != nil {
		return err
	}
	cfg.ActiveChildDir = dir
	return r.Store(cfg)
}
