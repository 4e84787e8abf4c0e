// Package reportstore persists probe reports as JSON artifacts so runs can
// be compared while hunting a regression.
package reportstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

const defaultReportsDir = "reports"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	maskingEnabled bool
	secrets        []string
	writeIndex     bool
	now            func() time.Time
	newID          func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithSecrets registers values that must never appear in artifacts
// (passwords from the profile, typically).
func WithSecrets(secrets []string) Option {
	return func(s *JSONStore) { s.secrets = secrets }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDFunc is useful for tests.
func WithIDFunc(f func() string) Option {
	return func(s *JSONStore) { s.newID = f }
}

func NewJSONStore(root string, profile domain.Profile, opts ...Option) *JSONStore {
	reportsDir := profile.Paths.ReportsDir
	if strings.TrimSpace(reportsDir) == "" {
		reportsDir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: reportsDir,
		maskingEnabled: profile.Masking.Enabled,
		writeIndex:     false,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

func (s *JSONStore) SaveReport(report domain.Report) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	toSave := report
	if toSave.ID == "" {
		toSave.ID = s.newID()
	}

	ts := toSave.StartedAt
	if ts.IsZero() {
		ts = s.now()
		toSave.StartedAt = ts
	}
	ts = ts.UTC()

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if s.maskingEnabled {
		b = maskSecrets(b, s.secrets)
	}

	name := fmt.Sprintf("%s-%s.json", ts.Format("20060102T150405Z"), shortID(toSave.ID))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(dir, toSave, path); err != nil {
			return "", err
		}
	}

	return path, nil
}

type indexEntry struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	StartedAt time.Time `json:"started_at"`
	Failures  int       `json:"failures"`
}

func (s *JSONStore) appendIndex(dir string, report domain.Report, path string) error {
	idxPath := filepath.Join(dir, "index.jsonl")

	f, err := os.OpenFile(idxPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &domain.OpError{
			Op:   "reportstore.index",
			Kind: domain.KindExecution,
			Path: idxPath,
			Err:  err,
		}
	}
	defer f.Close()

	entry := indexEntry{
		ID:        report.ID,
		Path:      path,
		StartedAt: report.StartedAt.UTC(),
		Failures:  report.Failures(),
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return &domain.OpError{
			Op:   "reportstore.index",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if _, err := f.Write(append(b, '\n')); err != nil {
		return &domain.OpError{
			Op:   "reportstore.index",
			Kind: domain.KindExecution,
			Path: idxPath,
			Err:  err,
		}
	}
	return nil
}

func maskSecrets(b []byte, secrets []string) []byte {
	for _, sec := range secrets {
		if sec == "" {
			continue
		}
		b = bytes.ReplaceAll(b, []byte(sec), []byte(domain.MaskValue))
	}
	return b
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
