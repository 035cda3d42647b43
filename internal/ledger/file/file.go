// Package file implements the ledger store as two JSON blobs on disk, one
// for the record collection and one for the settings object. The blob names
// carry over the storage keys of the first version of the app.
//
// Loading is parse-or-default: a missing or corrupted blob yields the empty
// collection and default settings, never an error to the caller. Every
// mutation rewrites the affected blob in full; last write wins.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"sarhisob/internal/core"
)

const (
	recordsBlob  = "sarhisob_v1_tx.json"
	settingsBlob = "sarhisob_v1_settings.json"
)

// ErrNotFound is returned when removing a record whose id is unknown.
var ErrNotFound = errors.New("record not found")

type Store struct {
	mu       sync.Mutex
	dir      string
	records  []core.Record
	settings core.Settings
}

// Open loads both blobs from dir, substituting defaults for anything
// missing or unparsable. The directory is created if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &Store{dir: dir, settings: core.DefaultSettings()}
	s.loadRecords()
	s.loadSettings()
	return s, nil
}

func (s *Store) loadRecords() {
	raw, err := os.ReadFile(filepath.Join(s.dir, recordsBlob))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Unreadable records blob, starting empty", "error", err)
		}
		return
	}
	var wire []recordJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		slog.Warn("Corrupted records blob, starting empty", "error", err)
		return
	}
	records := make([]core.Record, 0, len(wire))
	for _, w := range wire {
		r, err := w.toRecord()
		if err != nil {
			slog.Warn("Skipping malformed record in blob", "id", w.ID, "error", err)
			continue
		}
		records = append(records, r)
	}
	s.records = records
}

func (s *Store) loadSettings() {
	raw, err := os.ReadFile(filepath.Join(s.dir, settingsBlob))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Unreadable settings blob, using defaults", "error", err)
		}
		return
	}
	var w settingsJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		slog.Warn("Corrupted settings blob, using defaults", "error", err)
		return
	}
	s.settings = w.toSettings()
}

// Append stores the record at the head of the collection, newest first.
func (s *Store) Append(ctx context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.Record{r}, s.records...)
	if err := s.persistRecords(); err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "Record saved",
		"id", r.ID,
		"kind", string(r.Kind),
		"amount_cents", r.Amount.Cents)
	return r.ID, nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	if err := s.persistRecords(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Record removed", "id", id)
	return nil
}

func (s *Store) ListRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Settings(_ context.Context) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, set core.Settings) error {
	if err := set.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = set
	if err := s.persistSettings(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Settings saved", "salary_cents", set.Salary.Cents, "currency", set.Currency)
	return nil
}

func (s *Store) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.settings = core.DefaultSettings()
	if err := s.persistRecords(); err != nil {
		return err
	}
	if err := s.persistSettings(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Store wiped")
	return nil
}

// persistRecords writes the full collection blob; caller holds the lock.
func (s *Store) persistRecords() error {
	wire := make([]recordJSON, len(s.records))
	for i, r := range s.records {
		wire[i] = fromRecord(r)
	}
	raw, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, recordsBlob), raw, 0644); err != nil {
		return fmt.Errorf("write records blob: %w", err)
	}
	return nil
}

func (s *Store) persistSettings() error {
	raw, err := json.MarshalIndent(fromSettings(s.settings), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, settingsBlob), raw, 0644); err != nil {
		return fmt.Errorf("write settings blob: %w", err)
	}
	return nil
}
