package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileLedger persists the record set as a single JSON file. Writes go
// through a temp file and rename so a crash mid-write never truncates the
// previous good blob.
type FileLedger struct {
	path string
}

// NewFileLedger creates a JSON-file persister at path.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Persist writes the full record set.
func (f *FileLedger) Persist(_ context.Context, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".scores-*.json")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Load reads the record set. A missing file is an empty ledger, not an error.
func (f *FileLedger) Load(_ context.Context) ([]Record, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return records, nil
}
