// Package storage holds the flat-file persistence of the tool: the status
// snapshot used for change notifications and the local shipment history.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmarcangeli/spedman/internal/models"
)

// FileSnapshotStore persists the per-order status snapshot as a single JSON
// file. Exactly one generation is kept: Save overwrites the whole file, so a
// skipped dashboard visit only diffs against the last visit, never against a
// longer history.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

// Load reads the previous snapshot. A missing file is a normal first run
// and yields an empty snapshot; a corrupt file yields an empty snapshot
// together with the error so the caller can log it.
func (s *FileSnapshotStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Snapshot{}, nil
		}
		return models.Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("corrupt snapshot file: %w", err)
	}
	if snapshot == nil {
		snapshot = models.Snapshot{}
	}

	return snapshot, nil
}

// Save overwrites the snapshot file with the new generation.
func (s *FileSnapshotStore) Save(snapshot models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
