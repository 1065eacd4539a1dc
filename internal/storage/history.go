package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmarcangeli/spedman/internal/models"
)

// DefaultHistoryLimit caps the local history file so it never grows without
// bound.
const DefaultHistoryLimit = 500

// FileHistoryStore keeps the locally created labels in a JSON file, newest
// first.
type FileHistoryStore struct {
	path  string
	limit int
}

func NewFileHistoryStore(path string, limit int) *FileHistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &FileHistoryStore{path: path, limit: limit}
}

// Append prepends an entry and rewrites the file, dropping anything past the
// limit.
func (s *FileHistoryStore) Append(entry models.HistoryEntry) error {
	existing, err := s.List()
	if err != nil {
		// A damaged history file should not block recording new labels;
		// start over from the entry being saved.
		existing = nil
	}

	entries := append([]models.HistoryEntry{entry}, existing...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

// List returns the saved entries, newest first. A missing file is an empty
// history.
func (s *FileHistoryStore) List() ([]models.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt history file: %w", err)
	}

	return entries, nil
}
