package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarcangeli/spedman/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storico_locale.json")
	store := NewFileSnapshotStore(path)

	snapshot := models.Snapshot{
		"11-11111-11111": {
			Status:    models.StatusInTransit,
			Tracking:  "1UW1RCW000396",
			ShippedAt: "06/01 15:30",
			UpdatedAt: "07/01 09:12",
		},
		"22-22222-22222": {
			Status:   models.StatusAwaitingShipment,
			Tracking: models.TrackingUnavailable,
		},
	}

	require.NoError(t, store.Save(snapshot))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	// Saving what was loaded must be a no-op on the content.
	require.NoError(t, store.Save(loaded))
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, snapshot, again)
}

func TestSnapshotMissingFile(t *testing.T) {
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "nope.json"))

	snapshot, err := store.Load()
	require.NoError(t, err, "first run has no snapshot yet")
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
}

func TestSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storico_locale.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileSnapshotStore(path)

	snapshot, err := store.Load()
	assert.Error(t, err)
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storico_locale.json")
	store := NewFileSnapshotStore(path)

	require.NoError(t, store.Save(models.Snapshot{
		"OLD": {Status: models.StatusInTransit},
	}))
	require.NoError(t, store.Save(models.Snapshot{
		"NEW": {Status: models.StatusLabelCreated},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, "OLD", "only one generation is kept")
	assert.Contains(t, loaded, "NEW")
}
