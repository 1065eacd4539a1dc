package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeBadLevel(t *testing.T) {
	assert.Error(t, Initialize("shout", "development", ""))
}

func TestInitializeWritesDailyFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Initialize("info", "production", dir))
	Log.Info("ciao")
	require.NoError(t, Log.Sync())

	name := filepath.Join(dir, "spedman_"+time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ciao")
}

func TestSweepOldLogs(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "spedman_2020-01-01.log")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	old := time.Now().AddDate(0, 0, -40)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "spedman_today.log")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o644))

	other := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0o644))
	require.NoError(t, os.Chtimes(other, old, old))

	sweepOldLogs(dir, 30)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other, "only .log files are swept")
}
