package cmd

import (
	"io"
	"path/filepath"
	"testing"

	"boilerInspector/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunClosesStoreWhenCommandFails(t *testing.T) {
	dataDir := t.TempDir()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{
		"report", "no-such-id", "--stdout",
		"--store", store.BackendBadger,
		"--data-dir", dataDir,
		"--log-file", filepath.Join(t.TempDir(), "cli.log"),
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.Error(t, run())
	assert.Nil(t, historyStore)

	// Badger holds a directory lock until closed.
	reopened, err := store.NewBadgerStore(filepath.Join(dataDir, "badger"), zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, reopened.Close())
}

func TestTeardownIsIdempotent(t *testing.T) {
	historyStore = store.NewMemoryStore()
	logger = zap.NewNop()
	t.Cleanup(func() { logger = nil })

	teardown()
	assert.Nil(t, historyStore)
	assert.NotPanics(t, teardown)
}
