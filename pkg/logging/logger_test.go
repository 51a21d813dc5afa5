package logging

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temp log directory and resets the
// package-level once guards, restoring everything on cleanup.
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origInitErr := initErr
	origRunID := runID

	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		runID = origRunID
		runIDOnce = sync.Once{}
	})
}

func TestNewLoggerCreatesFile(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("session")
	require.NoError(t, err)
	defer logger.Close()

	assert.NotEmpty(t, logger.RunID())
	require.NotEmpty(t, logger.LogPath())
	_, err = os.Stat(logger.LogPath())
	assert.NoError(t, err)
}

func TestLoggerWritesTaggedEntries(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("catalog")
	require.NoError(t, err)

	logger.Infof("cascade settled after %d options", 14)
	logger.Warnf("dropdown unchanged")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[catalog] [INFO] cascade settled after 14 options")
	assert.Contains(t, content, "[catalog] [WARN] dropdown unchanged")
}

func TestComponentsShareRunFile(t *testing.T) {
	setupTestDir(t)

	a, err := NewLogger("session")
	require.NoError(t, err)
	b, err := NewLogger("scrape")
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	assert.Equal(t, a.RunID(), b.RunID())
	assert.Equal(t, a.LogPath(), b.LogPath())
}

func TestCloseIsIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("session")
	require.NoError(t, err)
	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestFallbackLoggerHasNoPath(t *testing.T) {
	l := newFallbackLogger("session", os.ErrPermission)
	assert.Empty(t, l.LogPath())
	assert.NotEmpty(t, l.RunID())
	assert.False(t, strings.Contains(l.LogPath(), "sia.log"))
}
