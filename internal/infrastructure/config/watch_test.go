package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAssetFile(t *testing.T) {
	assert.True(t, IsAssetFile("configs/game.json"))
	assert.True(t, IsAssetFile("frames.YAML"))
	assert.True(t, IsAssetFile("levels/arena.tmx"))
	assert.False(t, IsAssetFile("game.json~"))
	assert.False(t, IsAssetFile(".frames.yaml.swp"))
}

func TestWatcher_ReportsAssetWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	// Non-asset files are filtered out
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.json"), []byte("{}"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "game.json", filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for game.json")
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
