package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/core"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestStorageLocateSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "textures/grass.png"), []byte("second"))
	s := NewStorage(first, second)

	resolved, err := s.Locate("textures/grass.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "textures/grass.png"), resolved)

	// A file in an earlier search path shadows later ones.
	writeFile(t, filepath.Join(first, "textures/grass.png"), []byte("first"))
	resolved, err = s.Locate("textures/grass.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "textures/grass.png"), resolved)

	data, err := s.Load("textures/grass.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestStorageLocateMissing(t *testing.T) {
	s := NewStorage(t.TempDir())

	_, err := s.Locate("nope.png")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.Load("nope.png")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorageAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sound.wav")
	writeFile(t, file, []byte("riff"))

	s := NewStorage()
	resolved, err := s.Locate(file)
	require.NoError(t, err)
	assert.Equal(t, file, resolved)
}

func TestStorageModTime(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("x"))
	s := NewStorage(dir)

	first, err := s.ModTime("a.txt")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("y"))

	second, err := s.ModTime("a.txt")
	require.NoError(t, err)
	assert.True(t, second.After(first) || second.Equal(first))
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "maps/level.tilemap"), []byte("v1"))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.WatchRecursive(dir))

	writeFile(t, filepath.Join(dir, "maps/level.tilemap"), []byte("v2"))

	require.Eventually(t, func() bool {
		for _, p := range w.Take() {
			if p == "maps/level.tilemap" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	// The dirty set was cleared by the successful Take.
	assert.Empty(t, w.Take())
}
