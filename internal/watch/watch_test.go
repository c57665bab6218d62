package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := New(path, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("{}\n{}\n"), 0o644))
	assert.True(t, waitFor(t, fired, 5*time.Second), "expected change callback")
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := New(path, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "other.jsonl"), []byte("{}\n"), 0o644,
	))
	assert.False(t, waitFor(t, fired, 300*time.Millisecond),
		"sibling file must not trigger the callback")
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	w, err := New(path, 10*time.Millisecond, func() {})
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no", "file.jsonl"),
		10*time.Millisecond, func() {})
	assert.Error(t, err)
}
