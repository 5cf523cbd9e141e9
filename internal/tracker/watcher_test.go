package tracker

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	path  string
	force bool
}

type recorder struct {
	mu     sync.Mutex
	calls  []call
	closed int
}

func (r *recorder) Handle(path string, force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{filepath.Base(path), force})
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2.png")
	touch(t, dir, "1.png")
	touch(t, dir, "notes.txt")

	rec := &recorder{}
	w := &Watcher{
		Dir:        dir,
		Workers:    1,
		Debounce:   20 * time.Millisecond,
		NewHandler: func() (Handler, error) { return rec, nil },
		Log:        zerolog.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []call{{"1.png", false}, {"2.png", false}}, rec.snapshot())

	touch(t, dir, "3.png")
	touch(t, dir, "readme.md")
	require.Eventually(t, func() bool {
		for _, c := range rec.snapshot() {
			if c == (call{"3.png", true}) {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	for _, c := range rec.snapshot() {
		assert.NotEqual(t, "readme.md", c.path)
		assert.NotEqual(t, "notes.txt", c.path)
	}
	assert.Equal(t, 1, rec.closed)
}

func TestWatcherMissingDir(t *testing.T) {
	w := &Watcher{
		Dir:        filepath.Join(t.TempDir(), "missing"),
		NewHandler: func() (Handler, error) { return &recorder{}, nil },
		Log:        zerolog.Nop(),
	}
	assert.Error(t, w.Run(context.Background()))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.JPG")
	touch(t, dir, "a.png")
	touch(t, dir, "c.training")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.png"), 0o755))

	got, err := listImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.JPG")}, got)
}
