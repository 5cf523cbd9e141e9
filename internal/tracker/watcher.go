package tracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	trimage "tornado-tracker/internal/image"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Handler processes one image. Each watcher worker owns its Handler.
type Handler interface {
	Handle(path string, forceReparse bool)
	Close() error
}

// Watcher feeds the images of a folder to a pool of handlers: everything
// already present first, in name order, then every file created or
// rewritten while it runs.
type Watcher struct {
	Dir        string
	Workers    int
	Debounce   time.Duration
	NewHandler func() (Handler, error)
	Log        zerolog.Logger
}

type job struct {
	path  string
	force bool
}

// Run watches until ctx is cancelled. Queued work is finished before it
// returns.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	// Watch before listing so nothing created in between is missed.
	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}

	initial, err := listImages(w.Dir)
	if err != nil {
		return err
	}

	workers := max(w.Workers, 1)
	handlers := make([]Handler, 0, workers)
	for i := 0; i < workers; i++ {
		h, err := w.NewHandler()
		if err != nil {
			for _, h := range handlers {
				h.Close()
			}
			return fmt.Errorf("worker %d: %w", i, err)
		}
		handlers = append(handlers, h)
	}

	jobs := make(chan job, 256)
	var wg sync.WaitGroup
	for _, h := range handlers {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			defer h.Close()
			for j := range jobs {
				h.Handle(j.path, j.force)
			}
		}(h)
	}

	w.Log.Info().Str("dir", w.Dir).Int("existing", len(initial)).Int("workers", workers).Msg("watching")
	w.loop(ctx, fw, initial, jobs)
	close(jobs)
	wg.Wait()
	return nil
}

// loop queues the initial files, then debounces fsnotify events into jobs
// until ctx is done.
func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, initial []string, jobs chan<- job) {
	send := func(j job) bool {
		select {
		case jobs <- j:
			return true
		case <-ctx.Done():
			return false
		}
	}
	for _, path := range initial {
		if !send(job{path: path}) {
			return
		}
	}

	tick := max(w.Debounce/2, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	pending := map[string]time.Time{}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !trimage.IsSupportedFormat(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now()
		case <-ticker.C:
			now := time.Now()
			ready := make([]string, 0, len(pending))
			for name, t := range pending {
				if now.Sub(t) >= w.Debounce {
					ready = append(ready, name)
				}
			}
			sort.Strings(ready)
			for _, name := range ready {
				delete(pending, name)
				if !send(job{path: name, force: true}) {
					return
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.Log.Warn().Err(err).Msg("watch error")
		}
	}
}

// listImages returns the supported images in dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !trimage.IsSupportedFormat(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
