// Package watch re-renders a transcript as it grows: it watches
// the file's directory and fires a debounced callback whenever
// the file is written, created, or replaced.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one transcript file. The directory rather than
// the file itself is watched so atomic rewrites (rename over the
// old file) keep delivering events.
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration

	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	dirtyAt  time.Time
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher that calls onChange after path has been
// quiet for the debounce period following a change.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: debounce,
		fsw:      fsw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins processing events in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop halts the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.fsw.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name == w.path &&
				ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.dirtyAt = time.Now()
				w.mu.Unlock()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-ticker.C:
			w.mu.Lock()
			fire := !w.dirtyAt.IsZero() &&
				time.Since(w.dirtyAt) >= w.debounce
			if fire {
				w.dirtyAt = time.Time{}
			}
			w.mu.Unlock()
			if fire {
				w.onChange()
			}
		}
	}
}
