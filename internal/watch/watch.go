// Package watch reports changes to scene files on disk.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce drops repeated events for one file that arrive within this window.
const Debounce = 100 * time.Millisecond

// Watcher emits the path of each changed YAML file. Events and Errors are
// closed once the watcher stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New watches the given files or directories. Watching a file watches its
// directory and filters events down to that file, so editors that replace
// files on save keep working.
func New(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	only := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		clean := filepath.Clean(p)
		if isSceneFile(clean) {
			only[clean] = true
			clean = filepath.Dir(clean)
		}
		if dirs[clean] {
			continue
		}
		if err := w.Add(clean); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[clean] = true
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run(only)
	return watcher, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run(only map[string]bool) {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !isSceneFile(name) || (len(only) > 0 && !only[name]) {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Reload loads every reported file with load and delivers the most recent
// successful result on the returned channel, dropping stale ones the
// consumer has not picked up. Load and watch errors go to onError. The
// channel is closed once w stops.
func Reload[T any](w *Watcher, load func(path string) (T, error), onError func(error)) <-chan T {
	out := make(chan T, 1)
	go func() {
		defer close(out)
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				v, err := load(path)
				if err != nil {
					onError(err)
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- v
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onError(err)
			}
		}
	}()
	return out
}
