package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes and delivers each valid result.
// Only the newest pending Config is kept; the render loop drains Updates at the top of each frame.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	updates chan Config
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the config file at path. The containing directory is watched so
// editors that save by rename are still seen.
//
// Parameters:
//   - path: the config file to watch
//   - debounce: quiet period before a reload, zero selects DefaultDebounce
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the watch cannot be established
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		debounce: debounce,
		updates:  make(chan Config, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers each successfully reloaded Config. It is closed when the watcher stops.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Errors delivers reload and watch errors. Errors are dropped while one is already pending.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and waits for its goroutine to exit.
//
// Returns:
//   - error: error from closing the underlying fsnotify watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.updates)
		close(w.errors)
		close(w.done)
	}()

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			reload = time.After(w.debounce)
		case <-reload:
			reload = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			log.Printf("[Config] reloaded %s", w.path)
			w.sendUpdate(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendUpdate replaces any undelivered Config with cfg. run is the only sender, so the second send cannot block.
func (w *Watcher) sendUpdate(cfg Config) {
	select {
	case w.updates <- cfg:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- cfg
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		log.Printf("[Config] dropped watcher error: %v", err)
	}
}
