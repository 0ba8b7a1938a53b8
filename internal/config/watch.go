package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the bursts of events editors produce on save.
var reloadDelay = 100 * time.Millisecond

// Watcher reloads the configuration whenever config.toml or a theme file is
// written. Callbacks run on a background goroutine.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(Config)
	onError  func(error)

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
	done    chan struct{}
}

// Watch starts watching the config directory. onError may be nil.
func Watch(onChange func(Config), onError func(error)) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	// theme files live one level down; the directory is optional
	themes := filepath.Join(dir, "theme")
	if info, err := os.Stat(themes); err == nil && info.IsDir() {
		if err := fw.Add(themes); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", themes, err)
		}
	}

	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".toml" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(reloadDelay, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := Load()
	if err != nil {
		w.fail(fmt.Errorf("reload config: %w", err))
		return
	}
	w.onChange(cfg)
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops watching and cancels a pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
