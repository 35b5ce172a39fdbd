package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/transmute/internal/debounce"
)

// reloadQuiet is the debounce window for file change events. Editors often
// emit several write/rename events per save; one reload covers all of them.
const reloadQuiet = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the
// result to a callback. Load errors are reported to the error callback and
// the previous config stays in effect.
type Watcher struct {
	path string

	fw       *fsnotify.Watcher
	deb      *debounce.Debouncer
	onReload func(*Config)
	onError  func(error)

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Watch starts watching the config file at path. The parent directory is
// watched rather than the file itself so that atomic rename-replace saves
// (including our own Save) keep triggering events after the inode changes.
func Watch(path string, onReload func(*Config), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching config dir %s: %w", dir, err)
	}

	w := &Watcher{
		path:     path,
		fw:       fw,
		onReload: onReload,
		onError:  onError,
		done:     make(chan struct{}),
	}
	w.deb = debounce.New(reloadQuiet, w.reload)

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher and drops any pending reload.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.fw.Close()
		w.wg.Wait()
		w.deb.Cancel()
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.deb.Trigger()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
