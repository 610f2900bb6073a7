// Package watch re-runs a callback when snapshot files change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher watches a set of files and invokes a callback on writes, debounced
// so editors that write in bursts trigger one re-plan.
type Watcher struct {
	files    map[string]bool
	callback func() error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// New creates a watcher over the given files. The parent directories are
// watched so atomic saves (write to temp, rename) are seen too.
func New(callback func() error, files ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		callback: callback,
		watcher:  fsw,
		done:     make(chan struct{}),
	}

	dirs := map[string]bool{}
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", file, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Start runs the callback once, then again after every relevant change.
// It returns after the initial run; the watching continues in a goroutine.
func (w *Watcher) Start() error {
	if err := w.callback(); err != nil {
		return err
	}

	go func() {
		timer := time.NewTimer(debounce)
		timer.Stop()
		var pending <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if abs, err := filepath.Abs(event.Name); err == nil && w.files[abs] {
					timer.Reset(debounce)
					pending = timer.C
				}
			case <-pending:
				pending = nil
				if err := w.callback(); err != nil {
					fmt.Fprintf(os.Stderr, "replan failed: %v\n", err)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// Stop ends the watch.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
