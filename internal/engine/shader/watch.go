package shader

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports shader programs whose files changed on disk. fsnotify
// events are collected by a background goroutine into a pending set; the
// frame loop drains it with Changed.
type Watcher struct {
	w    *fsnotify.Watcher
	errs chan error

	mu      sync.Mutex
	pending map[string]struct{}
}

// Watch starts watching dir for shader edits.
func Watch(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	sw := newWatcher(w)
	go sw.loop()
	return sw, nil
}

func newWatcher(w *fsnotify.Watcher) *Watcher {
	return &Watcher{w: w, errs: make(chan error, 1), pending: make(map[string]struct{})}
}

func (sw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			sw.record(ev.Name)
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			select {
			case sw.errs <- err:
			default:
			}
		}
	}
}

// record marks every program built from file as pending. Repeated edits
// coalesce, so no change is lost however far behind the frame loop is.
func (sw *Watcher) record(file string) {
	if !isShader(file) {
		return
	}
	names := Uses(file)
	sw.mu.Lock()
	for _, n := range names {
		sw.pending[n] = struct{}{}
	}
	sw.mu.Unlock()
}

func isShader(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag":
		return true
	}
	return false
}

// Changed returns the sorted program names affected by edits since the
// last call. It never blocks on the watcher goroutine.
func (sw *Watcher) Changed() []string {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if len(sw.pending) == 0 {
		return nil
	}
	names := make([]string, 0, len(sw.pending))
	for n := range sw.pending {
		names = append(names, n)
	}
	clear(sw.pending)
	sort.Strings(names)
	return names
}

// Err returns a pending watcher error, if any.
func (sw *Watcher) Err() error {
	select {
	case err := <-sw.errs:
		return err
	default:
		return nil
	}
}

// Close stops watching.
func (sw *Watcher) Close() error {
	return sw.w.Close()
}
