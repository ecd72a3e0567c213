package assets

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/emberengine/ember/engine/core"
)

// Watcher observes the asset directories and records which resources changed
// on disk. The resource manager collects the dirty set once per update and
// re-triggers loads; nothing is reloaded from the watcher goroutine itself.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	done     chan struct{}

	mutex sync.Mutex
	dirty map[string]struct{}
	roots []string
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		dirty:    make(map[string]struct{}),
	}
	go w.run()
	return w, nil
}

// WatchRecursive starts watching the named directory and all sub-directories.
func (w *Watcher) WatchRecursive(root string) error {
	w.mutex.Lock()
	w.roots = append(w.roots, root)
	w.mutex.Unlock()

	return filepath.Walk(root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// Take returns the set of resource paths (relative to their watch root) that
// changed since the previous call, clearing the set.
func (w *Watcher) Take() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if len(w.dirty) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.dirty))
	for p := range w.dirty {
		out = append(out, p)
	}
	w.dirty = make(map[string]struct{})
	return out
}

func (w *Watcher) Close() error {
	close(w.done)
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := w.fsnotify.Add(e.Name); err != nil {
						core.LogWarn("failed to watch new directory %s: %v", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.markDirty(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				// Can't stat a deleted path; try to drop it from the watch
				// list either way.
				_ = w.fsnotify.Remove(e.Name)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %v", err)

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *Watcher) markDirty(name string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	// Store the path relative to its watch root so it matches the path the
	// resource was requested with.
	rel := name
	for _, root := range w.roots {
		if strings.HasPrefix(name, root+string(filepath.Separator)) {
			rel = strings.TrimPrefix(name, root+string(filepath.Separator))
			break
		}
	}
	w.dirty[filepath.ToSlash(rel)] = struct{}{}

	core.EventFireDeferred(core.EventContext{
		Type: core.EVENT_CODE_RESOURCE_CHANGED,
		Data: rel,
	})
}
