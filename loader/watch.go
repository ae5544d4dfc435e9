package loader

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed definition files
// in the watched directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()

	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()

	return watcher, nil
}

// Close stops the watcher. It's safe
// to call it more than once.
func (w *Watcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})

	return err
}

func (w *Watcher) run() {
	defer close(w.done)
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

			if !IsDefinitionFile(event.Name) {
				continue
			}

			now := time.Now()

			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}

			last[event.Name] = now

			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

// Add starts watching more directories.
// Directories already watched are ignored.
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	return nil
}

// IsDefinitionFile reports whether the file is a sprite
// sheet, an animation definition or a packing manifest.
func IsDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".anim", ".sprites", ".xml", ".yml", ".yaml":
		return true
	}

	return false
}
