package boing

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long a file must stay quiet before its change is
// reported; a single save usually produces several writes.
const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to config, image and sound files in a set of
// directories. Events carries changed paths; the host drains it from its loop
// so reloads happen on the loop thread.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs.
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
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]*time.Timer)
	fire := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) {
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(watchDebounce)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- name:
				case <-w.closeCh:
				}
			})
		case name := <-fire:
			delete(pending, name)
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
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// isWatchedFile reports whether a change to path can affect the widget.
func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml",
		".png", ".gif", ".jpg", ".jpeg", ".bmp", ".webp",
		".wav", ".mp3", ".ogg":
		return true
	default:
		return false
	}
}
