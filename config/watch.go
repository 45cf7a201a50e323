package config

import (
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file on change and hands the freshly parsed
// *File to a callback — typically one that builds it and feeds
// mgr.Reconfigure's appender-set
// half, since logger.Manager has no single "replace everything" entry
// point once the pool/queue/worker are already running.
type Watcher struct {
	path     string
	onReload func(*File) error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching path for changes and calls onReload with the
// freshly parsed File every time the file is written, created, or
// replaced (rename/remove followed by a re-create, the atomic-save
// pattern most editors and config-management tools use).
func Watch(path string, onReload func(*File) error) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, wrapErr(path, err)
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, wrapErr(path, err)
	}
	watcher := &Watcher{
		path:     path,
		onReload: onReload,
		watcher:  w,
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(w.path); os.IsNotExist(err) {
					continue
				}
				if err := w.watcher.Add(w.path); err != nil {
					log.Printf("config: re-adding watch on %s: %v", w.path, err)
				}
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config: watcher error on %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		log.Printf("config: reload of %s failed, keeping previous configuration: %v", w.path, err)
		return
	}
	if err := w.onReload(f); err != nil {
		log.Printf("config: applying reloaded %s failed: %v", w.path, err)
	}
}

// Close stops the watcher goroutine and releases the underlying fsnotify
// watcher. Idempotent.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.watcher.Close()
}
