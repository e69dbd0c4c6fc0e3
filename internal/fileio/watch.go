package fileio

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Subscription is a live change listener for one file. Close is idempotent.
type Subscription struct {
	path string
	w    *fsnotify.Watcher
	done chan struct{}
	once sync.Once
	err  error
}

// Watch re-reads path and calls onChange with the fresh content every time the
// OS reports a modification. The parent directory is watched so that editors
// which save through a rename keep notifying. onChange runs on the watcher
// goroutine; callers that own single-threaded state must re-dispatch.
func Watch(path string, onChange func(content string)) (*Subscription, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "watch", Path: path, Err: err}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &IOError{Op: "watch", Path: abs, Err: err}
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, &IOError{Op: "watch", Path: abs, Err: err}
	}
	s := &Subscription{path: abs, w: w, done: make(chan struct{})}
	go s.loop(onChange)
	return s, nil
}

// Path returns the absolute path being watched.
func (s *Subscription) Path() string { return s.path }

func (s *Subscription) loop(onChange func(string)) {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			content, err := Read(s.path)
			if err != nil {
				log.Printf("watch reread path=%q err=%v", s.path, err)
				continue
			}
			select {
			case <-s.done:
				return
			default:
			}
			onChange(content)
		case err, ok := <-s.w.Errors:
			if !ok {
				return
			}
			log.Printf("watch error path=%q err=%v", s.path, err)
		}
	}
}

// Close stops the subscription. Further calls return the first result.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.err = s.w.Close()
	})
	return s.err
}
