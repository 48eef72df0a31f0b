// Package watch re-encodes MIDI files in a directory whenever they change.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/miditok/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Handler is called once per settled change to a midi file.
type Handler func(path string)

type debouncers struct {
	mu    sync.Mutex
	wait  time.Duration
	byKey map[string]func(func())
}

func (d *debouncers) get(path string) func(func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.byKey[path]
	if !ok {
		f = debounce.New(d.wait)
		d.byKey[path] = f
	}
	return f
}

// Watch blocks until ctx is done. Bursts of writes to the same file within wait are
// collapsed into a single call to handle.
func Watch(ctx context.Context, dir string, wait time.Duration, handle Handler, log *logrus.Entry) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create watcher")
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "could not watch %v", dir)
	}
	log.WithField("dir", dir).Info("watching for midi files")

	d := &debouncers{wait: wait, byKey: make(map[string]func(func()))}
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) {
				continue
			}
			if !util.IsMidiPath(evt.Name) {
				continue
			}
			path := filepath.Clean(evt.Name)
			d.get(path)(func() { handle(path) })
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}
