package payloadsrc

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher pushes the contents of every file created in a directory onto a
// channel, for a driver that wants to feed a host with payloads as they
// arrive rather than all at process start.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	out       chan<- []byte
	done      chan struct{}
}

// Watch begins watching directory, sending each newly-created file's
// contents to out. The caller owns out and should not close it while the
// Watcher is running; call Close to stop.
func Watch(directory string, out chan<- []byte) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}
	if err := fsWatcher.Add(directory); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("payloadsrc: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		out:       out,
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case e, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create == 0 {
				continue
			}

			data, err := Load(e.Name)
			if err != nil {
				log.WithError(err).WithField("file", e.Name).Warn("payloadsrc: failed to load new file")
				continue
			}
			w.out <- data

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("payloadsrc: watcher error")
			return
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsWatcher.Close()
	<-w.done
	return err
}
