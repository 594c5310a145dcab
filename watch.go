package tscat

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ErrWatchFS = errors.New("watching is only supported for ResourcePath directories")

type watcher struct {
	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopped  chan struct{}
	mu       sync.Mutex
	debounce *time.Timer
}

// startWatcher reloads the catalog when a .ts file in ResourcePath is
// written, created, renamed or removed. Bursts within WatchDebounce collapse
// into one reload.
func (dmc *DefaultMessageCatalog) startWatcher() error {
	if dmc.cfg.ResourceFS != nil {
		return ErrWatchFS
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(dmc.cfg.ResourcePath); err != nil {
		_ = fsw.Close()
		return err
	}
	w := &watcher{
		fsw:     fsw,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	dmc.watcher = w

	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-w.done:
				return
			case evt, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(filepath.Base(evt.Name), tsExtension) {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
					continue
				}
				w.schedule(dmc.cfg.WatchDebounce, dmc.reloadFromWatcher)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				dmc.cfg.Logger.Error().Err(err).Msg("translation watcher error")
			}
		}
	}()

	return nil
}

func (w *watcher) schedule(delay time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, fn)
}

func (dmc *DefaultMessageCatalog) reloadFromWatcher() {
	if err := dmc.loadFromFiles(); err != nil {
		// keep serving the previous translations
		dmc.cfg.Logger.Error().Err(err).Msg("translation reload failed")
		return
	}
	dmc.cfg.Logger.Info().Str("path", dmc.cfg.ResourcePath).Msg("translations reloaded")
}

func (dmc *DefaultMessageCatalog) stopWatcher() {
	w := dmc.watcher
	if w == nil {
		return
	}
	dmc.watcher = nil
	close(w.done)
	_ = w.fsw.Close()
	<-w.stopped
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}
