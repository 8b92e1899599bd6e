package registry

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher rebuilds the registry when files in the definition directory change.
// A rebuild that fails leaves the previous registry in place.
type Watcher struct {
	dir      string
	opts     Options
	holder   *Holder
	log      *zap.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}

	mu      sync.Mutex
	reloads int
}

func NewWatcher(dir string, opts Options, holder *Holder) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		dir:      dir,
		opts:     opts,
		holder:   holder,
		log:      log,
		debounce: defaultDebounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the directory is registered.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
	w.log.Info("watching survey directory", zap.String("dir", w.dir))
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	return w.watcher.Close()
}

// Reloads reports how many rebuilds have been published.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug("survey directory changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("survey watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	reg, err := Discover(ctx, w.dir, w.opts)
	if err != nil {
		w.log.Error("survey reload failed, keeping previous definitions", zap.Error(err))
		return
	}
	w.holder.Store(reg)

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.log.Info("surveys reloaded", zap.Int("count", reg.Len()))
}
