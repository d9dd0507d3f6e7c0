// Package watch re-runs a callback whenever a single file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

var ErrAlreadyRunning = errors.New("watcher already running")

// ChangeFunc is called once per settled burst of writes.
type ChangeFunc func(ctx context.Context) error

type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before onChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches the directory holding path, so editors that replace the
// file by rename are still seen.
type Watcher struct {
	path     string
	onChange ChangeFunc
	debounce time.Duration
	logger   *zap.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	once    sync.Once
}

func New(path string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("onChange must not be nil")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named("watch")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw
	return w, nil
}

// Run blocks until ctx is cancelled or Stop is called. Errors returned by
// onChange are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("watching for changes", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("change handler failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stopCh) })
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
