package catalogfile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/enduraplan/v2/internal/ports/outbound"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay absorbs the bursts of write events editors and atomic
// saves produce for a single logical change
const debounceDelay = 250 * time.Millisecond

// Watcher re-imports the catalog file whenever it changes on disk.
// A file that fails to parse leaves the stored catalog untouched.
type Watcher struct {
	path    string
	repo    outbound.CatalogRepository
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu      sync.Mutex
	pending *time.Timer

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for the given catalog file
func NewWatcher(path string, repo outbound.CatalogRepository, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: atomic saves replace the inode
	// and a file-level watch would go stale after the first change.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		path:    path,
		repo:    repo,
		watcher: fw,
		logger:  logger.Named("catalog-watcher"),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine
func (w *Watcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.run(ctx)
	w.logger.Info("watching catalog file", zap.String("path", w.path))
}

// Stop stops watching and waits for the background goroutine to exit
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, func() {
		w.reload(ctx)
	})
}

func (w *Watcher) reload(ctx context.Context) {
	count, err := Import(ctx, w.path, w.repo)
	if err != nil {
		w.logger.Error("catalog reload failed, keeping previous catalog",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("catalog reloaded",
		zap.String("path", w.path), zap.Int("items", count))
}
