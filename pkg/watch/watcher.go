package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event describes the change that triggered a callback.
type Event struct {
	Path string
	Op   string
}

// FileWatcher watches filter files and document directories and calls back,
// debounced, when they change.
//
// The parent directory of each watched file is watched instead of the file
// itself so that editors which replace files on save are still observed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *FileWatcherConfig
	debounce *Debouncer

	files map[string]bool // cleaned file paths
	dirs  map[string]bool // cleaned directory paths whose documents are watched

	pendingMu sync.Mutex
	pending   []Event // events coalesced into the next callback

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// DebounceInterval is the quiet period before the callback runs
	// (default: 100ms).
	DebounceInterval time.Duration

	// Extensions limits which files inside watched directories count
	// (default: .json, .yaml, .yml).
	Extensions []string
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil || len(config.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 100 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".json", ".yaml", ".yml"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, invoking onChange
// after each debounced burst of relevant events. Every event of the burst is
// passed, in arrival order with one entry per path.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func([]Event) error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)

	for _, p := range fw.config.Paths {
		if err := fw.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}

	fw.logger.Info("file watcher started",
		"paths", fw.config.Paths,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			fw.enqueue(Event{Path: event.Name, Op: event.Op.String()})
			fw.debounce.Trigger(func() { fw.flush(onChange) })

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and releases its resources. It is safe to call
// whether or not Watch is running.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	running := fw.running
	select {
	case <-fw.stopCh:
		fw.mu.Unlock()
		return nil
	default:
		close(fw.stopCh)
	}
	fw.mu.Unlock()

	if running {
		<-fw.doneCh
	}
	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// enqueue records ev for the next flush. A repeated path keeps its first
// position and takes the latest op.
func (fw *FileWatcher) enqueue(ev Event) {
	fw.pendingMu.Lock()
	defer fw.pendingMu.Unlock()

	for i := range fw.pending {
		if fw.pending[i].Path == ev.Path {
			fw.pending[i].Op = ev.Op
			return
		}
	}
	fw.pending = append(fw.pending, ev)
}

func (fw *FileWatcher) flush(onChange func([]Event) error) {
	fw.pendingMu.Lock()
	batch := fw.pending
	fw.pending = nil
	fw.pendingMu.Unlock()

	if len(batch) == 0 {
		return
	}
	if err := onChange(batch); err != nil {
		fw.logger.Error("change handler failed", "events", len(batch), "path", batch[0].Path, "error", err)
	}
}

func (fw *FileWatcher) addPath(path string) error {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return err
	}

	if info.IsDir() {
		fw.dirs[clean] = true
		return fw.watcher.Add(clean)
	}

	fw.files[clean] = true
	return fw.watcher.Add(filepath.Dir(clean))
}

// shouldProcessEvent keeps events for watched files and for document files
// directly inside watched directories.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Clean(event.Name)
	if fw.files[name] {
		return true
	}

	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || !fw.dirs[filepath.Dir(name)] {
		return false
	}
	return fw.hasValidExtension(strings.ToLower(filepath.Ext(base)))
}

func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, validExt := range fw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
