package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/utils"
)

// Options configures a Watcher
type Options struct {
	// Debounce is how long the tree must be quiet before onChange fires
	Debounce     time.Duration
	Extensions   []string
	ExcludeDirs  []string
	ExcludeFiles []string
	Diagnostics  *utils.DiagnosticSystem
}

// Watcher reports batches of changed source files under a set of paths.
// Directories are watched recursively, including ones created later.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	debounce     time.Duration
	extensions   map[string]bool
	excludeDirs  *utils.PatternSet
	excludeFiles *utils.PatternSet
	diagnostics  *utils.DiagnosticSystem
	onChange     func([]string)
	callbackMu   sync.Mutex

	// recursive holds directories whose source files are all of interest;
	// files holds explicitly named files whose parent is watched for them alone
	mu        sync.Mutex
	recursive map[string]bool
	files     map[string]bool

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
}

// NewWatcher creates a watcher that calls onChange with the sorted paths that
// changed during each debounce window
func NewWatcher(opts Options, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}

	excludeDirs, err := utils.CompilePatterns(opts.ExcludeDirs)
	if err != nil {
		return nil, errors.WrapConfigurationError("scan.exclude_dirs", "compile", err)
	}
	excludeFiles, err := utils.CompilePatterns(opts.ExcludeFiles)
	if err != nil {
		return nil, errors.WrapConfigurationError("scan.exclude_files", "compile", err)
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			extensions[ext] = true
		}
	}
	if len(extensions) == 0 {
		for _, ext := range utils.DefaultSourceExtensions {
			extensions[ext] = true
		}
	}

	diagnostics := opts.Diagnostics
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to create file watcher", err)
	}

	return &Watcher{
		fsWatcher:    fsw,
		debounce:     opts.Debounce,
		extensions:   extensions,
		excludeDirs:  excludeDirs,
		excludeFiles: excludeFiles,
		diagnostics:  diagnostics,
		onChange:     onChange,
		recursive:    make(map[string]bool),
		files:        make(map[string]bool),
		pending:      make(map[string]struct{}),
	}, nil
}

// Add starts watching path. A directory is watched recursively; a file is
// watched through its parent directory.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapFileSystemError("watch", path, err)
	}

	if !info.IsDir() {
		w.mu.Lock()
		w.files[path] = true
		w.mu.Unlock()
		if err := w.fsWatcher.Add(filepath.Dir(path)); err != nil {
			return errors.WrapFileSystemError("watch", path, err)
		}
		return nil
	}

	if err := w.watchRecursive(path); err != nil {
		return errors.WrapFileSystemError("watch", path, err)
	}
	return nil
}

// Watch adds paths and dispatches events until ctx is cancelled or the
// watcher is closed
func (w *Watcher) Watch(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.diagnostics.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	w.diagnostics.Debug("Event %s %s", event.Op, path)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.isRecursive(filepath.Dir(path)) && !w.shouldExcludeDir(path) {
				if err := w.watchRecursive(path); err != nil {
					w.diagnostics.Warn("Failed to watch new directory %s: %v", path, err)
				} else {
					w.enqueueExistingFiles(path)
				}
			}
			return
		}
	}

	if !w.isInteresting(path) {
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.scheduleChange(path)
	}
}

func (w *Watcher) isInteresting(path string) bool {
	w.mu.Lock()
	explicit := w.files[path]
	w.mu.Unlock()
	if explicit {
		return true
	}
	return w.isRecursive(filepath.Dir(path)) && !w.shouldExcludeFile(path)
}

func (w *Watcher) isRecursive(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recursive[dir]
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.shouldExcludeDir(path) {
			return filepath.SkipDir
		}

		w.mu.Lock()
		w.recursive[path] = true
		w.mu.Unlock()
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) enqueueExistingFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if w.isInteresting(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) stopTimer() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	return w.excludeDirs.Match(path)
}

func (w *Watcher) shouldExcludeFile(path string) bool {
	if !w.extensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	return w.excludeFiles.Match(path)
}

// Close stops the pending debounce timer and releases the OS watcher
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsWatcher.Close()
}
