// Package watcher reports debounced file system changes for the map index
// and the pathing map directory.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files and directories and triggers callbacks
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]func(string) // exact file path -> callback
	dirs     map[string]func(string) // directory -> callback for any entry
	debounce time.Duration
	timers   map[string]*time.Timer
	onError  func(error)
	closed   bool
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]func(string)),
		dirs:     make(map[string]func(string)),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// OnError sets the handler for watcher errors
func (fw *FileWatcher) OnError(handler func(error)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.onError = handler
}

// WatchFile calls callback when the file is written or replaced. The parent
// directory is watched so that editors replacing the file are noticed.
func (fw *FileWatcher) WatchFile(file string, callback func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	fw.files[absPath] = callback
	return nil
}

// Unwatch drops the callback of a file registered with WatchFile and any
// change still waiting for its debounce
func (fw *FileWatcher) Unwatch(file string) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	delete(fw.files, absPath)
	if timer, exists := fw.timers[absPath]; exists {
		timer.Stop()
		delete(fw.timers, absPath)
	}
}

// WatchDir calls callback with the changed path for every entry of dir
func (fw *FileWatcher) WatchDir(dir string, callback func(string)) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if err := fw.watcher.Add(absPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	fw.dirs[absPath] = callback
	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				// Only trigger on write, create or rename events
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.mu.Lock()
				handler := fw.onError
				fw.mu.Unlock()
				if handler != nil {
					handler(err)
				}
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return
	}

	callback, exists := fw.files[filePath]
	if !exists {
		callback, exists = fw.dirs[filepath.Dir(filePath)]
	}
	if !exists {
		return
	}

	// Cancel existing timer if any
	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher and pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
