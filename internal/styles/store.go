package styles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/vkrunjs/website/internal/logger"
)

// Store holds the current sheet of one module. Readers always see a
// complete sheet; Watch swaps it wholesale.
type Store struct {
	current atomic.Pointer[Sheet]
}

// NewStore creates a store serving sheet
func NewStore(sheet *Sheet) *Store {
	st := &Store{}
	st.current.Store(sheet)
	return st
}

// Load returns the current sheet
func (st *Store) Load() *Sheet {
	return st.current.Load()
}

// Class resolves a local class name against the current sheet
func (st *Store) Class(name string) string {
	return st.Load().Class(name)
}

// Reload re-parses path under the store's module and swaps the sheet in.
// On error the previous sheet stays in place.
func (st *Store) Reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read stylesheet: %w", err)
	}
	sheet, err := Parse(st.Load().Module(), data)
	if err != nil {
		return err
	}
	st.current.Store(sheet)
	return nil
}

// Watch reloads the sheet whenever path changes on disk, until ctx is done.
// It loads path once after the watch is in place. Intended for development only.
func (st *Store) Watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace files by rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	if err := st.Reload(path); err != nil {
		return err
	}

	log := logger.Global().WithPrefix("styles")
	log.Info("Watching %s for changes", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if err := st.Reload(path); err != nil {
				log.Warn("Keeping previous %s stylesheet: %v", st.Load().Module(), err)
				continue
			}
			log.Info("Reloaded %s stylesheet", st.Load().Module())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error: %v", err)
		}
	}
}
