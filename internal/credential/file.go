package credential

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// File serves keys from a YAML file of the form
//
//	openai: sk-...
//	anthropic: sk-ant-...
//
// and reloads it whenever the file changes on disk.
type File struct {
	path string

	mu   sync.RWMutex
	keys map[registry.Provider]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFile loads path and starts watching its directory for changes.
func NewFile(path string) (*File, error) {
	f := &File{path: path, done: make(chan struct{})}
	if err := f.reload(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("credential: watch %s: %w", path, err)
	}
	// Watch the directory: editors often replace the file rather than write it.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("credential: watch %s: %w", path, err)
	}
	f.watcher = w
	go f.processEvents()
	return f, nil
}

func (f *File) Lookup(_ context.Context, p registry.Provider) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if k := f.keys[p]; k != "" {
		return k, nil
	}
	return "", ErrNotFound
}

// Close stops the watcher.
func (f *File) Close() error {
	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	<-f.done
	return err
}

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("credential: read %s: %w", f.path, err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("credential: parse %s: %w", f.path, err)
	}

	keys := make(map[registry.Provider]string, len(raw))
	for name, key := range raw {
		p, err := registry.ParseProvider(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			slog.Warn("credential: ignoring key for unknown provider", "provider", name, "path", f.path)
			continue
		}
		keys[p] = strings.TrimSpace(key)
	}

	f.mu.Lock()
	f.keys = keys
	f.mu.Unlock()
	return nil
}

func (f *File) processEvents() {
	defer close(f.done)
	target := filepath.Clean(f.path)
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := f.reload(); err != nil {
				slog.Error("credential: reload failed, keeping previous keys", "error", err)
				continue
			}
			slog.Info("credential: keys reloaded", "path", f.path)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("credential: watcher error", "error", err)
		}
	}
}
