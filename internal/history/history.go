// Package history keeps the most recent successful transforms.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/SharangSharma09/Draftly/internal/action"
)

const (
	// Limit is the number of entries kept.
	Limit = 10
	// StorageKey names the single blob every store reads and writes.
	StorageKey = "text_transformer_history"
)

// Entry is one completed transform.
type Entry struct {
	ID        string        `json:"id"`
	Action    action.Action `json:"action"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
}

// Store persists the whole list as one value.
type Store interface {
	Save(ctx context.Context, entries []Entry) error
	Load(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

// Recorder prepends entries to a Store and keeps at most Limit of them.
type Recorder struct {
	store Store
	limit int
	now   func() time.Time

	mu sync.Mutex
}

// NewRecorder returns a Recorder over s with the default Limit.
func NewRecorder(s Store) *Recorder {
	return &Recorder{store: s, limit: Limit, now: time.Now}
}

// Record stores text as the newest entry.
func (r *Recorder) Record(ctx context.Context, a action.Action, text string) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Action:    a,
		Text:      text,
		Timestamp: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.store.Load(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("history: load: %w", err)
	}
	entries = append([]Entry{e}, entries...)
	if len(entries) > r.limit {
		entries = entries[:r.limit]
	}
	if err := r.store.Save(ctx, entries); err != nil {
		return Entry{}, fmt.Errorf("history: save: %w", err)
	}
	return e, nil
}

// List returns entries newest first.
func (r *Recorder) List(ctx context.Context) ([]Entry, error) {
	entries, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: load: %w", err)
	}
	if len(entries) > r.limit {
		entries = entries[:r.limit]
	}
	return entries, nil
}

// Clear removes every entry.
func (r *Recorder) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

func encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return sonic.Marshal(entries)
}

func decode(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return entries, nil
}
