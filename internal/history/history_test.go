package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SharangSharma09/Draftly/internal/action"
)

func TestRecorderCapsAndOrders(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(&MemoryStore{})

	for i := 0; i < 15; i++ {
		_, err := r.Record(ctx, action.Simplify, fmt.Sprintf("result %d", i))
		require.NoError(t, err)
	}

	entries, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, Limit)
	assert.Equal(t, "result 14", entries[0].Text)
	assert.Equal(t, "result 5", entries[Limit-1].Text)
}

func TestRecorderEntryFields(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	r := NewRecorder(&MemoryStore{})
	r.now = func() time.Time { return fixed }

	e, err := r.Record(context.Background(), action.Formal, "Dear Sir")
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, action.Formal, e.Action)
	assert.Equal(t, "Dear Sir", e.Text)
	assert.True(t, e.Timestamp.Equal(fixed))
	assert.Equal(t, time.UTC, e.Timestamp.Location())
}

func TestRecorderClear(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(&MemoryStore{})
	_, err := r.Record(ctx, action.Casual, "hey")
	require.NoError(t, err)

	require.NoError(t, r.Clear(ctx))
	entries, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type brokenStore struct{ MemoryStore }

func (b *brokenStore) Save(context.Context, []Entry) error { return errors.New("disk full") }

func TestRecorderSaveError(t *testing.T) {
	r := NewRecorder(&brokenStore{})
	_, err := r.Record(context.Background(), action.Direct, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", StorageKey+".json")
	s := NewFileStore(path)

	entries, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	r := NewRecorder(s)
	_, err = r.Record(ctx, action.Expand, "first")
	require.NoError(t, err)
	_, err = r.Record(ctx, action.Witty, "second")
	require.NoError(t, err)

	reopened := NewRecorder(NewFileStore(path))
	entries, err = reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Text)
	assert.Equal(t, action.Witty, entries[0].Action)

	require.NoError(t, s.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.Clear(ctx))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore("not-a-url://")
	assert.Error(t, err)
}

func TestRedisStoreKey(t *testing.T) {
	s, err := NewRedisStore("redis://localhost:6379/0")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "text_transformer_history", s.key)
}
