package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

func TestStatic(t *testing.T) {
	s := Static{registry.OpenAI: "sk-abc", registry.Google: "  "}

	key, err := s.Lookup(context.Background(), registry.OpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", key)

	_, err = s.Lookup(context.Background(), registry.Google)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnv(t *testing.T) {
	vars := map[string]string{
		"PERPLEXITY_API_KEY": "pplx-123",
		"GEMINI_API_KEY":     "AIza-gemini",
	}
	e := Env{Getenv: func(k string) string { return vars[k] }}

	tests := []struct {
		provider registry.Provider
		want     string
		wantErr  error
	}{
		{registry.Perplexity, "pplx-123", nil},
		{registry.Google, "AIza-gemini", nil},
		{registry.OpenAI, "", ErrNotFound},
		{registry.Other, "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			got, err := e.Lookup(context.Background(), tt.provider)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvUsesProcessEnvironment(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-deep")
	key, err := Env{}.Lookup(context.Background(), registry.Deepseek)
	require.NoError(t, err)
	assert.Equal(t, "sk-deep", key)
}

type failingSource struct{}

func (failingSource) Lookup(context.Context, registry.Provider) (string, error) {
	return "", errors.New("store offline")
}

func TestChain(t *testing.T) {
	first := Static{registry.OpenAI: "sk-first"}
	second := Static{registry.OpenAI: "sk-second", registry.Anthropic: "sk-ant-second"}
	c := Chain{first, second}

	key, err := c.Lookup(context.Background(), registry.OpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-first", key)

	key, err = c.Lookup(context.Background(), registry.Anthropic)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-second", key)

	_, err = c.Lookup(context.Background(), registry.Google)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Chain{Static{}, failingSource{}}.Lookup(context.Background(), registry.Google)
	assert.EqualError(t, err, "store offline")
}

func TestInspect(t *testing.T) {
	src := Static{
		registry.Perplexity: "pplx-abcdef123",
		registry.OpenAI:     "not-a-key",
		registry.Anthropic:  "sk-a",
	}

	got := Inspect(context.Background(), src, registry.Perplexity)
	assert.Equal(t, Status{Exists: true, ValidFormat: true, Prefix: "pplx-"}, got)

	got = Inspect(context.Background(), src, registry.OpenAI)
	assert.Equal(t, Status{Exists: true, ValidFormat: false, Prefix: "not-a"}, got)

	got = Inspect(context.Background(), src, registry.Anthropic)
	assert.Equal(t, Status{Exists: true, ValidFormat: false, Prefix: "****"}, got)

	got = Inspect(context.Background(), src, registry.Google)
	assert.Equal(t, Status{Prefix: "N/A"}, got)
}

func TestInspectPrefixMultibyte(t *testing.T) {
	src := Static{
		registry.OpenAI:   "sk-ключ-123",
		registry.Deepseek: "sk-\xffé9abc",
	}

	got := Inspect(context.Background(), src, registry.OpenAI)
	assert.Equal(t, "sk-кл", got.Prefix)

	got = Inspect(context.Background(), src, registry.Deepseek)
	assert.True(t, utf8.ValidString(got.Prefix), "prefix %q", got.Prefix)
	assert.Equal(t, "sk-\uFFFDé", got.Prefix)
}

func TestFileLoadsAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai: sk-one\nazure: ignored\n"), 0600))

	f, err := NewFile(path)
	require.NoError(t, err)
	defer f.Close()

	key, err := f.Lookup(context.Background(), registry.OpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-one", key)

	_, err = f.Lookup(context.Background(), registry.Anthropic)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(path, []byte("openai: sk-two\nanthropic: sk-ant-x\n"), 0600))

	assert.Eventually(t, func() bool {
		key, err := f.Lookup(context.Background(), registry.Anthropic)
		return err == nil && key == "sk-ant-x"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestNewRedisBadURL(t *testing.T) {
	_, err := NewRedis("not a url")
	assert.Error(t, err)
}
