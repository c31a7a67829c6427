package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		r    Range
		want Parts
	}{
		{"middle", "hello big world", Range{6, 9}, Parts{"hello ", "big", " world"}},
		{"whole", "abc", Range{0, 3}, Parts{"", "abc", ""}},
		{"empty range", "abc", Range{1, 1}, Parts{"a", "", "bc"}},
		{"multibyte", "héllo wörld", Range{6, 11}, Parts{"héllo ", "wörld", ""}},
		{"astral emoji", "hi 👋 there", Range{3, 5}, Parts{"hi ", "👋", " there"}},
		{"after astral emoji", "👋 hey you", Range{3, 6}, Parts{"👋 ", "hey", " you"}},
		{"invalid utf-8 kept", "ab\xffcd efg", Range{5, 8}, Parts{"ab\xffcd", " ef", "g"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitOutOfRange(t *testing.T) {
	for _, r := range []Range{{-1, 2}, {0, 4}, {3, 2}} {
		_, err := Split("abc", r)
		assert.True(t, errors.Is(err, ErrRange), "range %v", r)
	}

	// Offset 1 falls between the two halves of the surrogate pair.
	_, err := Split("👋 hi", Range{1, 3})
	assert.ErrorIs(t, err, ErrRange)
}

func TestJoinRoundTrip(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	n := len([]rune(text))
	for start := 0; start <= n; start += 3 {
		for end := start; end <= n; end += 5 {
			p, err := Split(text, Range{start, end})
			require.NoError(t, err)
			assert.Equal(t, text, p.Join(p.Selected))
		}
	}
}

func TestJoinRoundTripInvalidUTF8(t *testing.T) {
	text := "ab\xffcd efg \xc3 h👋i"
	n := Len(text)
	for start := 0; start <= n; start++ {
		for end := start; end <= n; end++ {
			p, err := Split(text, Range{start, end})
			if err != nil {
				// Offsets inside the surrogate pair are rejected.
				require.ErrorIs(t, err, ErrRange)
				continue
			}
			assert.Equal(t, text, p.Join(p.Selected), "range [%d,%d)", start, end)
		}
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, Len(""))
	assert.Equal(t, 5, Len("héllo"))
	assert.Equal(t, 2, Len("👋"))
	assert.Equal(t, 1, Len("\xff"))
}

func TestReplacedAfterAstralEmoji(t *testing.T) {
	p, err := Split("🎉 great job team", Range{3, 12})
	require.NoError(t, err)
	require.Equal(t, "great job", p.Selected)

	assert.Equal(t, Range{3, 13}, p.Replaced("great work"))
}

func TestJoinReplacement(t *testing.T) {
	p, err := Split("please fix this sentense now", Range{7, 24})
	require.NoError(t, err)

	out := p.Join("Fix this sentence.")
	assert.Equal(t, "please Fix this sentence. now", out)

	r := p.Replaced("Fix this sentence.")
	assert.Equal(t, Range{7, 25}, r)
	assert.Equal(t, "Fix this sentence.", string([]rune(out)[r.Start:r.End]))
}

func TestRangeEmpty(t *testing.T) {
	assert.True(t, Range{2, 2}.Empty())
	assert.False(t, Range{0, 1}.Empty())
}
