package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, a := range All() {
		got, err := Parse(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := Parse("shout")
	assert.EqualError(t, err, "unknown action: shout")
}

func TestAllHasThirteenActions(t *testing.T) {
	assert.Len(t, All(), 13)
}

func TestIsRewrite(t *testing.T) {
	rewrites := []Action{Simplify, Expand, Rephrase, Formal, Casual, Persuasive, Witty, Empathetic, Direct}
	for _, a := range rewrites {
		assert.True(t, a.IsRewrite(), a)
	}
	for _, a := range []Action{AddEmoji, RemoveEmoji, FixGrammar, GenerateText} {
		assert.False(t, a.IsRewrite(), a)
	}
}

func TestEmojiNeverEmpty(t *testing.T) {
	for _, a := range All() {
		assert.NotEmpty(t, a.Emoji(), a)
	}
	assert.Equal(t, "✨", Action("unknown").Emoji())
}

func TestParseEmojiOption(t *testing.T) {
	tests := []struct {
		in      string
		want    EmojiOption
		wantErr bool
	}{
		{"", EmojiOff, false},
		{"off", EmojiOff, false},
		{"on", EmojiOn, false},
		{"yes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmojiOption(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
