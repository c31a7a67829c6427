package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SharangSharma09/Draftly/internal/action"
)

func TestBuildSystemPromptEveryAction(t *testing.T) {
	for _, a := range action.All() {
		t.Run(string(a), func(t *testing.T) {
			got := BuildSystemPrompt(a)
			assert.NotEmpty(t, got)
			assert.True(t, strings.HasSuffix(got, NoPreamble), "prompt must end with the no-preamble clause")
			assert.Equal(t, 1, strings.Count(got, NoPreamble))
			assert.True(t, strings.HasPrefix(got, "You are"), "prompt must open with a role framing")
		})
	}
}

func TestBuildSystemPromptDistinctPerAction(t *testing.T) {
	seen := make(map[string]action.Action)
	for _, a := range action.All() {
		p := BuildSystemPrompt(a)
		if prev, ok := seen[p]; ok {
			t.Errorf("%s and %s share a prompt", prev, a)
		}
		seen[p] = a
	}
}

func TestBuildSystemPromptFallback(t *testing.T) {
	got := BuildSystemPrompt(action.Action("sarcastic"))
	assert.Contains(t, got, "preserving its core message and meaning")
	assert.Contains(t, got, NoPreamble)
}

func TestBuildSystemPromptQualityBars(t *testing.T) {
	assert.Contains(t, BuildSystemPrompt(action.Simplify), "40-50% reduction")
	assert.Contains(t, BuildSystemPrompt(action.Expand), "Double the original length")
	assert.Contains(t, BuildSystemPrompt(action.FixGrammar), "without changing its meaning")
}

func TestUserPrompt(t *testing.T) {
	got := UserPrompt("SYSTEM", "line one\nline two")
	assert.Equal(t, "SYSTEM\n\nText to transform: \"line one\nline two\"", got)
}
