package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/emoji"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

const (
	previewRunes = 100
	excerptRunes = 40
)

// GeneratedReply is the canned generate_text placeholder.
const GeneratedReply = "Thank you for your message. I've carefully considered your points and would like to respond in a way that addresses your concerns while maintaining a constructive dialogue. Let me know if you would like any clarification on the points I've shared."

var placeholderMarkers = map[action.Action]string{
	action.Simplify:    "[shortened version]",
	action.Expand:      "[with additional context and elaboration on the main topics]",
	action.Rephrase:    "[reworded with different vocabulary and structures]",
	action.Formal:      "[expressed in formal language]",
	action.Casual:      "[expressed in casual, conversational language]",
	action.Persuasive:  "[expressed persuasively]",
	action.Witty:       "[expressed with wit and humor]",
	action.Empathetic:  "[expressed with empathy and emotional sensitivity]",
	action.Direct:      "[expressed in a direct, to-the-point manner]",
	action.AddEmoji:    "[with appropriate emojis added 😊]",
	action.RemoveEmoji: "[with emojis removed]",
	action.FixGrammar:  "[with grammar errors corrected]",
}

// genericMarker tags placeholders for actions without a marker of their own.
const genericMarker = "[transformed]"

// MockAdapter serves models with no real backend and stands in for failed
// providers. It never fails except on context cancellation.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Provider() registry.Provider { return registry.Other }

func (m *MockAdapter) Transform(ctx context.Context, text string, a action.Action, _ registry.Model) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return Placeholder(text, a), nil
}

func (m *MockAdapter) Available(_ context.Context) bool { return true }

// Placeholder returns a deterministic stand-in for transforming text with a:
// a short excerpt followed by a bracketed marker naming the action.
// Blank text yields "".
func Placeholder(text string, a action.Action) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if a == action.GenerateText {
		return GeneratedReply
	}
	marker, ok := placeholderMarkers[a]
	if !ok {
		marker = genericMarker
	}
	if a == action.RemoveEmoji && emoji.Contains(text) {
		text = emoji.Strip(text)
	}
	return excerpt(text) + "... " + marker
}

func excerpt(text string) string {
	runes := []rune(text)
	preview := runes
	if len(runes) > previewRunes {
		preview = runes[:previewRunes]
	}
	if len(preview) > excerptRunes {
		preview = preview[:excerptRunes]
	}
	return string(preview)
}

// HasMarker reports whether s carries a placeholder marker.
func HasMarker(s string) bool {
	if s == GeneratedReply || strings.HasSuffix(s, genericMarker) {
		return true
	}
	for _, m := range placeholderMarkers {
		if strings.HasSuffix(s, m) {
			return true
		}
	}
	return false
}
