// Package emoji adds and removes emoji decoration locally, without a provider call.
package emoji

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/SharangSharma09/Draftly/internal/action"
)

// Bullets are the emojis placed after list markers.
var Bullets = []string{"✅", "👉", "📌", "💡", "🔑", "📊", "🎯", "📈"}

var bulletLine = regexp.MustCompile(`(?m)^([•*\-]|\d+\.)[ \t]+(.+)$`)

// Picker chooses an index in [0, n). Decoration is cosmetic, so the
// production picker is random; tests pass a fixed one.
type Picker func(n int) int

// RandomPicker picks uniformly at random.
func RandomPicker(n int) int { return rand.IntN(n) }

// Decorate prefixes text with the emoji for a and marks each bullet line.
func Decorate(text string, a action.Action, pick Picker) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if pick == nil {
		pick = RandomPicker
	}
	out := a.Emoji() + " " + text
	return bulletLine.ReplaceAllStringFunc(out, func(line string) string {
		m := bulletLine.FindStringSubmatch(line)
		return m[1] + " " + Bullets[pick(len(Bullets))] + " " + m[2]
	})
}

// Strip removes emoji and pictographic runes. A space left doubled by a
// removal is dropped, as is a space left at the start or end of a line.
func Strip(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	removed := false
	for _, r := range runes {
		if isEmoji(r) {
			removed = true
			continue
		}
		if removed && r == ' ' && (len(out) == 0 || out[len(out)-1] == ' ' || out[len(out)-1] == '\n') {
			continue
		}
		if removed && r == '\n' && len(out) > 0 && out[len(out)-1] == ' ' {
			out = out[:len(out)-1]
		}
		removed = false
		out = append(out, r)
	}
	if removed && len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// Contains reports whether text holds at least one emoji.
func Contains(text string) bool {
	return strings.IndexFunc(text, isEmoji) >= 0
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, flags, skin tones
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, zero-width joiner
		return true
	}
	return false
}
