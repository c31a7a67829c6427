// Package prompt maps actions to the system instructions sent to providers.
package prompt

import (
	"embed"
	"fmt"
	"strings"

	"github.com/SharangSharma09/Draftly/internal/action"
)

// NoPreamble is appended to every system prompt. Results are used as literal
// replacement text, so the model must not wrap them in commentary.
const NoPreamble = "IMPORTANT: Do not add any introductory phrases, disclaimers, or explanations like 'Here's a simplified version' or 'I've made this more formal'. Return ONLY the transformed text."

//go:embed prompts/*.txt
var files embed.FS

var (
	catalog  map[action.Action]string
	fallback string
)

func init() {
	catalog = make(map[action.Action]string)
	for _, a := range action.All() {
		if body, err := load(string(a)); err == nil {
			catalog[a] = body
		}
	}
	body, err := load("default")
	if err != nil {
		panic(fmt.Sprintf("prompt: %v", err))
	}
	fallback = body
}

func load(name string) (string, error) {
	data, err := files.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BuildSystemPrompt returns the instruction for a. Actions without a catalog
// entry get the generic style-transfer instruction.
func BuildSystemPrompt(a action.Action) string {
	body, ok := catalog[a]
	if !ok {
		body = fallback
	}
	return body + "\n\n" + NoPreamble
}

// UserPrompt folds the system instruction into a single user turn for
// providers whose request shape has no system role.
func UserPrompt(systemPrompt, text string) string {
	return fmt.Sprintf("%s\n\nText to transform: \"%s\"", systemPrompt, text)
}
