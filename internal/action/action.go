// Package action defines the closed set of text transformations a caller can request.
package action

import "fmt"

// Action is a user-selected transformation intent.
type Action string

const (
	Simplify     Action = "simplify"
	Expand       Action = "expand"
	Rephrase     Action = "rephrase"
	Formal       Action = "formal"
	Casual       Action = "casual"
	Persuasive   Action = "persuasive"
	Witty        Action = "witty"
	Empathetic   Action = "empathetic"
	Direct       Action = "direct"
	AddEmoji     Action = "add_emoji"
	RemoveEmoji  Action = "remove_emoji"
	FixGrammar   Action = "fix_grammar"
	GenerateText Action = "generate_text"
)

var all = []Action{
	Simplify, Expand, Rephrase, Formal, Casual, Persuasive, Witty, Empathetic, Direct,
	AddEmoji, RemoveEmoji, FixGrammar, GenerateText,
}

// All returns every known action in display order.
func All() []Action {
	out := make([]Action, len(all))
	copy(out, all)
	return out
}

// Parse validates s against the known actions.
func Parse(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown action: %s", s)
	}
	return a, nil
}

func (a Action) String() string { return string(a) }

// Valid reports whether a is one of the enumerated actions.
func (a Action) Valid() bool {
	for _, k := range all {
		if a == k {
			return true
		}
	}
	return false
}

// IsRewrite reports whether a is a core rewrite action. Only rewrites get the
// second emoji pass when the emoji option is on.
func (a Action) IsRewrite() bool {
	switch a {
	case Simplify, Expand, Rephrase, Formal, Casual, Persuasive, Witty, Empathetic, Direct:
		return true
	default:
		return false
	}
}

// Emoji returns the marker emoji shown next to results of a.
func (a Action) Emoji() string {
	switch a {
	case Simplify:
		return "✂️"
	case Expand:
		return "📚"
	case Rephrase:
		return "🔄"
	case Formal:
		return "👔"
	case Casual:
		return "😊"
	case Persuasive:
		return "😏"
	case Witty:
		return "😄"
	case Empathetic:
		return "🫶"
	case Direct:
		return "🎯"
	case AddEmoji:
		return "😎"
	case RemoveEmoji:
		return "🧹"
	default:
		return "✨"
	}
}

// EmojiOption toggles the emoji decoration pass.
type EmojiOption string

const (
	EmojiOff EmojiOption = "off"
	EmojiOn  EmojiOption = "on"
)

// ParseEmojiOption accepts "on", "off" and the empty string (off).
func ParseEmojiOption(s string) (EmojiOption, error) {
	switch EmojiOption(s) {
	case "", EmojiOff:
		return EmojiOff, nil
	case EmojiOn:
		return EmojiOn, nil
	default:
		return "", fmt.Errorf("unknown emoji option: %s", s)
	}
}

// Enabled reports whether the option is on.
func (o EmojiOption) Enabled() bool { return o == EmojiOn }
