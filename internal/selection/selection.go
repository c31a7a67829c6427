// Package selection splits a document around a [start, end) range so only the
// selected span is transformed and the result can be spliced back in.
// Offsets count UTF-16 code units, the unit of a browser textarea's
// selectionStart and selectionEnd.
package selection

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// ErrRange is returned for offsets outside the text, offsets that split a
// surrogate pair, or start > end.
var ErrRange = errors.New("selection out of range")

// Range is a half-open range of UTF-16 code units.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Empty reports whether r selects nothing. A reversed range is not empty;
// Split rejects it.
func (r Range) Empty() bool { return r.End == r.Start }

// Parts holds a document cut at a selection.
type Parts struct {
	Before   string
	Selected string
	After    string
}

// Split cuts text at r. Before and After are slices of text, so bytes that
// are not valid UTF-8 survive unchanged; each such byte counts as one unit.
func Split(text string, r Range) (Parts, error) {
	bs, okStart := byteOffset(text, r.Start)
	be, okEnd := byteOffset(text, r.End)
	if !okStart || !okEnd || r.Start > r.End {
		return Parts{}, fmt.Errorf("%w: [%d,%d) in text of length %d", ErrRange, r.Start, r.End, Len(text))
	}
	return Parts{
		Before:   text[:bs],
		Selected: text[bs:be],
		After:    text[be:],
	}, nil
}

// Join splices replacement between the unselected parts.
func (p Parts) Join(replacement string) string {
	return p.Before + replacement + p.After
}

// Replaced returns the range that replacement occupies after Join, which a
// caller uses to restore the selection.
func (p Parts) Replaced(replacement string) Range {
	start := Len(p.Before)
	return Range{Start: start, End: start + Len(replacement)}
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// byteOffset maps a UTF-16 offset to a byte offset in text. It fails when
// units is negative, past the end, or inside a surrogate pair.
func byteOffset(text string, units int) (int, bool) {
	n := 0
	for i, r := range text {
		if n >= units {
			return i, n == units
		}
		n += utf16.RuneLen(r)
	}
	return len(text), n == units
}
