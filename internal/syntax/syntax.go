// Package syntax handles parsing the raw Custom Difficulty JSON text into
// meaningful data structures, providing the byte-offset spans that every
// later stage uses to point diagnostics back at the original source.
package syntax

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
)

// dummy is the sentinel offset marking a span that was synthesised rather
// than parsed, e.g. the span of a defaulted field.
const dummy = math.MaxInt

// Span is a half-open byte-offset interval [Lo, Hi) locating a syntactic
// unit in the original source text.
//
// The invariant Lo <= Hi holds for every span produced by the scanner and
// parser. Zero-width spans are legal and mark empty or synthesised units.
type Span struct {
	Lo int `json:"lo"` // Byte offset of the start of the span
	Hi int `json:"hi"` // Byte offset one past the end of the span
}

// DummySpan returns the sentinel span marking a value that was defaulted
// rather than parsed from source.
func DummySpan() Span {
	return Span{Lo: dummy, Hi: dummy}
}

// IsDummy reports whether the span is the defaulted-value sentinel.
func (s Span) IsDummy() bool {
	return s.Lo == dummy && s.Hi == dummy
}

// IsValid reports whether the span describes a plausible region of source,
// i.e. non-negative offsets with Lo <= Hi. The dummy span is not valid.
func (s Span) IsValid() bool {
	return s.Lo >= 0 && s.Lo <= s.Hi && !s.IsDummy()
}

// Cover returns the smallest span enclosing both s and other.
func (s Span) Cover(other Span) Span {
	if s.IsDummy() {
		return other
	}

	if other.IsDummy() {
		return s
	}

	return Span{Lo: min(s.Lo, other.Lo), Hi: max(s.Hi, other.Hi)}
}

// Text returns the region of src the span points at, or "" if the span
// does not fit within src.
func (s Span) Text(src []byte) string {
	if !s.IsValid() || s.Hi > len(src) {
		return ""
	}

	return string(src[s.Lo:s.Hi])
}

// String implements [fmt.Stringer] for a [Span].
func (s Span) String() string {
	if s.IsDummy() {
		return "<dummy>"
	}

	return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
}

// Spanned is a value paired with the span of the source text it was
// derived from.
//
// Anything comparing or keying on a Spanned must compare Val only, never
// the span, so that semantically equal values collide regardless of where
// in the document they appeared.
type Spanned[T any] struct {
	Val  T    `json:"val"`
	Span Span `json:"-"`
}

// Wrap returns val tagged with span.
func Wrap[T any](val T, span Span) Spanned[T] {
	return Spanned[T]{Val: val, Span: span}
}

// Defaulted returns val tagged with the dummy span, marking a value that
// came from a schema default rather than the input.
func Defaulted[T any](val T) Spanned[T] {
	return Spanned[T]{Val: val, Span: DummySpan()}
}

// Position is a resolved source file position including file, line and
// column information, used only at the presentation edge. It can express a
// range of source via StartCol and EndCol.
type Position struct {
	Name     string `json:"name"`     // Filename
	Offset   int    `json:"offset"`   // Byte offset of the position from the start of the file
	Line     int    `json:"line"`     // Line number (1 indexed)
	StartCol int    `json:"startCol"` // Start column (1 indexed)
	EndCol   int    `json:"endCol"`   // End column (1 indexed), EndCol == StartCol when pointing to a single character
}

// IsValid reports whether the [Position] describes a valid source position.
//
// At least Name, Line and StartCol must be set (and non zero), and EndCol
// must be StartCol or greater.
func (p Position) IsValid() bool {
	if p.Name == "" || p.Line < 1 || p.StartCol < 1 || p.EndCol < 1 || p.EndCol < p.StartCol {
		return false
	}

	return true
}

// String returns a string representation of a [Position], formatted so that
// most terminals support clicking on it and navigating to the position.
//
// Depending on which fields are set, the string returned will be different:
//
//   - "file:line:start-end": valid position pointing to a range of text on the line
//   - "file:line:start": valid position pointing to a single character on the line
//
// If the position is invalid, an error string is returned.
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf(
			"BadPosition: {Name: %q, Line: %d, StartCol: %d, EndCol: %d}",
			p.Name,
			p.Line,
			p.StartCol,
			p.EndCol,
		)
	}

	if p.StartCol == p.EndCol {
		// No range, just a single position
		return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.StartCol)
	}

	return fmt.Sprintf("%s:%d:%d-%d", p.Name, p.Line, p.StartCol, p.EndCol)
}

// ComparePosition is like [cmp.Compare] for a [syntax.Position].
//
// Positions in the same file compare by offset, positions in different
// files compare alphabetically by filename.
func ComparePosition(x, y Position) int {
	if x == y {
		return 0
	}

	if x.Name == y.Name {
		return cmp.Compare(x.Offset, y.Offset)
	}

	return cmp.Compare(x.Name, y.Name)
}

// Resolve converts a span over src into a [Position] in the named file.
//
// The dummy span and spans that do not fit within src resolve to an
// invalid position.
func Resolve(name string, src []byte, span Span) Position {
	if !span.IsValid() || span.Hi > len(src) {
		return Position{Name: name}
	}

	// Line is 1 + the number of newlines before the span, column is the
	// number of bytes between the last newline and the span start
	line := 1 + bytes.Count(src[:span.Lo], []byte("\n"))

	lineOffset := bytes.LastIndexByte(src[:span.Lo], '\n') + 1

	startCol := 1 + span.Lo - lineOffset

	// Multi-line spans point their end column at the end of the first line
	endCol := startCol + (span.Hi - span.Lo)
	if idx := bytes.IndexByte(src[span.Lo:span.Hi], '\n'); idx >= 0 {
		endCol = startCol + idx
	}

	if endCol < startCol {
		endCol = startCol
	}

	return Position{
		Name:     name,
		Offset:   span.Lo,
		Line:     line,
		StartCol: startCol,
		EndCol:   endCol,
	}
}
