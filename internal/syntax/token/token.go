// Package token provides the set of lexical tokens for a Custom Difficulty
// JSON file.
package token

import (
	"fmt"
	"slices"
)

// Kind is the kind of a token.
type Kind int

//go:generate stringer -type Kind -linecomment
const (
	EOF          Kind = iota // EOF
	Error                    // Error
	LeftBrace                // LeftBrace
	RightBrace               // RightBrace
	LeftBracket              // LeftBracket
	RightBracket             // RightBracket
	Colon                    // Colon
	Comma                    // Comma
	String                   // String
	Number                   // Number
	True                     // True
	False                    // False
	Null                     // Null
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a lexical token in a Custom Difficulty JSON file.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the file to the start of this token
	End   int  // Byte offset from the start of the file to the end of this token
}

// String implement [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d>", t.Kind, t.Start, t.End)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Keyword reports whether a string is one of the three JSON keywords,
// returning its [Kind] and true if it is. Otherwise [Error] and false
// are returned.
func Keyword(text string) (kind Kind, ok bool) {
	switch text {
	case "true":
		return True, true
	case "false":
		return False, true
	case "null":
		return Null, true
	default:
		return Error, false
	}
}
