// Package scanner implements a lexical scanner for Custom Difficulty JSON
// files, reading the raw source text and emitting a stream of tokens.
//
// The scanner is a concurrent, state-function based scanner similar to that described by
// Rob Pike in his talk [Lexical Scanning in Go], based on the implementation of [text/template].
//
// The scanner proceeds one utf8 rune at a time until a particular token is recognised, the token
// is then emitted over a channel where it may be consumed by the parser.
//
// JSON is lexically simple so the machine is small, but keeping this shape
// means the scanner never stops at the first bad character: it records a
// diagnostic, emits an error token and carries on, which is exactly what a
// linter wants.
//
// A similar approach is taken in [BurntSushi/toml].
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
// [BurntSushi/toml]: https://github.com/BurntSushi/toml/blob/master/lex.go
package scanner

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/syntax"
	"go.followtheprocess.codes/cdlint/internal/syntax/token"
)

const (
	eof        = rune(-1) // eof signifies we have reached the end of the input.
	bufferSize = 32       // benchmarks suggest this is the optimum token channel buffer size.
)

// stateFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner is the Custom Difficulty file scanner.
type Scanner struct {
	tokens      chan token.Token  // Channel on which to emit scanned tokens
	name        string            // Name of the file
	diagnostics []diag.Diagnostic // Diagnostics gathered during scanning
	src         []byte            // Raw source text

	start int          // The start position of the current token
	pos   int          // Current scanner position in src (bytes, 0 indexed)
	mu    sync.RWMutex // Guards diagnostics
}

// New returns a new [Scanner].
func New(name string, src []byte) *Scanner {
	s := &Scanner{
		tokens: make(chan token.Token, bufferSize),
		name:   name,
		src:    src,
	}

	// run terminates when the scanning state machine is finished and all the
	// tokens are drained from s.tokens, so no other synchronisation needed here
	go s.run()

	return s
}

// Scan scans the input and returns the next token.
func (s *Scanner) Scan() token.Token {
	return <-s.tokens
}

// Diagnostics returns the list of diagnostics gathered during scanning.
func (s *Scanner) Diagnostics() []diag.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Create a copy so caller can't mutate the original diagnostics slice
	diagCopy := make([]diag.Diagnostic, 0, len(s.diagnostics))
	diagCopy = append(diagCopy, s.diagnostics...)

	return diagCopy
}

// atEOF reports whether the scanner is at the end of the input.
func (s *Scanner) atEOF() bool {
	return s.pos >= len(s.src)
}

// char returns the next utf8 rune in the input or [eof], along with it's width.
func (s *Scanner) char() (rune, int) {
	if s.atEOF() {
		return eof, 0
	}

	r, width := utf8.DecodeRune(s.src[s.pos:])
	if r == utf8.RuneError || r == 0 {
		s.errorf("invalid utf8 character at position %d: %q", s.pos, s.src[s.pos])
		// Prevent cascading errors by "consuming" all remaining input
		s.pos = len(s.src)

		return utf8.RuneError, 0
	}

	return r, width
}

// next returns the next utf8 rune in the input or [eof], and advances
// the scanner over that rune such that successive calls to next iterate
// through src one rune at a time.
func (s *Scanner) next() rune {
	char, width := s.char()

	// Advance the state of the scanner
	s.pos += width

	return char
}

// peek returns the next utf8 rune in the input or [eof], but does not
// advance the scanner. Successive calls to peek return the same char
// over and over again.
func (s *Scanner) peek() rune {
	// No advancing the state
	char, _ := s.char()
	return char
}

// discard brings the start position up to current, effectively discarding
// any text the scanner has "collected" up to this point.
func (s *Scanner) discard() {
	s.start = s.pos
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the
// first 'false' char.
//
// The scanner start position is brought up to the current position before returning, effectively
// ignoring everything it's travelled over in the meantime.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.discard()
}

// take consumes the next rune if it's from the valid set, and returns
// whether it was accepted.
func (s *Scanner) take(valid string) bool {
	if strings.ContainsRune(valid, s.peek()) {
		s.next()
		return true
	}

	return false
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// emit passes a token over the tokens channel, using the scanner's internal
// state to populate position information.
func (s *Scanner) emit(kind token.Kind) {
	s.tokens <- token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
	}

	// We've just emitted it, no need to keep it
	s.discard()
}

// error records a diagnostic spanning the current token and emits an error
// token, then resumes scanning from the top so one bad character does not
// hide everything after it.
func (s *Scanner) error(msg string) stateFn {
	span := syntax.Span{Lo: s.start, Hi: s.pos}
	if span.Lo == span.Hi {
		span.Hi++
	}

	s.emit(token.Error)

	d := diag.New(diag.Error, msg).WithLabel(span, msg, diag.Red)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.diagnostics = append(s.diagnostics, d)

	return scanStart
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) stateFn {
	return s.error(fmt.Sprintf(format, a...))
}

// run starts the state machine for the scanner, it runs with each [stateFn] returning the next
// state until one returns nil (typically in response to eof), at which point the tokens channel
// is closed as a signal to the receiver that no more tokens will be sent.
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}

	close(s.tokens)
}

// scanStart is the initial state of the scanner, and the state it returns
// to after every complete token.
//
// Whitespace is ignored.
func scanStart(s *Scanner) stateFn {
	s.skip(unicode.IsSpace)

	switch char := s.next(); {
	case char == eof:
		s.emit(token.EOF)
		return nil
	case char == utf8.RuneError:
		// next() already emits an error for this
		return nil
	case char == '{':
		s.emit(token.LeftBrace)
		return scanStart
	case char == '}':
		s.emit(token.RightBrace)
		return scanStart
	case char == '[':
		s.emit(token.LeftBracket)
		return scanStart
	case char == ']':
		s.emit(token.RightBracket)
		return scanStart
	case char == ':':
		s.emit(token.Colon)
		return scanStart
	case char == ',':
		s.emit(token.Comma)
		return scanStart
	case char == '"':
		return scanString
	case char == '-' || isDigit(char):
		return scanNumber
	case isAlpha(char):
		return scanKeyword
	default:
		return s.errorf("unexpected character: %q", char)
	}
}

// scanString scans a double quoted JSON string.
//
// It assumes the opening '"' has already been consumed. The emitted token
// includes both quotes, escape sequences are not interpreted here, that is
// the parser's job.
func scanString(s *Scanner) stateFn {
	for {
		switch char := s.next(); char {
		case '"':
			s.emit(token.String)
			return scanStart
		case '\\':
			// Whatever is escaped cannot close the string, even '"'.
			// Validity of the escape itself is checked during unescaping
			s.next()
		case '\n', eof, utf8.RuneError:
			return s.error("unterminated string")
		}
	}
}

// scanNumber scans a JSON number.
//
// It assumes the leading '-' or first digit has already been consumed.
func scanNumber(s *Scanner) stateFn {
	s.takeWhile(isDigit)

	if s.take(".") {
		s.takeWhile(isDigit)
	}

	if s.take("eE") {
		s.take("+-")
		s.takeWhile(isDigit)
	}

	// Catches things like "-", "1.", "2e+" which the loops above accept
	text := string(s.src[s.start:s.pos])
	if !validNumber(text) {
		return s.errorf("invalid number: %q", text)
	}

	s.emit(token.Number)

	return scanStart
}

// scanKeyword scans one of the three JSON keywords: true, false or null.
//
// It assumes the first character has already been consumed.
func scanKeyword(s *Scanner) stateFn {
	s.takeWhile(isAlpha)

	text := string(s.src[s.start:s.pos])

	kind, ok := token.Keyword(text)
	if !ok {
		return s.errorf("expected one of 'true', 'false' or 'null', got %q", text)
	}

	s.emit(kind)

	return scanStart
}

// validNumber reports whether text is a complete JSON number, i.e. every
// part that was started also has at least one digit.
func validNumber(text string) bool {
	mantissa, exp, hasExp := cutExp(strings.TrimPrefix(text, "-"))
	if hasExp && !validExp(exp) {
		return false
	}

	intPart, fracPart, hasFrac := strings.Cut(mantissa, ".")
	if intPart == "" || !allDigits(intPart) {
		return false
	}

	if hasFrac && (fracPart == "" || !allDigits(fracPart)) {
		return false
	}

	return true
}

// cutExp splits text around an 'e' or 'E' exponent marker.
func cutExp(text string) (before, after string, found bool) {
	if before, after, found = strings.Cut(text, "e"); found {
		return before, after, true
	}

	return strings.Cut(text, "E")
}

// validExp reports whether text is a valid exponent: an optional sign
// followed by at least one digit.
func validExp(text string) bool {
	text = strings.TrimPrefix(text, "+")
	text = strings.TrimPrefix(text, "-")

	return text != "" && allDigits(text)
}

// allDigits reports whether text is entirely ASCII digits.
func allDigits(text string) bool {
	for _, r := range text {
		if !isDigit(r) {
			return false
		}
	}

	return true
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha reports whether r is an alpha character.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
