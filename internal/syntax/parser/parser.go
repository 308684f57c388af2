// Package parser implements the Custom Difficulty JSON parser.
//
// The parser parses a stream of tokens from the scanner into ast nodes, if
// a parse error occurs, partial nodes may be returned rather than the idiomatic
// Go norm of <zero value>, error. This is intentional, a linter must report as
// many findings as it can in a single pass, so the parser records a diagnostic,
// synchronises on the next comma or closing bracket, and keeps going.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/syntax"
	"go.followtheprocess.codes/cdlint/internal/syntax/ast"
	"go.followtheprocess.codes/cdlint/internal/syntax/scanner"
	"go.followtheprocess.codes/cdlint/internal/syntax/token"
)

// ErrParse is a generic parsing error, details are in the diagnostics
// gathered by the parser as the errors occur.
var ErrParse = errors.New("parse error")

// maxDepth bounds how deeply values may nest, guarding the recursive
// descent against pathological input.
const maxDepth = 200

// Parser is the Custom Difficulty file parser.
type Parser struct {
	scanner     *scanner.Scanner  // Scanner to produce tokens
	name        string            // Name of the file being parsed
	diagnostics []diag.Diagnostic // Diagnostics gathered during parsing
	src         []byte            // Raw source text
	current     token.Token       // Current token under inspection
	depth       int               // Current nesting depth
	hadErrors   bool              // Whether we encountered parse errors
}

// New initialises and returns a new [Parser] that parses src.
func New(name string, src []byte) *Parser {
	p := &Parser{
		scanner: scanner.New(name, src),
		name:    name,
		src:     src,
	}

	// Read the first token so current is set
	p.advance()

	return p
}

// Parse parses the file to completion, returning the root of the tree and
// any parsing errors.
//
// The returned error simply signifies whether or not there were parse
// errors, [Parser.Diagnostics] has the full detail and should be preferred.
func (p *Parser) Parse() (*ast.Node, error) {
	if p == nil {
		return nil, errors.New("Parse called on nil parser")
	}

	root := p.parseValue()

	// Anything left after the top level value is an error, but report it
	// once and drain the scanner regardless so it can shut down cleanly
	if !p.current.Is(token.EOF) {
		p.error("unexpected content after top level value")

		for !p.current.Is(token.EOF) {
			p.advance()
		}
	}

	if p.hadErrors {
		return root, ErrParse
	}

	return root, nil
}

// Diagnostics returns every diagnostic gathered during scanning and
// parsing, in source order.
//
// It should only be called after [Parser.Parse] has returned.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	combined := slices.Concat(p.scanner.Diagnostics(), p.diagnostics)

	slices.SortStableFunc(combined, func(a, b diag.Diagnostic) int {
		return a.Primary().Lo - b.Primary().Lo
	})

	return combined
}

// advance advances the parser by a single token.
func (p *Parser) advance() {
	p.current = p.scanner.Scan()
}

// span returns the span of the current token.
func (p *Parser) span() syntax.Span {
	return syntax.Span{Lo: p.current.Start, Hi: p.current.End}
}

// synchronise skips tokens until it finds one of the given kinds or EOF,
// re-anchoring the parser after an error.
func (p *Parser) synchronise(kinds ...token.Kind) {
	for !p.current.Is(token.EOF) && !p.current.Is(kinds...) {
		p.advance()
	}
}

// errorAt records a parse error pointing at span.
func (p *Parser) errorAt(span syntax.Span, msg string) {
	p.hadErrors = true
	p.diagnostics = append(p.diagnostics, diag.New(diag.Error, msg).WithLabel(span, msg, diag.Red))
}

// error records a parse error pointing at the current token.
func (p *Parser) error(msg string) {
	p.errorAt(p.span(), msg)
}

// errorf calls error with a formatted message.
func (p *Parser) errorf(format string, a ...any) {
	p.error(fmt.Sprintf(format, a...))
}

// parseValue parses any JSON value, leaving the parser on the token
// immediately after it.
//
// It always returns a non-nil node, using [ast.KindInvalid] to mark the
// places where parsing failed.
func (p *Parser) parseValue() *ast.Node {
	if p.depth >= maxDepth {
		p.error("maximum nesting depth exceeded")
		return p.skipInvalid()
	}

	switch {
	case p.current.Is(token.LeftBrace):
		return p.parseObject()
	case p.current.Is(token.LeftBracket):
		return p.parseArray()
	case p.current.Is(token.String):
		node := &ast.Node{Kind: ast.KindString, Str: p.unescape(p.current), Span: p.span()}
		p.advance()

		return node
	case p.current.Is(token.Number):
		return p.parseNumber()
	case p.current.Is(token.True, token.False):
		node := &ast.Node{Kind: ast.KindBool, Bool: p.current.Is(token.True), Span: p.span()}
		p.advance()

		return node
	case p.current.Is(token.Null):
		node := &ast.Node{Kind: ast.KindNull, Span: p.span()}
		p.advance()

		return node
	case p.current.Is(token.Error):
		// The scanner has already recorded a diagnostic for this
		p.hadErrors = true
		node := &ast.Node{Kind: ast.KindInvalid, Span: p.span()}
		p.advance()

		return node
	case p.current.Is(token.EOF):
		p.error("unexpected end of input")

		return &ast.Node{Kind: ast.KindInvalid, Span: p.span()}
	default:
		p.errorf("unexpected %s", p.current.Kind)
		node := &ast.Node{Kind: ast.KindInvalid, Span: p.span()}
		p.advance()

		return node
	}
}

// skipInvalid consumes the current token, returning an invalid node
// spanning it. It exists so error paths always make progress.
func (p *Parser) skipInvalid() *ast.Node {
	node := &ast.Node{Kind: ast.KindInvalid, Span: p.span()}

	if !p.current.Is(token.EOF) {
		p.advance()
	}

	return node
}

// parseNumber parses a number literal.
//
// It assumes the current token is [token.Number].
func (p *Parser) parseNumber() *ast.Node {
	span := p.span()
	text := span.Text(p.src)

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.errorf("invalid number: %q", text)
		return p.skipInvalid()
	}

	node := &ast.Node{Kind: ast.KindNumber, Num: value, Span: span}
	p.advance()

	return node
}

// parseObject parses a JSON object.
//
// It assumes the current token is [token.LeftBrace]. Duplicate keys are
// preserved, flagging them is the decoder's job.
func (p *Parser) parseObject() *ast.Node {
	p.depth++
	defer func() { p.depth-- }()

	node := &ast.Node{Kind: ast.KindObject}
	open := p.span()

	p.advance() // Over the '{'

	if p.current.Is(token.RightBrace) {
		node.Span = open.Cover(p.span())
		p.advance()

		return node
	}

	for {
		if member, ok := p.parseMember(); ok {
			node.Members = append(node.Members, member)
		} else {
			p.synchronise(token.Comma, token.RightBrace)
		}

		// Re-anchor on the next terminator if the member didn't end cleanly
		if !p.current.Is(token.Comma, token.RightBrace, token.EOF) {
			p.errorf("expected ',' or '}', got %s", p.current.Kind)
			p.synchronise(token.Comma, token.RightBrace)
		}

		switch {
		case p.current.Is(token.Comma):
			p.advance()
		case p.current.Is(token.RightBrace):
			node.Span = open.Cover(p.span())
			p.advance()

			return node
		default: // EOF
			p.errorAt(syntax.Span{Lo: open.Lo, Hi: open.Lo + 1}, "unclosed object")
			node.Span = syntax.Span{Lo: open.Lo, Hi: p.current.Start}

			return node
		}
	}
}

// parseMember parses a single "key": value pair inside an object.
func (p *Parser) parseMember() (ast.Member, bool) {
	if !p.current.Is(token.String) {
		p.errorf("expected object key, got %s", p.current.Kind)
		return ast.Member{}, false
	}

	key := syntax.Wrap(p.unescape(p.current), p.span())
	p.advance()

	if !p.current.Is(token.Colon) {
		p.errorf("expected ':' after object key, got %s", p.current.Kind)
		return ast.Member{}, false
	}

	p.advance() // Over the ':'

	value := p.parseValue()

	return ast.Member{Key: key, Value: value}, true
}

// parseArray parses a JSON array.
//
// It assumes the current token is [token.LeftBracket].
func (p *Parser) parseArray() *ast.Node {
	p.depth++
	defer func() { p.depth-- }()

	node := &ast.Node{Kind: ast.KindArray}
	open := p.span()

	p.advance() // Over the '['

	if p.current.Is(token.RightBracket) {
		node.Span = open.Cover(p.span())
		p.advance()

		return node
	}

	for {
		item := p.parseValue()
		node.Items = append(node.Items, item)

		// Re-anchor on the next terminator if the item didn't end cleanly
		if !p.current.Is(token.Comma, token.RightBracket, token.EOF) {
			p.errorf("expected ',' or ']', got %s", p.current.Kind)
			p.synchronise(token.Comma, token.RightBracket)
		}

		switch {
		case p.current.Is(token.Comma):
			p.advance()
		case p.current.Is(token.RightBracket):
			node.Span = open.Cover(p.span())
			p.advance()

			return node
		default: // EOF
			p.errorAt(syntax.Span{Lo: open.Lo, Hi: open.Lo + 1}, "unclosed array")
			node.Span = syntax.Span{Lo: open.Lo, Hi: p.current.Start}

			return node
		}
	}
}

// unescape returns the decoded value of a string token, stripping the
// quotes and interpreting escape sequences.
//
// Invalid escapes degrade to U+FFFD with a diagnostic rather than failing
// the parse.
func (p *Parser) unescape(tok token.Token) string {
	raw := string(p.src[tok.Start+1 : tok.End-1])
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			b.WriteByte(raw[i])
			i++

			continue
		}

		// The scanner guarantees a backslash is never the final character
		// of a string token
		switch esc := raw[i+1]; esc {
		case '"', '\\', '/':
			b.WriteByte(esc)
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'u':
			r, width := p.unescapeUnicode(tok, raw[i:])
			b.WriteRune(r)
			i += width
		default:
			p.errorAt(
				syntax.Span{Lo: tok.Start + 1 + i, Hi: tok.Start + 1 + i + 2},
				fmt.Sprintf(`invalid escape sequence '\%c'`, esc),
			)
			b.WriteByte(esc)
			i += 2
		}
	}

	return b.String()
}

// unescapeUnicode decodes a single \uXXXX escape (or a surrogate pair of
// them) at the start of raw, returning the rune and the number of source
// bytes consumed.
//
// Malformed escapes produce U+FFFD and a diagnostic.
func (p *Parser) unescapeUnicode(tok token.Token, raw string) (r rune, width int) {
	const (
		escLen  = 6  // \uXXXX
		pairLen = 12 // \uXXXX\uXXXX
	)

	bad := func(length int) (rune, int) {
		p.errorAt(
			syntax.Span{Lo: tok.Start + 1, Hi: tok.End - 1},
			"invalid unicode escape",
		)

		return utf8.RuneError, length
	}

	if len(raw) < escLen {
		return bad(len(raw))
	}

	value, err := strconv.ParseUint(raw[2:escLen], 16, 32)
	if err != nil {
		return bad(2)
	}

	r = rune(value)
	if !utf16.IsSurrogate(r) {
		return r, escLen
	}

	// A high surrogate must be followed by a \uXXXX low surrogate
	if len(raw) >= pairLen && raw[escLen] == '\\' && raw[escLen+1] == 'u' {
		if low, err := strconv.ParseUint(raw[escLen+2:pairLen], 16, 32); err == nil {
			if decoded := utf16.DecodeRune(r, rune(low)); decoded != utf8.RuneError {
				return decoded, pairLen
			}
		}
	}

	return bad(escLen)
}
