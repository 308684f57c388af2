package scanner_test

import (
	"slices"
	"testing"

	"go.followtheprocess.codes/cdlint/internal/syntax/scanner"
	"go.followtheprocess.codes/cdlint/internal/syntax/token"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestBasics(t *testing.T) {
	tests := []struct {
		name string        // Name of the test case
		src  string        // Source text to scan
		want []token.Token // Expected token stream
	}{
		{
			name: "empty",
			src:  "",
			want: []token.Token{
				{Kind: token.EOF, Start: 0, End: 0},
			},
		},
		{
			name: "empty object",
			src:  "{}",
			want: []token.Token{
				{Kind: token.LeftBrace, Start: 0, End: 1},
				{Kind: token.RightBrace, Start: 1, End: 2},
				{Kind: token.EOF, Start: 2, End: 2},
			},
		},
		{
			name: "empty array",
			src:  "[]",
			want: []token.Token{
				{Kind: token.LeftBracket, Start: 0, End: 1},
				{Kind: token.RightBracket, Start: 1, End: 2},
				{Kind: token.EOF, Start: 2, End: 2},
			},
		},
		{
			name: "keyword",
			src:  "true",
			want: []token.Token{
				{Kind: token.True, Start: 0, End: 4},
				{Kind: token.EOF, Start: 4, End: 4},
			},
		},
		{
			name: "single member",
			src:  `{"Name": "CD"}`,
			want: []token.Token{
				{Kind: token.LeftBrace, Start: 0, End: 1},
				{Kind: token.String, Start: 1, End: 7},
				{Kind: token.Colon, Start: 7, End: 8},
				{Kind: token.String, Start: 9, End: 13},
				{Kind: token.RightBrace, Start: 13, End: 14},
				{Kind: token.EOF, Start: 14, End: 14},
			},
		},
		{
			name: "numbers",
			src:  "[1, -2.5, 3e8]",
			want: []token.Token{
				{Kind: token.LeftBracket, Start: 0, End: 1},
				{Kind: token.Number, Start: 1, End: 2},
				{Kind: token.Comma, Start: 2, End: 3},
				{Kind: token.Number, Start: 4, End: 8},
				{Kind: token.Comma, Start: 8, End: 9},
				{Kind: token.Number, Start: 10, End: 13},
				{Kind: token.RightBracket, Start: 13, End: 14},
				{Kind: token.EOF, Start: 14, End: 14},
			},
		},
		{
			name: "null and false",
			src:  "[null, false]",
			want: []token.Token{
				{Kind: token.LeftBracket, Start: 0, End: 1},
				{Kind: token.Null, Start: 1, End: 5},
				{Kind: token.Comma, Start: 5, End: 6},
				{Kind: token.False, Start: 7, End: 12},
				{Kind: token.RightBracket, Start: 12, End: 13},
				{Kind: token.EOF, Start: 13, End: 13},
			},
		},
		{
			name: "escaped quote",
			src:  `"a\"b"`,
			want: []token.Token{
				{Kind: token.String, Start: 0, End: 6},
				{Kind: token.EOF, Start: 6, End: 6},
			},
		},
		{
			name: "whitespace everywhere",
			src:  "\n{\n\t\"Name\" :\n\t\t\"CD\"\n}\n",
			want: []token.Token{
				{Kind: token.LeftBrace, Start: 1, End: 2},
				{Kind: token.String, Start: 4, End: 10},
				{Kind: token.Colon, Start: 11, End: 12},
				{Kind: token.String, Start: 15, End: 19},
				{Kind: token.RightBrace, Start: 20, End: 21},
				{Kind: token.EOF, Start: 22, End: 22},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			tokens := scanAll(tt.name, []byte(tt.src))

			test.EqualFunc(t, tokens, tt.want, slices.Equal, test.Context("token stream mismatch"))
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	tests := []struct {
		name        string        // Name of the test case
		src         string        // Source text to scan
		want        []token.Token // Expected token stream, including error tokens
		diagnostics int           // Expected number of diagnostics
	}{
		{
			name: "unexpected character",
			src:  "@",
			want: []token.Token{
				{Kind: token.Error, Start: 0, End: 1},
				{Kind: token.EOF, Start: 1, End: 1},
			},
			diagnostics: 1,
		},
		{
			name: "unterminated string",
			src:  `"abc`,
			want: []token.Token{
				{Kind: token.Error, Start: 0, End: 4},
				{Kind: token.EOF, Start: 4, End: 4},
			},
			diagnostics: 1,
		},
		{
			name: "dangling decimal point",
			src:  "1.",
			want: []token.Token{
				{Kind: token.Error, Start: 0, End: 2},
				{Kind: token.EOF, Start: 2, End: 2},
			},
			diagnostics: 1,
		},
		{
			name: "empty exponent",
			src:  "2e+",
			want: []token.Token{
				{Kind: token.Error, Start: 0, End: 3},
				{Kind: token.EOF, Start: 3, End: 3},
			},
			diagnostics: 1,
		},
		{
			name: "bad keyword",
			src:  "nil",
			want: []token.Token{
				{Kind: token.Error, Start: 0, End: 3},
				{Kind: token.EOF, Start: 3, End: 3},
			},
			diagnostics: 1,
		},
		{
			name: "recovers after error",
			src:  "[@, 1]",
			want: []token.Token{
				{Kind: token.LeftBracket, Start: 0, End: 1},
				{Kind: token.Error, Start: 1, End: 2},
				{Kind: token.Comma, Start: 2, End: 3},
				{Kind: token.Number, Start: 4, End: 5},
				{Kind: token.RightBracket, Start: 5, End: 6},
				{Kind: token.EOF, Start: 6, End: 6},
			},
			diagnostics: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			s := scanner.New(tt.name, []byte(tt.src))

			var tokens []token.Token

			for {
				tok := s.Scan()

				tokens = append(tokens, tok)
				if tok.Is(token.EOF) {
					break
				}
			}

			test.EqualFunc(t, tokens, tt.want, slices.Equal, test.Context("token stream mismatch"))
			test.Equal(t, len(s.Diagnostics()), tt.diagnostics, test.Context("wrong number of diagnostics"))
		})
	}
}

func TestDiagnosticMessage(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := scanner.New("bad.json", []byte(`{"a": nil}`))

	for {
		if s.Scan().Is(token.EOF) {
			break
		}
	}

	diagnostics := s.Diagnostics()

	test.Equal(t, len(diagnostics), 1)
	test.Equal(t, diagnostics[0].Message, `expected one of 'true', 'false' or 'null', got "nil"`)
}

func FuzzScanner(f *testing.F) {
	f.Add("")
	f.Add("{}")
	f.Add(`{"Name": "CD", "MaxActiveCritters": 12}`)
	f.Add(`[1, -2.5, 3e8, true, false, null]`)
	f.Add(`"unterminated`)
	f.Add("}}{{::,,")

	f.Fuzz(func(t *testing.T, src string) {
		// The fuzz harness keeps its own worker goroutine alive for the
		// duration of the run, ignore it so goleak only sees ours
		defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("testing.(*F).Fuzz.func1"))

		// Property: the scanner must never panic and must always terminate
		// with an EOF token, no matter the input
		tokens := scanAll("fuzz", []byte(src))

		test.True(t, len(tokens) > 0, test.Context("scanner emitted no tokens"))

		last := tokens[len(tokens)-1]
		test.Equal(t, last.Kind, token.EOF, test.Context("token stream must end in EOF"))
	})
}

// scanAll drains the scanner for src, returning every token up to and
// including the EOF.
func scanAll(name string, src []byte) []token.Token {
	s := scanner.New(name, src)

	var tokens []token.Token

	for {
		tok := s.Scan()

		tokens = append(tokens, tok)
		if tok.Is(token.EOF) {
			break
		}
	}

	return tokens
}
