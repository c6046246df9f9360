package lexer_test

import (
	"strings"
	"testing"

	"tschema/internal/lexer"
	"tschema/internal/token"
)

// collectKinds tokenizes input and returns the kinds without the EOF.
func collectKinds(input string) []token.Kind {
	toks := lexer.Tokenize(input)
	kinds := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.EOF {
			break
		}
		kinds = append(kinds, t.Kind)
	}
	return kinds
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	kinds := collectKinds(input)
	if len(kinds) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v",
			len(expected), len(kinds), input, lexer.Tokenize(input))
	}
	for i := range kinds {
		if kinds[i] != expected[i] {
			t.Errorf("token %d: expected %s, got %s (input %q)", i, expected[i], kinds[i], input)
		}
	}
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"keywords", "interface type enum export", []token.Kind{token.Keyword, token.Keyword, token.Keyword, token.Keyword}},
		{"primitives", "string number boolean null", []token.Kind{token.Primitive, token.Primitive, token.Primitive, token.Primitive}},
		{"identifier", "User", []token.Kind{token.Ident}},
		{"punctuation", "{ } : ; ? | & < >", []token.Kind{token.Punct, token.Punct, token.Punct, token.Punct, token.Punct, token.Punct, token.Punct, token.Punct, token.Punct}},
		{"string literal", `"hello"`, []token.Kind{token.String}},
		{"single quoted", `'hello'`, []token.Kind{token.String}},
		{"backtick", "`hello`", []token.Kind{token.String}},
		{"number", "42", []token.Kind{token.Number}},
		{"float", "3.14", []token.Kind{token.Number}},
		{"negative number", "-5", []token.Kind{token.Number}},
		{"declaration", "interface User {", []token.Kind{token.Keyword, token.Ident, token.Punct}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.input, tt.expected)
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"escaped quote", `"a\"b"`, `a"b`},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"unterminated", `"abc`, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.Tokenize(tt.input)
			if toks[0].Kind != token.String {
				t.Fatalf("expected string token, got %s", toks[0].Kind)
			}
			if toks[0].Text != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, toks[0].Text)
			}
		})
	}
}

func TestJSDocToken(t *testing.T) {
	input := "/** Hello\n * @minimum 1\n */\ninterface A {}"
	toks := lexer.Tokenize(input)
	if toks[0].Kind != token.JSDoc {
		t.Fatalf("expected jsdoc first, got %s", toks[0].Kind)
	}
	if !strings.Contains(toks[0].Text, "Hello") || !strings.Contains(toks[0].Text, "@minimum 1") {
		t.Errorf("jsdoc body lost content: %q", toks[0].Text)
	}
}

func TestEmptyBlockCommentIsNotJSDoc(t *testing.T) {
	for _, tok := range lexer.Tokenize("/**/ interface A {}") {
		if tok.Kind == token.JSDoc {
			t.Fatalf("/**/ must not produce a jsdoc token")
		}
	}
}

func TestCommentsDiscarded(t *testing.T) {
	input := "// line\n/* block */ interface"
	expectTokens(t, input, []token.Kind{token.Newline, token.Keyword})
}

func TestNewlinesCoalesced(t *testing.T) {
	toks := lexer.Tokenize("a\n\n\nb")
	var newlines int
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			newlines++
		}
	}
	if newlines != 1 {
		t.Errorf("expected one coalesced newline token, got %d", newlines)
	}
}

func TestNegativeNumberContext(t *testing.T) {
	// after an identifier a dash is not a number prefix
	toks := lexer.Tokenize("foo -5")
	if toks[0].Kind != token.Ident {
		t.Fatalf("expected ident, got %s", toks[0].Kind)
	}
	// the dash is skipped (not punctuation), leaving a positive number
	if toks[1].Kind != token.Number || toks[1].Text != "5" {
		t.Errorf("expected number 5 after ident, got %s %q", toks[1].Kind, toks[1].Text)
	}

	toks = lexer.Tokenize("= -5")
	if toks[1].Kind != token.Number || toks[1].Text != "-5" {
		t.Errorf("expected number -5 after '=', got %s %q", toks[1].Kind, toks[1].Text)
	}
}

func TestPositions(t *testing.T) {
	toks := lexer.Tokenize("interface A {\n  b: string;\n}")
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Errorf("first token at %d:%d, want 1:1", toks[0].Line, toks[0].Col)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.Ident && tok.Text == "b" {
			found = true
			if tok.Line != 2 || tok.Col != 3 {
				t.Errorf("token b at %d:%d, want 2:3", tok.Line, tok.Col)
			}
		}
	}
	if !found {
		t.Fatal("token b not found")
	}
}

// TestRobustness feeds hostile inputs: the tokenizer must always return a
// sequence ending in EOF with monotone non-decreasing positions.
func TestRobustness(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		"@#^~!",
		"interface {{{{{",
		`"unterminated`,
		"/** unterminated doc",
		"/* unterminated block",
		"\\\\\\",
		"日本語 ident",
		strings.Repeat("|&", 500),
	}
	for _, input := range inputs {
		toks := lexer.Tokenize(input)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("input %q: stream must end in EOF", input)
		}
		prevLine, prevCol := 0, 0
		for _, tok := range toks {
			if tok.Line < prevLine || (tok.Line == prevLine && tok.Col < prevCol) {
				t.Fatalf("input %q: positions regressed at %v", input, tok)
			}
			prevLine, prevCol = tok.Line, tok.Col
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New("interface A")
	first := lx.Peek()
	second := lx.Next()
	if first != second {
		t.Errorf("Peek returned %v but Next returned %v", first, second)
	}
}
