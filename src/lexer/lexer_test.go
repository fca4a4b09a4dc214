// Tests the lexer by verifying it tokenizes small Zul snippets exactly as expected, including
// code-point column tracking under Korean identifiers (grounded on vslc's frontend/lexer_test.go
// table-driven shape).
package lexer

import (
	"testing"

	"github.com/zihasoo/Zul-lang/src/diag"
)

type want struct {
	kind Kind
	text string
	row  int
	col  int
}

func collect(t *testing.T, l *Lexer) []Token {
	t.Helper()
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
		if len(toks) > 1000 {
			t.Fatalf("lexer did not reach EOF after 1000 tokens")
		}
	}
}

func TestLexerFunctionSignature(t *testing.T) {
	src := "ㅎㅇ 더하기(수 a, 수 b) 수:\n    ㅈㅈ a + b\n"
	exp := []want{
		{HI, "ㅎㅇ", 1, 1},
		{IDENT, "더하기", 1, 4},
		{LPAREN, "(", 1, 7},
		{IDENT, "수", 1, 8},
		{IDENT, "a", 1, 10},
		{COMMA, ",", 1, 11},
		{IDENT, "수", 1, 13},
		{IDENT, "b", 1, 15},
		{RPAREN, ")", 1, 16},
		{IDENT, "수", 1, 18},
		{COLON, ":", 1, 19},
		{NEWLINE, "\n", 1, 20},
		{INDENT, "", 2, 1},
		{GG, "ㅈㅈ", 2, 5},
		{IDENT, "a", 2, 8},
		{PLUS, "+", 2, 10},
		{IDENT, "b", 2, 12},
		{NEWLINE, "\n", 2, 13},
		{EOF, "", 3, 1},
	}

	l := New(src, diag.New("test.zul"))
	toks := collect(t, l)
	if len(toks) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(toks), toks)
	}
	for i1, tok := range toks {
		e := exp[i1]
		if tok.Kind != e.kind {
			t.Errorf("token %d: expected kind %s, got %s", i1, e.kind, tok.Kind)
		}
		if e.kind != NEWLINE && e.kind != EOF && tok.Capture.Text != e.text {
			t.Errorf("token %d: expected text %q, got %q", i1, e.text, tok.Capture.Text)
		}
		if tok.Capture.Row != e.row || tok.Capture.Col != e.col {
			t.Errorf("token %d (%s): expected position %d:%d, got %d:%d", i1, e.kind, e.row, e.col, tok.Capture.Row, tok.Capture.Col)
		}
	}
}

func TestLexerOperatorMaximalMunch(t *testing.T) {
	src := "a <<= b >> c <= d != e\n"
	exp := []Kind{IDENT, SHLASSIGN, IDENT, SHR, IDENT, LTE, IDENT, NEQ, IDENT, NEWLINE, EOF}
	l := New(src, nil)
	toks := collect(t, l)
	if len(toks) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(toks), toks)
	}
	for i1, tok := range toks {
		if tok.Kind != exp[i1] {
			t.Errorf("token %d: expected %s, got %s", i1, exp[i1], tok.Kind)
		}
	}
}

func TestLexerRejectsDoublePlus(t *testing.T) {
	d := diag.New("test.zul")
	l := New("a ++ b\n", d)
	_ = collect(t, l)
	if !d.HasError() {
		t.Fatalf("expected ++ to be flagged as an error")
	}
}

func TestLexerRejectsTabIndent(t *testing.T) {
	d := diag.New("test.zul")
	l := New("ㅎㅇ f() 수:\n\tㅈㅈ 0\n", d)
	_ = collect(t, l)
	if !d.HasError() {
		t.Fatalf("expected a tab-indented line to be flagged as an error")
	}
}

func TestLexerRejectsMisalignedIndent(t *testing.T) {
	d := diag.New("test.zul")
	l := New("ㅎㅇ f() 수:\n   ㅈㅈ 0\n", d)
	_ = collect(t, l)
	if !d.HasError() {
		t.Fatalf("expected a 3-space indent to be flagged as an error")
	}
}

func TestLexerSkipsBlankAndCommentOnlyLines(t *testing.T) {
	src := "a\n\n// a whole comment line\nb\n"
	exp := []Kind{IDENT, NEWLINE, IDENT, NEWLINE, EOF}
	toks := collect(t, New(src, nil))
	if len(toks) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(toks), toks)
	}
	for i1, tok := range toks {
		if tok.Kind != exp[i1] {
			t.Errorf("token %d: expected %s, got %s", i1, exp[i1], tok.Kind)
		}
	}
}

func TestLexerNumberLiterals(t *testing.T) {
	src := "123 3.14 ...\n"
	exp := []Kind{INT, REAL, ELLIPSIS, NEWLINE, EOF}
	toks := collect(t, New(src, nil))
	if len(toks) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(toks), toks)
	}
	for i1, tok := range toks {
		if tok.Kind != exp[i1] {
			t.Errorf("token %d: expected %s, got %s", i1, exp[i1], tok.Kind)
		}
	}
}

func TestLexerMalformedNumberLiteral(t *testing.T) {
	d := diag.New("test.zul")
	_ = collect(t, New("1.2.3\n", d))
	if !d.HasError() {
		t.Fatalf("expected 1.2.3 to be flagged as a malformed numeric literal")
	}
}

func TestScanQuotedString(t *testing.T) {
	l := New(`"hello\n world"` + "\n", nil)
	tok := l.Next()
	if tok.Kind != DQUOTE {
		t.Fatalf("expected DQUOTE, got %s", tok.Kind)
	}
	val, ok := l.ScanQuoted('"')
	if !ok {
		t.Fatalf("expected terminated string literal")
	}
	if val != "hello\n world" {
		t.Fatalf("expected decoded value %q, got %q", "hello\n world", val)
	}
	next := l.Next()
	if next.Kind != NEWLINE {
		t.Fatalf("expected scanning to resume after the closing quote, got %s", next.Kind)
	}
}

func TestScanQuotedUnterminated(t *testing.T) {
	l := New(`"oops`+"\n", nil)
	tok := l.Next()
	if tok.Kind != DQUOTE {
		t.Fatalf("expected DQUOTE, got %s", tok.Kind)
	}
	_, ok := l.ScanQuoted('"')
	if ok {
		t.Fatalf("expected unterminated string literal to be reported")
	}
}
