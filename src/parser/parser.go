// Package parser implements Zul's recursive-descent parser. It drives the lexer one token of
// lookahead at a time and, for every construct it recognizes, immediately builds the
// corresponding ast.Node and invokes its Emit method against the shared compilation context —
// identifier resolution, type inference, and IR generation all happen inline here rather than in
// a later pass (spec §2).
//
// Grounded on vslc's frontend parser driving its own lexer by repeated next()/backup() calls
// (see frontend/tree.go), generalized from vslc's single-pass-then-separate-codegen shape to
// Zul's fused parse-and-emit design, and restructured from vslc's grammar-production functions
// building an intermediate parse tree into functions that build ast.Node values directly.
package parser

import (
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

// Parser holds the one-token lookahead state a recursive-descent grammar needs, plus the shared
// compilation context every emitted node is built against.
type Parser struct {
	lex *lexer.Lexer
	ctx *compctx.Context

	cur        lexer.Token
	lineIndent int // INDENT-token count of the line cur currently sits on.

	curFuncName   string
	curFuncReturn types.ID
}

// New returns a Parser reading from lex and emitting into ctx.
func New(lex *lexer.Lexer, ctx *compctx.Context) *Parser {
	p := &Parser{lex: lex, ctx: ctx}
	p.advance()
	p.measureIndent()
	return p
}

// ParseProgram consumes the entire token stream, handling the three indent-0 forms: a blank
// line (already fully absorbed by the lexer, so this loop never actually sees one), an
// identifier-initiated global variable declaration, or an HI function definition/declaration
// (spec §4.5 "Top level").
func (p *Parser) ParseProgram() {
	for p.cur.Kind != lexer.EOF {
		if p.lineIndent != 0 {
			p.errorTok("최상위 선언은 들여쓰기할 수 없습니다")
			p.recoverStatement()
			continue
		}
		switch p.cur.Kind {
		case lexer.HI:
			p.parseFunction()
		case lexer.IDENT:
			p.parseGlobalVar()
		default:
			p.errorTok("선언을 찾을 수 없습니다: %s", p.cur)
			p.recoverStatement()
		}
	}
}

// ----------------------------
// ----- token plumbing -------
// ----------------------------

// advance returns the token currently in cur and pulls the next one from the lexer.
func (p *Parser) advance() lexer.Token {
	t := p.cur
	p.cur = p.lex.Next()
	return t
}

// measureIndent consumes every leading INDENT token of the line cur now sits on, recording how
// many there were. Call only at the start of a logical line — immediately after New, or after
// nextLine has stepped past a NEWLINE.
func (p *Parser) measureIndent() {
	n := 0
	for p.cur.Kind == lexer.INDENT {
		p.advance()
		n++
	}
	p.lineIndent = n
}

// nextLine steps past the statement-terminating NEWLINE cur is expected to be sitting on (a
// no-op if parsing already reached EOF without one) and measures the following line's indent.
// Every leaf statement parser calls this exactly once, at its own end, so parseBlockBody's
// caller-facing invariant — cur/lineIndent always describe the line not yet consumed — holds
// uniformly whether the last thing parsed was a simple statement or a nested block.
func (p *Parser) nextLine() {
	if p.cur.Kind == lexer.NEWLINE {
		p.advance()
	}
	p.measureIndent()
}

// expect consumes cur if it has kind k, reporting a diagnostic and leaving cur untouched
// otherwise.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, bool) {
	if p.cur.Kind != k {
		p.errorTok("%s가 필요하지만 %s를 찾았습니다", k, p.cur)
		return lexer.Token{}, false
	}
	return p.advance(), true
}

// recoverStatement discards tokens up to the next NEWLINE (or EOF), the statement-level error
// recovery spec §7 describes, then resumes at the following line.
func (p *Parser) recoverStatement() {
	for p.cur.Kind != lexer.NEWLINE && p.cur.Kind != lexer.EOF {
		p.advance()
	}
	p.nextLine()
}

// expectLineEnd reports a diagnostic if cur isn't sitting on the statement-terminating NEWLINE (or
// EOF), then advances past it and measures the following line's indent regardless — every leaf
// statement parser ends by calling this exactly once.
func (p *Parser) expectLineEnd() {
	if p.cur.Kind != lexer.NEWLINE && p.cur.Kind != lexer.EOF {
		p.errorTok("줄 끝이 필요합니다")
	}
	p.nextLine()
}

// recoverExpr discards tokens up to (but not past) one of the given delimiter kinds, the
// expression-level error recovery spec §7 describes.
func (p *Parser) recoverExpr(delims ...lexer.Kind) {
	for p.cur.Kind != lexer.NEWLINE && p.cur.Kind != lexer.EOF {
		for _, d := range delims {
			if p.cur.Kind == d {
				return
			}
		}
		p.advance()
	}
}

// ----------------------------
// ----- diagnostics -----------
// ----------------------------

func (p *Parser) loc(t lexer.Token) diag.Loc { return diag.Loc{Row: t.Capture.Row, Col: t.Capture.Col} }

func (p *Parser) errorAt(t lexer.Token, format string, args ...interface{}) {
	width := t.Capture.Len
	if width < 1 {
		width = 1
	}
	p.ctx.Diag.Logf(p.loc(t), width, format, args...)
}

// errorTok reports a diagnostic anchored at the current token.
func (p *Parser) errorTok(format string, args ...interface{}) {
	p.errorAt(p.cur, format, args...)
}
