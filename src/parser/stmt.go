package parser

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/ast"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

// parseBlockBody parses statements until a line is found whose indent drops below targetLevel (or
// EOF), returning the collected statements and the terminating line's indent (0 at EOF). Every
// leaf statement parser leaves cur/lineIndent already describing the next not-yet-consumed line,
// so this loop never measures indent itself — it only reads p.lineIndent (spec §4.5
// "parse_block_body").
func (p *Parser) parseBlockBody(targetLevel int) ([]ast.Node, int) {
	var body []ast.Node
	for {
		if p.cur.Kind == lexer.EOF {
			return body, 0
		}
		if p.lineIndent < targetLevel {
			return body, p.lineIndent
		}
		if p.lineIndent > targetLevel {
			p.errorTok("예상치 못한 들여쓰기입니다")
		}
		body = append(body, p.parseStatement())
	}
}

// parseStatement dispatches on the statement's lead-in token (spec §4.5 "Statements").
func (p *Parser) parseStatement() ast.Node {
	switch p.cur.Kind {
	case lexer.GO:
		return p.parseFor()
	case lexer.IJ:
		return p.parseIf()
	case lexer.GG:
		return p.parseReturn()
	case lexer.TT:
		return p.parseContinue()
	case lexer.SG:
		return p.parseBreak()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		n := p.parseExpr()
		p.expectLineEnd()
		return n
	}
}

// assignBinOp returns the non-assigning operator VariableAssn.Op should carry for an assignment
// lead-in token: "=" for plain assignment, the underlying operator for a compound one.
func assignBinOp(k lexer.Kind) string {
	if k == lexer.ASSIGN {
		return "="
	}
	return k.BinOp()
}

// parseIdentStatement disambiguates a statement beginning with an identifier: a call, a
// declaration, a plain or compound assignment, a subscript (itself possibly assigned to), or a
// bare variable read (spec §4.5 "identifier-prefix ambiguity").
func (p *Parser) parseIdentStatement() ast.Node {
	nameTok := p.advance()
	name := nameTok.Capture.Text
	loc := p.loc(nameTok)

	switch {
	case p.cur.Kind == lexer.LPAREN:
		n := p.parseCallArgs(name, loc)
		p.expectLineEnd()
		return n

	case p.cur.Kind == lexer.COLON:
		p.advance()
		declType, _ := p.parseType(true)
		var init ast.Node
		if p.cur.Kind == lexer.ASSIGN {
			p.advance()
			init = p.parseExpr()
		}
		decl := &ast.VariableDecl{NameCapture: name, Loc: loc, Declared: declType, Init: init}
		decl.Register(p.ctx)
		p.expectLineEnd()
		return decl

	case p.cur.Kind.IsAssignOp():
		opTok := p.advance()
		rhs := p.parseExpr()
		var n ast.Node
		if opTok.Kind == lexer.ASSIGN && !p.ctx.VarExists(name) {
			decl := &ast.VariableDecl{NameCapture: name, Loc: loc, Declared: types.Void, Init: rhs}
			decl.Register(p.ctx)
			n = decl
		} else {
			if !p.ctx.VarExists(name) {
				p.errorAt(nameTok, "선언되지 않은 변수입니다: %s", name)
			}
			n = &ast.VariableAssn{
				Target: &ast.Variable{Name: name, Loc: loc},
				Op:     assignBinOp(opTok.Kind),
				RHS:    rhs,
				Loc:    p.loc(opTok),
			}
		}
		p.expectLineEnd()
		return n

	case p.cur.Kind == lexer.LBRACKET:
		p.advance()
		idx := p.parseExpr()
		p.expect(lexer.RBRACKET)
		sub := &ast.Subscript{Array: &ast.Variable{Name: name, Loc: loc}, Index: idx, Loc: loc}
		if p.cur.Kind.IsAssignOp() {
			opTok := p.advance()
			rhs := p.parseExpr()
			n := &ast.VariableAssn{Target: sub, Op: assignBinOp(opTok.Kind), RHS: rhs, Loc: p.loc(opTok)}
			p.expectLineEnd()
			return n
		}
		p.expectLineEnd()
		return sub

	default:
		n := ast.Node(&ast.Variable{Name: name, Loc: loc})
		p.expectLineEnd()
		return n
	}
}

// parseIf parses IJ cond: ... followed by zero or more NO cond: ... (elif) arms and an optional
// NOPE: ... (else) clause (spec §4.5 "If"). Each arm's body is parsed under its own parser-side
// scope, mirroring the scope If.Emit later pushes around the same statements during emission.
func (p *Parser) parseIf() ast.Node {
	loc := p.loc(p.cur)
	level := p.lineIndent

	var arms []ast.Branch
	arms = append(arms, p.parseBranchHeader(level))

	for p.lineIndent == level && p.cur.Kind == lexer.NO {
		arms = append(arms, p.parseBranchHeader(level))
	}

	var elseBody []ast.Node
	if p.lineIndent == level && p.cur.Kind == lexer.NOPE {
		p.advance()
		p.expect(lexer.COLON)
		p.expectLineEnd()
		p.ctx.PushScope()
		elseBody, _ = p.parseBlockBody(level + 1)
		p.ctx.PopScope()
	}

	return &ast.If{Arms: arms, Else: elseBody, Loc: loc}
}

// parseBranchHeader parses one `IJ cond:`/`NO cond:` header plus its body.
func (p *Parser) parseBranchHeader(level int) ast.Branch {
	p.advance() // IJ or NO
	cond := p.parseExpr()
	p.expect(lexer.COLON)
	p.expectLineEnd()
	p.ctx.PushScope()
	body, _ := p.parseBlockBody(level + 1)
	p.ctx.PopScope()
	return ast.Branch{Cond: cond, Body: body}
}

// parseFor parses the three GO forms: infinite (`ㄱㄱ:`), test-only (`ㄱㄱ cond:`), and
// three-part (`ㄱㄱ init; cond; update:`) (spec §4.5 "For"). The form is disambiguated by what
// immediately follows the lead-in: a bare colon is infinite; otherwise the first parsed piece is
// either a standalone condition (followed directly by ':') or the init of a three-part loop
// (followed by ';').
func (p *Parser) parseFor() ast.Node {
	loc := p.loc(p.cur)
	level := p.lineIndent
	p.advance() // GO

	var init, test, update ast.Node

	if p.cur.Kind == lexer.COLON {
		p.advance()
	} else {
		first := p.parseForClause()
		switch p.cur.Kind {
		case lexer.SEMI:
			init = first
			p.advance()
			if p.cur.Kind != lexer.SEMI {
				test = p.parseExpr()
			}
			p.expect(lexer.SEMI)
			if p.cur.Kind != lexer.COLON {
				update = p.parseForClause()
			}
			p.expect(lexer.COLON)
		case lexer.COLON:
			test = first
			p.advance()
		default:
			p.errorTok("반복문 머리에 ':' 또는 ';'가 필요합니다")
		}
	}
	p.expectLineEnd()

	// Parse-time loop tracking only: records loop depth so a nested TT/SG can validate itself
	// against p.ctx.InLoop() before the function body is ever emitted. The zero-value blocks are
	// never read at this point — ast.Loop.Emit pushes its own real update/end blocks later, over
	// this same stack, once the already-built body is walked for real.
	p.ctx.EnterLoop(llvm.BasicBlock{}, llvm.BasicBlock{})
	p.ctx.PushScope()
	body, _ := p.parseBlockBody(level + 1)
	p.ctx.PopScope()
	p.ctx.LeaveLoop()

	return &ast.Loop{Init: init, Test: test, Update: update, Body: body, Loc: loc}
}

// parseForClause parses one of a three-part for-loop's init/update slots, which may themselves be
// a declaration or assignment rather than a bare expression.
func (p *Parser) parseForClause() ast.Node {
	if p.cur.Kind == lexer.IDENT {
		return p.parseForClauseIdent()
	}
	return p.parseExpr()
}

// parseForClauseIdent handles an identifier-led for-clause without consuming the statement's
// trailing NEWLINE (unlike parseIdentStatement, a for-clause is terminated by ';' or ':').
func (p *Parser) parseForClauseIdent() ast.Node {
	nameTok := p.advance()
	name := nameTok.Capture.Text
	loc := p.loc(nameTok)

	switch {
	case p.cur.Kind.IsAssignOp():
		opTok := p.advance()
		rhs := p.parseExpr()
		if opTok.Kind == lexer.ASSIGN && !p.ctx.VarExists(name) {
			decl := &ast.VariableDecl{NameCapture: name, Loc: loc, Declared: types.Void, Init: rhs}
			decl.Register(p.ctx)
			return decl
		}
		if !p.ctx.VarExists(name) {
			p.errorAt(nameTok, "선언되지 않은 변수입니다: %s", name)
		}
		return &ast.VariableAssn{
			Target: &ast.Variable{Name: name, Loc: loc},
			Op:     assignBinOp(opTok.Kind),
			RHS:    rhs,
			Loc:    p.loc(opTok),
		}
	case p.cur.Kind == lexer.LBRACKET:
		p.advance()
		idx := p.parseExpr()
		p.expect(lexer.RBRACKET)
		return &ast.Subscript{Array: &ast.Variable{Name: name, Loc: loc}, Index: idx, Loc: loc}
	case p.cur.Kind == lexer.LPAREN:
		return p.parseCallArgs(name, loc)
	default:
		return &ast.Variable{Name: name, Loc: loc}
	}
}

// parseReturn parses GG, optionally followed by a value expression when the enclosing function's
// declared return type isn't void (spec §4.5 "Return").
func (p *Parser) parseReturn() ast.Node {
	tok := p.advance() // GG
	loc := p.loc(tok)

	var body ast.Node
	if p.curFuncReturn != types.Void {
		if p.cur.Kind == lexer.NEWLINE || p.cur.Kind == lexer.EOF {
			p.errorAt(tok, "함수 %s는 값을 반환해야 합니다", p.curFuncName)
		} else {
			body = p.parseExpr()
		}
	} else if p.cur.Kind != lexer.NEWLINE && p.cur.Kind != lexer.EOF {
		p.errorAt(tok, "함수 %s는 값을 반환할 수 없습니다", p.curFuncName)
		body = p.parseExpr()
	}

	p.expectLineEnd()
	return &ast.Return{Body: body, DeclType: p.curFuncReturn, Loc: loc}
}

// parseContinue and parseBreak parse TT/SG, rejecting them outside a loop at parse time (matching
// the analogous defensive check ast.Continue/ast.Break.Emit perform against the same ctx state).
func (p *Parser) parseContinue() ast.Node {
	tok := p.advance()
	loc := p.loc(tok)
	if !p.ctx.InLoop() {
		p.errorAt(tok, "반복문 밖에서 ㅌㅌ를 사용했습니다")
	}
	p.expectLineEnd()
	return &ast.Continue{Loc: loc}
}

func (p *Parser) parseBreak() ast.Node {
	tok := p.advance()
	loc := p.loc(tok)
	if !p.ctx.InLoop() {
		p.errorAt(tok, "반복문 밖에서 ㅅㄱ를 사용했습니다")
	}
	p.expectLineEnd()
	return &ast.Break{Loc: loc}
}
