package parser

import (
	"strconv"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/ast"
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

// badExpr stands in for an expression that failed to parse, so the recursive-descent grammar
// never has to thread a nil Node through code that expects a real one. It emits nothing and
// reports types.Void, same as any other node that failed at Emit time.
type badExpr struct{}

func (badExpr) Emit(ctx *compctx.Context) (llvm.Value, types.ID) { return llvm.Value{}, types.Void }
func (badExpr) IsConstant() bool                                 { return false }
func (badExpr) IsLValue() bool                                   { return false }
func (badExpr) StaticType(ctx *compctx.Context) types.ID         { return types.Void }

// binPrecedence is the precedence-climbing table of spec §4.5: higher binds tighter. Assignment
// operators are deliberately absent — they are statement-level only, and parseBin reports a
// diagnostic if one turns up here instead of silently accepting it.
func binPrecedence(k lexer.Kind) (int, bool) {
	switch k {
	case lexer.STAR, lexer.SLASH, lexer.PCT:
		return 110, true
	case lexer.PLUS, lexer.MINUS:
		return 100, true
	case lexer.SHL, lexer.SHR:
		return 90, true
	case lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return 80, true
	case lexer.EQ, lexer.NEQ:
		return 70, true
	case lexer.AMP:
		return 60, true
	case lexer.CARET:
		return 50, true
	case lexer.PIPE:
		return 40, true
	case lexer.ANDAND:
		return 30, true
	case lexer.OROR:
		return 20, true
	default:
		return 0, false
	}
}

// binOpLexeme returns the operator text an ast.BinOp/ast.ShortCircuit node carries for k.
func binOpLexeme(k lexer.Kind) string {
	switch k {
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PCT:
		return "%"
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.SHL:
		return "<<"
	case lexer.SHR:
		return ">>"
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LTE:
		return "<="
	case lexer.GTE:
		return ">="
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.AMP:
		return "&"
	case lexer.CARET:
		return "^"
	case lexer.PIPE:
		return "|"
	case lexer.ANDAND:
		return "&&"
	case lexer.OROR:
		return "||"
	default:
		return ""
	}
}

// parseExpr parses a full expression at the lowest expression-level precedence (||, 20):
// assignment (10) never appears here, since it is parsed only by the statement-level
// declaration/assignment dispatch in stmt.go.
func (p *Parser) parseExpr() ast.Node {
	return p.parseBin(20)
}

// parseBin is the recursive half of precedence climbing: it parses a unary operand, then keeps
// folding in binary operators whose precedence is at least minPrec, recursing at prec+1 to bind
// any higher-precedence operator to the right before folding the current one in.
func (p *Parser) parseBin(minPrec int) ast.Node {
	lhs := p.parseUnary()
	for {
		if p.cur.Kind.IsAssignOp() {
			p.errorTok("대입 연산자는 식 안에서 사용할 수 없습니다")
			return lhs
		}
		prec, ok := binPrecedence(p.cur.Kind)
		if !ok || prec < minPrec {
			return lhs
		}
		opTok := p.advance()
		rhs := p.parseBin(prec + 1)
		lhs = p.buildBinOp(opTok, lhs, rhs)
	}
}

func (p *Parser) buildBinOp(opTok lexer.Token, lhs, rhs ast.Node) ast.Node {
	loc := p.loc(opTok)
	op := binOpLexeme(opTok.Kind)
	if opTok.Kind == lexer.ANDAND || opTok.Kind == lexer.OROR {
		return &ast.ShortCircuit{Lhs: lhs, Rhs: rhs, Op: op, Loc: loc}
	}
	return &ast.BinOp{Lhs: lhs, Rhs: rhs, Op: op, Loc: loc}
}

// unaryOpLexeme returns the operator text an ast.UnaryOp node carries for k.
func unaryOpLexeme(k lexer.Kind) string {
	switch k {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.NOT:
		return "!"
	case lexer.TILDE:
		return "~"
	default:
		return ""
	}
}

// parseUnary handles the tightest-binding prefix operators (120): ! ~ + -. Anything else falls
// through to a primary expression.
func (p *Parser) parseUnary() ast.Node {
	switch p.cur.Kind {
	case lexer.PLUS, lexer.MINUS, lexer.NOT, lexer.TILDE:
		opTok := p.advance()
		body := p.parseUnary()
		return &ast.UnaryOp{Body: body, Op: unaryOpLexeme(opTok.Kind), Loc: p.loc(opTok)}
	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses a literal, parenthesized expression, or identifier-led expression (bare
// reference, call, or subscript — spec §4.5's identifier-prefix disambiguation).
func (p *Parser) parsePrimary() ast.Node {
	tok := p.cur
	switch tok.Kind {
	case lexer.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Capture.Text, 10, 64)
		if err != nil {
			p.errorAt(tok, "정수 리터럴을 해석할 수 없습니다: %s", tok.Capture.Text)
		}
		return &ast.IntLit{Value: v}
	case lexer.REAL:
		p.advance()
		v, err := strconv.ParseFloat(tok.Capture.Text, 64)
		if err != nil {
			p.errorAt(tok, "실수 리터럴을 해석할 수 없습니다: %s", tok.Capture.Text)
		}
		return &ast.RealLit{Value: v}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false}
	case lexer.SQUOTE:
		return p.parseCharLit()
	case lexer.DQUOTE:
		return p.parseStringLit()
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.RPAREN)
		return e
	case lexer.IDENT:
		return p.parseIdentExpr()
	default:
		p.errorTok("식이 필요합니다")
		p.advance()
		return badExpr{}
	}
}

// parseIdentExpr disambiguates an identifier-led primary by its following token: '(' is a call,
// '[' is an array subscript, anything else is a bare variable reference (spec §4.5).
func (p *Parser) parseIdentExpr() ast.Node {
	nameTok := p.advance()
	loc := p.loc(nameTok)
	switch p.cur.Kind {
	case lexer.LPAREN:
		return p.parseCallArgs(nameTok.Capture.Text, loc)
	case lexer.LBRACKET:
		p.advance()
		idx := p.parseExpr()
		p.expect(lexer.RBRACKET)
		return &ast.Subscript{
			Array: &ast.Variable{Name: nameTok.Capture.Text, Loc: loc},
			Index: idx,
			Loc:   loc,
		}
	default:
		return &ast.Variable{Name: nameTok.Capture.Text, Loc: loc}
	}
}

// parseCallArgs parses the parenthesized, comma-separated argument list of a call whose callee
// name and position have already been consumed.
func (p *Parser) parseCallArgs(name string, loc diag.Loc) ast.Node {
	p.advance() // '('
	var args []ast.Node
	if p.cur.Kind != lexer.RPAREN {
		for {
			args = append(args, p.parseExpr())
			if p.cur.Kind == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.FuncCall{Name: name, Args: args, Loc: loc}
}

// parseCharLit and parseStringLit must call Lexer.ScanQuoted while cur is still the opening
// quote token — the lexer's internal scan position sits exactly after the quote character at
// that point, since the parser's one-token lookahead has not yet asked it to tokenize anything
// past the quote (spec §4.2's "escape hatch" design).
func (p *Parser) parseCharLit() ast.Node {
	tok := p.cur
	value, terminated := p.lex.ScanQuoted('\'')
	if !terminated {
		p.errorAt(tok, "문자 리터럴이 닫히지 않았습니다")
	}
	p.advance()
	if len(value) != 1 {
		p.errorAt(tok, "문자 리터럴은 한 글자여야 합니다")
	}
	var b byte
	if len(value) > 0 {
		b = value[0]
	}
	return &ast.CharLit{Value: b}
}

func (p *Parser) parseStringLit() ast.Node {
	tok := p.cur
	value, terminated := p.lex.ScanQuoted('"')
	if !terminated {
		p.errorAt(tok, "문자열 리터럴이 닫히지 않았습니다")
	}
	p.advance()
	return &ast.StrLit{Value: value}
}
