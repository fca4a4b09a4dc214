package parser

import (
	"github.com/zihasoo/Zul-lang/src/ast"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

// parseType reads a type annotation: a builtin scalar name, optionally followed by a `[size]`
// array suffix. noArr rejects the array suffix outright — used for local variable declarations
// and parameter types, which spec §3/§4.5 restrict to scalars (arrays are global-only). Returns
// the resolved scalar type-id and, for an array suffix, the size expression (nil otherwise); the
// returned type-id is always a scalar one — parseGlobalVar wraps it in types.ArrayOf itself once
// the size expression has been checked for constness.
func (p *Parser) parseType(noArr bool) (types.ID, ast.Node) {
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return types.Void, nil
	}
	scalar, ok := types.BuiltinScalar(nameTok.Capture.Text)
	if !ok {
		p.errorAt(nameTok, "알 수 없는 타입입니다: %s", nameTok.Capture.Text)
		return types.Void, nil
	}
	if p.cur.Kind != lexer.LBRACKET {
		return scalar, nil
	}
	if noArr {
		p.errorTok("이 위치에서는 배열 타입을 쓸 수 없습니다")
		// Consume the bracket pair anyway so recovery doesn't desync on it.
		p.advance()
		size := p.parseExpr()
		p.expect(lexer.RBRACKET)
		_ = size
		return scalar, nil
	}
	p.advance()
	size := p.parseExpr()
	p.expect(lexer.RBRACKET)
	return scalar, size
}
