package parser

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/ast"
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

// parseGlobalVar parses one of the two indent-0 global forms: `name: type [= const-expr]` or
// `name = const-expr` (spec §4.5 "Global variables"). Initializers, where present, must be
// compile-time constant; the array-size expression (when the type has a `[size]` suffix) must be
// a positive integer constant. Arrays are zero-initialized and cannot carry an inline
// initializer; string-literal initializers are the one exception, producing a char-array global
// whose name decays into a pointer on every use exactly like any other array (spec §3).
func (p *Parser) parseGlobalVar() {
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.recoverStatement()
		return
	}
	name := nameTok.Capture.Text
	loc := p.loc(nameTok)

	if _, exists := p.ctx.Globals[name]; exists {
		p.errorAt(nameTok, "중복된 전역 변수 선언입니다: %s", name)
	}

	switch p.cur.Kind {
	case lexer.COLON:
		p.advance()
		declType, sizeExpr := p.parseType(false)
		if sizeExpr != nil {
			p.declareGlobalArray(name, loc, declType, sizeExpr)
			p.expectLineEnd()
			return
		}
		var init ast.Node
		if p.cur.Kind == lexer.ASSIGN {
			p.advance()
			init = p.parseExpr()
		}
		p.declareGlobalScalar(name, loc, declType, init)
		p.expectLineEnd()
	case lexer.ASSIGN:
		p.advance()
		init := p.parseExpr()
		p.declareGlobalInferred(name, loc, init)
		p.expectLineEnd()
	default:
		p.errorTok("전역 변수 선언에는 ':' 또는 '='가 필요합니다")
		p.recoverStatement()
	}
}

// declareGlobalScalar handles `name: type` and `name: type = const-expr`.
func (p *Parser) declareGlobalScalar(name string, loc diag.Loc, declType types.ID, init ast.Node) {
	g := llvm.AddGlobal(p.ctx.Module, types.LLVMType(declType), name)
	g.SetLinkage(llvm.InternalLinkage)
	if init == nil {
		g.SetInitializer(types.ConstZero(declType))
	} else {
		if !init.IsConstant() {
			p.ctx.Diag.Logf(loc, 1, "전역 변수 %s의 초기값은 상수여야 합니다", name)
			g.SetInitializer(types.ConstZero(declType))
		} else {
			val, t := init.Emit(p.ctx)
			if t == types.Void {
				g.SetInitializer(types.ConstZero(declType))
			} else if cast, ok := types.TryCast(p.ctx.Builder, val, t, declType); ok {
				g.SetInitializer(cast)
			} else {
				p.ctx.Diag.Logf(loc, 1, "%s의 초기값 타입(%s)을 %s로 변환할 수 없습니다", name, t, declType)
				g.SetInitializer(types.ConstZero(declType))
			}
		}
	}
	p.ctx.Globals[name] = compctx.VarBinding{Value: g, Type: declType}
}

// declareGlobalInferred handles the type-inferred `name = const-expr` form. A string-literal
// initializer infers a char array sized to the literal (the "char-pointer global" spec §3
// describes — the array decays to a pointer on every later use, exactly as any Zul array does);
// any other constant expression infers its own static scalar type.
func (p *Parser) declareGlobalInferred(name string, loc diag.Loc, init ast.Node) {
	if str, ok := init.(*ast.StrLit); ok {
		p.declareGlobalString(name, loc, str.Value)
		return
	}
	if !init.IsConstant() {
		p.ctx.Diag.Logf(loc, 1, "전역 변수 %s의 초기값은 상수여야 합니다", name)
		return
	}
	inferred := init.StaticType(p.ctx)
	if inferred == types.Void || !inferred.IsScalar() {
		p.ctx.Diag.Logf(loc, 1, "전역 변수 %s의 타입을 추론할 수 없습니다", name)
		return
	}
	p.declareGlobalScalar(name, loc, inferred, init)
}

// declareGlobalString backs a string-literal-initialized global with a private constant byte
// array (spec §3's "string literals initialize char-pointer globals directly"): the declared
// variable's type-id is types.ArrayOf(types.Char), so it decays into an i8 pointer through the
// exact same Variable.Emit path every other Zul array already does.
func (p *Parser) declareGlobalString(name string, loc diag.Loc, text string) {
	bytes := []byte(text)
	arrType := llvm.ArrayType(llvm.Int8Type(), len(bytes)+1)
	g := llvm.AddGlobal(p.ctx.Module, arrType, name)
	g.SetLinkage(llvm.InternalLinkage)
	g.SetGlobalConstant(true)
	g.SetInitializer(p.ctx.LLCtx.ConstString(text, true))
	p.ctx.Globals[name] = compctx.VarBinding{Value: g, Type: types.ArrayOf(types.Char), Len: len(bytes) + 1}
}

// declareGlobalArray handles `name: type[size]`. The size expression must be a positive integer
// constant (spec §3); arrays are always zero-initialized and may not carry an inline initializer.
func (p *Parser) declareGlobalArray(name string, loc diag.Loc, elem types.ID, sizeExpr ast.Node) {
	if !sizeExpr.IsConstant() {
		p.ctx.Diag.Logf(loc, 1, "배열 크기는 상수여야 합니다: %s", name)
		return
	}
	sizeVal, sizeT := sizeExpr.Emit(p.ctx)
	if sizeT != types.Int {
		p.ctx.Diag.Logf(loc, 1, "배열 크기는 정수여야 합니다: %s", name)
		return
	}
	n := int(sizeVal.SExtValue())
	if n <= 0 {
		p.ctx.Diag.Logf(loc, 1, "배열 크기는 0보다 커야 합니다: %s", name)
		return
	}
	arrType := llvm.ArrayType(types.LLVMType(elem), n)
	g := llvm.AddGlobal(p.ctx.Module, arrType, name)
	g.SetLinkage(llvm.InternalLinkage)
	g.SetInitializer(llvm.ConstNull(arrType))
	p.ctx.Globals[name] = compctx.VarBinding{Value: g, Type: types.ArrayOf(elem), Len: n}
}

// parseFunction parses `HI name(...) [ret]:` with a body, or the bare-NEWLINE forward
// declaration form, reconciling the new signature against any existing prototype of the same
// name (spec §4.5 "Function definitions"). `HI name:` is rejected as a reserved class form.
func (p *Parser) parseFunction() {
	p.advance() // HI
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.recoverStatement()
		return
	}
	name := nameTok.Capture.Text

	if p.cur.Kind == lexer.COLON {
		p.errorAt(nameTok, "클래스 정의는 지원하지 않습니다")
		p.recoverStatement()
		return
	}
	if _, ok := p.expect(lexer.LPAREN); !ok {
		p.recoverStatement()
		return
	}

	p.ctx.PushScope()
	params, variadic := p.parseParamList()
	p.expect(lexer.RPAREN)

	retType := types.Void
	if p.cur.Kind == lexer.IDENT {
		retType, _ = p.parseType(true)
	}
	if name == "main" && retType != types.Int {
		p.errorAt(nameTok, "main 함수는 수를 반환해야 합니다")
	}

	hasBody := p.cur.Kind == lexer.COLON
	if hasBody {
		p.advance()
	}

	fn, proto := p.declareFunc(nameTok, name, params, variadic, retType, hasBody)

	if !hasBody {
		p.ctx.PopScope()
		p.expectLineEnd()
		return
	}

	for _, prm := range params {
		if prm.Name != "" {
			p.ctx.DeclareLocal(prm.Name, compctx.VarBinding{Type: prm.Type})
		}
	}

	prevName, prevRet := p.curFuncName, p.curFuncReturn
	p.curFuncName, p.curFuncReturn = name, retType

	p.expectLineEnd()
	body, _ := p.parseBlockBody(1)

	p.curFuncName, p.curFuncReturn = prevName, prevRet
	p.ctx.PopScope()

	if err := ast.CreateFunc(p.ctx, proto, body); err != nil {
		p.errorAt(nameTok, "%s", err.Error())
	}
}

// declareFunc builds the LLVM function type and value for a header already parsed, then
// reconciles it against any existing prototype of the same name via ctx.Protos.Declare.
func (p *Parser) declareFunc(nameTok lexer.Token, name string, params []compctx.Param, variadic bool, retType types.ID, hasBody bool) (llvm.Value, *compctx.FuncProto) {
	existing, existed := p.ctx.Protos.Lookup(name)

	var fn llvm.Value
	if existed {
		fn = existing.Fn
	} else {
		paramTypes := make([]llvm.Type, len(params))
		for i, prm := range params {
			paramTypes[i] = types.LLVMType(prm.Type)
		}
		var llRet llvm.Type
		if retType == types.Void {
			llRet = llvm.VoidType()
		} else {
			llRet = types.LLVMType(retType)
		}
		ftype := llvm.FunctionType(llRet, paramTypes, variadic)
		fn = llvm.AddFunction(p.ctx.Module, name, ftype)
		for i, param := range fn.Params() {
			if i < len(params) && params[i].Name != "" {
				param.SetName(params[i].Name)
			}
		}
	}

	candidate := &compctx.FuncProto{Name: name, Return: retType, Params: params, HasBody: hasBody, VarArg: variadic, Fn: fn}
	proto, err := p.ctx.Protos.Declare(candidate)
	if err != nil {
		p.errorAt(nameTok, "%s", err.Error())
		return fn, candidate
	}
	return fn, proto
}

// parseParamList parses a function's comma-separated parameter list: each entry is `name: type`
// or a bare type name (positional-only, no binding name — enables forward declarations that
// don't name their parameters). A trailing `...` marks the function variadic; nothing may follow
// it (spec §4.5).
func (p *Parser) parseParamList() ([]compctx.Param, bool) {
	var params []compctx.Param
	if p.cur.Kind == lexer.RPAREN {
		return nil, false
	}
	for {
		if p.cur.Kind == lexer.ELLIPSIS {
			p.advance()
			return params, true
		}
		nameTok, ok := p.expect(lexer.IDENT)
		if !ok {
			break
		}
		if p.cur.Kind == lexer.COLON {
			p.advance()
			t, _ := p.parseType(true)
			params = append(params, compctx.Param{Name: nameTok.Capture.Text, Type: t})
		} else {
			t, ok := types.BuiltinScalar(nameTok.Capture.Text)
			if !ok {
				p.errorAt(nameTok, "매개변수 타입이 필요합니다: %s", nameTok.Capture.Text)
				t = types.Void
			}
			params = append(params, compctx.Param{Type: t})
		}
		if p.cur.Kind == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	return params, false
}
