package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// Variable is an l-value reference to a name, resolved from the local symbol table first, then
// the global one (spec §3).
type Variable struct {
	Name string
	Loc  diag.Loc
}

func (n *Variable) Addr(ctx *compctx.Context) (llvm.Value, types.ID) {
	b, ok := ctx.Lookup(n.Name)
	if !ok {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Name), "선언되지 않은 변수입니다: %s", n.Name)
		return errNode()
	}
	return b.Value, b.Type
}

// Emit loads the variable's value, decaying an array binding into a pointer to its first
// element (spec §3: "arrays decay into pointers when stored in variables").
func (n *Variable) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	addr, t := n.Addr(ctx)
	if t == types.Void {
		return errNode()
	}
	if t.IsArray() {
		zero := llvm.ConstInt(llvm.Int32Type(), 0, false)
		return ctx.Builder.CreateGEP(addr, []llvm.Value{zero, zero}, ""), types.PointerOf(t.Elem())
	}
	return ctx.Builder.CreateLoad(addr, ""), t
}

func (n *Variable) IsConstant() bool { return false }
func (n *Variable) IsLValue() bool   { return true }
func (n *Variable) StaticType(ctx *compctx.Context) types.ID {
	b, ok := ctx.Lookup(n.Name)
	if !ok {
		return types.Void
	}
	return b.Type
}

// Subscript indexes a global array variable by an integer expression (spec §3). Arrays are
// global-only and single-dimensional, so the array operand is always a bare name.
type Subscript struct {
	Array *Variable
	Index Node
	Loc   diag.Loc
}

func (n *Subscript) Addr(ctx *compctx.Context) (llvm.Value, types.ID) {
	b, ok := ctx.Lookup(n.Array.Name)
	if !ok {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Array.Name), "선언되지 않은 변수입니다: %s", n.Array.Name)
		return errNode()
	}
	if !b.Type.IsArray() {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Array.Name), "%s은(는) 배열이 아닙니다", n.Array.Name)
		return errNode()
	}
	idxVal, idxT := n.Index.Emit(ctx)
	if idxT == types.Void {
		return errNode()
	}
	if idxT != types.Int {
		cast, ok := types.TryCast(ctx.Builder, idxVal, idxT, types.Int)
		if !ok {
			diagAt(ctx.Diag, n.Loc, 1, "배열 첨자는 정수여야 합니다")
			return errNode()
		}
		idxVal = cast
	}
	zero := llvm.ConstInt(llvm.Int32Type(), 0, false)
	return ctx.Builder.CreateGEP(b.Value, []llvm.Value{zero, idxVal}, ""), b.Type.Elem()
}

func (n *Subscript) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	addr, t := n.Addr(ctx)
	if t == types.Void {
		return errNode()
	}
	return ctx.Builder.CreateLoad(addr, ""), t
}

func (n *Subscript) IsConstant() bool { return false }
func (n *Subscript) IsLValue() bool   { return true }
func (n *Subscript) StaticType(ctx *compctx.Context) types.ID {
	b, ok := ctx.Lookup(n.Array.Name)
	if !ok || !b.Type.IsArray() {
		return types.Void
	}
	return b.Type.Elem()
}

// VariableDecl declares a local variable, optionally with an initializer. The parser registers
// its name in the current scope (Register) before Emit ever runs, so later statements of the same
// scope parse as uses of it. At emission the initializer is emitted before the name is bound, so
// a self-referential initializer like "x = x + 1" reports x as an undeclared variable; it is not
// bound to a type-undefined slot while the initializer runs.
type VariableDecl struct {
	NameCapture string
	Loc         diag.Loc
	Declared    types.ID // types.Void if the type is to be inferred from Init.
	Init        Node     // nil if there is no initializer.
}

// Register binds NameCapture in ctx's current scope with a provisional (not-yet-typed) slot.
// The parser calls this right after constructing the node, once Init has already been parsed,
// so that ctx.VarExists sees the name while the rest of the scope is parsed.
func (n *VariableDecl) Register(ctx *compctx.Context) {
	ctx.DeclareLocal(n.NameCapture, compctx.VarBinding{Type: types.Void})
}

func (n *VariableDecl) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	declared := n.Declared
	var initVal llvm.Value
	var initT types.ID
	if n.Init != nil {
		initVal, initT = n.Init.Emit(ctx)
		if declared == types.Void {
			declared = initT
		}
	}
	if declared == types.Void {
		diagAt(ctx.Diag, n.Loc, runeLen(n.NameCapture), "변수 %s의 타입을 추론할 수 없습니다", n.NameCapture)
		return errNode()
	}
	if declared.IsArray() {
		diagAt(ctx.Diag, n.Loc, runeLen(n.NameCapture), "지역 변수는 배열일 수 없습니다: %s", n.NameCapture)
		return errNode()
	}

	slot := ctx.Builder.CreateAlloca(types.LLVMType(declared), n.NameCapture)
	if n.Init != nil {
		if initT == types.Void {
			return errNode()
		}
		cast, ok := types.TryCast(ctx.Builder, initVal, initT, declared)
		if !ok {
			diagAt(ctx.Diag, n.Loc, runeLen(n.NameCapture), "%s의 초기값 타입(%s)을 %s로 변환할 수 없습니다",
				n.NameCapture, initT, declared)
			return errNode()
		}
		ctx.Builder.CreateStore(cast, slot)
	} else {
		ctx.Builder.CreateStore(types.ConstZero(declared), slot)
	}
	ctx.DeclareLocal(n.NameCapture, compctx.VarBinding{Value: slot, Type: declared})
	return slot, declared
}

func (n *VariableDecl) IsConstant() bool { return false }
func (n *VariableDecl) IsLValue() bool   { return false }
func (n *VariableDecl) StaticType(ctx *compctx.Context) types.ID {
	if n.Declared != types.Void {
		return n.Declared
	}
	if n.Init != nil {
		return n.Init.StaticType(ctx)
	}
	return types.Void
}

// VariableAssn assigns to an l-value, lowering the compound-assignment family (+=, -=, ...) to
// the equivalent int_op/float_op followed by a store (spec §3).
type VariableAssn struct {
	Target LValue
	Op     string // "=" for plain assignment, or the compound op's non-assigning form (see Kind.BinOp).
	RHS    Node
	Loc    diag.Loc
}

func (n *VariableAssn) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	addr, targetT := n.Target.Addr(ctx)
	if targetT == types.Void {
		return errNode()
	}
	rhsVal, rhsT := n.RHS.Emit(ctx)
	if rhsT == types.Void {
		return errNode()
	}

	var result llvm.Value
	if n.Op == "=" {
		cast, ok := types.TryCast(ctx.Builder, rhsVal, rhsT, targetT)
		if !ok {
			diagAt(ctx.Diag, n.Loc, 1, "타입 %s을(를) %s로 대입할 수 없습니다", rhsT, targetT)
			return errNode()
		}
		result = cast
	} else {
		current := ctx.Builder.CreateLoad(addr, "")
		cast, ok := types.TryCast(ctx.Builder, rhsVal, rhsT, targetT)
		if !ok {
			diagAt(ctx.Diag, n.Loc, 1, "타입 %s을(를) %s로 대입할 수 없습니다", rhsT, targetT)
			return errNode()
		}
		var err error
		if targetT == types.Float {
			result, err = types.FloatOp(ctx.Builder, current, cast, n.Op)
		} else {
			result, err = types.IntOp(ctx.Builder, current, cast, n.Op)
		}
		if err != nil {
			diagAt(ctx.Diag, n.Loc, 1, "%s", err.Error())
			return errNode()
		}
	}
	ctx.Builder.CreateStore(result, addr)
	return result, targetT
}

func (n *VariableAssn) IsConstant() bool { return false }
func (n *VariableAssn) IsLValue() bool   { return false }
func (n *VariableAssn) StaticType(ctx *compctx.Context) types.ID {
	return n.Target.StaticType(ctx)
}
