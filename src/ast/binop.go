package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// BinOp is a scalar binary operator. Both operands are promoted to types.Max of their two
// types, dispatched through IntOp or FloatOp depending on the promoted type, and comparison
// operators rewrite the result type to Bool regardless of operand type (spec §4.4).
//
// && and || are handled separately below: they short-circuit and so cannot share this node's
// eager both-operands-emitted shape.
type BinOp struct {
	Lhs, Rhs Node
	Op       string
	Loc      diag.Loc
}

func (n *BinOp) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	lv, lt := n.Lhs.Emit(ctx)
	if lt == types.Void {
		return errNode()
	}
	rv, rt := n.Rhs.Emit(ctx)
	if rt == types.Void {
		return errNode()
	}
	if !lt.IsScalar() || !rt.IsScalar() {
		diagAt(ctx.Diag, n.Loc, 1, "연산자 %s는 배열이나 포인터에 적용할 수 없습니다", n.Op)
		return errNode()
	}

	promoted := types.Max(lt, rt)
	lv, ok := types.TryCast(ctx.Builder, lv, lt, promoted)
	if !ok {
		return errNode()
	}
	rv, ok = types.TryCast(ctx.Builder, rv, rt, promoted)
	if !ok {
		return errNode()
	}

	var result llvm.Value
	var err error
	if promoted == types.Float {
		result, err = types.FloatOp(ctx.Builder, lv, rv, n.Op)
	} else {
		result, err = types.IntOp(ctx.Builder, lv, rv, n.Op)
	}
	if err != nil {
		diagAt(ctx.Diag, n.Loc, 1, "%s", err.Error())
		return errNode()
	}
	if types.IsComparison(n.Op) {
		return result, types.Bool
	}
	return result, promoted
}

func (n *BinOp) IsConstant() bool { return n.Lhs.IsConstant() && n.Rhs.IsConstant() }
func (n *BinOp) IsLValue() bool   { return false }
func (n *BinOp) StaticType(ctx *compctx.Context) types.ID {
	if types.IsComparison(n.Op) {
		return types.Bool
	}
	return types.Max(n.Lhs.StaticType(ctx), n.Rhs.StaticType(ctx))
}

// ShortCircuit is && or ||. It never evaluates Rhs unless the result actually depends on it
// (spec §4.4, Testable Property: "short-circuit operators must not evaluate their right operand
// when the left operand already determines the result"), built from a conditional branch, a test
// block that only runs conditionally, and a phi node joining the two paths.
type ShortCircuit struct {
	Lhs, Rhs Node
	Op       string // "&&" or "||"
	Loc      diag.Loc
}

func (n *ShortCircuit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	lv, lt := n.Lhs.Emit(ctx)
	if lt == types.Void {
		return errNode()
	}
	lCond := types.ToBoolean(ctx.Builder, lv, lt)
	entryBlock := ctx.Builder.GetInsertBlock()
	fn := ctx.CurrentFunc

	testBlock := llvm.AddBasicBlock(fn, "sc.rhs")
	mergeBlock := llvm.AddBasicBlock(fn, "sc.merge")

	if n.Op == "||" {
		ctx.Builder.CreateCondBr(lCond, mergeBlock, testBlock)
	} else {
		ctx.Builder.CreateCondBr(lCond, testBlock, mergeBlock)
	}

	ctx.Builder.SetInsertPointAtEnd(testBlock)
	rv, rt := n.Rhs.Emit(ctx)
	var rCond llvm.Value
	if rt == types.Void {
		rCond = llvm.ConstInt(llvm.Int1Type(), 0, false)
	} else {
		rCond = types.ToBoolean(ctx.Builder, rv, rt)
	}
	testEndBlock := ctx.Builder.GetInsertBlock()
	ctx.Builder.CreateBr(mergeBlock)

	ctx.Builder.SetInsertPointAtEnd(mergeBlock)
	phi := ctx.Builder.CreatePHI(llvm.Int1Type(), "sc")
	shortValue := uint64(0)
	if n.Op == "||" {
		shortValue = 1
	}
	phi.AddIncoming(
		[]llvm.Value{llvm.ConstInt(llvm.Int1Type(), shortValue, false), rCond},
		[]llvm.BasicBlock{entryBlock, testEndBlock},
	)
	return phi, types.Bool
}

func (n *ShortCircuit) IsConstant() bool { return false }
func (n *ShortCircuit) IsLValue() bool   { return false }
func (n *ShortCircuit) StaticType(ctx *compctx.Context) types.ID { return types.Bool }
