package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// Branch is one if/elif arm: a condition plus the statements to run when it holds.
type Branch struct {
	Cond Node
	Body []Node
}

// If is IJ/NO*/NOPE: a primary condition, zero or more elif arms, and an optional else body. A
// merge block is always created, even when every arm terminates and it ends up unreachable,
// matching how the emitted IR must still have somewhere for control flow outside the chain to
// land (spec §4.5/§4.6).
type If struct {
	Arms []Branch
	Else []Node // nil if there is no NOPE clause.
	Loc  diag.Loc
}

func (n *If) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	fn := ctx.CurrentFunc
	merge := llvm.AddBasicBlock(fn, "if.end")

	for _, arm := range n.Arms {
		condVal, condT := arm.Cond.Emit(ctx)
		if condT == types.Void {
			continue
		}
		cond := types.ToBoolean(ctx.Builder, condVal, condT)

		thenBlock := llvm.AddBasicBlock(fn, "if.then")
		nextBlock := llvm.AddBasicBlock(fn, "if.next")
		ctx.Builder.CreateCondBr(cond, thenBlock, nextBlock)

		ctx.Builder.SetInsertPointAtEnd(thenBlock)
		ctx.PushScope()
		terminated := emitStatements(ctx, arm.Body)
		ctx.PopScope()
		if !terminated {
			ctx.Builder.CreateBr(merge)
		}

		ctx.Builder.SetInsertPointAtEnd(nextBlock)
	}

	elseTerminated := false
	if n.Else != nil {
		ctx.PushScope()
		elseTerminated = emitStatements(ctx, n.Else)
		ctx.PopScope()
	}
	if !elseTerminated {
		ctx.Builder.CreateBr(merge)
	}

	ctx.Builder.SetInsertPointAtEnd(merge)
	return llvm.Value{}, types.Void
}

func (n *If) IsConstant() bool                             { return false }
func (n *If) IsLValue() bool                               { return false }
func (n *If) StaticType(ctx *compctx.Context) types.ID { return types.Void }

// Loop is GO (for): a common structure backing three source forms — infinite (`ㄱㄱ:`),
// test-only (`ㄱㄱ cond:`), and three-part (`ㄱㄱ init; cond; update:`). Init/Test/Update may
// each be nil depending on which form was parsed.
type Loop struct {
	Init   Node // nil if omitted.
	Test   Node // nil if omitted (infinite loop).
	Update Node // nil if omitted.
	Body   []Node
	Loc    diag.Loc
}

func (n *Loop) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	fn := ctx.CurrentFunc

	if n.Init != nil {
		n.Init.Emit(ctx)
	}

	testBlock := llvm.AddBasicBlock(fn, "for.test")
	startBlock := llvm.AddBasicBlock(fn, "for.body")
	updateBlock := llvm.AddBasicBlock(fn, "for.update")
	endBlock := llvm.AddBasicBlock(fn, "for.end")

	ctx.Builder.CreateBr(testBlock)
	ctx.Builder.SetInsertPointAtEnd(testBlock)
	if n.Test != nil {
		condVal, condT := n.Test.Emit(ctx)
		if condT == types.Void {
			ctx.Builder.CreateBr(endBlock)
		} else {
			cond := types.ToBoolean(ctx.Builder, condVal, condT)
			ctx.Builder.CreateCondBr(cond, startBlock, endBlock)
		}
	} else {
		ctx.Builder.CreateBr(startBlock)
	}

	ctx.Builder.SetInsertPointAtEnd(startBlock)
	ctx.EnterLoop(updateBlock, endBlock)
	ctx.PushScope()
	terminated := emitStatements(ctx, n.Body)
	ctx.PopScope()
	ctx.LeaveLoop()
	if !terminated {
		ctx.Builder.CreateBr(updateBlock)
	}

	ctx.Builder.SetInsertPointAtEnd(updateBlock)
	if n.Update != nil {
		n.Update.Emit(ctx)
	}
	ctx.Builder.CreateBr(testBlock)

	ctx.Builder.SetInsertPointAtEnd(endBlock)
	return llvm.Value{}, types.Void
}

func (n *Loop) IsConstant() bool                             { return false }
func (n *Loop) IsLValue() bool                               { return false }
func (n *Loop) StaticType(ctx *compctx.Context) types.ID { return types.Void }

// Return is GG. Body is nil for a bare return in a void function. When the enclosing function
// has only this one return statement (ctx.ReturnCount <= 1, decided by create_func's pre-scan
// before the body was emitted), it lowers straight to ret; otherwise it stores into the
// materialized return slot and branches to the shared return block (spec §4.6/invariant #4).
type Return struct {
	Body     Node // nil for a bare return.
	DeclType types.ID
	Loc      diag.Loc
}

func (n *Return) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	var val llvm.Value
	if n.Body != nil {
		v, t := n.Body.Emit(ctx)
		if t == types.Void && n.DeclType != types.Void {
			return interruptNode()
		}
		if n.DeclType != types.Void {
			cast, ok := types.TryCast(ctx.Builder, v, t, n.DeclType)
			if !ok {
				diagAt(ctx.Diag, n.Loc, 1, "반환값 타입(%s)이 선언된 반환 타입(%s)과 맞지 않습니다", t, n.DeclType)
				return interruptNode()
			}
			val = cast
		}
	}

	if ctx.ReturnCount <= 1 {
		if n.DeclType == types.Void {
			ctx.Builder.CreateRetVoid()
		} else {
			ctx.Builder.CreateRet(val)
		}
		return interruptNode()
	}

	if n.DeclType != types.Void {
		ctx.Builder.CreateStore(val, ctx.ReturnVar)
	}
	ctx.Builder.CreateBr(ctx.ReturnBlock)
	return interruptNode()
}

func (n *Return) IsConstant() bool { return false }
func (n *Return) IsLValue() bool   { return false }
func (n *Return) StaticType(ctx *compctx.Context) types.ID { return types.Interrupt }

// Continue is TT: branches to the innermost loop's update block. The parser reports TT outside a
// loop (ctx.InLoop()) but still builds the node; Emit checks for an open loop again and reports
// the same error if there is none.
type Continue struct{ Loc diag.Loc }

func (n *Continue) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	block, ok := ctx.LoopUpdateBlock()
	if !ok {
		diagAt(ctx.Diag, n.Loc, 1, "반복문 밖에서 ㅌㅌ를 사용했습니다")
		return interruptNode()
	}
	ctx.Builder.CreateBr(block)
	return interruptNode()
}

func (n *Continue) IsConstant() bool                             { return false }
func (n *Continue) IsLValue() bool                               { return false }
func (n *Continue) StaticType(ctx *compctx.Context) types.ID { return types.Interrupt }

// Break is SG: branches to the innermost loop's end block.
type Break struct{ Loc diag.Loc }

func (n *Break) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	block, ok := ctx.LoopEndBlock()
	if !ok {
		diagAt(ctx.Diag, n.Loc, 1, "반복문 밖에서 ㅅㄱ를 사용했습니다")
		return interruptNode()
	}
	ctx.Builder.CreateBr(block)
	return interruptNode()
}

func (n *Break) IsConstant() bool                             { return false }
func (n *Break) IsLValue() bool                               { return false }
func (n *Break) StaticType(ctx *compctx.Context) types.ID { return types.Interrupt }
