package ast

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/types"
)

// countReturns walks a parsed statement list (recursing into if/elif/else arms and loop bodies,
// but not into nested function definitions — Zul has none, functions never nest) to count
// Return statements ahead of emission, so create_func can decide before it emits a single
// instruction whether this function needs a materialized return slot and return block
// (invariant #4: "return_block/return_var are materialized iff the function contains two or
// more return statements").
func countReturns(nodes []Node) int {
	n := 0
	for _, stmt := range nodes {
		switch s := stmt.(type) {
		case *Return:
			n++
		case *If:
			for _, arm := range s.Arms {
				n += countReturns(arm.Body)
			}
			n += countReturns(s.Else)
		case *Loop:
			n += countReturns(s.Body)
		}
	}
	return n
}

// CreateFunc assembles fn's body: entry block, parameter allocas, per-function return plumbing,
// and the statement-by-statement emission of body, finishing with a default return or the
// unreachable-block pruner (spec §4.6).
func CreateFunc(ctx *compctx.Context, proto *compctx.FuncProto, body []Node) error {
	fn := proto.Fn
	ctx.ResetFunction(fn, proto.Return)
	ctx.ReturnCount = countReturns(body)

	entry := llvm.AddBasicBlock(fn, "entry")
	ctx.Builder.SetInsertPointAtEnd(entry)

	if ctx.ReturnCount > 1 {
		ctx.ReturnBlock = llvm.AddBasicBlock(fn, "return")
		if proto.Return != types.Void {
			ctx.ReturnVar = ctx.Builder.CreateAlloca(types.LLVMType(proto.Return), "retval")
		}
	}

	ctx.PushScope()
	for i, param := range proto.Params {
		slot := ctx.Builder.CreateAlloca(types.LLVMType(param.Type), param.Name)
		ctx.Builder.CreateStore(fn.Param(i), slot)
		ctx.DeclareLocal(param.Name, compctx.VarBinding{Value: slot, Type: param.Type})
	}

	terminated := emitStatements(ctx, body)
	ctx.PopScope()

	if !terminated {
		if err := closeUnterminatedTail(ctx, proto); err != nil {
			return err
		}
	}

	// The multi-return block is reached only via explicit branches from Return nodes, which
	// exist precisely because ReturnCount > 1 — it is always genuinely reachable, so it needs no
	// predecessor check of its own.
	if ctx.ReturnCount > 1 {
		ctx.Builder.SetInsertPointAtEnd(ctx.ReturnBlock)
		if proto.Return == types.Void {
			ctx.Builder.CreateRetVoid()
		} else {
			ctx.Builder.CreateRet(ctx.Builder.CreateLoad(ctx.ReturnVar, ""))
		}
	}
	return nil
}

// closeUnterminatedTail gives the block the builder is currently positioned at (wherever the
// body's own emission left off) a terminator. main gets a default zero return, a void function
// gets ret void, and anything else is only legal if that block turns out to be unreachable — the
// "if/else that returns on every branch" case — in which case it is pruned into an unreachable
// instruction rather than left without a terminator (spec §4.6).
func closeUnterminatedTail(ctx *compctx.Context, proto *compctx.FuncProto) error {
	tail := ctx.Builder.GetInsertBlock()
	switch {
	case proto.Name == "main":
		ctx.Builder.CreateRet(types.ConstZero(proto.Return))
	case proto.Return == types.Void:
		ctx.Builder.CreateRetVoid()
	default:
		if hasPredecessor(tail) {
			return fmt.Errorf("함수 %s이(가) 모든 경로에서 값을 반환하지 않습니다", proto.Name)
		}
		ctx.Builder.CreateUnreachable()
	}
	return nil
}

// hasPredecessor reports whether any instruction in the module branches to block, i.e. whether
// it is reachable. Used by the unreachable-block pruner to distinguish a genuinely missing
// return (an error) from a merge block left dangling because every incoming branch already
// terminated.
func hasPredecessor(block llvm.BasicBlock) bool {
	use := block.AsValue().FirstUse()
	return !use.IsNil()
}
