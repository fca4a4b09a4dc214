package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// UnaryOp is a prefix +, -, !, or ~ applied to a scalar operand (spec §4.4). ~ is rejected on
// float operands, which have no bit-pattern view.
type UnaryOp struct {
	Body Node
	Op   string
	Loc  diag.Loc
}

func (n *UnaryOp) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	v, t := n.Body.Emit(ctx)
	if t == types.Void {
		return errNode()
	}
	if !t.IsScalar() {
		diagAt(ctx.Diag, n.Loc, 1, "단항 연산자 %s는 배열이나 포인터에 적용할 수 없습니다", n.Op)
		return errNode()
	}

	switch n.Op {
	case "+":
		return v, t
	case "-":
		if t == types.Float {
			return ctx.Builder.CreateFNeg(v, ""), t
		}
		return ctx.Builder.CreateNeg(v, ""), t
	case "!":
		cond := types.ToBoolean(ctx.Builder, v, t)
		return ctx.Builder.CreateNot(cond, ""), types.Bool
	case "~":
		if t == types.Float {
			diagAt(ctx.Diag, n.Loc, 1, "~ 연산자는 실수에 적용할 수 없습니다")
			return errNode()
		}
		return ctx.Builder.CreateNot(v, ""), t
	default:
		diagAt(ctx.Diag, n.Loc, 1, "알 수 없는 단항 연산자: %s", n.Op)
		return errNode()
	}
}

func (n *UnaryOp) IsConstant() bool { return n.Body.IsConstant() }
func (n *UnaryOp) IsLValue() bool   { return false }
func (n *UnaryOp) StaticType(ctx *compctx.Context) types.ID {
	if n.Op == "!" {
		return types.Bool
	}
	return n.Body.StaticType(ctx)
}
