package ast

import (
	"strings"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// Intrinsic names, rewritten at call time rather than declared by the user (spec §4.5).
const (
	StdinName  = "STDIN"
	StdoutName = "STDOUT"
)

// FuncCall invokes a user-defined function or one of the two stdio intrinsics. The callee is
// resolved by name against the prototype table at Emit time, not captured by pointer at parse
// time, so a forward declaration later replaced by its definition never strands a stale
// reference (spec §9).
type FuncCall struct {
	Name string
	Args []Node
	Loc  diag.Loc
}

func (n *FuncCall) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	switch n.Name {
	case StdinName:
		return n.emitStdin(ctx)
	case StdoutName:
		return n.emitStdout(ctx)
	}

	proto, ok := ctx.Protos.Lookup(n.Name)
	if !ok {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Name), "선언되지 않은 함수입니다: %s", n.Name)
		return errNode()
	}
	if !proto.VarArg && len(n.Args) != len(proto.Params) {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Name), "%s은(는) 인자 %d개가 필요하지만 %d개가 주어졌습니다",
			n.Name, len(proto.Params), len(n.Args))
		return errNode()
	}
	if proto.VarArg && len(n.Args) < len(proto.Params) {
		diagAt(ctx.Diag, n.Loc, runeLen(n.Name), "%s은(는) 최소 인자 %d개가 필요하지만 %d개가 주어졌습니다",
			n.Name, len(proto.Params), len(n.Args))
		return errNode()
	}

	args := make([]llvm.Value, len(n.Args))
	for i, arg := range n.Args {
		v, t := arg.Emit(ctx)
		if t == types.Void {
			return errNode()
		}
		if i < len(proto.Params) {
			cast, ok := types.TryCast(ctx.Builder, v, t, proto.Params[i].Type)
			if !ok {
				diagAt(ctx.Diag, n.Loc, 1, "%s의 %d번째 인자 타입(%s)이 %s와 맞지 않습니다",
					n.Name, i+1, t, proto.Params[i].Type)
				return errNode()
			}
			v = cast
		}
		args[i] = v
	}

	result := ctx.Builder.CreateCall(proto.Fn, args, callResultName(proto.Return))
	return result, proto.Return
}

// callResultName suppresses the instruction name for void calls, which go-llvm otherwise
// rejects naming.
func callResultName(ret types.ID) string {
	if ret == types.Void {
		return ""
	}
	return "call"
}

// emitStdin rewrites STDIN(args...) into a scanf call. Every argument must be an l-value (scanf
// writes through it); the format string is built from each argument's static type.
func (n *FuncCall) emitStdin(ctx *compctx.Context) (llvm.Value, types.ID) {
	proto, ok := ctx.Protos.Lookup("scanf")
	if !ok {
		diagAt(ctx.Diag, n.Loc, 1, "scanf가 선언되지 않았습니다")
		return errNode()
	}

	var format strings.Builder
	args := make([]llvm.Value, 0, len(n.Args)+1)
	for i, arg := range n.Args {
		lv, ok := arg.(LValue)
		if !ok {
			diagAt(ctx.Diag, n.Loc, 1, "STDIN의 인자는 좌측값이어야 합니다")
			return errNode()
		}
		addr, t := lv.Addr(ctx)
		if t == types.Void {
			return errNode()
		}
		specType := t
		if t.IsArray() {
			// scanf needs a pointer to the element type, not to the whole array object;
			// decay the same way Variable.Emit does for an ordinary r-value use.
			zero := llvm.ConstInt(llvm.Int32Type(), 0, false)
			addr = ctx.Builder.CreateGEP(addr, []llvm.Value{zero, zero}, "")
			specType = types.PointerOf(t.Elem())
		}
		if i > 0 {
			format.WriteByte(' ')
		}
		format.WriteString(scanfSpecifier(specType))
		args = append(args, addr)
	}

	fmtConst := ctx.Builder.CreateGlobalStringPtr(format.String(), "fmt")
	callArgs := append([]llvm.Value{fmtConst}, args...)
	return ctx.Builder.CreateCall(proto.Fn, callArgs, "call"), types.Int
}

// emitStdout rewrites STDOUT(args...) into a printf call, space-separating arguments and
// appending a trailing newline.
func (n *FuncCall) emitStdout(ctx *compctx.Context) (llvm.Value, types.ID) {
	proto, ok := ctx.Protos.Lookup("printf")
	if !ok {
		diagAt(ctx.Diag, n.Loc, 1, "printf가 선언되지 않았습니다")
		return errNode()
	}

	var format strings.Builder
	args := make([]llvm.Value, 0, len(n.Args)+1)
	for i, arg := range n.Args {
		v, t := arg.Emit(ctx)
		if t == types.Void {
			return errNode()
		}
		if i > 0 {
			format.WriteByte(' ')
		}
		format.WriteString(printfSpecifier(t))
		args = append(args, v)
	}
	format.WriteByte('\n')

	fmtConst := ctx.Builder.CreateGlobalStringPtr(format.String(), "fmt")
	callArgs := append([]llvm.Value{fmtConst}, args...)
	return ctx.Builder.CreateCall(proto.Fn, callArgs, "call"), types.Int
}

// printfSpecifier maps a type-id to the conversion spec spec §4.5 assigns it.
func printfSpecifier(t types.ID) string {
	switch {
	case t == types.Bool:
		return "%u"
	case t == types.Char:
		return "%c"
	case t == types.Int:
		return "%lld"
	case t == types.Float:
		return "%lf"
	case t == types.PointerOf(types.Char):
		return "%s"
	default:
		return "%p"
	}
}

// scanfSpecifier is the same mapping for scanf: %s for a char pointer, %p for any other pointer
// or array type. emitStdin decays array arguments to element pointers before calling it.
func scanfSpecifier(t types.ID) string {
	switch {
	case t == types.Bool:
		return "%u"
	case t == types.Char:
		return "%c"
	case t == types.Int:
		return "%lld"
	case t == types.Float:
		return "%lf"
	case t.IsPointer() && t.Elem() == types.Char:
		return "%s"
	default:
		return "%p"
	}
}

func (n *FuncCall) IsConstant() bool { return false }
func (n *FuncCall) IsLValue() bool   { return false }
func (n *FuncCall) StaticType(ctx *compctx.Context) types.ID {
	if n.Name == StdinName || n.Name == StdoutName {
		return types.Int
	}
	proto, ok := ctx.Protos.Lookup(n.Name)
	if !ok {
		return types.Void
	}
	return proto.Return
}
