package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/types"
)

// BoolLit is a 참/거짓 literal.
type BoolLit struct{ Value bool }

func (n *BoolLit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	v := uint64(0)
	if n.Value {
		v = 1
	}
	return llvm.ConstInt(llvm.Int1Type(), v, false), types.Bool
}
func (n *BoolLit) IsConstant() bool                             { return true }
func (n *BoolLit) IsLValue() bool                               { return false }
func (n *BoolLit) StaticType(ctx *compctx.Context) types.ID { return types.Bool }

// CharLit is a single-byte character literal.
type CharLit struct{ Value byte }

func (n *CharLit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	return llvm.ConstInt(llvm.Int8Type(), uint64(n.Value), false), types.Char
}
func (n *CharLit) IsConstant() bool                         { return true }
func (n *CharLit) IsLValue() bool                           { return false }
func (n *CharLit) StaticType(ctx *compctx.Context) types.ID { return types.Char }

// IntLit is a 64-bit signed integer literal.
type IntLit struct{ Value int64 }

func (n *IntLit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	return llvm.ConstInt(llvm.Int64Type(), uint64(n.Value), true), types.Int
}
func (n *IntLit) IsConstant() bool                         { return true }
func (n *IntLit) IsLValue() bool                           { return false }
func (n *IntLit) StaticType(ctx *compctx.Context) types.ID { return types.Int }

// RealLit is a double-precision floating point literal.
type RealLit struct{ Value float64 }

func (n *RealLit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	return llvm.ConstFloat(llvm.DoubleType(), n.Value), types.Float
}
func (n *RealLit) IsConstant() bool                         { return true }
func (n *RealLit) IsLValue() bool                           { return false }
func (n *RealLit) StaticType(ctx *compctx.Context) types.ID { return types.Float }

// StrLit is a UTF-8 string literal. It emits a module-level constant and is typed as a
// char-pointer (spec §3).
type StrLit struct{ Value string }

func (n *StrLit) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	return ctx.Builder.CreateGlobalStringPtr(n.Value, "str"), types.PointerOf(types.Char)
}
func (n *StrLit) IsConstant() bool                         { return true }
func (n *StrLit) IsLValue() bool                           { return false }
func (n *StrLit) StaticType(ctx *compctx.Context) types.ID { return types.PointerOf(types.Char) }
