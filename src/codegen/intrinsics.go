// Package codegen is the last stage of the driver: it declares the two stdio intrinsics a Zul
// program may call, then turns a fully parsed compctx.Context into either textual IR, bitcode, or
// a JIT-executed process (spec §6 "External interfaces").
//
// Grounded on vslc's ir/llvm/transform.go genPrintf/genAtoi/genAtof, which declare a C library
// function by hand-building its llvm.FunctionType and calling llvm.AddFunction — the same shape
// this package reuses for printf and scanf.
package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/types"
)

// DeclareIntrinsics adds printf and scanf to ctx's module as variadic `i32(i8*, ...)` externals
// and registers matching entries in ctx.Protos, so STDOUT/STDIN call sites (rewritten by
// ast.FuncCall.Emit to "printf"/"scanf") resolve exactly like any user-declared function. Must run
// before parsing begins — spec §6 requires the declarations to already exist in the module "up
// front".
func DeclareIntrinsics(ctx *compctx.Context) {
	declareVariadicI32 := func(name string) {
		argTypes := []llvm.Type{llvm.PointerType(llvm.Int8Type(), 0)}
		ftyp := llvm.FunctionType(llvm.Int32Type(), argTypes, true)
		fn := llvm.AddFunction(ctx.Module, name, ftyp)
		ctx.Protos.Declare(&compctx.FuncProto{
			Name:    name,
			Return:  types.Int,
			Params:  []compctx.Param{{Name: "fmt", Type: types.PointerOf(types.Char)}},
			HasBody: true, // Defined elsewhere (libc); body-complete as far as Declare's reconciliation cares.
			VarArg:  true,
			Fn:      fn,
		})
	}
	declareVariadicI32("printf")
	declareVariadicI32("scanf")
}
