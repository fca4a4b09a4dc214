package codegen

import (
	"fmt"
	"os"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/util"
)

// Emit finishes compilation of a fully parsed ctx according to opt: -S writes textual LLVM IR,
// -c writes LLVM bitcode, and absent either flag the module is JIT-compiled and its main function
// is run directly, its return value becoming the process exit code (spec §6). The caller must
// check ctx.Diag.HasError() before calling Emit — an erroring parse is never emitted or run
// (spec §7's error_flag policy).
func Emit(ctx *compctx.Context, opt util.Options) (int, error) {
	switch {
	case opt.EmitIR:
		return 0, emitIR(ctx, opt.Out)
	case opt.EmitBC:
		return 0, emitBC(ctx, opt.Out)
	default:
		return run(ctx)
	}
}

// emitIR writes ctx's module in LLVM's human-readable textual form. Unlike the bitcode and JIT
// paths, this needs no target-machine setup at all — Module.String() is target-independent.
func emitIR(ctx *compctx.Context, out string) error {
	w, err := util.NewWriter(out)
	if err != nil {
		return err
	}
	if _, err := w.WriteString(ctx.Module.String()); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// emitBC writes ctx's module as LLVM bitcode. Bitcode is a binary container, so unlike emitIR
// this bypasses util.Writer's string-oriented buffering and writes straight to an *os.File.
func emitBC(ctx *compctx.Context, out string) error {
	f := os.Stdout
	if out != "" {
		var err error
		f, err = os.OpenFile(out, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	if ok := llvm.WriteBitcodeToFile(ctx.Module, f); !ok {
		return fmt.Errorf("failed to write bitcode to %s", out)
	}
	return nil
}

// run JIT-compiles ctx's module and calls its main function directly — this is the default path
// when neither -S nor -c is given (spec §6). Zul's own parser declares the user's HI main(...)
// function under the LLVM name "main" itself, with no synthetic argc/argv wrapper competing for
// that name the way vslc's genMain does, so no renaming step is needed before running it.
func run(ctx *compctx.Context) (int, error) {
	llvm.LinkInMCJIT()
	if err := llvm.InitializeNativeTarget(); err != nil {
		return 1, err
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return 1, err
	}

	mainFn := ctx.Module.NamedFunction("main")
	if mainFn.IsNil() {
		return 1, fmt.Errorf("no main function defined")
	}

	engine, err := llvm.NewMCJITCompiler(ctx.Module, llvm.NewMCJITCompilerOptions())
	if err != nil {
		return 1, err
	}
	defer engine.Dispose()

	result := engine.RunFunction(mainFn, nil)
	return int(int64(result.Int(true))), nil
}
