package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/zihasoo/Zul-lang/src/codegen"
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/parser"
	"github.com/zihasoo/Zul-lang/src/util"
)

// run drives one compilation from source path to process exit code: read, (optionally) dump the
// token stream, parse (which also emits, per Zul's fused design), then either write IR/bitcode or
// JIT-run the result (spec §6).
func run(opt util.Options) int {
	src, err := util.ReadSource(opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "소스를 읽을 수 없습니다: %s\n", err)
		return 1
	}

	d := diag.New(opt.Src)
	defer flushDiagnostics(d)

	if opt.TokenStream {
		dumpTokenStream(src, d)
		if d.HasError() {
			return 1
		}
		return 0
	}

	ctx := compctx.New(moduleName(opt.Src), d)
	codegen.DeclareIntrinsics(ctx)

	lex := lexer.New(src, d)
	p := parser.New(lex, ctx)
	p.ParseProgram()

	if opt.Verbose {
		fmt.Fprintf(os.Stderr, "전역 변수 %d개 파싱됨\n", len(ctx.Globals))
	}

	// spec §7's error_flag policy: an erroring parse is never emitted or run.
	if d.HasError() {
		ctx.Dispose()
		return 1
	}

	code, err := codegen.Emit(ctx, opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "코드 생성 오류: %s\n", err)
		code = 1
	}
	// The JIT path (opt.EmitIR and opt.EmitBC both false) hands the module's ownership to its
	// MCJIT execution engine, which already released it by the time Emit returns; disposing the
	// context again here would double-free it. The -S/-c paths never transfer ownership, so they
	// still need the explicit Dispose.
	if opt.EmitIR || opt.EmitBC {
		ctx.Dispose()
	}
	return code
}

// moduleName derives an LLVM module identifier from the source path (its extension stripped is
// unnecessary for correctness, but keeps -S output recognizable).
func moduleName(src string) string {
	return src
}

// dumpTokenStream prints every token the lexer produces for src, one per line, and exits once it
// reaches EOF — the -ts debugging flag (spec §6).
func dumpTokenStream(src string, d *diag.Engine) {
	lex := lexer.New(src, d)
	for {
		tok := lex.Next()
		fmt.Println(tok)
		if tok.Kind == lexer.EOF {
			return
		}
	}
}

// flushDiagnostics guarantees the diagnostic engine's buffered output reaches the user exactly
// once before the process exits, regardless of which return path run took (spec §5).
func flushDiagnostics(d *diag.Engine) {
	w := bufio.NewWriter(os.Stderr)
	d.Flush(w)
	_ = w.Flush()
}

func main() {
	opt, err := util.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "명령줄 인자 오류: %s\n", err)
		os.Exit(1)
	}
	os.Exit(run(opt))
}
