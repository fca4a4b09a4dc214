package main

import (
	"testing"

	"github.com/zihasoo/Zul-lang/src/codegen"
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/parser"
)

// benchSrc is a small representative Zul program: globals, a two-arm if, a three-part for loop,
// and a function call, touching most of what a single parse-and-emit pass has to do.
const benchSrc = `` +
	"총: 수 = 0\n" +
	"ㅎㅇ 더하기(a: 수, b: 수) 수:\n" +
	"    ㅈㅈ a + b\n" +
	"ㅎㅇ main() 수:\n" +
	"    i: 수 = 0\n" +
	"    ㄱㄱ i = 0; i < 100; i = i + 1:\n" +
	"        ㅇㅈ? i % 2 == 0:\n" +
	"            총 = 더하기(총, i)\n" +
	"        ㄴㄴ:\n" +
	"            총 = 더하기(총, 0)\n" +
	"    ㅈㅈ 총\n"

// BenchmarkParseAndEmit measures the fused lex+parse+typecheck+IR-emission pass, since Zul has no
// separate optimisation/validation/codegen stages left to benchmark independently (spec §2, §4.3).
func BenchmarkParseAndEmit(b *testing.B) {
	for n := 0; n < b.N; n++ {
		d := diag.New("bench.zul")
		ctx := compctx.New("bench", d)
		codegen.DeclareIntrinsics(ctx)
		lex := lexer.New(benchSrc, d)
		p := parser.New(lex, ctx)
		p.ParseProgram()
		if d.HasError() {
			b.Fatalf("unexpected parse error")
		}
		ctx.Dispose()
	}
}

// BenchmarkEmitIR measures textual IR serialization on top of an already-parsed module.
func BenchmarkEmitIR(b *testing.B) {
	d := diag.New("bench.zul")
	ctx := compctx.New("bench", d)
	codegen.DeclareIntrinsics(ctx)
	lex := lexer.New(benchSrc, d)
	p := parser.New(lex, ctx)
	p.ParseProgram()
	if d.HasError() {
		b.Fatalf("unexpected parse error")
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = ctx.Module.String()
	}
}
