// Tests the parser end to end: since parsing and emission are fused (spec §4.3), these feed small
// Zul snippets through New/ParseProgram and inspect the resulting compctx.Context state and
// diagnostics, in the same table-driven style as the lexer's own tests.
package parser

import (
	"testing"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/lexer"
	"github.com/zihasoo/Zul-lang/src/types"
)

func parse(t *testing.T, src string) (*compctx.Context, *diag.Engine) {
	t.Helper()
	d := diag.New("test.zul")
	ctx := compctx.New("test", d)
	lex := lexer.New(src, d)
	p := New(lex, ctx)
	p.ParseProgram()
	return ctx, d
}

func TestParseGlobalScalarWithInit(t *testing.T) {
	ctx, d := parse(t, "x: 수 = 5\n")
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
	b, ok := ctx.Globals["x"]
	if !ok {
		t.Fatalf("expected global x to be declared")
	}
	if b.Type != types.Int {
		t.Errorf("expected x: 수, got type %v", b.Type)
	}
}

func TestParseGlobalArray(t *testing.T) {
	ctx, d := parse(t, "arr: 수[3]\n")
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
	b, ok := ctx.Globals["arr"]
	if !ok {
		t.Fatalf("expected global arr to be declared")
	}
	if !b.Type.IsArray() || b.Type.Elem() != types.Int {
		t.Errorf("expected arr: 수[3], got type %v", b.Type)
	}
	if b.Len != 3 {
		t.Errorf("expected length 3, got %d", b.Len)
	}
}

func TestParseGlobalInferredString(t *testing.T) {
	ctx, d := parse(t, `s = "hi"`+"\n")
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
	b, ok := ctx.Globals["s"]
	if !ok {
		t.Fatalf("expected global s to be declared")
	}
	if !b.Type.IsArray() || b.Type.Elem() != types.Char {
		t.Errorf("expected s to infer a char array, got type %v", b.Type)
	}
	if b.Len != 3 { // "hi" + NUL terminator
		t.Errorf("expected length 3, got %d", b.Len)
	}
}

func TestParseDuplicateGlobalReportsError(t *testing.T) {
	_, d := parse(t, "x: 수 = 1\nx: 수 = 2\n")
	if !d.HasError() {
		t.Fatalf("expected a duplicate global declaration to be flagged")
	}
}

func TestParseFunctionForwardDeclThenDefinition(t *testing.T) {
	src := "ㅎㅇ 더하기(수, 수) 수\n" +
		"ㅎㅇ 더하기(a: 수, b: 수) 수:\n" +
		"    ㅈㅈ a + b\n"
	ctx, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
	proto, ok := ctx.Protos.Lookup("더하기")
	if !ok {
		t.Fatalf("expected prototype 더하기 to be registered")
	}
	if !proto.HasBody {
		t.Errorf("expected the reconciled prototype to carry a body")
	}
	if len(proto.Params) != 2 {
		t.Errorf("expected 2 parameters, got %d", len(proto.Params))
	}
}

func TestParseFunctionSignatureMismatchReportsError(t *testing.T) {
	src := "ㅎㅇ 더하기(수, 수) 수\n" +
		"ㅎㅇ 더하기(a: 실수, b: 수) 수:\n" +
		"    ㅈㅈ a\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected a forward-declaration/definition signature mismatch to be flagged")
	}
}

func TestParseMainMustReturnInt(t *testing.T) {
	src := "ㅎㅇ main():\n" +
		"    ㅈㅈ\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected main without an 수 return type to be flagged")
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "ㅎㅇ f(x: 수) 수:\n" +
		"    ㅇㅈ? x < 0:\n" +
		"        ㅈㅈ 0\n" +
		"    ㄴㄴ? x < 10:\n" +
		"        ㅈㅈ 1\n" +
		"    ㄴㄴ:\n" +
		"        ㅈㅈ 2\n"
	_, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
}

func TestParseForThreePart(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    i: 수 = 0\n" +
		"    ㄱㄱ i = 0; i < 10; i = i + 1:\n" +
		"        ㅌㅌ\n" +
		"    ㅈㅈ i\n"
	_, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
}

func TestParseForInfinite(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    ㄱㄱ:\n" +
		"        ㅅㄱ\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
}

func TestParseBreakOutsideLoopReportsError(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    ㅅㄱ\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected break outside a loop to be flagged")
	}
}

func TestParseContinueOutsideLoopReportsError(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    ㅌㅌ\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected continue outside a loop to be flagged")
	}
}

func TestParseLocalDeclareThenAssign(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    x: 수 = 1\n" +
		"    x += 2\n" +
		"    ㅈㅈ x\n"
	_, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
}

func TestParseCompoundAssignUndeclaredReportsError(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    x += 2\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected a compound assignment to an undeclared name to be flagged")
	}
}

func TestParseCallStatement(t *testing.T) {
	src := "ㅎㅇ g(a: 수):\n" +
		"    ㅈㅈ\n" +
		"ㅎㅇ f() 수:\n" +
		"    g(1)\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if d.HasError() {
		t.Fatalf("unexpected errors")
	}
}

func TestParseTopLevelIndentRejected(t *testing.T) {
	_, d := parse(t, "    x: 수 = 1\n")
	if !d.HasError() {
		t.Fatalf("expected an indented top-level declaration to be flagged")
	}
}

func TestParseArrayTypeRejectedForLocal(t *testing.T) {
	src := "ㅎㅇ f() 수:\n" +
		"    x: 수[3]\n" +
		"    ㅈㅈ 0\n"
	_, d := parse(t, src)
	if !d.HasError() {
		t.Fatalf("expected a local array declaration to be flagged")
	}
}
