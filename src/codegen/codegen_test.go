package codegen

import (
	"strings"
	"testing"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
)

func TestDeclareIntrinsicsRegistersPrintfAndScanf(t *testing.T) {
	ctx := compctx.New("test", diag.New("test.zul"))
	DeclareIntrinsics(ctx)

	for _, name := range []string{"printf", "scanf"} {
		proto, ok := ctx.Protos.Lookup(name)
		if !ok {
			t.Fatalf("expected %s to be registered as a prototype", name)
		}
		if !proto.VarArg {
			t.Errorf("expected %s to be variadic", name)
		}
		if proto.Fn.IsNil() {
			t.Errorf("expected %s to carry a declared LLVM function", name)
		}
	}

	if fn := ctx.Module.NamedFunction("printf"); fn.IsNil() {
		t.Errorf("expected printf to be declared in the module")
	}
	if fn := ctx.Module.NamedFunction("scanf"); fn.IsNil() {
		t.Errorf("expected scanf to be declared in the module")
	}
}

func TestEmitIRWritesTextualModule(t *testing.T) {
	ctx := compctx.New("test", diag.New("test.zul"))
	DeclareIntrinsics(ctx)

	if err := emitIR(ctx, t.TempDir()+"/out.ll"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmitBCWritesToFile(t *testing.T) {
	ctx := compctx.New("test", diag.New("test.zul"))
	DeclareIntrinsics(ctx)

	path := t.TempDir() + "/out.bc"
	if err := emitBC(ctx, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunReportsMissingMain(t *testing.T) {
	ctx := compctx.New("test", diag.New("test.zul"))
	DeclareIntrinsics(ctx)

	_, err := run(ctx)
	if err == nil {
		t.Fatalf("expected an error when the module has no main function")
	}
	if !strings.Contains(err.Error(), "main") {
		t.Errorf("expected the error to mention main, got %q", err.Error())
	}
}
