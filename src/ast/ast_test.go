package ast

import (
	"testing"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/types"
)

// countingNode is a minimal Node stub used to test emitStatements' early-stop behavior without
// touching LLVM at all.
type countingNode struct {
	calls  *int
	result types.ID
}

func (n *countingNode) Emit(ctx *compctx.Context) (llvm.Value, types.ID) {
	*n.calls++
	return llvm.Value{}, n.result
}
func (n *countingNode) IsConstant() bool                             { return false }
func (n *countingNode) IsLValue() bool                               { return false }
func (n *countingNode) StaticType(ctx *compctx.Context) types.ID { return n.result }

func TestEmitStatementsStopsAtInterrupt(t *testing.T) {
	calls := 0
	nodes := []Node{
		&countingNode{calls: &calls, result: types.Int},
		&countingNode{calls: &calls, result: types.Interrupt},
		&countingNode{calls: &calls, result: types.Int}, // unreachable, must not run
	}
	terminated := emitStatements(nil, nodes)
	if !terminated {
		t.Fatalf("expected emitStatements to report termination")
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 nodes emitted before stopping, got %d", calls)
	}
}

func TestEmitStatementsRunsToEndWithoutInterrupt(t *testing.T) {
	calls := 0
	nodes := []Node{
		&countingNode{calls: &calls, result: types.Int},
		&countingNode{calls: &calls, result: types.Bool},
	}
	if emitStatements(nil, nodes) {
		t.Fatalf("expected emitStatements to report no termination")
	}
	if calls != 2 {
		t.Fatalf("expected both nodes emitted, got %d", calls)
	}
}

func TestCountReturns(t *testing.T) {
	body := []Node{
		&Return{DeclType: types.Int},
		&If{
			Arms: []Branch{
				{Body: []Node{&Return{DeclType: types.Int}, &Break{}}},
			},
			Else: []Node{&Return{DeclType: types.Int}},
		},
		&Loop{Body: []Node{&Return{DeclType: types.Int}}},
	}
	if got := countReturns(body); got != 4 {
		t.Fatalf("countReturns() = %d, want 4", got)
	}
}

func TestCountReturnsZero(t *testing.T) {
	body := []Node{&Break{}, &Continue{}}
	if got := countReturns(body); got != 0 {
		t.Fatalf("countReturns() = %d, want 0", got)
	}
}

func TestPrintfSpecifier(t *testing.T) {
	cases := []struct {
		t    types.ID
		want string
	}{
		{types.Bool, "%u"},
		{types.Char, "%c"},
		{types.Int, "%lld"},
		{types.Float, "%lf"},
		{types.PointerOf(types.Char), "%s"},
		{types.PointerOf(types.Int), "%p"},
	}
	for _, c := range cases {
		if got := printfSpecifier(c.t); got != c.want {
			t.Errorf("printfSpecifier(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestScanfSpecifier(t *testing.T) {
	cases := []struct {
		t    types.ID
		want string
	}{
		{types.Bool, "%u"},
		{types.Int, "%lld"},
		{types.PointerOf(types.Char), "%s"},
		{types.ArrayOf(types.Char), "%p"}, // arrays decay before reaching scanfSpecifier
	}
	for _, c := range cases {
		if got := scanfSpecifier(c.t); got != c.want {
			t.Errorf("scanfSpecifier(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestLiteralStaticTypes(t *testing.T) {
	cases := []struct {
		name string
		n    Node
		want types.ID
	}{
		{"bool", &BoolLit{Value: true}, types.Bool},
		{"char", &CharLit{Value: 'a'}, types.Char},
		{"int", &IntLit{Value: 5}, types.Int},
		{"real", &RealLit{Value: 1.5}, types.Float},
		{"str", &StrLit{Value: "hi"}, types.PointerOf(types.Char)},
	}
	for _, c := range cases {
		if got := c.n.StaticType(nil); got != c.want {
			t.Errorf("%s: StaticType() = %v, want %v", c.name, got, c.want)
		}
		if !c.n.IsConstant() {
			t.Errorf("%s: expected IsConstant() to be true", c.name)
		}
		if c.n.IsLValue() {
			t.Errorf("%s: expected IsLValue() to be false", c.name)
		}
	}
}

func TestBinOpIsConstant(t *testing.T) {
	b := &BinOp{Lhs: &IntLit{Value: 1}, Rhs: &IntLit{Value: 2}, Op: "+"}
	if !b.IsConstant() {
		t.Fatalf("expected constant-operand BinOp to be constant")
	}
	b2 := &BinOp{Lhs: &IntLit{Value: 1}, Rhs: &Variable{Name: "x"}, Op: "+"}
	if b2.IsConstant() {
		t.Fatalf("expected BinOp with a variable operand to not be constant")
	}
}

func TestBinOpStaticTypePromotesAndComparisons(t *testing.T) {
	add := &BinOp{Lhs: &IntLit{Value: 1}, Rhs: &RealLit{Value: 2}, Op: "+"}
	if got := add.StaticType(nil); got != types.Float {
		t.Errorf("int + float StaticType() = %v, want %v", got, types.Float)
	}
	cmp := &BinOp{Lhs: &IntLit{Value: 1}, Rhs: &IntLit{Value: 2}, Op: "<"}
	if got := cmp.StaticType(nil); got != types.Bool {
		t.Errorf("comparison StaticType() = %v, want %v", got, types.Bool)
	}
}

func TestShortCircuitStaticTypeIsAlwaysBool(t *testing.T) {
	sc := &ShortCircuit{Lhs: &BoolLit{Value: true}, Rhs: &BoolLit{Value: false}, Op: "&&"}
	if sc.IsConstant() {
		t.Fatalf("expected short-circuit nodes to never be constant")
	}
	if got := sc.StaticType(nil); got != types.Bool {
		t.Errorf("StaticType() = %v, want %v", got, types.Bool)
	}
}
