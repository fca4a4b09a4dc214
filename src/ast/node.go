// Package ast defines Zul's syntax tree and its type-aware IR emission. Every node carries its
// own Emit method rather than routing through a central switch, the idiomatic Go stand-in for
// the capability-set/tagged-variant design spec §3 describes (Go has no sum type; an interface
// closed over this package's node set is the nearest equivalent, matching the redesign note in
// DESIGN.md).
//
// Grounded throughout on vslc's ir/llvm/transform.go gen*/genExpression/genRelation functions:
// the same operations (load/store/GEP/call/branch construction) appear here, reorganized from
// one big node-kind switch into one Emit method per node type, and rewired to run inline during
// parsing (spec §2: "identifier resolution, type inference, cast insertion, and IR generation
// happen together during parsing") instead of as a separate pass over an already-built tree.
package ast

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
)

// Node is the capability set every AST node implements (spec §3).
type Node interface {
	// Emit generates IR for the node against ctx and returns the produced value and its
	// type-id. A type-id of types.Void means the sub-expression failed and no value was
	// produced; types.Interrupt means the node emitted a block-terminating branch and the
	// enclosing statement list must stop.
	Emit(ctx *compctx.Context) (llvm.Value, types.ID)

	// IsConstant reports whether the node's value is known at compile time (required for
	// global initializers and array-size expressions).
	IsConstant() bool

	// IsLValue reports whether the node names a storage location that can be written through.
	IsLValue() bool

	// StaticType returns the node's type-id without emitting anything, used by callers (for
	// example type inference of a global's initializer) that need to know a type ahead of
	// emission.
	StaticType(ctx *compctx.Context) types.ID
}

// LValue is the subset of Node that has an addressable storage location: Variable and
// Subscript. Addr returns the slot's address and the type stored there, which may differ from
// Emit's decayed result for array variables.
type LValue interface {
	Node
	Addr(ctx *compctx.Context) (llvm.Value, types.ID)
}

// runeLen returns the code-point length of s, used to size diagnostic tilde runs for
// identifier-shaped errors.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// errNode is the zero-value result every failing Emit/Addr method returns: spec's "(null, -1)"
// encoded as the Go zero llvm.Value and types.Void.
func errNode() (llvm.Value, types.ID) {
	return llvm.Value{}, types.Void
}

// interruptNode is the result Return/Break/Continue emit: no value, and the sentinel telling
// the enclosing statement list to stop.
func interruptNode() (llvm.Value, types.ID) {
	return llvm.Value{}, types.Interrupt
}

// diagAt is a small convenience wrapper so node files don't all re-derive width-from-text.
func diagAt(d *diag.Engine, loc diag.Loc, width int, format string, args ...interface{}) {
	if d == nil {
		return
	}
	if width < 1 {
		width = 1
	}
	d.Logf(loc, width, format, args...)
}
