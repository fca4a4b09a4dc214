// Package compctx holds ZulContext: the single mutable state bag threaded through parsing and
// IR emission (spec §4.3). It owns the LLVM context/module/builder, the global and local
// variable symbol tables, the scope and loop-target stacks, and the per-function return
// plumbing.
//
// Grounded on vslc's ir/llvm/transform.go, which holds the analogous state (builder, module,
// per-function symbol tables) as local variables threaded through its gen* call chain; Zul's
// parser instead carries one long-lived *Context because identifier resolution, type inference,
// and IR emission all happen inline during parsing rather than in a later codegen pass.
package compctx

import (
	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/diag"
	"github.com/zihasoo/Zul-lang/src/types"
	"github.com/zihasoo/Zul-lang/src/util"
)

// VarBinding is what the global and local variable maps store for each name: the LLVM value
// (a global variable or an alloca'd stack slot) and its type-id.
type VarBinding struct {
	Value llvm.Value
	Type  types.ID
	Len   int // Element count, meaningful only when Type.IsArray().
}

// scopeFrame is one entry on the scope stack: the ordered list of names a lexical scope
// introduced, so popping the scope knows exactly which names to erase from Locals.
type scopeFrame struct {
	names []string
}

// Context is ZulContext: the shared, single-threaded state bag passed to every AST node's
// Emit method and consulted throughout parsing.
type Context struct {
	LLCtx   llvm.Context
	Module  llvm.Module
	Builder llvm.Builder

	Globals map[string]VarBinding
	Locals  map[string]VarBinding

	scopes     *util.Stack // of *scopeFrame
	loopUpdate *util.Stack // of llvm.BasicBlock, innermost loop's continue target
	loopEnd    *util.Stack // of llvm.BasicBlock, innermost loop's break target

	ReturnCount int             // Total return statements seen in the current function.
	ReturnBlock llvm.BasicBlock // Materialized iff ReturnCount > 1.
	ReturnVar   llvm.Value      // Materialized iff ReturnCount > 1.
	ReturnType  types.ID

	CurrentFunc llvm.Value

	Diag   *diag.Engine
	Protos *ProtoTable
}

// New returns a fresh Context with a new LLVM context/module/builder, ready to parse one
// source file into moduleName.
func New(moduleName string, d *diag.Engine) *Context {
	llctx := llvm.NewContext()
	return &Context{
		LLCtx:      llctx,
		Module:     llctx.NewModule(moduleName),
		Builder:    llctx.NewBuilder(),
		Globals:    make(map[string]VarBinding, 16),
		Locals:     make(map[string]VarBinding, 16),
		scopes:     &util.Stack{},
		loopUpdate: &util.Stack{},
		loopEnd:    &util.Stack{},
		ReturnType: types.Void,
		Diag:       d,
		Protos:     NewProtoTable(),
	}
}

// Dispose releases the underlying LLVM context. Call once the module has been fully emitted and
// handed off (JIT execution, bitcode/IR writing).
func (c *Context) Dispose() {
	c.Builder.Dispose()
	c.LLCtx.Dispose()
}

// VarExists reports whether name is bound in either the local or global variable map (spec
// invariant #2: a name is in exactly one of local map, global map, or the prototype table).
func (c *Context) VarExists(name string) bool {
	if _, ok := c.Locals[name]; ok {
		return true
	}
	_, ok := c.Globals[name]
	return ok
}

// Lookup resolves name against the local map first, then the global map, matching C-style block
// scoping where an inner declaration shadows an outer one.
func (c *Context) Lookup(name string) (VarBinding, bool) {
	if v, ok := c.Locals[name]; ok {
		return v, true
	}
	v, ok := c.Globals[name]
	return v, ok
}

// DeclareLocal binds name to v in the local map and records it against the innermost scope
// frame, so a later PopScope erases it again. Panics if called outside any PushScope — that
// would be a parser bug, not a user error.
func (c *Context) DeclareLocal(name string, v VarBinding) {
	c.Locals[name] = v
	frame := c.scopes.Peek().(*scopeFrame)
	frame.names = append(frame.names, name)
}

// PushScope opens a new lexical scope, e.g. on entering a function body or a control-flow
// block's body.
func (c *Context) PushScope() {
	c.scopes.Push(&scopeFrame{})
}

// PopScope closes the innermost lexical scope: every name it introduced is erased from Locals
// (without touching the underlying IR alloca, which remains valid but unreachable by lookup, per
// spec §4.3).
func (c *Context) PopScope() {
	v := c.scopes.Pop()
	if v == nil {
		return
	}
	frame := v.(*scopeFrame)
	for _, name := range frame.names {
		delete(c.Locals, name)
	}
}

// ScopeDepth reports how many scopes are currently open.
func (c *Context) ScopeDepth() int {
	return c.scopes.Size()
}

// EnterLoop records update and end as the continue/break targets for a newly entered loop,
// stacked so nested loops each target their own blocks.
func (c *Context) EnterLoop(update, end llvm.BasicBlock) {
	c.loopUpdate.Push(update)
	c.loopEnd.Push(end)
}

// LeaveLoop pops the innermost loop's continue/break targets.
func (c *Context) LeaveLoop() {
	c.loopUpdate.Pop()
	c.loopEnd.Pop()
}

// InLoop reports whether a break/continue statement at this point in parsing would be valid.
func (c *Context) InLoop() bool {
	return c.loopUpdate.Size() > 0
}

// LoopUpdateBlock returns the innermost loop's continue target.
func (c *Context) LoopUpdateBlock() (llvm.BasicBlock, bool) {
	v := c.loopUpdate.Peek()
	if v == nil {
		return llvm.BasicBlock{}, false
	}
	return v.(llvm.BasicBlock), true
}

// LoopEndBlock returns the innermost loop's break target.
func (c *Context) LoopEndBlock() (llvm.BasicBlock, bool) {
	v := c.loopEnd.Peek()
	if v == nil {
		return llvm.BasicBlock{}, false
	}
	return v.(llvm.BasicBlock), true
}

// ResetFunction clears the per-function return/local state so the next function starts from a
// clean slate. Called by ast.CreateFunc after the function body has been parsed and before it is
// emitted.
func (c *Context) ResetFunction(fn llvm.Value, returnType types.ID) {
	c.CurrentFunc = fn
	c.ReturnType = returnType
	c.ReturnCount = 0
	c.ReturnBlock = llvm.BasicBlock{}
	c.ReturnVar = llvm.Value{}
	c.Locals = make(map[string]VarBinding, 16)
}
