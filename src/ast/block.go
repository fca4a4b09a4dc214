package ast

import (
	"github.com/zihasoo/Zul-lang/src/compctx"
	"github.com/zihasoo/Zul-lang/src/types"
)

// emitStatements emits each node in nodes in order, stopping early the moment one of them
// reports types.Interrupt — i.e. it produced a block-terminating branch (return/break/continue)
// and anything after it would be unreachable (spec §4.6's create_func rule, applied uniformly to
// every statement list: function bodies, if/elif/else arms, and loop bodies alike).
//
// It reports whether the block was left terminated, so callers (If, Loop) know whether they
// still need to emit their own closing branch into the block that follows.
func emitStatements(ctx *compctx.Context, nodes []Node) (terminated bool) {
	for _, stmt := range nodes {
		_, t := stmt.Emit(ctx)
		if t == types.Interrupt {
			return true
		}
	}
	return false
}
