package compctx

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zihasoo/Zul-lang/src/types"
)

// Param is one entry in a function prototype's ordered parameter list.
type Param struct {
	Name string // May be empty: "a positional-only type (enabling forward declarations without
	// param names)" (spec §4.5).
	Type types.ID
}

// FuncProto is a function's signature plus enough state to emit calls and, once its body is
// parsed, its definition. Prototypes are looked up by name at call sites rather than held by
// pointer, so that a later forward-declaration-then-definition pair never invalidates an
// already-built FuncCall node (spec §9's stated reason for keying call sites by name).
type FuncProto struct {
	Name    string
	Return  types.ID // types.Void for a void function.
	Params  []Param
	HasBody bool
	VarArg  bool
	Fn      llvm.Value // The declared (or defined) LLVM function value.
}

// ProtoTable is the process-wide map of function prototypes keyed by name (spec §3).
type ProtoTable struct {
	m map[string]*FuncProto
}

// NewProtoTable returns an empty ProtoTable.
func NewProtoTable() *ProtoTable {
	return &ProtoTable{m: make(map[string]*FuncProto, 32)}
}

// Lookup returns the prototype named name, if one has been declared.
func (p *ProtoTable) Lookup(name string) (*FuncProto, bool) {
	proto, ok := p.m[name]
	return proto, ok
}

// Declare registers proto, or reconciles it against an existing prototype of the same name. Two
// declarations of the same name must agree in arity, variadic flag, parameter types, and return
// type; at most one of them may carry a body. On success, Declare returns the table's
// authoritative *FuncProto for the name (which may not be the proto argument itself, if one was
// already registered) so the caller can attach the LLVM function value to it.
func (p *ProtoTable) Declare(proto *FuncProto) (*FuncProto, error) {
	existing, ok := p.m[proto.Name]
	if !ok {
		p.m[proto.Name] = proto
		return proto, nil
	}
	if existing.HasBody && proto.HasBody {
		return nil, fmt.Errorf("function %q is already defined", proto.Name)
	}
	if err := signaturesMatch(existing, proto); err != nil {
		return nil, fmt.Errorf("declaration of %q does not match its forward declaration: %w", proto.Name, err)
	}
	if proto.HasBody {
		existing.HasBody = true
		existing.Fn = proto.Fn
		for i1, p1 := range proto.Params {
			if p1.Name != "" {
				existing.Params[i1].Name = p1.Name
			}
		}
	}
	return existing, nil
}

// signaturesMatch reports whether a and b agree closely enough to be the same function: same
// arity, same variadic flag, same return type, and pairwise-equal parameter types (parameter
// names may differ or be absent).
func signaturesMatch(a, b *FuncProto) error {
	if a.VarArg != b.VarArg {
		return fmt.Errorf("variadic flag differs")
	}
	if a.Return != b.Return {
		return fmt.Errorf("return type %s does not match %s", b.Return, a.Return)
	}
	if len(a.Params) != len(b.Params) {
		return fmt.Errorf("expected %d parameters, got %d", len(a.Params), len(b.Params))
	}
	for i1 := range a.Params {
		if a.Params[i1].Type != b.Params[i1].Type {
			return fmt.Errorf("parameter %d: expected type %s, got %s", i1+1, a.Params[i1].Type, b.Params[i1].Type)
		}
	}
	return nil
}
