// Package types implements Zul's type-id algebra: a single integer encoding for every scalar,
// array, and pointer type the front end can produce, plus the sentinel values used to signal
// "no type" and "this emitter already terminated the block".
//
// The encoding scheme itself (scalar/array/pointer distinguished by which third of the integer
// range they fall in) mirrors the reference compiler's Type.h exactly. What changes from a
// literal translation is that every bit of range arithmetic lives behind the named
// constructors and predicates below — callers never write "t >= N && t < 2*N" themselves. That
// is as close to the reference implementation's own note that this "should become pattern
// matching" as plain integer encoding allows without inventing a sum type Go doesn't have
// natively (see the AST capability-set discussion in DESIGN.md for the same tradeoff).
package types

import "fmt"

// ID is a type-id: a scalar kind, or an array/pointer built over one, or one of the two
// sentinels Void and Interrupt.
type ID int

// Scalar kinds. ScalarCount (N) is the modulus the array/pointer ranges are built from.
const (
	Bool ID = iota
	Char
	Int
	Float

	ScalarCount // N: number of scalar kinds, not itself a valid type-id.
)

// Sentinels, outside the scalar/array/pointer ranges entirely.
const (
	// Void means "no type" — either a void-returning function, or a failed sub-expression.
	Void ID = -1

	// Interrupt signals that an emitter produced a block-terminating branch (return, break,
	// continue); the enclosing statement list must stop emitting further nodes.
	Interrupt ID = -10
)

// Scalar returns the type-id for scalar kind k (0 <= k < ScalarCount).
func Scalar(k ID) ID { return k }

// ArrayOf returns the type-id for a fixed-size array of scalar kind k.
func ArrayOf(k ID) ID { return k + ScalarCount }

// PointerOf returns the type-id for a pointer to scalar kind k. Arrays decay into pointers of
// their element kind when stored in a variable or passed across a function boundary.
func PointerOf(k ID) ID { return k + 2*ScalarCount }

// IsScalar reports whether t names one of the four scalar kinds directly.
func (t ID) IsScalar() bool { return t >= 0 && t < ScalarCount }

// IsArray reports whether t names an array type.
func (t ID) IsArray() bool { return t >= ScalarCount && t < 2*ScalarCount }

// IsPointer reports whether t names a pointer type.
func (t ID) IsPointer() bool { return t >= 2*ScalarCount && t < 3*ScalarCount }

// IsVoid reports whether t is the "no type" sentinel.
func (t ID) IsVoid() bool { return t == Void }

// IsInterrupt reports whether t is the block-terminated sentinel.
func (t ID) IsInterrupt() bool { return t == Interrupt }

// Elem returns the scalar kind underlying t: t itself if t is already scalar, the element kind
// if t is an array or pointer, or Void if t is neither (including the sentinels).
func (t ID) Elem() ID {
	switch {
	case t.IsScalar():
		return t
	case t.IsArray():
		return t - ScalarCount
	case t.IsPointer():
		return t - 2*ScalarCount
	default:
		return Void
	}
}

// IsNumeric reports whether t's scalar kind participates in arithmetic (everything but bool,
// which is logic-only in Zul's operator set).
func (t ID) IsNumeric() bool {
	k := t.Elem()
	return k == Char || k == Int || k == Float
}

var scalarNames = [ScalarCount]string{"논리", "글자", "수", "실수"}

// Name returns a human-readable Korean name for t, used in diagnostic messages.
func (t ID) Name() string {
	switch {
	case t == Void:
		return "알수없음"
	case t == Interrupt:
		return "중단"
	case t.IsScalar():
		return scalarNames[t]
	case t.IsArray():
		return scalarNames[t.Elem()] + " 배열"
	case t.IsPointer():
		return scalarNames[t.Elem()] + " 포인터"
	default:
		return fmt.Sprintf("invalid-type-id(%d)", int(t))
	}
}

func (t ID) String() string { return t.Name() }

// Max returns whichever of a, b has the higher type-id, used by BinOp to decide the promoted
// scalar kind of a binary expression (spec §4.4: "promotes to the max type-id of the two
// operands", which orders the scalar kinds bool < char < int < float).
func Max(a, b ID) ID {
	if a > b {
		return a
	}
	return b
}

// BuiltinScalar looks up a builtin type name (논리/글자/수/실수) as used by parse_type. Returns
// (Void, false) for anything else, including the Zul keywords handled separately by the lexer.
func BuiltinScalar(name string) (ID, bool) {
	switch name {
	case "논리":
		return Bool, true
	case "글자":
		return Char, true
	case "수":
		return Int, true
	case "실수":
		return Float, true
	default:
		return Void, false
	}
}
