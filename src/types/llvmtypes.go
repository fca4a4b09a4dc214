package types

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// LLVMType maps a type-id to its LLVM representation: i1/i8/i64/double for scalars, an opaque
// pointer for arrays (which decay into pointers whenever stored) and pointers themselves, void
// otherwise. Grounded on vslc's ir/llvm/transform.go choice of i (Int64Type) / f (DoubleType)
// for its two scalar kinds, generalized to Zul's four.
func LLVMType(t ID) llvm.Type {
	switch {
	case t == Bool:
		return llvm.Int1Type()
	case t == Char:
		return llvm.Int8Type()
	case t == Int:
		return llvm.Int64Type()
	case t == Float:
		return llvm.DoubleType()
	case t.IsArray(), t.IsPointer():
		return llvm.PointerType(LLVMType(t.Elem()), 0)
	default:
		return llvm.VoidType()
	}
}

// ConstZero returns the zero value of t's LLVM representation, used to default-initialize
// declared variables and globals that carry no initializer and for main's default return.
func ConstZero(t ID) llvm.Value {
	switch {
	case t == Bool:
		return llvm.ConstInt(llvm.Int1Type(), 0, false)
	case t == Char:
		return llvm.ConstInt(llvm.Int8Type(), 0, false)
	case t == Int:
		return llvm.ConstInt(llvm.Int64Type(), 0, true)
	case t == Float:
		return llvm.ConstFloat(llvm.DoubleType(), 0)
	case t.IsPointer() || t.IsArray():
		return llvm.ConstPointerNull(LLVMType(t))
	default:
		return llvm.Value{}
	}
}

func intWidth(t ID) int {
	switch t {
	case Bool:
		return 1
	case Char:
		return 8
	case Int:
		return 64
	default:
		return 0
	}
}

// TryCast implements Zul's implicit numeric coercion rules: source Void never casts; dest float
// widens any other scalar via signed-int-to-float; dest bool compares its source against zero;
// dest non-bool integer either narrows a float (truncating toward zero) or sign/zero-extends or
// truncates between integers, widening bool sources with a zero-extend (since bool has no sign
// bit to propagate) and every other source with a sign-extend. Anything else is refused so the
// caller can report a typed error.
func TryCast(b llvm.Builder, v llvm.Value, src, dest ID) (llvm.Value, bool) {
	if src == Void {
		return llvm.Value{}, false
	}
	if src == dest {
		return v, true
	}
	switch {
	case dest == Float:
		if src.IsScalar() {
			return b.CreateSIToFP(v, llvm.DoubleType(), ""), true
		}
		return llvm.Value{}, false
	case dest == Bool:
		if src == Float {
			return b.CreateFCmp(llvm.FloatONE, v, llvm.ConstFloat(llvm.DoubleType(), 0), ""), true
		}
		if src.IsScalar() {
			return b.CreateICmp(llvm.IntNE, v, llvm.ConstInt(LLVMType(src), 0, false), ""), true
		}
		return llvm.Value{}, false
	case dest.IsScalar():
		if src == Float {
			return b.CreateFPToSI(v, LLVMType(dest), ""), true
		}
		if !src.IsScalar() {
			return llvm.Value{}, false
		}
		sw, dw := intWidth(src), intWidth(dest)
		switch {
		case sw == dw:
			return v, true
		case sw > dw:
			return b.CreateTrunc(v, LLVMType(dest), ""), true
		case src == Bool:
			return b.CreateZExt(v, LLVMType(dest), ""), true
		default:
			return b.CreateSExt(v, LLVMType(dest), ""), true
		}
	default:
		return llvm.Value{}, false
	}
}

// IntOp dispatches an arithmetic, bitwise, or comparison operator over two integer operands.
// Shift right is arithmetic (sign-preserving), matching signed int semantics.
func IntOp(b llvm.Builder, lhs, rhs llvm.Value, op string) (llvm.Value, error) {
	switch op {
	case "+":
		return b.CreateAdd(lhs, rhs, ""), nil
	case "-":
		return b.CreateSub(lhs, rhs, ""), nil
	case "*":
		return b.CreateMul(lhs, rhs, ""), nil
	case "/":
		return b.CreateSDiv(lhs, rhs, ""), nil
	case "%":
		return b.CreateSRem(lhs, rhs, ""), nil
	case "&":
		return b.CreateAnd(lhs, rhs, ""), nil
	case "|":
		return b.CreateOr(lhs, rhs, ""), nil
	case "^":
		return b.CreateXor(lhs, rhs, ""), nil
	case "<<":
		return b.CreateShl(lhs, rhs, ""), nil
	case ">>":
		return b.CreateAShr(lhs, rhs, ""), nil
	case "==":
		return b.CreateICmp(llvm.IntEQ, lhs, rhs, ""), nil
	case "!=":
		return b.CreateICmp(llvm.IntNE, lhs, rhs, ""), nil
	case "<":
		return b.CreateICmp(llvm.IntSLT, lhs, rhs, ""), nil
	case "<=":
		return b.CreateICmp(llvm.IntSLE, lhs, rhs, ""), nil
	case ">":
		return b.CreateICmp(llvm.IntSGT, lhs, rhs, ""), nil
	case ">=":
		return b.CreateICmp(llvm.IntSGE, lhs, rhs, ""), nil
	default:
		return llvm.Value{}, fmt.Errorf("no such integer operator: %s", op)
	}
}

// FloatOp dispatches an arithmetic or comparison operator over two float operands. Bitwise
// operators are rejected: Zul has no bit-pattern view of a float.
func FloatOp(b llvm.Builder, lhs, rhs llvm.Value, op string) (llvm.Value, error) {
	switch op {
	case "+":
		return b.CreateFAdd(lhs, rhs, ""), nil
	case "-":
		return b.CreateFSub(lhs, rhs, ""), nil
	case "*":
		return b.CreateFMul(lhs, rhs, ""), nil
	case "/":
		return b.CreateFDiv(lhs, rhs, ""), nil
	case "%":
		return b.CreateFRem(lhs, rhs, ""), nil
	case "==":
		return b.CreateFCmp(llvm.FloatOEQ, lhs, rhs, ""), nil
	case "!=":
		return b.CreateFCmp(llvm.FloatONE, lhs, rhs, ""), nil
	case "<":
		return b.CreateFCmp(llvm.FloatOLT, lhs, rhs, ""), nil
	case "<=":
		return b.CreateFCmp(llvm.FloatOLE, lhs, rhs, ""), nil
	case ">":
		return b.CreateFCmp(llvm.FloatOGT, lhs, rhs, ""), nil
	case ">=":
		return b.CreateFCmp(llvm.FloatOGE, lhs, rhs, ""), nil
	case "&", "|", "^", "<<", ">>":
		return llvm.Value{}, fmt.Errorf("bitwise operator %q is not defined for float operands", op)
	default:
		return llvm.Value{}, fmt.Errorf("no such float operator: %s", op)
	}
}

// IsComparison reports whether op produces a bool result, used to rewrite a BinOp node's result
// type to Bool after int_op/float_op runs.
func IsComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// ToBoolean inserts a not-equal-zero comparison against the zero value of t, usable for any
// scalar or pointer. Used to lower if/for/while conditions and the && / || short-circuit chain
// to a genuine i1.
func ToBoolean(b llvm.Builder, v llvm.Value, t ID) llvm.Value {
	if t == Float {
		return b.CreateFCmp(llvm.FloatONE, v, llvm.ConstFloat(llvm.DoubleType(), 0), "")
	}
	if t.IsPointer() {
		return b.CreateICmp(llvm.IntNE, v, llvm.ConstPointerNull(LLVMType(t)), "")
	}
	return b.CreateICmp(llvm.IntNE, v, llvm.ConstInt(LLVMType(t), 0, false), "")
}
