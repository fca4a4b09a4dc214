package types

import "testing"

func TestRangeClassification(t *testing.T) {
	for k := Bool; k < ScalarCount; k++ {
		if !k.IsScalar() || k.IsArray() || k.IsPointer() {
			t.Errorf("scalar %d misclassified", k)
		}
		a := ArrayOf(k)
		if a.IsScalar() || !a.IsArray() || a.IsPointer() {
			t.Errorf("array-of-%d misclassified", k)
		}
		if a.Elem() != k {
			t.Errorf("array-of-%d: expected Elem() %d, got %d", k, k, a.Elem())
		}
		p := PointerOf(k)
		if p.IsScalar() || p.IsArray() || !p.IsPointer() {
			t.Errorf("pointer-to-%d misclassified", k)
		}
		if p.Elem() != k {
			t.Errorf("pointer-to-%d: expected Elem() %d, got %d", k, k, p.Elem())
		}
	}
	if Void.IsScalar() || Void.IsArray() || Void.IsPointer() {
		t.Errorf("Void misclassified")
	}
	if Interrupt.IsScalar() || Interrupt.IsArray() || Interrupt.IsPointer() {
		t.Errorf("Interrupt misclassified")
	}
}

func TestMaxOrdersBoolBelowFloat(t *testing.T) {
	if Max(Bool, Float) != Float {
		t.Errorf("expected float to dominate bool")
	}
	if Max(Int, Char) != Int {
		t.Errorf("expected int to dominate char")
	}
}

func TestBuiltinScalar(t *testing.T) {
	cases := []struct {
		name string
		want ID
		ok   bool
	}{
		{"논리", Bool, true},
		{"글자", Char, true},
		{"수", Int, true},
		{"실수", Float, true},
		{"존재안함", Void, false},
	}
	for _, c := range cases {
		got, ok := BuiltinScalar(c.name)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("BuiltinScalar(%q): expected (%d, %v), got (%d, %v)", c.name, c.want, c.ok, got, ok)
		}
	}
}
