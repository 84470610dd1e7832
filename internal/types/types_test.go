package types

import "testing"

func TestFloatUnaryOpsExcludesIncrementDecrement(t *testing.T) {
	for _, op := range []string{"++", "--", "p++", "p--"} {
		if Float.UnaryOps()[op] {
			t.Errorf("Float.UnaryOps()[%q] = true, want false", op)
		}
	}
	for _, op := range []string{"-", "+", "*", "&"} {
		if !Float.UnaryOps()[op] {
			t.Errorf("Float.UnaryOps()[%q] = false, want true", op)
		}
	}
}

func TestIntUnaryOpsIncludesIncrementDecrement(t *testing.T) {
	for _, op := range []string{"-", "+", "--", "++", "p--", "p++", "*", "&"} {
		if !Int.UnaryOps()[op] {
			t.Errorf("Int.UnaryOps()[%q] = false, want true", op)
		}
	}
}

func TestCharAndBoolHaveNoArithmeticOps(t *testing.T) {
	for _, bt := range []*basic{Char, Bool} {
		if len(bt.BinaryOps()) != 0 {
			t.Errorf("%s.BinaryOps() = %v, want empty", bt.name, bt.BinaryOps())
		}
	}
	if !Bool.UnaryOps()["!"] {
		t.Error(`Bool.UnaryOps()["!"] = false, want true`)
	}
	if len(Char.UnaryOps()) != 0 {
		t.Errorf("Char.UnaryOps() = %v, want empty", Char.UnaryOps())
	}
}

func TestStringSupportsConcatenationOnly(t *testing.T) {
	if !String.BinaryOps()["+"] {
		t.Error(`String.BinaryOps()["+"] = false, want true`)
	}
	if len(String.BinaryOps()) != 1 {
		t.Errorf("String.BinaryOps() = %v, want only +", String.BinaryOps())
	}
}

func TestFromNameResolvesSingletons(t *testing.T) {
	cases := map[string]Type{
		"int":    Int,
		"float":  Float,
		"char":   Char,
		"bool":   Bool,
		"string": String,
		"void":   Void,
	}
	for name, want := range cases {
		got, ok := FromName(name)
		if !ok {
			t.Errorf("FromName(%q) not found", name)
			continue
		}
		if got != want {
			t.Errorf("FromName(%q) = %v, want %v", name, got, want)
		}
	}
	if _, ok := FromName("bogus"); ok {
		t.Error(`FromName("bogus") should not resolve`)
	}
}

func TestArrayStringRendersDimensionsOutermostFirst(t *testing.T) {
	two, three := 2, 3
	arr := FromDims(Int, []*int{&two, &three})
	if got, want := arr.String(), "int[2][3]"; got != want {
		t.Errorf("arr.String() = %q, want %q", got, want)
	}

	dims, base := Dims(arr)
	if base != Int {
		t.Errorf("Dims base = %v, want Int", base)
	}
	if len(dims) != 2 || *dims[0] != 2 || *dims[1] != 3 {
		t.Errorf("Dims sizes = %v, want [2 3]", dims)
	}
}

func TestArrayHasNoOperatorsOfItsOwn(t *testing.T) {
	arr := NewArray(Int, nil)
	if len(arr.UnaryOps()) != 0 || len(arr.BinaryOps()) != 0 || len(arr.RelOps()) != 0 || len(arr.AssignOps()) != 0 {
		t.Error("Array should carry no operator sets of its own")
	}
	if Basic(arr) != Int {
		t.Errorf("Basic(arr) = %v, want Int", Basic(arr))
	}
}

func TestEqualComparesStructurally(t *testing.T) {
	two := 2
	a := NewArray(Int, &two)
	b := NewArray(Int, &two)
	if a == b {
		t.Fatal("test setup: expected distinct pointers")
	}
	if !Equal(a, b) {
		t.Error("Equal should compare by rendered type string, not identity")
	}
	if Equal(Int, Float) {
		t.Error("Equal(Int, Float) should be false")
	}
}
