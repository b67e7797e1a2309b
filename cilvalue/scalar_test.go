package cilvalue_test

import (
	"math"
	"math/bits"
	"testing"

	"github.com/lattice-substrate/cil-verify/cilvalue"
)

func TestTypeWidthsAndSignedness(t *testing.T) {
	cases := []struct {
		t      cilvalue.NumericType
		width  int
		signed bool
		float  bool
	}{
		{cilvalue.I8, 8, true, false},
		{cilvalue.U8, 8, false, false},
		{cilvalue.I16, 16, true, false},
		{cilvalue.U16, 16, false, false},
		{cilvalue.I32, 32, true, false},
		{cilvalue.U32, 32, false, false},
		{cilvalue.I64, 64, true, false},
		{cilvalue.U64, 64, false, false},
		{cilvalue.IPtr, bits.UintSize, true, false},
		{cilvalue.UPtr, bits.UintSize, false, false},
		{cilvalue.F32, 32, true, true},
		{cilvalue.F64, 64, true, true},
	}
	for _, tc := range cases {
		if got := tc.t.BitWidth(); got != tc.width {
			t.Errorf("%v.BitWidth() = %d, want %d", tc.t, got, tc.width)
		}
		if got := tc.t.Signed(); got != tc.signed {
			t.Errorf("%v.Signed() = %v, want %v", tc.t, got, tc.signed)
		}
		if got := tc.t.Float(); got != tc.float {
			t.Errorf("%v.Float() = %v, want %v", tc.t, got, tc.float)
		}
	}
}

func TestIntegerBounds(t *testing.T) {
	if got := cilvalue.I8.MinInt(); got != -128 {
		t.Errorf("i8 min = %d", got)
	}
	if got := cilvalue.I8.MaxUint(); got != 127 {
		t.Errorf("i8 max = %d", got)
	}
	if got := cilvalue.U8.MaxUint(); got != 255 {
		t.Errorf("u8 max = %d", got)
	}
	if got := cilvalue.U64.MaxUint(); got != math.MaxUint64 {
		t.Errorf("u64 max = %d", got)
	}
	if got := cilvalue.I64.MinInt(); got != math.MinInt64 {
		t.Errorf("i64 min = %d", got)
	}
	if got := cilvalue.U16.MinInt(); got != 0 {
		t.Errorf("u16 min = %d", got)
	}
}

func TestScalarSignExtension(t *testing.T) {
	s := cilvalue.IntScalar(cilvalue.I8, -128)
	if s.Bits() != 0x80 {
		t.Fatalf("bits = %#x, want 0x80", s.Bits())
	}
	if s.Int64() != -128 {
		t.Fatalf("Int64 = %d, want -128", s.Int64())
	}
	if s.Uint64() != 0x80 {
		t.Fatalf("Uint64 = %d, want 128", s.Uint64())
	}

	u := cilvalue.FromBits(cilvalue.U8, 0x80)
	if u.Int64() != 128 {
		t.Fatalf("unsigned Int64 = %d, want 128", u.Int64())
	}
}

func TestScalarMasksExcessBits(t *testing.T) {
	s := cilvalue.FromBits(cilvalue.I8, 0xFFFF)
	if s.Bits() != 0xFF {
		t.Fatalf("bits = %#x, want 0xFF", s.Bits())
	}
	if s.Int64() != -1 {
		t.Fatalf("Int64 = %d, want -1", s.Int64())
	}
}

func TestFloatScalars(t *testing.T) {
	f := cilvalue.Float32Scalar(1.5)
	if f.Bits() != uint64(math.Float32bits(1.5)) {
		t.Fatalf("f32 bits = %#x", f.Bits())
	}
	if f.Float64() != 1.5 {
		t.Fatalf("f32 promoted = %v", f.Float64())
	}

	d := cilvalue.Float64Scalar(-3.9)
	if d.Float64() != -3.9 {
		t.Fatalf("f64 = %v", d.Float64())
	}
}

func TestScalarEqual(t *testing.T) {
	a := cilvalue.IntScalar(cilvalue.I32, -1)
	b := cilvalue.FromBits(cilvalue.I32, 0xFFFFFFFF)
	if !a.Equal(b) {
		t.Fatal("same type and bits must be equal")
	}
	c := cilvalue.FromBits(cilvalue.U32, 0xFFFFFFFF)
	if a.Equal(c) {
		t.Fatal("different types must not be equal")
	}
}

func TestTypeByName(t *testing.T) {
	for _, typ := range cilvalue.Types {
		got, ok := cilvalue.TypeByName(typ.String())
		if !ok || got != typ {
			t.Errorf("TypeByName(%q) = (%v, %v)", typ.String(), got, ok)
		}
	}
	if _, ok := cilvalue.TypeByName("i128"); ok {
		t.Error("TypeByName accepted unknown name")
	}
}

func TestStackValueIdentity(t *testing.T) {
	obj := cilvalue.NewRef("o")
	a := cilvalue.RefValue(obj)
	b := cilvalue.RefValue(obj)
	if !a.SameIdentity(b) {
		t.Fatal("values wrapping the same object must share identity")
	}

	other := cilvalue.RefValue(cilvalue.NewRef("o"))
	if a.SameIdentity(other) {
		t.Fatal("distinct objects with equal labels must not share identity")
	}

	if !cilvalue.NullValue().SameIdentity(cilvalue.NullValue()) {
		t.Fatal("null shares identity with null")
	}
	if cilvalue.NullValue().SameIdentity(a) {
		t.Fatal("null does not share identity with a reference")
	}

	n := cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I32, 1))
	if n.SameIdentity(n) {
		t.Fatal("numeric values have no identity")
	}
}

func TestRefValueNilIsNull(t *testing.T) {
	v := cilvalue.RefValue(nil)
	if !v.IsNull() {
		t.Fatal("RefValue(nil) must be the null reference")
	}
	if v.Kind() != cilvalue.KindNull {
		t.Fatalf("kind = %v, want null", v.Kind())
	}
}

func TestNumValueKinds(t *testing.T) {
	i := cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I8, 1))
	if i.Kind() != cilvalue.KindInt {
		t.Fatalf("kind = %v, want int", i.Kind())
	}
	f := cilvalue.NumValue(cilvalue.Float32Scalar(1))
	if f.Kind() != cilvalue.KindFloat {
		t.Fatalf("kind = %v, want float", f.Kind())
	}
}
