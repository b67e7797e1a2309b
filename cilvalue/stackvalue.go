package cilvalue

import "fmt"

// StackKind tags the four StackValue shapes the stack-discipline model
// distinguishes.
type StackKind uint8

const (
	KindInt StackKind = iota
	KindFloat
	KindRef
	KindNull
)

func (k StackKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindRef:
		return "ref"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// Ref is an object the stack holds by reference. Identity is pointer
// identity; Label exists only to make test failures readable.
type Ref struct {
	Label string
}

// NewRef allocates a fresh reference object with a distinct identity.
func NewRef(label string) *Ref {
	return &Ref{Label: label}
}

// StackValue is a tagged value on the evaluation stack: a numeric scalar, an
// object reference, or the null reference. Duplicating a StackValue copies
// scalars by value and aliases references, which is exactly the duplicate-top
// contract.
type StackValue struct {
	kind StackKind
	num  Scalar
	ref  *Ref
}

// NumValue wraps a scalar; the kind follows the scalar's type.
func NumValue(s Scalar) StackValue {
	if s.Type().Float() {
		return StackValue{kind: KindFloat, num: s}
	}
	return StackValue{kind: KindInt, num: s}
}

// RefValue wraps an object reference. A nil reference is the null reference.
func RefValue(r *Ref) StackValue {
	if r == nil {
		return NullValue()
	}
	return StackValue{kind: KindRef, ref: r}
}

// NullValue returns the null reference value.
func NullValue() StackValue {
	return StackValue{kind: KindNull}
}

// Kind returns the value's tag.
func (v StackValue) Kind() StackKind { return v.kind }

// Scalar returns the numeric payload. Panics for ref and null values.
func (v StackValue) Scalar() Scalar {
	if v.kind != KindInt && v.kind != KindFloat {
		panic("cilvalue: Scalar on non-numeric stack value")
	}
	return v.num
}

// Ref returns the reference payload, nil for null. Panics for numeric values.
func (v StackValue) Ref() *Ref {
	switch v.kind {
	case KindRef:
		return v.ref
	case KindNull:
		return nil
	default:
		panic("cilvalue: Ref on numeric stack value")
	}
}

// IsNull reports whether v is the null reference.
func (v StackValue) IsNull() bool { return v.kind == KindNull }

// SameIdentity reports reference identity: both null, or both referring to
// the same object. Numeric values have no identity and always report false.
func (v StackValue) SameIdentity(o StackValue) bool {
	if v.kind == KindNull && o.kind == KindNull {
		return true
	}
	return v.kind == KindRef && o.kind == KindRef && v.ref == o.ref
}

func (v StackValue) String() string {
	switch v.kind {
	case KindInt, KindFloat:
		return v.num.String()
	case KindRef:
		return fmt.Sprintf("ref(%s)", v.ref.Label)
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}
