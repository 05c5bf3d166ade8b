package ember

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind discriminates the variants of [Value]. The set of kinds is closed:
// every scalar type the protocol can carry has exactly one Kind and code
// switching over a Kind can be checked for exhaustiveness.
//
//go:generate go tool stringer -type=Kind -trimprefix=Kind
type Kind uint8

// The scalar kinds representable by a [Value].
const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindUTF8String
	KindOctetString
	KindRelativeOID
)

// RelativeOID is an ordered sequence of non-negative integer components,
// identifying a location relative to some base node.
type RelativeOID []uint

// String returns the components of o joined by dots.
func (o RelativeOID) String() string {
	var sb strings.Builder
	for i, c := range o {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	return sb.String()
}

// Value is a tagged union over the scalar types of the protocol. The zero
// Value is the null value. Values are immutable; the accessor methods return
// the zero value of their type if the Value holds a different kind.
type Value struct {
	kind Kind
	num  uint64 // boolean, integer and real payload bits
	str  string
	bs   []byte
	oid  RelativeOID
}

// Null returns the null (absent) Value. It is identical to the zero Value.
func Null() Value { return Value{} }

// Bool returns a Value holding the boolean v.
func Bool(v bool) Value {
	var num uint64
	if v {
		num = 1
	}
	return Value{kind: KindBoolean, num: num}
}

// Int returns a Value holding the integer v.
func Int(v int64) Value {
	return Value{kind: KindInteger, num: uint64(v)}
}

// Float returns a Value holding the IEEE double v.
func Float(v float64) Value {
	return Value{kind: KindReal, num: math.Float64bits(v)}
}

// Text returns a Value holding the UTF-8 string v.
func Text(v string) Value {
	return Value{kind: KindUTF8String, str: v}
}

// Octets returns a Value holding the opaque bytes v. The Value aliases v, it
// does not copy.
func Octets(v []byte) Value {
	return Value{kind: KindOctetString, bs: v}
}

// OID returns a Value holding the relative object identifier v. The Value
// aliases v, it does not copy.
func OID(v RelativeOID) Value {
	return Value{kind: KindRelativeOID, oid: v}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v, or false.
func (v Value) Bool() bool { return v.kind == KindBoolean && v.num != 0 }

// Int returns the integer held by v, or 0.
func (v Value) Int() int64 {
	if v.kind != KindInteger {
		return 0
	}
	return int64(v.num)
}

// Float returns the double held by v, or 0.
func (v Value) Float() float64 {
	if v.kind != KindReal {
		return 0
	}
	return math.Float64frombits(v.num)
}

// Text returns the string held by v, or "".
func (v Value) Text() string {
	if v.kind != KindUTF8String {
		return ""
	}
	return v.str
}

// Octets returns the bytes held by v, or nil. The returned slice is shared
// with v and must not be modified.
func (v Value) Octets() []byte {
	if v.kind != KindOctetString {
		return nil
	}
	return v.bs
}

// OID returns the relative object identifier held by v, or nil. The returned
// slice is shared with v and must not be modified.
func (v Value) OID() RelativeOID {
	if v.kind != KindRelativeOID {
		return nil
	}
	return v.oid
}

// Equal reports whether v and w hold the same kind and the same contents.
// Two real values are also considered equal if both are NaN.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean, KindInteger:
		return v.num == w.num
	case KindReal:
		return v.num == w.num || (math.IsNaN(v.Float()) && math.IsNaN(w.Float()))
	case KindUTF8String:
		return v.str == w.str
	case KindOctetString:
		return bytes.Equal(v.bs, w.bs)
	case KindRelativeOID:
		return slices.Equal(v.oid, w.oid)
	}
	return false
}

// String returns a human-readable representation of v.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return strconv.FormatBool(v.Bool())
	case KindInteger:
		return strconv.FormatInt(v.Int(), 10)
	case KindReal:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case KindUTF8String:
		return strconv.Quote(v.str)
	case KindOctetString:
		return fmt.Sprintf("{% X}", v.bs)
	case KindRelativeOID:
		return v.oid.String()
	}
	return "Kind(" + strconv.Itoa(int(v.kind)) + ")"
}
