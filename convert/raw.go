package convert

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Raw.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Raw is a scalar as the document tree stores it natively. The zero Raw is null.
// Raw is comparable and can be used as a map key.
type Raw struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
}

func RawNull() Raw { return Raw{} }

func RawString(s string) Raw { return Raw{kind: KindString, str: s} }

func RawBool(b bool) Raw { return Raw{kind: KindBool, b: b} }

func RawInt(i int64) Raw { return Raw{kind: KindInt, num: i} }

func RawFloat(f float64) Raw { return Raw{kind: KindFloat, flt: f} }

func (r Raw) Kind() Kind { return r.kind }

func (r Raw) IsNull() bool { return r.kind == KindNull }

// Str returns the string held by r, reporting false for other kinds.
func (r Raw) Str() (string, bool) { return r.str, r.kind == KindString }

func (r Raw) Bool() (bool, bool) { return r.b, r.kind == KindBool }

func (r Raw) Int() (int64, bool) { return r.num, r.kind == KindInt }

func (r Raw) Float() (float64, bool) { return r.flt, r.kind == KindFloat }

// Text renders r in its canonical textual form. Floats are always written in
// plain decimal notation, null renders as the empty string.
func (r Raw) Text() string {
	switch r.kind {
	case KindString:
		return r.str
	case KindBool:
		return strconv.FormatBool(r.b)
	case KindInt:
		return strconv.FormatInt(r.num, 10)
	case KindFloat:
		return FormatPlainFloat(r.flt)
	default:
		return ""
	}
}

// String implements fmt.Stringer for diagnostics.
func (r Raw) String() string {
	switch r.kind {
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(r.str)
	default:
		return r.Text()
	}
}

// FormatPlainFloat formats f with the fewest digits that round-trip, never
// using an exponent.
func FormatPlainFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
