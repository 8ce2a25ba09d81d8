package interpreter

import (
	"fmt"
	"strconv"
)

// Value is a runtime value. The set of implementations is closed:
// Nil, Bool, Number and String.
type Value interface {
	isValue()
	fmt.Stringer
}

type Nil struct{}

type Bool bool

// Number is integral; there is no float promotion.
type Number int64

type String string

func (Nil) isValue()    {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}

func (Nil) String() string { return "nil" }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }
func (s String) String() string { return string(s) }

// FromLiteral converts a literal payload from the AST into a Value. Payloads
// outside nil, bool, string, int and int64 are rejected.
func FromLiteral(lit any) (Value, error) {
	switch v := lit.(type) {
	case nil:
		return Nil{}, nil
	case bool:
		return Bool(v), nil
	case int64:
		return Number(v), nil
	case int:
		return Number(v), nil
	case string:
		return String(v), nil
	default:
		return nil, fmt.Errorf("interpreter: unsupported literal type %T", v)
	}
}

// IsTruthy: everything except nil and false.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether a and b are the same variant with the same content.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	default:
		panic("Unreachable.")
	}
}
