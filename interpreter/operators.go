package interpreter

import (
	"fmt"

	"loxeval/ast"
)

// binaryOp applies op to already evaluated operands. Errors carry op as
// written, so a failing `+=` is reported at `+=`.
func binaryOp(op ast.Token, lhs, rhs Value) (Value, error) {
	switch op.UnderlyingOp().Type {
	case ast.MINUS:
		l, r, err := numberOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case ast.SLASH:
		l, r, err := numberOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, &RuntimeError{
				DivisionByZero, op, "Dividing by zero is not allowed.",
			}
		}
		return floorDiv(l, r), nil
	case ast.STAR:
		l, r, err := numberOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case ast.PLUS:
		return add(op, lhs, rhs)
	case ast.GREATER, ast.GREATER_EQUAL, ast.LESS, ast.LESS_EQUAL:
		l, r, err := numberOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return compare(op, l, r), nil
	case ast.EQUAL_EQUAL:
		return Bool(Equal(lhs, rhs)), nil
	case ast.BANG_EQUAL:
		return Bool(!Equal(lhs, rhs)), nil
	}

	panic(fmt.Sprintf(
		"Unreachable: unexpected binary operator: %v", op))
}

func numberOperands(op ast.Token, lhs, rhs Value) (Number, Number, error) {
	l, lok := lhs.(Number)
	r, rok := rhs.(Number)
	if !lok || !rok {
		return 0, 0, typeError(op, "Operands must be a number.")
	}
	return l, r, nil
}

func add(op ast.Token, lhs, rhs Value) (Value, error) {
	if !isNumberOrString(lhs) || !isNumberOrString(rhs) {
		return nil, typeError(op, "Operands must be a number or string.")
	}

	switch l := lhs.(type) {
	case String:
		switch r := rhs.(type) {
		case String:
			return l + r, nil
		case Number:
			return l + String(r.String()), nil
		}
	case Number:
		switch r := rhs.(type) {
		case Number:
			return l + r, nil
		case String:
			return nil, typeError(op, "Cannot add string to number.")
		}
	}

	panic("Unreachable.")
}

func isNumberOrString(v Value) bool {
	switch v.(type) {
	case Number, String:
		return true
	default:
		return false
	}
}

func compare(op ast.Token, l, r Number) Bool {
	switch op.Type {
	case ast.GREATER:
		return l > r
	case ast.GREATER_EQUAL:
		return l >= r
	case ast.LESS:
		return l < r
	case ast.LESS_EQUAL:
		return l <= r
	}

	panic("Unreachable.")
}

// floorDiv rounds toward negative infinity, so -7 / 2 is -4.
func floorDiv(l, r Number) Number {
	q := l / r
	if l%r != 0 && (l < 0) != (r < 0) {
		q--
	}
	return q
}
