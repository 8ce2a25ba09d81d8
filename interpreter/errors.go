package interpreter

import (
	"errors"
	"fmt"

	"loxeval/ast"
)

type ErrorKind byte

const (
	TypeError ErrorKind = iota
	DivisionByZero
	UndefinedVariable
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case DivisionByZero:
		return "DivisionByZero"
	case UndefinedVariable:
		return "UndefinedVariable"
	}

	panic(fmt.Sprintf("Invalid ErrorKind: %d", k))
}

// Sentinels for errors.Is; a *RuntimeError unwraps to the one of its kind.
var (
	ErrType              = errors.New("type error")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUndefinedVariable = errors.New("undefined variable")
)

type RuntimeError struct {
	Kind ErrorKind
	Tok  ast.Token
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] RuntimeError at '%s': %s",
		e.Tok.Line, e.Tok.Lexeme, e.Msg)
}

func (e *RuntimeError) Unwrap() error {
	switch e.Kind {
	case TypeError:
		return ErrType
	case DivisionByZero:
		return ErrDivisionByZero
	case UndefinedVariable:
		return ErrUndefinedVariable
	}
	return nil
}

func typeError(tok ast.Token, msg string) error {
	return &RuntimeError{TypeError, tok, msg}
}

func undefinedVariable(name ast.Token) error {
	return &RuntimeError{
		UndefinedVariable, name, "Undefined variable '" + name.Lexeme + "'.",
	}
}
